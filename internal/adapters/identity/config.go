package identity

import (
	"github.com/okian/benchboard/internal/config"
	"github.com/okian/benchboard/pkg/logger"
)

// FromConfig builds the resolver selected by cfg.Lookup. Static names are
// always consulted first; "none" returns nil so boards show account names.
func FromConfig(cfg config.Identity, l logger.Logger) Resolver {
	switch cfg.Lookup {
	case config.LookupNone:
		return nil
	case config.LookupStatic:
		return Static(cfg.Names)
	default:
		return Chain{Static(cfg.Names), NewGetent(WithLogger(l))}
	}
}
