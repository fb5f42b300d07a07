package service

import (
	"github.com/okian/benchboard/internal/adapters/identity"
	"github.com/okian/benchboard/internal/config"
	"github.com/okian/benchboard/pkg/logger"
)

// FromConfig returns the options that wire storage and real-name lookup
// from cfg.
func FromConfig(cfg *config.Config, l logger.Logger) []Option {
	return []Option{
		WithLogger(l),
		WithStorage(cfg.Storage),
		WithResolver(identity.FromConfig(cfg.Identity, l.Named("identity"))),
	}
}
