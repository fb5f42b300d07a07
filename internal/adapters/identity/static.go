package identity

import "context"

// Static resolves names from a fixed map, e.g. aliases from configuration.
type Static map[string]string

// RealName returns the mapped name, if any.
func (s Static) RealName(_ context.Context, account string) (string, bool) {
	name, ok := s[account]
	return name, ok && name != ""
}

// Resolver is satisfied by every type in this package.
type Resolver interface {
	RealName(ctx context.Context, account string) (string, bool)
}

// Chain tries each resolver in order and returns the first answer.
type Chain []Resolver

// RealName returns the first successful lookup.
func (c Chain) RealName(ctx context.Context, account string) (string, bool) {
	for _, r := range c {
		if name, ok := r.RealName(ctx, account); ok {
			return name, true
		}
	}
	return "", false
}
