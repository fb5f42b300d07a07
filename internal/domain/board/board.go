// Package board holds a sequence of scores and renders filtered views of it.
package board

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/okian/benchboard/internal/domain/filter"
	"github.com/okian/benchboard/internal/domain/score"
)

// Resolver looks up the display name behind an account. ok is false on any
// failure; callers fall back to the account name.
type Resolver interface {
	RealName(ctx context.Context, account string) (name string, ok bool)
}

// Board is a read-only view over a score sequence.
type Board struct {
	scores   []score.Score
	resolver Resolver
}

// Option applies a configuration option to the Board.
type Option func(*Board)

// WithResolver sets the resolver used by DisplayWithRealName.
func WithResolver(r Resolver) Option {
	return func(b *Board) {
		b.resolver = r
	}
}

// New takes ownership of scores. No ordering is assumed.
func New(scores []score.Score, opts ...Option) *Board {
	b := &Board{scores: scores}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Len returns the number of scores on the board.
func (b *Board) Len() int { return len(b.scores) }

// Filter builds the staged filters and returns a new Board holding only the
// surviving scores. b itself is unchanged.
func (b *Board) Filter(builder *filter.Builder) *Board {
	return &Board{
		scores:   builder.Build().Apply(b.scores),
		resolver: b.resolver,
	}
}

// Get returns the scores, passed through c when it is non-nil. The result
// is always a fresh slice.
func (b *Board) Get(c *filter.Collection) []score.Score {
	if c == nil {
		return slices.Clone(b.scores)
	}
	return c.Apply(b.scores)
}

// Display renders Get(c) as a 1-indexed list, one newline-terminated line
// per score.
func (b *Board) Display(c *filter.Collection) string {
	return render(b.Get(c), func(s score.Score) string { return s.Name })
}

// DisplayWithRealName is Display with each player name replaced by the
// resolver's answer. Lookup failures keep the account name.
func (b *Board) DisplayWithRealName(ctx context.Context, c *filter.Collection) string {
	cache := make(map[string]string)
	return render(b.Get(c), func(s score.Score) string {
		if name, ok := cache[s.Name]; ok {
			return name
		}
		name := b.realName(ctx, s.Name)
		cache[s.Name] = name
		return name
	})
}

func (b *Board) realName(ctx context.Context, account string) string {
	if b.resolver == nil {
		return account
	}
	if name, ok := b.resolver.RealName(ctx, account); ok && name != "" {
		return name
	}
	return account
}

func render(scores []score.Score, name func(score.Score) string) string {
	var sb strings.Builder
	for i, s := range scores {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, s.Line(name(s)))
	}
	return sb.String()
}
