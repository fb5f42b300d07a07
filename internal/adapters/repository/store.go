// Package repository persists benchmark scores and answers the two board
// queries: best run per player and command, and every run.
package repository

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/okian/benchboard/internal/config"
	"github.com/okian/benchboard/internal/domain/score"
)

// Store provides read/write access to submitted scores.
//
// A limit of 0 returns every row; a negative limit fails with ErrInvalidLimit.
// Rows come back ordered by ascending time, ties in insertion order.
type Store interface {
	// Insert validates and appends a score.
	Insert(ctx context.Context, s score.Score) error

	// BestPerPlayerAndCommand returns one row per (name, command) pair: the
	// fastest run, the earliest one on a tie.
	BestPerPlayerAndCommand(ctx context.Context, limit int) ([]score.Score, error)

	// All returns every stored run.
	All(ctx context.Context, limit int) ([]score.Score, error)

	// Count returns the number of stored runs.
	Count(ctx context.Context) (int, error)

	// Clear removes every run.
	Clear(ctx context.Context) error

	Close() error
}

// Open builds the store named by cfg.Adapter, wrapped with metrics and
// error logging.
func Open(ctx context.Context, cfg config.Storage, opts ...Option) (Store, error) {
	o := newOptions(opts...)
	if cfg.Table != "" {
		o.table = cfg.Table
	}

	var (
		s   Store
		err error
	)
	switch cfg.Adapter {
	case "", config.AdapterMemory:
		s = NewMemoryStore()
	case config.AdapterMySQL:
		s, err = OpenMySQL(ctx, cfg.SQL, optionsOf(o)...)
	case config.AdapterSQLite:
		s, err = OpenSQLite(ctx, cfg.SQLite.Path, optionsOf(o)...)
	case config.AdapterRedis:
		s, err = OpenRedis(ctx, cfg.Redis, optionsOf(o)...)
	default:
		return nil, fmt.Errorf("open %q: %w", cfg.Adapter, ErrUnknownDriver)
	}
	if err != nil {
		return nil, err
	}
	return Instrument(s, o.logger), nil
}

func checkLimit(limit int) error {
	if limit < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidLimit, limit)
	}
	return nil
}

// capRows truncates rows to limit; 0 keeps all.
func capRows(rows []score.Score, limit int) []score.Score {
	if limit > 0 && len(rows) > limit {
		return rows[:limit]
	}
	return rows
}

// sequenced is a score tagged with its insertion order.
type sequenced struct {
	seq int64
	score.Score
}

func bySeqTime(a, b sequenced) int {
	if c := cmp.Compare(a.TimeNS, b.TimeNS); c != 0 {
		return c
	}
	return cmp.Compare(a.seq, b.seq)
}

// bestOf keeps the fastest run per (name, command), the earliest on ties,
// and returns them in board order.
func bestOf(rows []sequenced) []score.Score {
	type key struct{ name, command string }
	best := make(map[key]sequenced, len(rows))
	for _, r := range rows {
		k := key{r.Name, r.Command}
		cur, ok := best[k]
		if !ok || bySeqTime(r, cur) < 0 {
			best[k] = r
		}
	}
	picked := make([]sequenced, 0, len(best))
	for _, r := range best {
		picked = append(picked, r)
	}
	slices.SortFunc(picked, bySeqTime)
	return unwrap(picked)
}

func unwrap(rows []sequenced) []score.Score {
	out := make([]score.Score, len(rows))
	for i, r := range rows {
		out[i] = r.Score
	}
	return out
}
