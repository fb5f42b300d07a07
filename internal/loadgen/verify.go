package loadgen

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/okian/benchboard/internal/adapters/repository"
	"github.com/okian/benchboard/internal/domain/score"
	"github.com/okian/benchboard/internal/domain/types"
)

// ErrMismatch reports a served board that disagrees with the submitted runs.
var ErrMismatch = errors.New("board mismatch")

// expectedBest runs the submitted scores through the in-memory store, which
// shares its ordering rules with every other store.
func expectedBest(ctx context.Context, scores []score.Score) ([]score.Score, error) {
	m := repository.NewMemoryStore()
	for _, s := range scores {
		if err := m.Insert(ctx, s); err != nil {
			return nil, err
		}
	}
	return m.BestPerPlayerAndCommand(ctx, 0)
}

// verify compares the served rows for this run with the expected best runs.
func verify(prefix string, want []score.Score, got []types.Entry) error {
	var mine []types.Entry
	for _, e := range got {
		if strings.HasPrefix(e.Name, prefix) {
			mine = append(mine, e)
		}
	}
	if len(mine) != len(want) {
		return fmt.Errorf("%w: served %d rows, expected %d", ErrMismatch, len(mine), len(want))
	}
	for i, w := range want {
		g := mine[i]
		if g.Name != w.Name || g.Command != w.Command || g.TimeNS != w.TimeNS || g.Language != w.Language {
			return fmt.Errorf("%w: row %d is %s/%s %.0fns, expected %s/%s %.0fns",
				ErrMismatch, i+1, g.Name, g.Command, g.TimeNS, w.Name, w.Command, w.TimeNS)
		}
	}
	return nil
}
