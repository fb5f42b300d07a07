package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/okian/benchboard/internal/domain/score"
)

var contractRuns = []score.Score{
	score.New("alice", "run", 30, "h1", "go"),
	score.New("alice", "run", 10, "h2", "rust"),
	score.New("bob", "run", 20, "h3", "go"),
	score.New("alice", "other", 20, "h4", "c"),
	score.New("alice", "run", 10, "h5", "zig"),
}

// testStoreContract checks behavior every Store implementation shares.
func testStoreContract(t *testing.T, newStore func(t *testing.T) Store) {
	t.Helper()
	ctx := context.Background()

	seed := func(t *testing.T, s Store) {
		t.Helper()
		for _, sc := range contractRuns {
			require.NoError(t, s.Insert(ctx, sc))
		}
	}

	t.Run("empty", func(t *testing.T) {
		s := newStore(t)
		best, err := s.BestPerPlayerAndCommand(ctx, 0)
		require.NoError(t, err)
		require.Empty(t, best)
		all, err := s.All(ctx, 0)
		require.NoError(t, err)
		require.Empty(t, all)
		n, err := s.Count(ctx)
		require.NoError(t, err)
		require.Zero(t, n)
	})

	t.Run("insert validates", func(t *testing.T) {
		s := newStore(t)
		err := s.Insert(ctx, score.New("", "run", 1, "", "go"))
		require.ErrorIs(t, err, score.ErrValidation)
		n, err := s.Count(ctx)
		require.NoError(t, err)
		require.Zero(t, n)
	})

	t.Run("negative limit", func(t *testing.T) {
		s := newStore(t)
		_, err := s.BestPerPlayerAndCommand(ctx, -1)
		require.ErrorIs(t, err, ErrInvalidLimit)
		_, err = s.All(ctx, -3)
		require.ErrorIs(t, err, ErrInvalidLimit)
	})

	t.Run("best per player and command", func(t *testing.T) {
		s := newStore(t)
		seed(t, s)

		best, err := s.BestPerPlayerAndCommand(ctx, 0)
		require.NoError(t, err)
		require.Equal(t, []score.Score{contractRuns[1], contractRuns[2], contractRuns[3]}, best)

		best, err = s.BestPerPlayerAndCommand(ctx, 2)
		require.NoError(t, err)
		require.Equal(t, []score.Score{contractRuns[1], contractRuns[2]}, best)
	})

	t.Run("all in time then insertion order", func(t *testing.T) {
		s := newStore(t)
		seed(t, s)

		all, err := s.All(ctx, 0)
		require.NoError(t, err)
		require.Equal(t, []score.Score{contractRuns[1], contractRuns[4], contractRuns[2], contractRuns[3], contractRuns[0]}, all)

		all, err = s.All(ctx, 3)
		require.NoError(t, err)
		require.Equal(t, []score.Score{contractRuns[1], contractRuns[4], contractRuns[2]}, all)

		n, err := s.Count(ctx)
		require.NoError(t, err)
		require.Equal(t, len(contractRuns), n)
	})

	t.Run("clear", func(t *testing.T) {
		s := newStore(t)
		seed(t, s)

		require.NoError(t, s.Clear(ctx))
		all, err := s.All(ctx, 0)
		require.NoError(t, err)
		require.Empty(t, all)

		require.NoError(t, s.Insert(ctx, contractRuns[0]))
		best, err := s.BestPerPlayerAndCommand(ctx, 0)
		require.NoError(t, err)
		require.Equal(t, []score.Score{contractRuns[0]}, best)
	})
}
