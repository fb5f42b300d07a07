package loadgen

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okian/benchboard/internal/adapters/http/api"
	service "github.com/okian/benchboard/internal/app"
	"github.com/okian/benchboard/internal/domain/score"
	"github.com/okian/benchboard/internal/domain/types"
	"github.com/okian/benchboard/pkg/logger"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	ctx := context.Background()
	svc := service.New(service.WithLogger(logger.Nop()))
	require.NoError(t, svc.Start(ctx))
	t.Cleanup(svc.Stop)

	srv := httptest.NewServer(api.NewServer(svc, svc, api.WithLogger(logger.Nop())).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func TestRun(t *testing.T) {
	srv := newServer(t)
	ctx := context.Background()

	// A run from a previous tester stays on the board and must be ignored.
	_, err := Run(ctx, &Config{BaseURL: srv.URL, Scores: 20, Players: 2, Commands: 1, Seed: 1}, logger.Nop())
	require.NoError(t, err)

	cfg := &Config{BaseURL: srv.URL, Scores: 300, Players: 8, Commands: 3, Workers: 6, Seed: 42}
	stats, err := Run(ctx, cfg, logger.Nop())
	require.NoError(t, err)

	assert.Equal(t, 300, stats.Generated)
	assert.Equal(t, 300, stats.Submitted)
	assert.Equal(t, 300, stats.Successful)
	assert.Zero(t, stats.Failed)
	assert.Positive(t, stats.Verified)
	assert.LessOrEqual(t, stats.Verified, 8*3)
}

func TestRunHealthCheck(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	stats, err := Run(context.Background(), &Config{BaseURL: srv.URL}, logger.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
	assert.Zero(t, stats.Submitted)
}

func TestGenerate(t *testing.T) {
	cfg := (&Config{Scores: 50, Players: 3, Commands: 2, Seed: 9}).withDefaults()

	prefixA, a := generate(cfg)
	prefixB, b := generate(cfg)
	require.Len(t, a, 50)
	assert.NotEqual(t, prefixA, prefixB)

	times := make(map[float64]bool, len(a))
	for i := range a {
		require.NoError(t, a[i].Validate())
		assert.True(t, strings.HasPrefix(a[i].Name, prefixA))
		assert.False(t, times[a[i].TimeNS], "duplicate time %v", a[i].TimeNS)
		times[a[i].TimeNS] = true

		// Equal seeds give equal runs apart from the run id.
		assert.Equal(t, a[i].TimeNS, b[i].TimeNS)
		assert.Equal(t, a[i].Command, b[i].Command)
		assert.Equal(t, strings.TrimPrefix(a[i].Name, prefixA), strings.TrimPrefix(b[i].Name, prefixB))
	}
}

func TestVerify(t *testing.T) {
	want := []score.Score{
		score.New("lg-x-p1", "./a", 10, "h", "go"),
		score.New("lg-x-p0", "./a", 20, "h", "c"),
	}
	rows := []types.Entry{
		{Rank: 1, Name: "someone", Command: "./z", TimeNS: 1, Language: "go"},
		{Rank: 2, Name: "lg-x-p1", Command: "./a", TimeNS: 10, Language: "go"},
		{Rank: 3, Name: "lg-x-p0", Command: "./a", TimeNS: 20, Language: "c"},
	}

	require.NoError(t, verify("lg-x-", want, rows))

	err := verify("lg-x-", want, rows[:2])
	assert.True(t, errors.Is(err, ErrMismatch))

	swapped := []types.Entry{rows[2], rows[1]}
	err = verify("lg-x-", want, swapped)
	assert.True(t, errors.Is(err, ErrMismatch))
	assert.Contains(t, err.Error(), "row 1")
}

func TestWithDefaults(t *testing.T) {
	cfg := (&Config{}).withDefaults()
	assert.Equal(t, defaultScores, cfg.Scores)
	assert.Equal(t, defaultPlayers, cfg.Players)
	assert.Equal(t, defaultCommands, cfg.Commands)
	assert.Positive(t, cfg.Workers)
	assert.Equal(t, defaultTimeout, cfg.Timeout)
}
