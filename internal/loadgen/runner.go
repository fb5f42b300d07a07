package loadgen

import (
	"context"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/okian/benchboard/pkg/logger"
)

// Defaults applied to zero Config fields.
const (
	defaultScores   = 1000
	defaultPlayers  = 20
	defaultCommands = 3
	defaultTimeout  = 10 * time.Second
)

func (c *Config) withDefaults() *Config {
	out := *c
	if out.Scores <= 0 {
		out.Scores = defaultScores
	}
	if out.Players <= 0 {
		out.Players = defaultPlayers
	}
	if out.Commands <= 0 {
		out.Commands = defaultCommands
	}
	if out.Workers <= 0 {
		out.Workers = runtime.NumCPU() * 2
	}
	if out.Timeout <= 0 {
		out.Timeout = defaultTimeout
	}
	return &out
}

// Run checks health, submits generated scores and verifies the board.
// Submission failures are counted; verification then fails on the gap.
func Run(ctx context.Context, cfg *Config, log logger.Logger) (*Stats, error) {
	cfg = cfg.withDefaults()
	stats := &Stats{StartTime: time.Now()}
	c := &client{base: cfg.BaseURL, http: &http.Client{Timeout: cfg.Timeout}}

	log.Info(ctx, "starting load run",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("scores", cfg.Scores),
		logger.Int("players", cfg.Players),
		logger.Int("workers", cfg.Workers),
	)

	if err := checkHealth(ctx, c); err != nil {
		return stats, err
	}

	prefix, scores := generate(cfg)
	stats.Generated = len(scores)

	submit(ctx, c, cfg.Workers, scores, stats, log)
	log.Info(ctx, "scores submitted",
		logger.Int("successful", stats.Successful),
		logger.Int("failed", stats.Failed),
	)

	want, err := expectedBest(ctx, scores)
	if err != nil {
		return stats, fmt.Errorf("expected board: %w", err)
	}
	got, err := fetchBest(ctx, c)
	if err != nil {
		return stats, err
	}
	if err := verify(prefix, want, got); err != nil {
		return stats, err
	}
	stats.Verified = len(want)
	stats.Duration = time.Since(stats.StartTime)

	log.Info(ctx, "board verified",
		logger.Int("rows", stats.Verified),
		logger.String("duration", stats.Duration.String()),
	)
	return stats, nil
}
