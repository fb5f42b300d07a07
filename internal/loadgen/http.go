package loadgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/okian/benchboard/internal/domain/score"
	"github.com/okian/benchboard/internal/domain/types"
	"github.com/okian/benchboard/pkg/logger"
)

type client struct {
	base string
	http *http.Client
}

func (c *client) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, r)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.http.Do(req)
}

// scoreBody carries the hash, which score.Score omits from JSON.
type scoreBody struct {
	Name     string  `json:"name"`
	Command  string  `json:"command"`
	TimeNS   float64 `json:"time_ns"`
	Hash     string  `json:"hash"`
	Language string  `json:"language"`
}

// submit posts scores with cfg.Workers concurrent workers.
func submit(ctx context.Context, c *client, workers int, scores []score.Score, stats *Stats, log logger.Logger) {
	var successful, failed, submitted int64

	jobs := make(chan score.Score, workers*2)
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for s := range jobs {
				atomic.AddInt64(&submitted, 1)
				resp, err := c.do(ctx, http.MethodPost, "/scores", scoreBody(s))
				if err != nil {
					atomic.AddInt64(&failed, 1)
					log.Debug(ctx, "submit failed", logger.Error(err))
					continue
				}
				_, _ = io.Copy(io.Discard, resp.Body)
				_ = resp.Body.Close()
				if resp.StatusCode != http.StatusCreated {
					atomic.AddInt64(&failed, 1)
					log.Debug(ctx, "submit rejected", logger.Int("status", resp.StatusCode))
					continue
				}
				atomic.AddInt64(&successful, 1)
			}
		}()
	}

feed:
	for _, s := range scores {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- s:
		}
	}
	close(jobs)
	wg.Wait()

	stats.Submitted = int(submitted)
	stats.Successful = int(successful)
	stats.Failed = int(failed)
}

// fetchBest reads the best-per-player board.
func fetchBest(ctx context.Context, c *client) ([]types.Entry, error) {
	resp, err := c.do(ctx, http.MethodGet, "/scores", nil)
	if err != nil {
		return nil, fmt.Errorf("get scores: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get scores: status %d", resp.StatusCode)
	}
	var out []types.Entry
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode scores: %w", err)
	}
	return out, nil
}

func checkHealth(ctx context.Context, c *client) error {
	resp, err := c.do(ctx, http.MethodGet, "/healthz", nil)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}
	return nil
}
