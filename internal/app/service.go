// Package service provides the core business service that implements
// the dependencies required by the HTTP API and the CLI.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/okian/benchboard/internal/adapters/realtime"
	"github.com/okian/benchboard/internal/adapters/repository"
	"github.com/okian/benchboard/internal/config"
	"github.com/okian/benchboard/internal/domain/board"
	"github.com/okian/benchboard/internal/domain/score"
	"github.com/okian/benchboard/pkg/logger"
	"github.com/okian/benchboard/pkg/metrics"
)

// Service stores submitted scores and builds boards from them.
type Service struct {
	mu sync.RWMutex

	// Core components
	store    repository.Store
	hub      *realtime.Hub
	resolver board.Resolver

	// Configuration
	storage config.Storage

	// State
	started   bool
	ownsStore bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore uses an already opened store. The service does not close it.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithStorage configures the store opened by Start when none was given.
func WithStorage(cfg config.Storage) Option {
	return func(s *Service) {
		s.storage = cfg
	}
}

// WithHub publishes accepted scores to live subscribers.
func WithHub(hub *realtime.Hub) Option {
	return func(s *Service) {
		if hub != nil {
			s.hub = hub
		}
	}
}

// WithResolver sets the real-name resolver attached to every board.
func WithResolver(r board.Resolver) Option {
	return func(s *Service) {
		if r != nil {
			s.resolver = r
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		storage: config.Storage{Adapter: config.AdapterMemory},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start opens the configured store unless one was supplied.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	if s.store == nil {
		store, err := repository.Open(ctx, s.storage, repository.WithLogger(s.logger.Named("store")))
		if err != nil {
			return fmt.Errorf("start: %w", err)
		}
		s.store = store
		s.ownsStore = true
	}

	s.started = true
	s.logger.Info(ctx, "benchboard service started",
		logger.String("adapter", s.adapterName()),
		logger.Bool("live", s.hub != nil),
		logger.Bool("real_names", s.resolver != nil),
	)
	return nil
}

// Stop closes the store when Start opened it.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	if s.ownsStore {
		if err := s.store.Close(); err != nil {
			s.logger.Warn(context.Background(), "closing store", logger.Error(err))
		}
		s.store = nil
		s.ownsStore = false
	}
	s.started = false
	s.logger.Info(context.Background(), "benchboard service stopped")
}

func (s *Service) running() (repository.Store, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	return s.store, nil
}

// Submit validates and stores a score, then publishes it to live subscribers.
func (s *Service) Submit(ctx context.Context, sc score.Score) error {
	store, err := s.running()
	if err != nil {
		return err
	}
	if err := sc.Validate(); err != nil {
		metrics.RecordScoreRejected("validation")
		return fmt.Errorf("submit: %w", err)
	}
	if err := store.Insert(ctx, sc); err != nil {
		metrics.RecordScoreRejected("store")
		return fmt.Errorf("submit: %w", err)
	}
	metrics.RecordScoreSubmitted()
	s.logger.Debug(ctx, "score stored",
		logger.String("name", sc.Name),
		logger.String("command", sc.Command),
		logger.Float64("time_ns", sc.TimeNS),
	)
	if s.hub != nil {
		s.hub.Broadcast(ctx, realtime.NewScoreSubmitted(sc))
	}
	return nil
}

// Board loads either the best run per player and command or every run and
// wraps the rows in a Board carrying the configured resolver.
func (s *Service) Board(ctx context.Context, q board.Query) (*board.Board, error) {
	store, err := s.running()
	if err != nil {
		return nil, err
	}
	var rows []score.Score
	if q.All {
		rows, err = store.All(ctx, q.Limit)
	} else {
		rows, err = store.BestPerPlayerAndCommand(ctx, q.Limit)
	}
	if err != nil {
		return nil, fmt.Errorf("board: %w", err)
	}
	var opts []board.Option
	if s.resolver != nil {
		opts = append(opts, board.WithResolver(s.resolver))
	}
	return board.New(rows, opts...), nil
}

// Clear removes every stored score.
func (s *Service) Clear(ctx context.Context) error {
	store, err := s.running()
	if err != nil {
		return err
	}
	if err := store.Clear(ctx); err != nil {
		return fmt.Errorf("clear: %w", err)
	}
	s.logger.Info(ctx, "scores cleared")
	return nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats(ctx context.Context) map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]any{
		"started": s.started,
		"adapter": s.adapterName(),
	}
	if s.hub != nil {
		stats["liveSubscribers"] = s.hub.Count()
	}
	if s.started {
		n, err := s.store.Count(ctx)
		if err != nil {
			s.logger.Warn(ctx, "counting scores", logger.Error(err))
			stats["error"] = err.Error()
		} else {
			stats["totalRuns"] = n
		}
	}
	return stats
}

func (s *Service) adapterName() string {
	if s.store != nil && !s.ownsStore {
		return "external"
	}
	if s.storage.Adapter == "" {
		return config.AdapterMemory
	}
	return s.storage.Adapter
}

// IsValidation reports whether err is a rejected submission rather than a
// server fault.
func IsValidation(err error) bool {
	return errors.Is(err, score.ErrValidation) || errors.Is(err, repository.ErrInvalidLimit)
}
