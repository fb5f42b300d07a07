package repository

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/okian/benchboard/internal/domain/score"
)

// MemoryStore keeps scores in process memory. Safe for concurrent use.
type MemoryStore struct {
	mu   sync.RWMutex
	rows []sequenced
	next int64
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Insert(_ context.Context, s score.Score) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("insert: %w", err)
	}
	m.mu.Lock()
	m.next++
	m.rows = append(m.rows, sequenced{seq: m.next, Score: s})
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) BestPerPlayerAndCommand(_ context.Context, limit int) ([]score.Score, error) {
	if err := checkLimit(limit); err != nil {
		return nil, fmt.Errorf("best per player and command: %w", err)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return capRows(bestOf(m.rows), limit), nil
}

func (m *MemoryStore) All(_ context.Context, limit int) ([]score.Score, error) {
	if err := checkLimit(limit); err != nil {
		return nil, fmt.Errorf("all: %w", err)
	}
	m.mu.RLock()
	rows := slices.Clone(m.rows)
	m.mu.RUnlock()
	slices.SortFunc(rows, bySeqTime)
	return capRows(unwrap(rows), limit), nil
}

func (m *MemoryStore) Count(context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rows), nil
}

func (m *MemoryStore) Clear(context.Context) error {
	m.mu.Lock()
	m.rows = nil
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Close() error { return nil }
