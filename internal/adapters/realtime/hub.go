// Package realtime fans accepted scores out to live subscribers.
package realtime

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/okian/benchboard/internal/domain/score"
	"github.com/okian/benchboard/pkg/metrics"
)

// EventScoreSubmitted is the only event type published today.
const EventScoreSubmitted = "score.submitted"

// Event is one published message. The score's hash is never serialized.
type Event struct {
	Type  string      `json:"type"`
	Score score.Score `json:"score"`
	At    time.Time   `json:"at"`
}

// NewScoreSubmitted wraps an accepted score.
func NewScoreSubmitted(s score.Score) Event {
	return Event{Type: EventScoreSubmitted, Score: s, At: time.Now().UTC()}
}

// Hub is a simple pub/sub for broadcasting events to channels.
// Slow subscribers miss events rather than block publishers.
type Hub struct {
	mu   sync.RWMutex
	subs map[int]chan Event
	next int
}

func NewHub() *Hub { return &Hub{subs: map[int]chan Event{}} }

// Subscribe registers a subscriber with the given channel buffer.
func (h *Hub) Subscribe(buffer int) (int, <-chan Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.next++
	id := h.next
	ch := make(chan Event, buffer)
	h.subs[id] = ch
	metrics.UpdateLiveSubscribers(len(h.subs))
	return id, ch
}

// Unsubscribe removes the subscriber and closes its channel.
func (h *Hub) Unsubscribe(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if ch, ok := h.subs[id]; ok {
		delete(h.subs, id)
		close(ch)
		metrics.UpdateLiveSubscribers(len(h.subs))
	}
}

// Broadcast delivers ev to every subscriber with room in its buffer.
// The read lock is held while sending so Unsubscribe cannot close a
// channel mid-send; sends never block.
func (h *Hub) Broadcast(_ context.Context, ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.subs {
		select {
		case ch <- ev:
		default: // drop if full
		}
	}
}

// Count returns the number of current subscribers.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// MarshalJSON is a helper to convert events to JSON bytes for WebSocket.
func MarshalJSON(ev Event) []byte {
	b, _ := json.Marshal(ev)
	return b
}
