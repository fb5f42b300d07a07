package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/okian/benchboard/internal/adapters/realtime"
	"github.com/okian/benchboard/pkg/logger"
)

const (
	liveBuffer       = 256
	liveWriteTimeout = 5 * time.Second
)

// LiveHandler streams accepted scores over a WebSocket.
type LiveHandler struct {
	hub      *realtime.Hub
	upgrader websocket.Upgrader
	log      logger.Logger
}

// NewLiveHandler creates a live feed handler on hub.
func NewLiveHandler(hub *realtime.Hub, l logger.Logger) *LiveHandler {
	return &LiveHandler{
		hub:      hub,
		upgrader: websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},
		log:      l,
	}
}

// HandleLive handles GET /scores/live.
func (h *LiveHandler) HandleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied with an HTTP error.
		h.log.Debug(r.Context(), "websocket upgrade failed", logger.Error(err))
		return
	}
	defer conn.Close()

	id, ch := h.hub.Subscribe(liveBuffer)
	defer h.hub.Unsubscribe(id)

	// The feed is one-way; reading only detects the client going away.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-gone:
			return
		case ev, ok := <-ch:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(liveWriteTimeout))
			if err := conn.WriteMessage(websocket.TextMessage, realtime.MarshalJSON(ev)); err != nil {
				return
			}
		}
	}
}
