// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/okian/benchboard/internal/adapters/realtime"
	"github.com/okian/benchboard/internal/domain/board"
	"github.com/okian/benchboard/internal/domain/score"
	"github.com/okian/benchboard/pkg/logger"
	"github.com/okian/benchboard/pkg/metrics"
)

const defaultMaxLimit = 100

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	Submit(ctx context.Context, s score.Score) error
	Board(ctx context.Context, q board.Query) (*board.Board, error)
	Clear(ctx context.Context) error
}

// StatsProvider defines the interface for getting service statistics.
type StatsProvider interface {
	GetStats(ctx context.Context) map[string]any
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler *HealthHandler
	statsHandler  *StatsHandler
	scoresHandler *ScoresHandler
	boardHandler  *BoardHandler
	liveHandler   *LiveHandler
}

type settings struct {
	hub      *realtime.Hub
	maxLimit int
	logger   logger.Logger
}

// Option applies a configuration option to the Server.
type Option func(*settings)

// WithHub enables the live score feed.
func WithHub(hub *realtime.Hub) Option {
	return func(s *settings) { s.hub = hub }
}

// WithMaxLimit caps the limit query parameter.
func WithMaxLimit(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.maxLimit = n
		}
	}
}

// WithLogger sets the handler logger.
func WithLogger(l logger.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	cfg := settings{maxLimit: defaultMaxLimit, logger: logger.Nop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	s := &Server{
		healthHandler: NewHealthHandler(),
		statsHandler:  NewStatsHandler(statsProvider),
		scoresHandler: NewScoresHandler(deps, cfg.maxLimit, cfg.logger),
		boardHandler:  NewBoardHandler(deps, cfg.maxLimit, cfg.logger),
	}
	if cfg.hub != nil {
		s.liveHandler = NewLiveHandler(cfg.hub, cfg.logger)
	}
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/scores", MetricsMiddleware(s.scoresHandler.HandleScores, "scores"))
	mux.HandleFunc("/board", MetricsMiddleware(s.boardHandler.HandleGetBoard, "board"))
	if s.liveHandler != nil {
		mux.HandleFunc("/scores/live", MetricsMiddleware(s.liveHandler.HandleLive, "scores_live"))
	}
}

// Handler returns a mux with every route registered behind the request id
// middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.Register(mux)
	return RequestID(mux)
}

type errorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg, RequestID: w.Header().Get(headerRequestID)})
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request, allow string) {
	w.Header().Set("Allow", allow)
	writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", NewKind(r.Method+" "+r.URL.Path, ErrMethodNotAllowed))
}
