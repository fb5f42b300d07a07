package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	service "github.com/okian/benchboard/internal/app"
	"github.com/okian/benchboard/internal/domain/board"
	"github.com/okian/benchboard/internal/domain/score"
	"github.com/okian/benchboard/internal/domain/types"
	"github.com/okian/benchboard/pkg/logger"
	"github.com/okian/benchboard/pkg/metrics"
)

const maxBodyBytes = 1 << 20

// scoreRequest is the body of POST /scores.
type scoreRequest struct {
	Name     string  `json:"name"`
	Command  string  `json:"command"`
	TimeNS   float64 `json:"time_ns"`
	Hash     string  `json:"hash"`
	Language string  `json:"language"`
}

// ScoresHandler handles /scores.
type ScoresHandler struct {
	deps     Dependencies
	maxLimit int
	log      logger.Logger
}

// NewScoresHandler creates a new scores handler.
func NewScoresHandler(deps Dependencies, maxLimit int, l logger.Logger) *ScoresHandler {
	return &ScoresHandler{deps: deps, maxLimit: maxLimit, log: l}
}

// HandleScores dispatches on method: POST submits, GET lists, DELETE clears.
func (h *ScoresHandler) HandleScores(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handlePost(w, r)
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodDelete:
		h.handleClear(w, r)
	default:
		methodNotAllowed(w, r, "GET, POST, DELETE")
	}
}

func (h *ScoresHandler) handlePost(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_score"
	var req scoreRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		metrics.RecordScoreRejected("decode")
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	sc := score.New(req.Name, req.Command, req.TimeNS, req.Hash, req.Language)
	if err := h.deps.Submit(r.Context(), sc); err != nil {
		if service.IsValidation(err) {
			writeError(w, http.StatusBadRequest, "invalid_score", WrapKind(op, ErrBadRequest, err))
			return
		}
		h.log.Error(r.Context(), "submit failed", logger.String("request_id", RequestIDFrom(r.Context())), logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusCreated, sc)
}

func (h *ScoresHandler) handleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_scores"
	req, err := parseBoardRequest(r.URL.RawQuery, h.maxLimit)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	b, err := h.deps.Board(r.Context(), req.query)
	if err != nil {
		writeBoardError(w, r, h.log, op, err)
		return
	}
	writeJSON(w, http.StatusOK, types.Entries(filtered(b, req).Get(nil)))
}

func (h *ScoresHandler) handleClear(w http.ResponseWriter, r *http.Request) {
	const op = "api.clear_scores"
	if err := h.deps.Clear(r.Context()); err != nil {
		h.log.Error(r.Context(), "clear failed", logger.String("request_id", RequestIDFrom(r.Context())), logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeBoardError(w http.ResponseWriter, r *http.Request, l logger.Logger, op string, err error) {
	if service.IsValidation(err) {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if !errors.Is(err, service.ErrNotStarted) {
		l.Error(r.Context(), "board load failed", logger.String("request_id", RequestIDFrom(r.Context())), logger.Error(err))
	}
	writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
}

// filtered applies the request's filters and records pipeline metrics.
func filtered(b *board.Board, req boardRequest) *board.Board {
	start := time.Now()
	out := b.Filter(req.filters)
	metrics.RecordFilterApplyLatency(float64(time.Since(start).Microseconds()) / 1000)
	metrics.UpdateBoardRows(out.Len())
	return out
}
