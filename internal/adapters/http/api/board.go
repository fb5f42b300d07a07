package api

import (
	"io"
	"net/http"

	"github.com/okian/benchboard/pkg/logger"
)

// BoardHandler renders the text score board.
type BoardHandler struct {
	deps     Dependencies
	maxLimit int
	log      logger.Logger
}

// NewBoardHandler creates a new board handler.
func NewBoardHandler(deps Dependencies, maxLimit int, l logger.Logger) *BoardHandler {
	return &BoardHandler{deps: deps, maxLimit: maxLimit, log: l}
}

// HandleGetBoard handles GET /board?[all][&limit=N][&real_names][&filters...].
func (h *BoardHandler) HandleGetBoard(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_board"
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
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
	b = filtered(b, req)

	var text string
	if req.realNames {
		text = b.DisplayWithRealName(r.Context(), nil)
	} else {
		text = b.Display(nil)
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, text)
}
