package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"research-ai/internal/contextutil"
	"research-ai/internal/research"
)

// ResearchHandler handles HTTP requests for research queries.
type ResearchHandler struct {
	engine research.Engine
}

// NewResearchHandler creates a new ResearchHandler.
func NewResearchHandler(engine research.Engine) *ResearchHandler {
	return &ResearchHandler{engine: engine}
}

// ServeHTTP runs one research query and returns the full result payload.
func (h *ResearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req research.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Validation fails fast; partial input is never orchestrated.
	if strings.TrimSpace(req.Question) == "" {
		logger.WarnContext(ctx, "empty question in request")
		writeError(w, http.StatusBadRequest, "Question is required")
		return
	}
	switch req.Mode {
	case "", research.ModeQuick, research.ModeDeep:
	default:
		logger.WarnContext(ctx, "invalid mode in request", "mode", req.Mode)
		writeError(w, http.StatusBadRequest, "Mode must be \"quick\" or \"deep\"")
		return
	}

	result, err := h.engine.Research(ctx, req)
	if err != nil {
		logger.ErrorContext(ctx, "research query failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to process research query")
		return
	}

	writeJSON(w, http.StatusOK, result)
}
