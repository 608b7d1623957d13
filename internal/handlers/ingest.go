package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"research-ai/internal/chunker"
	"research-ai/internal/contextutil"
	"research-ai/internal/ingest"
)

// IngestHandler handles HTTP requests for document ingestion.
type IngestHandler struct {
	pipeline *ingest.Pipeline
}

// NewIngestHandler creates a new IngestHandler.
func NewIngestHandler(pipeline *ingest.Pipeline) *IngestHandler {
	return &IngestHandler{pipeline: pipeline}
}

// IngestRequest is the HTTP payload for document submission.
type IngestRequest struct {
	SourceURL     string `json:"source_url"`
	Title         string `json:"title"`
	Content       string `json:"content"`
	ChunkStrategy string `json:"chunk_strategy,omitempty"`
}

// IngestResponse acknowledges a submission. Accepted is false when the
// document was already indexed.
type IngestResponse struct {
	Accepted   bool   `json:"accepted"`
	DocumentID string `json:"document_id"`
	SourceID   string `json:"source_id,omitempty"`
	ChunkCount int    `json:"chunk_count"`
}

// ServeHTTP ingests one document.
func (h *IngestHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req IngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Content) == "" {
		writeError(w, http.StatusBadRequest, "Content is required")
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		writeError(w, http.StatusBadRequest, "Title is required")
		return
	}

	strategy := chunker.Strategy(req.ChunkStrategy)
	if req.ChunkStrategy != "" && !chunker.ValidStrategy(strategy) {
		writeError(w, http.StatusBadRequest, "Unknown chunk strategy")
		return
	}

	receipt, err := h.pipeline.Ingest(ctx, ingest.Document{
		SourceURL: req.SourceURL,
		Title:     req.Title,
		Content:   req.Content,
		Strategy:  strategy,
	})
	if err != nil {
		logger.ErrorContext(ctx, "ingestion failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to ingest document")
		return
	}

	status := http.StatusCreated
	if !receipt.Accepted {
		status = http.StatusOK
	}
	writeJSON(w, status, IngestResponse{
		Accepted:   receipt.Accepted,
		DocumentID: receipt.DocumentID,
		SourceID:   receipt.SourceID,
		ChunkCount: receipt.ChunkCount,
	})
}
