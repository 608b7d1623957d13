package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"research-ai/internal/contextutil"
	"research-ai/internal/storage"
)

// DocumentHandler serves ingested documents and their chunk breakdown.
type DocumentHandler struct {
	documents storage.DocumentStore
	chunks    storage.ChunkStore
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(documents storage.DocumentStore, chunks storage.ChunkStore) *DocumentHandler {
	return &DocumentHandler{documents: documents, chunks: chunks}
}

// DocumentResponse is the HTTP payload for a single document.
type DocumentResponse struct {
	ID         string          `json:"id"`
	SourceURL  string          `json:"source_url"`
	Title      string          `json:"title"`
	CharCount  int             `json:"char_count"`
	TokenCount int             `json:"token_count"`
	CreatedAt  time.Time       `json:"created_at"`
	Chunks     []ChunkResponse `json:"chunks"`
}

// ChunkResponse is one indexed chunk of a document.
type ChunkResponse struct {
	ID            string `json:"id"`
	ChunkIndex    int    `json:"chunk_index"`
	Heading       string `json:"heading"`
	Text          string `json:"text"`
	TokenEstimate int    `json:"token_estimate"`
	Strategy      string `json:"strategy"`
}

// ServeHTTP returns one document with its chunks.
func (h *DocumentHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "Document ID is required")
		return
	}

	doc, err := h.documents.GetByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Document not found")
		return
	}
	if err != nil {
		logger.ErrorContext(ctx, "failed to fetch document", "document_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch document")
		return
	}

	chunks, err := h.chunks.ListByDocument(ctx, id)
	if err != nil {
		logger.ErrorContext(ctx, "failed to list chunks", "document_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch document")
		return
	}

	resp := DocumentResponse{
		ID:         doc.ID,
		SourceURL:  doc.SourceURL,
		Title:      doc.Title,
		CharCount:  doc.CharCount,
		TokenCount: doc.TokenCount,
		CreatedAt:  doc.CreatedAt,
		Chunks:     make([]ChunkResponse, len(chunks)),
	}
	for i, c := range chunks {
		resp.Chunks[i] = ChunkResponse{
			ID:            c.ID,
			ChunkIndex:    c.ChunkIndex,
			Heading:       c.Heading,
			Text:          c.Text,
			TokenEstimate: c.TokenEstimate,
			Strategy:      c.Strategy,
		}
	}

	writeJSON(w, http.StatusOK, resp)
}
