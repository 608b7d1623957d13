package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"research-ai/internal/storage"
	"research-ai/internal/storage/mocks"
)

func documentRequest(id string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/documents/"+id, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestDocumentHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	documents := mocks.NewMockDocumentStore(ctrl)
	chunks := mocks.NewMockChunkStore(ctrl)

	documents.EXPECT().GetByID(gomock.Any(), "doc-1").Return(&storage.DocumentRecord{
		ID:        "doc-1",
		SourceURL: "https://example.com",
		Title:     "Indexed Doc",
	}, nil)
	chunks.EXPECT().ListByDocument(gomock.Any(), "doc-1").Return([]*storage.ChunkRecord{
		{ID: "c1", ChunkIndex: 0, Heading: "Intro", Text: "first"},
		{ID: "c2", ChunkIndex: 1, Heading: "Detail", Text: "second"},
	}, nil)

	handler := NewDocumentHandler(documents, chunks)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, documentRequest("doc-1"))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}

	var resp DocumentResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "doc-1" || resp.Title != "Indexed Doc" {
		t.Errorf("document = %+v", resp)
	}
	if len(resp.Chunks) != 2 || resp.Chunks[1].Heading != "Detail" {
		t.Errorf("chunks = %+v", resp.Chunks)
	}
}

func TestDocumentHandler_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	documents := mocks.NewMockDocumentStore(ctrl)
	chunks := mocks.NewMockChunkStore(ctrl)
	documents.EXPECT().GetByID(gomock.Any(), "missing").Return(nil, storage.ErrNotFound)

	handler := NewDocumentHandler(documents, chunks)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, documentRequest("missing"))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
