package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"research-ai/internal/ingest"
	"research-ai/internal/storage"
	"research-ai/internal/storage/mocks"
)

func TestIngestHandler(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setup      func(documents *mocks.MockDocumentStore, chunks *mocks.MockChunkStore)
		wantStatus int
		wantAccept bool
	}{
		{
			name: "accepted document",
			body: `{"source_url": "https://example.com", "title": "Notes", "content": "# H\nsome body text", "chunk_strategy": "heading"}`,
			setup: func(documents *mocks.MockDocumentStore, chunks *mocks.MockChunkStore) {
				documents.EXPECT().GetByFingerprint(gomock.Any(), gomock.Any()).Return(nil, storage.ErrNotFound)
				documents.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
				documents.EXPECT().InsertSource(gomock.Any(), gomock.Any()).Return(nil)
				chunks.EXPECT().InsertBatch(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantStatus: http.StatusCreated,
			wantAccept: true,
		},
		{
			name: "duplicate document",
			body: `{"source_url": "https://example.com", "title": "Notes", "content": "same body"}`,
			setup: func(documents *mocks.MockDocumentStore, chunks *mocks.MockChunkStore) {
				documents.EXPECT().GetByFingerprint(gomock.Any(), gomock.Any()).Return(
					&storage.DocumentRecord{ID: "existing"}, nil)
				chunks.EXPECT().ListByDocument(gomock.Any(), "existing").Return(nil, nil)
			},
			wantStatus: http.StatusOK,
			wantAccept: false,
		},
		{
			name:       "missing content",
			body:       `{"source_url": "https://example.com", "title": "Notes"}`,
			setup:      func(documents *mocks.MockDocumentStore, chunks *mocks.MockChunkStore) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing title",
			body:       `{"source_url": "https://example.com", "content": "body"}`,
			setup:      func(documents *mocks.MockDocumentStore, chunks *mocks.MockChunkStore) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown strategy",
			body:       `{"title": "Notes", "content": "body", "chunk_strategy": "recursive"}`,
			setup:      func(documents *mocks.MockDocumentStore, chunks *mocks.MockChunkStore) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed JSON",
			body:       `{"title": `,
			setup:      func(documents *mocks.MockDocumentStore, chunks *mocks.MockChunkStore) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			documents := mocks.NewMockDocumentStore(ctrl)
			chunks := mocks.NewMockChunkStore(ctrl)
			tt.setup(documents, chunks)

			handler := NewIngestHandler(ingest.NewPipeline(documents, chunks))
			req := httptest.NewRequest(http.MethodPost, "/api/ingest", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body: %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}

			if tt.wantStatus == http.StatusCreated || tt.wantStatus == http.StatusOK {
				var resp IngestResponse
				if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if resp.Accepted != tt.wantAccept {
					t.Errorf("accepted = %v, want %v", resp.Accepted, tt.wantAccept)
				}
				if resp.DocumentID == "" {
					t.Error("response missing document ID")
				}
			}
		})
	}
}
