package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"research-ai/internal/ingest"
	"research-ai/internal/research"
	"research-ai/internal/storage"
	"research-ai/internal/storage/mocks"
)

type stubEngine struct {
	result research.Result
}

func (s *stubEngine) Research(ctx context.Context, req research.Request) (research.Result, error) {
	return s.result, nil
}

func testRouter(t *testing.T) http.Handler {
	t.Helper()

	ctrl := gomock.NewController(t)
	documents := mocks.NewMockDocumentStore(ctrl)
	chunks := mocks.NewMockChunkStore(ctrl)
	documents.EXPECT().GetByID(gomock.Any(), gomock.Any()).Return(nil, storage.ErrNotFound).AnyTimes()

	db, err := storage.New(filepath.Join(t.TempDir(), "router-test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return NewRouter(&Deps{
		Engine: &stubEngine{result: research.Result{
			Mode: research.ModeQuick, Status: research.StatusAnswered,
			Answer: "routed fine", Confidence: 0.7,
		}},
		Pipeline:  ingest.NewPipeline(documents, chunks),
		Documents: documents,
		Chunks:    chunks,
		DB:        db,
	})
}

func TestRouter_Routes(t *testing.T) {
	router := testRouter(t)

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{
			name:       "research endpoint",
			method:     http.MethodPost,
			path:       "/api/research",
			body:       `{"question": "does the router dispatch correctly"}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "document not found",
			method:     http.MethodGet,
			path:       "/api/documents/nope",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "health endpoint",
			method:     http.MethodGet,
			path:       "/healthz",
			wantStatus: http.StatusOK,
		},
		{
			name:       "unknown route",
			method:     http.MethodGet,
			path:       "/api/unknown",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "wrong method on research",
			method:     http.MethodGet,
			path:       "/api/research",
			wantStatus: http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("%s %s = %d, want %d", tt.method, tt.path, rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestRouter_ResearchPayload(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/research",
		strings.NewReader(`{"question": "a routed research question"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var result research.Result
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result.Answer != "routed fine" {
		t.Errorf("answer = %q", result.Answer)
	}
}
