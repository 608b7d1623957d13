// Package http wires handlers into the service's chi router.
package http

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"research-ai/internal/handlers"
	"research-ai/internal/ingest"
	"research-ai/internal/research"
	"research-ai/internal/storage"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Engine    research.Engine
	Pipeline  *ingest.Pipeline
	Documents storage.DocumentStore
	Chunks    storage.ChunkStore
	DB        *sql.DB
}

// NewRouter creates the HTTP router with all routes and middleware.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(CORS)

	researchHandler := handlers.NewResearchHandler(deps.Engine)
	ingestHandler := handlers.NewIngestHandler(deps.Pipeline)
	documentHandler := handlers.NewDocumentHandler(deps.Documents, deps.Chunks)
	healthHandler := handlers.NewHealthHandler(deps.DB)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodPost, "/research", researchHandler)
		r.Method(http.MethodPost, "/ingest", ingestHandler)
		r.Method(http.MethodGet, "/documents/{id}", documentHandler)
	})

	r.Method(http.MethodGet, "/healthz", healthHandler)

	return r
}
