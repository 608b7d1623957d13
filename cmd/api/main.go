package main

import (
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"research-ai/internal/config"
	"research-ai/internal/http"
	"research-ai/internal/ingest"
	"research-ai/internal/provider"
	"research-ai/internal/research"
	"research-ai/internal/retrieval"
	"research-ai/internal/storage"
	"research-ai/internal/textutil"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	// Initialize database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	// Create repository instances
	documentRepo := storage.NewDocumentRepo(db)
	chunkRepo := storage.NewChunkRepo(db)
	runRepo := storage.NewRunRepo(db)
	memoryRepo := storage.NewMemoryRepo(db)
	preferenceRepo := storage.NewPreferenceRepo(db)

	// Assemble the provider fallback chain in configured order
	providers := make([]provider.Provider, 0, len(cfg.ProviderOrder))
	for _, name := range cfg.ProviderOrder {
		switch name {
		case "gemini":
			providers = append(providers, provider.NewGemini(
				cfg.Gemini.BaseURL, cfg.Gemini.APIKey,
				cfg.Gemini.QuickModel, cfg.Gemini.DeepModel))
		case "openai":
			providers = append(providers, provider.NewOpenAIStyle(
				"openai", cfg.OpenAI.BaseURL, cfg.OpenAI.APIKey,
				cfg.OpenAI.QuickModel, cfg.OpenAI.DeepModel))
		case "groq":
			providers = append(providers, provider.NewOpenAIStyle(
				"groq", cfg.Groq.BaseURL, cfg.Groq.APIKey,
				cfg.Groq.QuickModel, cfg.Groq.DeepModel))
		}
	}
	chain := provider.NewChain(providers)
	slog.Info("Provider chain assembled", "order", cfg.ProviderOrder)

	// Create the research engine
	scorer := retrieval.NewScorer(textutil.DefaultSynonyms())
	costs := textutil.NewCostEstimator(textutil.DefaultPricing())
	engine := research.NewEngine(
		chunkRepo,
		documentRepo,
		runRepo,
		memoryRepo,
		preferenceRepo,
		chain,
		scorer,
		costs,
	)
	slog.Info("Research engine initialized")

	// Create the ingestion pipeline
	pipeline := ingest.NewPipeline(documentRepo, chunkRepo)

	// Create router with dependencies
	deps := &http.Deps{
		Engine:    engine,
		Pipeline:  pipeline,
		Documents: documentRepo,
		Chunks:    chunkRepo,
		DB:        db,
	}
	router := http.NewRouter(deps)

	// Start API server
	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
