// Package research hosts the orchestrator that sequences a query through
// evidence gathering, the ambiguity gate, provider generation, structured
// output parsing, confidence scoring, validation and persistence.
package research

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"research-ai/internal/confidence"
	"research-ai/internal/contextutil"
	"research-ai/internal/parser"
	"research-ai/internal/provider"
	"research-ai/internal/retrieval"
	"research-ai/internal/storage"
	"research-ai/internal/textutil"
)

// Generation budgets per mode.
const (
	quickMaxTokens = 1024
	deepMaxTokens  = 4096

	quickMinAnswerLength = 200
	deepMinAnswerLength  = 800
)

// recentMemoryCount is how many prior-session summaries feed the prompt.
const recentMemoryCount = 5

// Generator produces text via the provider fallback chain.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt, mode string, maxTokens int) (*provider.Response, error)
}

// Engine answers research queries.
type Engine interface {
	// Research runs one full orchestration pass for the request.
	Research(ctx context.Context, req Request) (Result, error)
}

// Evidence is a ranked chunk joined with its owning document.
type Evidence struct {
	Chunk    *storage.ChunkRecord
	Document *storage.DocumentRecord
	Score    float64
}

// researchEngine implements the Engine interface.
type researchEngine struct {
	chunks      storage.ChunkStore
	documents   storage.DocumentStore
	runs        storage.RunStore
	memories    storage.MemoryStore
	preferences storage.PreferenceStore
	generator   Generator
	scorer      *retrieval.Scorer
	costs       *textutil.CostEstimator
	logger      *slog.Logger
}

// NewEngine creates a new research engine.
func NewEngine(
	chunks storage.ChunkStore,
	documents storage.DocumentStore,
	runs storage.RunStore,
	memories storage.MemoryStore,
	preferences storage.PreferenceStore,
	generator Generator,
	scorer *retrieval.Scorer,
	costs *textutil.CostEstimator,
) Engine {
	return &researchEngine{
		chunks:      chunks,
		documents:   documents,
		runs:        runs,
		memories:    memories,
		preferences: preferences,
		generator:   generator,
		scorer:      scorer,
		costs:       costs,
		logger:      slog.Default(),
	}
}

// Research runs one full orchestration pass.
func (e *researchEngine) Research(ctx context.Context, req Request) (Result, error) {
	logger := contextutil.LoggerFromContext(ctx)

	mode := normalizeMode(req.Mode)
	k := retrieval.KForMode(mode)
	userID := req.UserID
	if userID == "" {
		userID = "anonymous"
	}

	logger.InfoContext(ctx, "research query started",
		"question", req.Question, "mode", mode, "user_id", userID)

	// Evidence ranking and memory fetch are both pure reads, so they run
	// concurrently.
	var (
		wg        sync.WaitGroup
		evidence  []Evidence
		evidErr   error
		memories  []*storage.MemoryRecord
		memoryErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		evidence, evidErr = e.gatherEvidence(ctx, req.Question, k)
	}()
	go func() {
		defer wg.Done()
		memories, memoryErr = e.memories.ListRecentByUser(ctx, userID, recentMemoryCount)
	}()
	wg.Wait()

	if evidErr != nil {
		return Result{}, fmt.Errorf("failed to gather evidence: %w", evidErr)
	}
	if memoryErr != nil {
		return Result{}, fmt.Errorf("failed to fetch memories: %w", memoryErr)
	}

	prefs, err := e.loadPreferences(ctx, userID)
	if err != nil {
		return Result{}, fmt.Errorf("failed to load preferences: %w", err)
	}

	ambiguous := retrieval.IsAmbiguous(req.Question)
	logger.DebugContext(ctx, "evidence gathered",
		"chunks_found", len(evidence), "memories", len(memories), "ambiguous", ambiguous)

	systemPrompt := buildSystemPrompt(mode, prefs, evidence, memories)
	userPrompt := req.Question
	if ambiguous {
		userPrompt = clarificationUserPrompt(req.Question)
	}

	genResp, genErr := e.generator.Generate(ctx, systemPrompt, userPrompt, mode, maxTokensForMode(mode))

	var limitations []string
	generationFailed := false
	if genErr != nil {
		// The chain is exhausted: synthesize a deterministic answer from the
		// retrieved snippets instead of surfacing the error.
		generationFailed = true
		limitations = append(limitations, genErr.Error())
		text := fallbackAnswer(req.Question, evidence)
		genResp = &provider.Response{
			Text:             text,
			Provider:         localProviderName,
			Model:            localModelName,
			Route:            provider.RouteFallback,
			PromptTokens:     textutil.EstimateTokens(systemPrompt + userPrompt),
			CompletionTokens: textutil.EstimateTokens(text),
		}
		genResp.TotalTokens = genResp.PromptTokens + genResp.CompletionTokens
		logger.WarnContext(ctx, "all providers failed, using local fallback", "error", genErr)
	}

	parsed := parser.Parse(genResp.Text)

	status := StatusAnswered
	if generationFailed {
		status = StatusFallback
	}

	var clarification *Clarification
	var citations []Citation
	if ambiguous {
		// The gate overrides whatever the generator produced.
		status = StatusNeedsClarification
		clarification = deriveClarification(parsed.CleanAnswer)
	} else {
		citations = buildCitations(evidence)
	}

	hasCode, hasHeading := confidence.AnalyzeStructure(parsed.CleanAnswer)
	conf := confidence.Score(confidence.Signals{
		ChunksFound:       len(evidence),
		MaxChunks:         k,
		AvgRelevance:      averageScore(evidence),
		AnswerLength:      len(parsed.CleanAnswer),
		MinExpectedLength: minAnswerLengthForMode(mode),
		HasCodeBlock:      hasCode,
		HasHeading:        hasHeading,
		SelfConfidence:    parsed.SelfConfidence,
		DistinctSources:   distinctSources(citations),
		Ambiguous:         ambiguous,
		GenerationFailed:  generationFailed,
	})

	result := Result{
		Mode:                mode,
		Status:              status,
		Answer:              parsed.CleanAnswer,
		Citations:           citations,
		Tradeoffs:           convertTradeoffs(parsed.Tradeoffs),
		FollowUpQuestions:   parsed.FollowUpQuestions,
		ClarificationPrompt: clarification,
		Confidence:          conf,
		Limitations:         limitations,
		Telemetry: &Telemetry{
			Provider:         genResp.Provider,
			Model:            genResp.Model,
			Route:            genResp.Route,
			PromptTokens:     genResp.PromptTokens,
			CompletionTokens: genResp.CompletionTokens,
			TotalTokens:      genResp.TotalTokens,
			EstimatedCostUSD: e.costs.EstimateUSD(genResp.Model, genResp.TotalTokens),
			LatencyMs:        genResp.LatencyMs,
		},
	}

	if err := validateResult(&result); err != nil {
		logger.WarnContext(ctx, "assembled result failed validation, substituting minimal response", "error", err)
		// The generation attempt still happened and still cost tokens, so the
		// substitute keeps the original telemetry.
		telemetry := result.Telemetry
		result = minimalResult(mode, err)
		result.Telemetry = telemetry
	}

	if err := e.persistRun(ctx, req, userID, &result); err != nil {
		return Result{}, fmt.Errorf("failed to persist run: %w", err)
	}

	logger.InfoContext(ctx, "research query completed",
		"status", result.Status, "confidence", result.Confidence,
		"citations", len(result.Citations), "provider", result.Telemetry.Provider,
		"route", result.Telemetry.Route)

	return result, nil
}

// gatherEvidence scores every indexed chunk against the question and joins
// the survivors to their owning documents.
func (e *researchEngine) gatherEvidence(ctx context.Context, question string, k int) ([]Evidence, error) {
	chunks, err := e.chunks.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list chunks: %w", err)
	}
	if len(chunks) == 0 {
		return nil, nil
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}
	ranked := e.scorer.Rank(question, texts, k)

	docCache := make(map[string]*storage.DocumentRecord)
	evidence := make([]Evidence, 0, len(ranked))
	for _, r := range ranked {
		chunk := chunks[r.Index]
		doc, ok := docCache[chunk.DocumentID]
		if !ok {
			doc, err = e.documents.GetByID(ctx, chunk.DocumentID)
			if err != nil {
				return nil, fmt.Errorf("failed to fetch document %s: %w", chunk.DocumentID, err)
			}
			docCache[chunk.DocumentID] = doc
		}
		evidence = append(evidence, Evidence{Chunk: chunk, Document: doc, Score: r.Score})
	}
	return evidence, nil
}

// loadPreferences returns the user's stored profile, or defaults when none
// exists.
func (e *researchEngine) loadPreferences(ctx context.Context, userID string) (*storage.PreferenceRecord, error) {
	prefs, err := e.preferences.Get(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return &storage.PreferenceRecord{
			UserID:        userID,
			IncludeCode:   true,
			Verbosity:     "normal",
			CitationStyle: "inline",
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return prefs, nil
}

// buildCitations flattens ranked evidence into labeled citations, preserving
// the order the snippets were numbered in the prompt.
func buildCitations(evidence []Evidence) []Citation {
	citations := make([]Citation, 0, len(evidence))
	for i, ev := range evidence {
		citations = append(citations, Citation{
			Label:         i + 1,
			ChunkID:       ev.Chunk.ID,
			DocumentTitle: ev.Document.Title,
			SourceURL:     ev.Document.SourceURL,
			Snippet:       textutil.Snippet(ev.Chunk.Text, 300),
			Score:         ev.Score,
		})
	}
	return citations
}

func averageScore(evidence []Evidence) float64 {
	if len(evidence) == 0 {
		return 0
	}
	var sum float64
	for _, ev := range evidence {
		sum += ev.Score
	}
	return sum / float64(len(evidence))
}

func distinctSources(citations []Citation) int {
	seen := make(map[string]struct{}, len(citations))
	for _, c := range citations {
		seen[c.SourceURL] = struct{}{}
	}
	return len(seen)
}

func convertTradeoffs(in []parser.Tradeoff) []Tradeoff {
	if len(in) == 0 {
		return nil
	}
	out := make([]Tradeoff, len(in))
	for i, t := range in {
		out[i] = Tradeoff{Option: t.Option, Pros: t.Pros, Cons: t.Cons}
	}
	return out
}

func normalizeMode(mode string) string {
	if mode == ModeDeep {
		return ModeDeep
	}
	return ModeQuick
}

func maxTokensForMode(mode string) int {
	if mode == ModeDeep {
		return deepMaxTokens
	}
	return quickMaxTokens
}

func minAnswerLengthForMode(mode string) int {
	if mode == ModeDeep {
		return deepMinAnswerLength
	}
	return quickMinAnswerLength
}
