package research

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"research-ai/internal/provider"
	"research-ai/internal/retrieval"
	"research-ai/internal/storage"
	"research-ai/internal/storage/mocks"
	"research-ai/internal/textutil"
)

// fakeGenerator scripts the provider chain for engine tests.
type fakeGenerator struct {
	fn func(ctx context.Context, systemPrompt, userPrompt, mode string, maxTokens int) (*provider.Response, error)
}

func (f *fakeGenerator) Generate(ctx context.Context, systemPrompt, userPrompt, mode string, maxTokens int) (*provider.Response, error) {
	return f.fn(ctx, systemPrompt, userPrompt, mode, maxTokens)
}

type engineFixture struct {
	chunks      *mocks.MockChunkStore
	documents   *mocks.MockDocumentStore
	runs        *mocks.MockRunStore
	memories    *mocks.MockMemoryStore
	preferences *mocks.MockPreferenceStore
}

func newEngineFixture(t *testing.T) (*engineFixture, *gomock.Controller) {
	ctrl := gomock.NewController(t)
	return &engineFixture{
		chunks:      mocks.NewMockChunkStore(ctrl),
		documents:   mocks.NewMockDocumentStore(ctrl),
		runs:        mocks.NewMockRunStore(ctrl),
		memories:    mocks.NewMockMemoryStore(ctrl),
		preferences: mocks.NewMockPreferenceStore(ctrl),
	}, ctrl
}

func (f *engineFixture) engine(gen Generator) Engine {
	return NewEngine(
		f.chunks, f.documents, f.runs, f.memories, f.preferences,
		gen,
		retrieval.NewScorer(textutil.DefaultSynonyms()),
		textutil.NewCostEstimator(textutil.DefaultPricing()),
	)
}

// testCorpus is one heading-structured document split into three chunks.
func testCorpus() ([]*storage.ChunkRecord, *storage.DocumentRecord) {
	doc := &storage.DocumentRecord{
		ID:        "doc-1",
		SourceURL: "https://example.com/chunking",
		Title:     "Chunking Strategies",
	}
	chunks := []*storage.ChunkRecord{
		{
			ID: "chunk-1", DocumentID: "doc-1", ChunkIndex: 0, Heading: "Intro",
			Text: "Document chunking splits long texts into passages before indexing. " +
				"Different strategies make different tradeoffs.",
		},
		{
			ID: "chunk-2", DocumentID: "doc-1", ChunkIndex: 1, Heading: "Tradeoffs",
			Text: "Semantic chunking preserves meaning boundaries but costs more to compute. " +
				"Fixed windows are cheap but split sentences mid-thought.",
		},
		{
			ID: "chunk-3", DocumentID: "doc-1", ChunkIndex: 2, Heading: "Unrelated",
			Text: "Gardening in spring requires patience and good soil preparation.",
		},
	}
	return chunks, doc
}

func TestResearch_AnsweredWithEvidence(t *testing.T) {
	f, ctrl := newEngineFixture(t)
	defer ctrl.Finish()

	chunks, doc := testCorpus()
	f.chunks.EXPECT().ListAll(gomock.Any()).Return(chunks, nil)
	f.documents.EXPECT().GetByID(gomock.Any(), "doc-1").Return(doc, nil)
	f.memories.EXPECT().ListRecentByUser(gomock.Any(), "user-7", 5).Return(nil, nil)
	f.preferences.EXPECT().Get(gomock.Any(), "user-7").Return(nil, storage.ErrNotFound)

	answer := "Semantic chunking trades compute for coherence [1].\n\n" +
		"```research-metadata\n" +
		`{"follow_up_questions": ["How do I tune chunk size?"], "confidence": 0.85}` +
		"\n```"
	gen := &fakeGenerator{fn: func(ctx context.Context, system, user, mode string, maxTokens int) (*provider.Response, error) {
		if mode == ModeQuick && strings.Contains(user, "Summarize") == false && maxTokens == 1024 {
			return &provider.Response{
				Text: answer, Provider: "gemini", Model: "gemini-2.0-flash",
				Route: provider.RoutePrimary, PromptTokens: 100, CompletionTokens: 50,
				TotalTokens: 150, LatencyMs: 80,
			}, nil
		}
		// Secondary call: episodic-memory summarization.
		return &provider.Response{Text: "Asked about chunking tradeoffs; semantic wins on coherence."}, nil
	}}

	f.runs.EXPECT().InsertSession(gomock.Any(), gomock.Any()).Return(nil)
	f.runs.EXPECT().InsertMessage(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	f.runs.EXPECT().InsertCitations(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, citations []*storage.CitationRecord) error {
			for i, c := range citations {
				if c.Label != i+1 {
					t.Errorf("persisted citation label %d at position %d", c.Label, i)
				}
			}
			return nil
		})
	f.runs.EXPECT().InsertInsights(gomock.Any(), gomock.Any()).Return(nil)
	f.runs.EXPECT().InsertUsage(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, usage *storage.UsageRecord) error {
			if usage.Provider != "gemini" || usage.TotalTokens != 150 {
				t.Errorf("usage row = %+v", usage)
			}
			return nil
		})
	f.memories.EXPECT().ListRecentBySession(gomock.Any(), gomock.Any(), 3).Return(nil, nil)
	f.memories.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

	result, err := f.engine(gen).Research(context.Background(), Request{
		Question: "what are the tradeoffs of semantic chunking",
		Mode:     ModeQuick,
		UserID:   "user-7",
	})
	if err != nil {
		t.Fatalf("Research() unexpected error: %v", err)
	}

	if result.Status != StatusAnswered {
		t.Errorf("status = %q, want %q", result.Status, StatusAnswered)
	}
	if !strings.HasPrefix(result.Answer, "Semantic chunking trades compute") {
		t.Errorf("answer = %q, metadata block not stripped", result.Answer)
	}
	if strings.Contains(result.Answer, "research-metadata") {
		t.Error("metadata block leaked into the answer")
	}
	if len(result.Citations) == 0 {
		t.Fatal("expected citations for retrieved evidence")
	}
	for i, c := range result.Citations {
		if c.Label != i+1 {
			t.Errorf("citation label %d at position %d breaks the 1..N sequence", c.Label, i)
		}
	}
	if len(result.FollowUpQuestions) != 1 {
		t.Errorf("follow-ups = %v", result.FollowUpQuestions)
	}
	if result.Confidence < 0.35 || result.Confidence > 0.95 {
		t.Errorf("confidence = %v, out of clamp range", result.Confidence)
	}
	if result.Telemetry == nil || result.Telemetry.Route != provider.RoutePrimary {
		t.Errorf("telemetry = %+v", result.Telemetry)
	}
	if result.SessionID == "" || result.MessageID == "" {
		t.Error("session and message IDs must be stamped on the result")
	}
}

func TestResearch_AllProvidersFail(t *testing.T) {
	f, ctrl := newEngineFixture(t)
	defer ctrl.Finish()

	chunks, doc := testCorpus()
	f.chunks.EXPECT().ListAll(gomock.Any()).Return(chunks, nil)
	f.documents.EXPECT().GetByID(gomock.Any(), "doc-1").Return(doc, nil)
	f.memories.EXPECT().ListRecentByUser(gomock.Any(), "anonymous", 5).Return(nil, nil)
	f.preferences.EXPECT().Get(gomock.Any(), "anonymous").Return(nil, storage.ErrNotFound)

	chainErr := &provider.ChainError{Attempts: []provider.Attempt{
		{Provider: "gemini", Model: "m1", Err: errors.New("down")},
		{Provider: "openai", Model: "m2", Err: errors.New("down")},
		{Provider: "groq", Model: "m3", Err: errors.New("down")},
	}}
	gen := &fakeGenerator{fn: func(ctx context.Context, system, user, mode string, maxTokens int) (*provider.Response, error) {
		return nil, chainErr
	}}

	f.runs.EXPECT().InsertSession(gomock.Any(), gomock.Any()).Return(nil)
	f.runs.EXPECT().InsertMessage(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	f.runs.EXPECT().InsertCitations(gomock.Any(), gomock.Any()).Return(nil)
	f.runs.EXPECT().InsertUsage(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, usage *storage.UsageRecord) error {
			if usage.Provider != "local" || usage.Model != "fallback-local" {
				t.Errorf("fallback usage attributed to %s/%s", usage.Provider, usage.Model)
			}
			if usage.CostUSD != 0 {
				t.Errorf("local fallback cost = %v, want 0", usage.CostUSD)
			}
			return nil
		})
	f.memories.EXPECT().ListRecentBySession(gomock.Any(), gomock.Any(), 3).Return(nil, nil)
	f.memories.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

	result, err := f.engine(gen).Research(context.Background(), Request{
		Question: "semantic chunking tradeoffs",
		Mode:     ModeQuick,
	})
	if err != nil {
		t.Fatalf("Research() unexpected error: %v", err)
	}

	if result.Status != StatusFallback {
		t.Errorf("status = %q, want %q", result.Status, StatusFallback)
	}
	if len(result.Citations) == 0 {
		t.Error("fallback answer should still carry citations")
	}
	if !strings.Contains(result.Answer, "Semantic chunking preserves meaning boundaries") {
		t.Errorf("fallback answer should quote the best evidence, got %q", result.Answer)
	}
	if result.Telemetry.Provider != "local" || result.Telemetry.Model != "fallback-local" {
		t.Errorf("telemetry = %+v, want local pseudo provider", result.Telemetry)
	}
	if result.Telemetry.Route != provider.RouteFallback {
		t.Errorf("route = %q, want fallback", result.Telemetry.Route)
	}
	if result.Confidence < 0.10 || result.Confidence > 0.95 {
		t.Errorf("confidence = %v, out of failed clamp range", result.Confidence)
	}
	if len(result.Limitations) == 0 {
		t.Error("chain failure must be recorded as a limitation")
	}
}

func TestResearch_AmbiguousQuestion(t *testing.T) {
	f, ctrl := newEngineFixture(t)
	defer ctrl.Finish()

	f.chunks.EXPECT().ListAll(gomock.Any()).Return(nil, nil)
	f.memories.EXPECT().ListRecentByUser(gomock.Any(), "anonymous", 5).Return(nil, nil)
	f.preferences.EXPECT().Get(gomock.Any(), "anonymous").Return(nil, storage.ErrNotFound)

	gen := &fakeGenerator{fn: func(ctx context.Context, system, user, mode string, maxTokens int) (*provider.Response, error) {
		if !strings.Contains(user, "too vague") {
			t.Error("ambiguous queries must use the clarification prompt")
		}
		return &provider.Response{
			Text:     "Which framework are you asking about? I need the context to help.",
			Provider: "gemini", Model: "m", Route: provider.RoutePrimary,
		}, nil
	}}

	f.runs.EXPECT().InsertSession(gomock.Any(), gomock.Any()).Return(nil)
	f.runs.EXPECT().InsertMessage(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	f.runs.EXPECT().InsertUsage(gomock.Any(), gomock.Any()).Return(nil)
	// No citations, no insights, and crucially no episodic memory write.

	result, err := f.engine(gen).Research(context.Background(), Request{
		Question: "tell me more about this stuff",
	})
	if err != nil {
		t.Fatalf("Research() unexpected error: %v", err)
	}

	if result.Status != StatusNeedsClarification {
		t.Errorf("status = %q, want %q", result.Status, StatusNeedsClarification)
	}
	if result.ClarificationPrompt == nil {
		t.Fatal("clarification prompt missing")
	}
	if !strings.HasSuffix(result.ClarificationPrompt.Question, "?") {
		t.Errorf("clarification question = %q, want a question", result.ClarificationPrompt.Question)
	}
	if len(result.Citations) != 0 {
		t.Errorf("clarification result carries citations: %v", result.Citations)
	}
}

func TestResearch_UnvalidatableAnswer(t *testing.T) {
	f, ctrl := newEngineFixture(t)
	defer ctrl.Finish()

	f.chunks.EXPECT().ListAll(gomock.Any()).Return(nil, nil)
	f.memories.EXPECT().ListRecentByUser(gomock.Any(), "anonymous", 5).Return(nil, nil)
	f.preferences.EXPECT().Get(gomock.Any(), "anonymous").Return(nil, storage.ErrNotFound)

	// The model returns nothing but the metadata block, so the clean answer
	// is empty and validation must reject the assembled result.
	calls := 0
	gen := &fakeGenerator{fn: func(ctx context.Context, system, user, mode string, maxTokens int) (*provider.Response, error) {
		calls++
		if calls == 1 {
			return &provider.Response{
				Text: "```research-metadata\n" +
					`{"follow_up_questions": ["What did you mean?"], "confidence": 0.9}` +
					"\n```",
				Provider: "gemini", Model: "m", Route: provider.RoutePrimary,
				PromptTokens: 40, CompletionTokens: 20, TotalTokens: 60,
			}, nil
		}
		return &provider.Response{Text: "Asked a question the model answered with metadata only."}, nil
	}}

	f.runs.EXPECT().InsertSession(gomock.Any(), gomock.Any()).Return(nil)
	f.runs.EXPECT().InsertMessage(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	f.runs.EXPECT().InsertInsights(gomock.Any(), gomock.Any()).Return(nil)
	f.runs.EXPECT().InsertUsage(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, usage *storage.UsageRecord) error {
			if usage.Provider != "gemini" || usage.TotalTokens != 60 {
				t.Errorf("usage row = %+v, want the failed attempt's telemetry", usage)
			}
			return nil
		})
	f.memories.EXPECT().ListRecentBySession(gomock.Any(), gomock.Any(), 3).Return(nil, nil)
	f.memories.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

	result, err := f.engine(gen).Research(context.Background(), Request{
		Question: "summarize the indexing guidance",
	})
	if err != nil {
		t.Fatalf("Research() unexpected error: %v", err)
	}

	if result.Status != StatusFallback {
		t.Errorf("status = %q, want %q", result.Status, StatusFallback)
	}
	if !strings.Contains(result.Answer, "could not be validated") {
		t.Errorf("answer = %q, want the minimal substitute", result.Answer)
	}
	if result.Confidence != 0.15 {
		t.Errorf("confidence = %v, want 0.15", result.Confidence)
	}
	if len(result.Limitations) == 0 || !strings.Contains(result.Limitations[0], "empty answer") {
		t.Errorf("limitations = %v, want the validation cause", result.Limitations)
	}
	if result.Telemetry == nil || result.Telemetry.Provider != "gemini" {
		t.Errorf("telemetry = %+v, want the generation attempt preserved", result.Telemetry)
	}
	if len(result.FollowUpQuestions) != 1 {
		t.Errorf("follow-ups = %v, want the single retry prompt", result.FollowUpQuestions)
	}
}

func TestResearch_SessionContinuation(t *testing.T) {
	f, ctrl := newEngineFixture(t)
	defer ctrl.Finish()

	f.chunks.EXPECT().ListAll(gomock.Any()).Return(nil, nil)
	f.memories.EXPECT().ListRecentByUser(gomock.Any(), "anonymous", 5).Return(nil, nil)
	f.preferences.EXPECT().Get(gomock.Any(), "anonymous").Return(nil, storage.ErrNotFound)

	gen := &fakeGenerator{fn: func(ctx context.Context, system, user, mode string, maxTokens int) (*provider.Response, error) {
		return &provider.Response{
			Text:     "Connection pooling reuses database connections across requests to cut setup cost.",
			Provider: "gemini", Model: "m", Route: provider.RoutePrimary,
		}, nil
	}}

	// An existing session is updated, never re-inserted.
	f.runs.EXPECT().UpdateSessionStatus(gomock.Any(), "session-42", StatusAnswered).Return(nil)
	var messages []*storage.MessageRecord
	f.runs.EXPECT().InsertMessage(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, msg *storage.MessageRecord) error {
			messages = append(messages, msg)
			return nil
		}).Times(2)
	f.runs.EXPECT().InsertUsage(gomock.Any(), gomock.Any()).Return(nil)
	f.memories.EXPECT().ListRecentBySession(gomock.Any(), "session-42", 3).Return(nil, nil)
	f.memories.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

	result, err := f.engine(gen).Research(context.Background(), Request{
		Question:       "explain database connection pooling",
		SessionID:      "session-42",
		ParentResultID: "msg-41",
	})
	if err != nil {
		t.Fatalf("Research() unexpected error: %v", err)
	}
	if result.SessionID != "session-42" {
		t.Errorf("session ID = %q, want session-42", result.SessionID)
	}
	if result.ParentResultID != "msg-41" {
		t.Errorf("parent result ID = %q, want msg-41", result.ParentResultID)
	}

	// The follow-up link lands on the user message only.
	if len(messages) != 2 {
		t.Fatalf("persisted %d messages, want 2", len(messages))
	}
	if messages[0].Role != "user" || messages[0].ParentID != "msg-41" {
		t.Errorf("user message = %+v, want parent msg-41", messages[0])
	}
	if messages[1].Role != "assistant" || messages[1].ParentID != "" {
		t.Errorf("assistant message = %+v, want no parent", messages[1])
	}
}

func TestResearch_MemoryDeduplication(t *testing.T) {
	f, ctrl := newEngineFixture(t)
	defer ctrl.Finish()

	f.chunks.EXPECT().ListAll(gomock.Any()).Return(nil, nil)
	f.memories.EXPECT().ListRecentByUser(gomock.Any(), "anonymous", 5).Return(nil, nil)
	f.preferences.EXPECT().Get(gomock.Any(), "anonymous").Return(nil, storage.ErrNotFound)

	summary := "Asked about indexes; covering indexes avoid table lookups."
	calls := 0
	gen := &fakeGenerator{fn: func(ctx context.Context, system, user, mode string, maxTokens int) (*provider.Response, error) {
		calls++
		if calls == 1 {
			return &provider.Response{
				Text:     "A covering index contains every column the query needs.",
				Provider: "gemini", Model: "m", Route: provider.RoutePrimary,
			}, nil
		}
		return &provider.Response{Text: summary}, nil
	}}

	f.runs.EXPECT().InsertSession(gomock.Any(), gomock.Any()).Return(nil)
	f.runs.EXPECT().InsertMessage(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	f.runs.EXPECT().InsertUsage(gomock.Any(), gomock.Any()).Return(nil)
	// The same summary already exists, so no Insert is expected.
	f.memories.EXPECT().ListRecentBySession(gomock.Any(), gomock.Any(), 3).Return(
		[]*storage.MemoryRecord{{Summary: summary}}, nil)

	_, err := f.engine(gen).Research(context.Background(), Request{
		Question: "when should I use covering indexes",
	})
	if err != nil {
		t.Fatalf("Research() unexpected error: %v", err)
	}
}

func TestResearch_EvidenceError(t *testing.T) {
	f, ctrl := newEngineFixture(t)
	defer ctrl.Finish()

	f.chunks.EXPECT().ListAll(gomock.Any()).Return(nil, errors.New("disk failure"))
	f.memories.EXPECT().ListRecentByUser(gomock.Any(), "anonymous", 5).Return(nil, nil)

	gen := &fakeGenerator{fn: func(ctx context.Context, system, user, mode string, maxTokens int) (*provider.Response, error) {
		t.Error("generator must not be called when evidence gathering fails")
		return nil, nil
	}}

	_, err := f.engine(gen).Research(context.Background(), Request{
		Question: "any question with enough tokens",
	})
	if err == nil {
		t.Fatal("expected storage failure to surface")
	}
}
