package research

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"research-ai/internal/contextutil"
	"research-ai/internal/storage"
	"research-ai/internal/textutil"
)

const (
	memorySnippetLength = 280
	memoryDedupeWindow  = 3
)

// persistRun records the completed run: session, both messages, citations,
// extracted insights, usage telemetry and (outside clarification runs) an
// episodic-memory summary. It also stamps the session and message IDs onto
// the result.
func (e *researchEngine) persistRun(ctx context.Context, req Request, userID string, result *Result) error {
	logger := contextutil.LoggerFromContext(ctx)

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
		if err := e.runs.InsertSession(ctx, &storage.SessionRecord{
			ID:     sessionID,
			UserID: userID,
			Mode:   result.Mode,
			Status: result.Status,
		}); err != nil {
			return fmt.Errorf("failed to insert session: %w", err)
		}
	} else {
		if err := e.runs.UpdateSessionStatus(ctx, sessionID, result.Status); err != nil {
			return fmt.Errorf("failed to update session: %w", err)
		}
	}

	userMsg := &storage.MessageRecord{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Role:      "user",
		Content:   req.Question,
		ParentID:  req.ParentResultID,
	}
	if err := e.runs.InsertMessage(ctx, userMsg); err != nil {
		return fmt.Errorf("failed to insert user message: %w", err)
	}

	assistantMsg := &storage.MessageRecord{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Role:      "assistant",
		Content:   result.Answer,
	}
	if err := e.runs.InsertMessage(ctx, assistantMsg); err != nil {
		return fmt.Errorf("failed to insert assistant message: %w", err)
	}

	if len(result.Citations) > 0 {
		records := make([]*storage.CitationRecord, len(result.Citations))
		for i, c := range result.Citations {
			records[i] = &storage.CitationRecord{
				ID:        uuid.NewString(),
				MessageID: assistantMsg.ID,
				ChunkID:   c.ChunkID,
				Label:     c.Label,
				Score:     c.Score,
			}
		}
		if err := e.runs.InsertCitations(ctx, records); err != nil {
			return fmt.Errorf("failed to insert citations: %w", err)
		}
	}

	insights := buildInsights(sessionID, result)
	if len(insights) > 0 {
		if err := e.runs.InsertInsights(ctx, insights); err != nil {
			return fmt.Errorf("failed to insert insights: %w", err)
		}
	}

	if result.Telemetry != nil {
		if err := e.runs.InsertUsage(ctx, &storage.UsageRecord{
			ID:               uuid.NewString(),
			SessionID:        sessionID,
			Provider:         result.Telemetry.Provider,
			Model:            result.Telemetry.Model,
			Route:            result.Telemetry.Route,
			PromptTokens:     result.Telemetry.PromptTokens,
			CompletionTokens: result.Telemetry.CompletionTokens,
			TotalTokens:      result.Telemetry.TotalTokens,
			CostUSD:          result.Telemetry.EstimatedCostUSD,
			LatencyMs:        result.Telemetry.LatencyMs,
		}); err != nil {
			return fmt.Errorf("failed to insert usage: %w", err)
		}
	}

	// A clarification run produced no answer worth remembering.
	if result.Status != StatusNeedsClarification {
		if err := e.writeMemory(ctx, sessionID, userID, req.Question, result.Answer); err != nil {
			// Memory is best-effort context for future sessions, not part of
			// the run's contract.
			logger.WarnContext(ctx, "failed to write episodic memory", "error", err)
		}
	}

	result.SessionID = sessionID
	result.MessageID = assistantMsg.ID
	result.ParentResultID = req.ParentResultID
	return nil
}

func buildInsights(sessionID string, result *Result) []*storage.InsightRecord {
	var insights []*storage.InsightRecord
	for _, q := range result.FollowUpQuestions {
		insights = append(insights, &storage.InsightRecord{
			ID:        uuid.NewString(),
			SessionID: sessionID,
			Kind:      "follow_up",
			Content:   q,
		})
	}
	for _, t := range result.Tradeoffs {
		encoded, err := json.Marshal(t)
		if err != nil {
			continue
		}
		insights = append(insights, &storage.InsightRecord{
			ID:        uuid.NewString(),
			SessionID: sessionID,
			Kind:      "tradeoff",
			Content:   string(encoded),
		})
	}
	return insights
}

// writeMemory summarizes the run for future prompt context. The summary is
// produced by a secondary quick generation when a provider is reachable,
// otherwise truncated from the answer. Duplicate summaries within the same
// session are skipped.
func (e *researchEngine) writeMemory(ctx context.Context, sessionID, userID, question, answer string) error {
	summary := e.summarize(ctx, question, answer)
	if summary == "" {
		return nil
	}

	recent, err := e.memories.ListRecentBySession(ctx, sessionID, memoryDedupeWindow)
	if err != nil {
		return fmt.Errorf("failed to list recent memories: %w", err)
	}
	for _, m := range recent {
		if m.Summary == summary {
			return nil
		}
	}

	return e.memories.Insert(ctx, &storage.MemoryRecord{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		UserID:    userID,
		Summary:   summary,
	})
}

func (e *researchEngine) summarize(ctx context.Context, question, answer string) string {
	system := "Summarize the following research exchange in one or two sentences. " +
		"Capture the question's topic and the answer's main conclusion. Reply with the summary only."
	user := fmt.Sprintf("Question: %s\n\nAnswer: %s", question, answer)

	resp, err := e.generator.Generate(ctx, system, user, ModeQuick, 256)
	if err == nil {
		if s := strings.TrimSpace(resp.Text); s != "" {
			return s
		}
	}
	// No model reachable: keep the leading slice of the answer, cut at
	// whitespace.
	return textutil.Snippet(answer, memorySnippetLength)
}
