package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_run_store.go -package=mocks research-ai/internal/storage RunStore

import (
	"context"
	"database/sql"
	"fmt"
)

// RunStore groups the per-run write operations: session, messages,
// citations, insights and usage telemetry. Each write is atomic at the row
// level; a run's writes are never interleaved with another run's at that
// granularity.
type RunStore interface {
	// InsertSession inserts a new session row.
	InsertSession(ctx context.Context, session *SessionRecord) error
	// UpdateSessionStatus patches a session's status and bumps updated_at.
	UpdateSessionStatus(ctx context.Context, sessionID, status string) error
	// InsertMessage inserts one message row.
	InsertMessage(ctx context.Context, msg *MessageRecord) error
	// InsertCitations inserts a batch of citation rows.
	InsertCitations(ctx context.Context, citations []*CitationRecord) error
	// InsertInsights inserts a batch of insight rows.
	InsertInsights(ctx context.Context, insights []*InsightRecord) error
	// InsertUsage inserts one usage telemetry row.
	InsertUsage(ctx context.Context, usage *UsageRecord) error
}

// RunRepo provides methods for per-run persistence.
// It implements the RunStore interface.
type RunRepo struct {
	db *sql.DB
}

// NewRunRepo creates a new RunRepo.
func NewRunRepo(db *sql.DB) *RunRepo {
	return &RunRepo{db: db}
}

// InsertSession inserts a new session row.
func (r *RunRepo) InsertSession(ctx context.Context, session *SessionRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO sessions (id, user_id, mode, status) VALUES (?, ?, ?, ?)",
		session.ID, session.UserID, session.Mode, session.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

// UpdateSessionStatus patches a session's status and bumps updated_at.
func (r *RunRepo) UpdateSessionStatus(ctx context.Context, sessionID, status string) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE sessions SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		status, sessionID,
	)
	if err != nil {
		return fmt.Errorf("failed to update session status: %w", err)
	}
	return nil
}

// InsertMessage inserts one message row.
func (r *RunRepo) InsertMessage(ctx context.Context, msg *MessageRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO messages (id, session_id, role, content, parent_id) VALUES (?, ?, ?, ?, ?)",
		msg.ID, msg.SessionID, msg.Role, msg.Content, msg.ParentID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}
	return nil
}

// InsertCitations inserts a batch of citation rows.
func (r *RunRepo) InsertCitations(ctx context.Context, citations []*CitationRecord) error {
	for _, c := range citations {
		_, err := r.db.ExecContext(ctx,
			"INSERT INTO citations (id, message_id, chunk_id, label, score) VALUES (?, ?, ?, ?, ?)",
			c.ID, c.MessageID, c.ChunkID, c.Label, c.Score,
		)
		if err != nil {
			return fmt.Errorf("failed to insert citation: %w", err)
		}
	}
	return nil
}

// InsertInsights inserts a batch of insight rows.
func (r *RunRepo) InsertInsights(ctx context.Context, insights []*InsightRecord) error {
	for _, in := range insights {
		_, err := r.db.ExecContext(ctx,
			"INSERT INTO insights (id, session_id, kind, content) VALUES (?, ?, ?, ?)",
			in.ID, in.SessionID, in.Kind, in.Content,
		)
		if err != nil {
			return fmt.Errorf("failed to insert insight: %w", err)
		}
	}
	return nil
}

// InsertUsage inserts one usage telemetry row.
func (r *RunRepo) InsertUsage(ctx context.Context, usage *UsageRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO usage_log (id, session_id, provider, model, route, prompt_tokens,
		 completion_tokens, total_tokens, cost_usd, latency_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		usage.ID, usage.SessionID, usage.Provider, usage.Model, usage.Route,
		usage.PromptTokens, usage.CompletionTokens, usage.TotalTokens,
		usage.CostUSD, usage.LatencyMs,
	)
	if err != nil {
		return fmt.Errorf("failed to insert usage: %w", err)
	}
	return nil
}
