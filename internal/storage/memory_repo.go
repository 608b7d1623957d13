package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_memory_store.go -package=mocks research-ai/internal/storage MemoryStore

import (
	"context"
	"database/sql"
	"fmt"
)

// MemoryStore defines the interface for episodic-memory operations.
type MemoryStore interface {
	// Insert inserts a memory summary row.
	Insert(ctx context.Context, memory *MemoryRecord) error
	// ListRecentBySession returns the n most recent memories for a session,
	// newest first. Used for the duplicate-summary guard.
	ListRecentBySession(ctx context.Context, sessionID string, n int) ([]*MemoryRecord, error)
	// ListRecentByUser returns the n most recent memories for a user,
	// newest first. Used as prior-session context in prompts.
	ListRecentByUser(ctx context.Context, userID string, n int) ([]*MemoryRecord, error)
}

// MemoryRepo provides methods for episodic-memory operations.
// It implements the MemoryStore interface.
type MemoryRepo struct {
	db *sql.DB
}

// NewMemoryRepo creates a new MemoryRepo.
func NewMemoryRepo(db *sql.DB) *MemoryRepo {
	return &MemoryRepo{db: db}
}

// Insert inserts a memory summary row.
func (r *MemoryRepo) Insert(ctx context.Context, memory *MemoryRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO memories (id, session_id, user_id, summary) VALUES (?, ?, ?, ?)",
		memory.ID, memory.SessionID, memory.UserID, memory.Summary,
	)
	if err != nil {
		return fmt.Errorf("failed to insert memory: %w", err)
	}
	return nil
}

// ListRecentBySession returns the n most recent memories for a session.
func (r *MemoryRepo) ListRecentBySession(ctx context.Context, sessionID string, n int) ([]*MemoryRecord, error) {
	return r.list(ctx,
		`SELECT id, session_id, user_id, summary, created_at FROM memories
		 WHERE session_id = ? ORDER BY created_at DESC, id DESC LIMIT ?`,
		sessionID, n)
}

// ListRecentByUser returns the n most recent memories for a user.
func (r *MemoryRepo) ListRecentByUser(ctx context.Context, userID string, n int) ([]*MemoryRecord, error) {
	return r.list(ctx,
		`SELECT id, session_id, user_id, summary, created_at FROM memories
		 WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT ?`,
		userID, n)
}

func (r *MemoryRepo) list(ctx context.Context, query string, args ...any) ([]*MemoryRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query memories: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var memories []*MemoryRecord
	for rows.Next() {
		var m MemoryRecord
		if err := rows.Scan(&m.ID, &m.SessionID, &m.UserID, &m.Summary, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan memory: %w", err)
		}
		memories = append(memories, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return memories, nil
}
