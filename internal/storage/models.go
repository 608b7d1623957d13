package storage

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// DocumentRecord is an ingested source document. Immutable after creation.
type DocumentRecord struct {
	ID          string // UUID
	SourceURL   string // Origin locator
	Title       string
	Content     string
	Fingerprint string // Content hash used for ingestion dedup
	CharCount   int
	TokenCount  int
	CreatedAt   time.Time
}

// SourceRecord tracks the origin of a document.
type SourceRecord struct {
	ID         string // UUID
	DocumentID string
	URL        string
	Title      string
	CreatedAt  time.Time
}

// ChunkRecord is one ordered fragment of a document, produced at ingestion
// time and never mutated.
type ChunkRecord struct {
	ID            string // UUID
	DocumentID    string
	ChunkIndex    int // Index within document (starts at 0)
	Heading       string
	Text          string
	StartOffset   int
	EndOffset     int
	TokenEstimate int
	Strategy      string // Chunking strategy that produced it
}

// SessionRecord is one research session.
type SessionRecord struct {
	ID        string // UUID
	UserID    string
	Mode      string // "quick" or "deep"
	Status    string // "answered", "needs_clarification" or "fallback"
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MessageRecord is one message within a session.
type MessageRecord struct {
	ID        string // UUID
	SessionID string
	Role      string // "user" or "assistant"
	Content   string
	// ParentID is the assistant message a follow-up question refers to.
	// Empty for fresh questions and for assistant messages. Not a foreign
	// key: the parent may live in a session that has since been deleted.
	ParentID  string
	CreatedAt time.Time
}

// CitationRecord joins an assistant message to a cited chunk. Labels are a
// dense 1..N sequence matching the order chunks were shown to the generator.
type CitationRecord struct {
	ID        string // UUID
	MessageID string
	ChunkID   string
	Label     int
	Score     float64
}

// InsightRecord holds structured metadata extracted from an answer, e.g.
// follow-up questions and tradeoffs.
type InsightRecord struct {
	ID        string // UUID
	SessionID string
	Kind      string // "follow_up" or "tradeoff"
	Content   string // JSON for tradeoffs, plain text for follow-ups
	CreatedAt time.Time
}

// UsageRecord is one provider-call telemetry row.
type UsageRecord struct {
	ID               string // UUID
	SessionID        string
	Provider         string
	Model            string
	Route            string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	CostUSD          float64
	LatencyMs        int64
	CreatedAt        time.Time
}

// MemoryRecord is an episodic-memory summary of a completed run, used as
// extra prompt context in later sessions for the same user.
type MemoryRecord struct {
	ID        string // UUID
	SessionID string
	UserID    string
	Summary   string
	CreatedAt time.Time
}

// PreferenceRecord is a user's answer-style preference profile.
type PreferenceRecord struct {
	UserID        string
	IncludeCode   bool
	Verbosity     string // "brief", "normal" or "detailed"
	CitationStyle string // "inline" or "footnote"
}
