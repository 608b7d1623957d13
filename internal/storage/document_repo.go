package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_document_store.go -package=mocks research-ai/internal/storage DocumentStore

import (
	"context"
	"database/sql"
	"fmt"
)

// DocumentStore defines the interface for document storage operations.
type DocumentStore interface {
	// Insert inserts a document. The record's ID must be set (UUID).
	Insert(ctx context.Context, doc *DocumentRecord) error
	// GetByID gets a document by ID. Returns ErrNotFound if not found.
	GetByID(ctx context.Context, id string) (*DocumentRecord, error)
	// GetByFingerprint gets a document by its content fingerprint.
	// Returns ErrNotFound if not found; used for ingestion dedup.
	GetByFingerprint(ctx context.Context, fingerprint string) (*DocumentRecord, error)
	// InsertSource records the origin of a document.
	InsertSource(ctx context.Context, src *SourceRecord) error
}

// DocumentRepo provides methods for document operations.
// It implements the DocumentStore interface.
type DocumentRepo struct {
	db *sql.DB
}

// NewDocumentRepo creates a new DocumentRepo.
func NewDocumentRepo(db *sql.DB) *DocumentRepo {
	return &DocumentRepo{db: db}
}

// Insert inserts a document into the database.
func (r *DocumentRepo) Insert(ctx context.Context, doc *DocumentRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO documents (id, source_url, title, content, fingerprint, char_count, token_count)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		doc.ID, doc.SourceURL, doc.Title, doc.Content, doc.Fingerprint, doc.CharCount, doc.TokenCount,
	)
	if err != nil {
		return fmt.Errorf("failed to insert document: %w", err)
	}
	return nil
}

// GetByID gets a document by its ID. Returns ErrNotFound if not found.
func (r *DocumentRepo) GetByID(ctx context.Context, id string) (*DocumentRecord, error) {
	return r.scanOne(ctx,
		`SELECT id, source_url, title, content, fingerprint, char_count, token_count, created_at
		 FROM documents WHERE id = ?`, id)
}

// GetByFingerprint gets a document by its content fingerprint.
func (r *DocumentRepo) GetByFingerprint(ctx context.Context, fingerprint string) (*DocumentRecord, error) {
	return r.scanOne(ctx,
		`SELECT id, source_url, title, content, fingerprint, char_count, token_count, created_at
		 FROM documents WHERE fingerprint = ?`, fingerprint)
}

func (r *DocumentRepo) scanOne(ctx context.Context, query string, arg any) (*DocumentRecord, error) {
	var doc DocumentRecord
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&doc.ID, &doc.SourceURL, &doc.Title, &doc.Content, &doc.Fingerprint,
		&doc.CharCount, &doc.TokenCount, &doc.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query document: %w", err)
	}
	return &doc, nil
}

// InsertSource records the origin of a document.
func (r *DocumentRepo) InsertSource(ctx context.Context, src *SourceRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO sources (id, document_id, url, title) VALUES (?, ?, ?, ?)",
		src.ID, src.DocumentID, src.URL, src.Title,
	)
	if err != nil {
		return fmt.Errorf("failed to insert source: %w", err)
	}
	return nil
}
