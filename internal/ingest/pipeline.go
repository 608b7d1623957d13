// Package ingest turns raw documents into indexed, retrievable chunks.
package ingest

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"research-ai/internal/chunker"
	"research-ai/internal/contextutil"
	"research-ai/internal/storage"
	"research-ai/internal/textutil"
)

// Document is the raw input to ingestion.
type Document struct {
	SourceURL string
	Title     string
	Content   string
	Strategy  chunker.Strategy
}

// Receipt reports the outcome of an ingestion.
type Receipt struct {
	Accepted   bool   `json:"accepted"`
	DocumentID string `json:"document_id"`
	SourceID   string `json:"source_id,omitempty"`
	ChunkCount int    `json:"chunk_count"`
}

// Pipeline chunks and stores incoming documents. Duplicate submissions are
// detected by content fingerprint and acknowledged without re-indexing.
type Pipeline struct {
	documents storage.DocumentStore
	chunks    storage.ChunkStore
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(documents storage.DocumentStore, chunks storage.ChunkStore) *Pipeline {
	return &Pipeline{documents: documents, chunks: chunks}
}

// Ingest validates, deduplicates, chunks and persists one document.
func (p *Pipeline) Ingest(ctx context.Context, doc Document) (*Receipt, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if doc.Content == "" {
		return nil, fmt.Errorf("document content is empty")
	}
	strategy := doc.Strategy
	if strategy == "" {
		strategy = chunker.StrategyHeading
	}
	if !chunker.ValidStrategy(strategy) {
		return nil, fmt.Errorf("unknown chunk strategy %q", strategy)
	}

	fingerprint := chunker.Fingerprint(doc.SourceURL, doc.Content)
	existing, err := p.documents.GetByFingerprint(ctx, fingerprint)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("failed to check fingerprint: %w", err)
	}
	if existing != nil {
		existingChunks, err := p.chunks.ListByDocument(ctx, existing.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list existing chunks: %w", err)
		}
		logger.InfoContext(ctx, "duplicate document skipped",
			"document_id", existing.ID, "source_url", doc.SourceURL)
		return &Receipt{
			Accepted:   false,
			DocumentID: existing.ID,
			ChunkCount: len(existingChunks),
		}, nil
	}

	pieces := chunker.Split(doc.Content, strategy)
	if len(pieces) == 0 {
		return nil, fmt.Errorf("document produced no chunks")
	}

	record := &storage.DocumentRecord{
		ID:          uuid.NewString(),
		SourceURL:   doc.SourceURL,
		Title:       doc.Title,
		Content:     doc.Content,
		Fingerprint: fingerprint,
		CharCount:   len([]rune(doc.Content)),
		TokenCount:  textutil.EstimateTokens(doc.Content),
	}
	if err := p.documents.Insert(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to insert document: %w", err)
	}

	source := &storage.SourceRecord{
		ID:         uuid.NewString(),
		DocumentID: record.ID,
		URL:        doc.SourceURL,
		Title:      doc.Title,
	}
	if err := p.documents.InsertSource(ctx, source); err != nil {
		return nil, fmt.Errorf("failed to insert source: %w", err)
	}

	chunkRecords := make([]*storage.ChunkRecord, len(pieces))
	for i, c := range pieces {
		chunkRecords[i] = &storage.ChunkRecord{
			ID:            uuid.NewString(),
			DocumentID:    record.ID,
			ChunkIndex:    c.Index,
			Heading:       c.Heading,
			Text:          c.Text,
			StartOffset:   c.StartOffset,
			EndOffset:     c.EndOffset,
			TokenEstimate: c.TokenEstimate,
			Strategy:      string(strategy),
		}
	}
	if err := p.chunks.InsertBatch(ctx, chunkRecords); err != nil {
		return nil, fmt.Errorf("failed to insert chunks: %w", err)
	}

	logger.InfoContext(ctx, "document ingested",
		"document_id", record.ID, "source_url", doc.SourceURL,
		"strategy", strategy, "chunks", len(chunkRecords))

	return &Receipt{
		Accepted:   true,
		DocumentID: record.ID,
		SourceID:   source.ID,
		ChunkCount: len(chunkRecords),
	}, nil
}
