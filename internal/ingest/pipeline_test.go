package ingest

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"research-ai/internal/chunker"
	"research-ai/internal/storage"
	"research-ai/internal/storage/mocks"
)

const sampleDoc = `# Overview
Chunking splits documents into passages.

# Tradeoffs
Smaller chunks retrieve precisely but lose context.`

func TestIngest_NewDocument(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	documents := mocks.NewMockDocumentStore(ctrl)
	chunks := mocks.NewMockChunkStore(ctrl)

	documents.EXPECT().GetByFingerprint(gomock.Any(), gomock.Any()).Return(nil, storage.ErrNotFound)

	var insertedDoc *storage.DocumentRecord
	documents.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, doc *storage.DocumentRecord) error {
			insertedDoc = doc
			return nil
		})
	documents.EXPECT().InsertSource(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, src *storage.SourceRecord) error {
			if src.URL != "https://example.com/doc" {
				t.Errorf("source URL = %q", src.URL)
			}
			return nil
		})

	var insertedChunks []*storage.ChunkRecord
	chunks.EXPECT().InsertBatch(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, batch []*storage.ChunkRecord) error {
			insertedChunks = batch
			return nil
		})

	p := NewPipeline(documents, chunks)
	receipt, err := p.Ingest(context.Background(), Document{
		SourceURL: "https://example.com/doc",
		Title:     "Chunking Notes",
		Content:   sampleDoc,
		Strategy:  chunker.StrategyHeading,
	})
	if err != nil {
		t.Fatalf("Ingest() unexpected error: %v", err)
	}

	if !receipt.Accepted {
		t.Error("new document should be accepted")
	}
	if receipt.DocumentID == "" || receipt.SourceID == "" {
		t.Error("receipt missing identifiers")
	}
	if receipt.ChunkCount != len(insertedChunks) {
		t.Errorf("receipt chunk count %d != inserted %d", receipt.ChunkCount, len(insertedChunks))
	}

	if insertedDoc.Fingerprint == "" {
		t.Error("document fingerprint not set")
	}
	if insertedDoc.TokenCount <= 0 || insertedDoc.CharCount <= 0 {
		t.Errorf("document counters = %d chars / %d tokens", insertedDoc.CharCount, insertedDoc.TokenCount)
	}

	if len(insertedChunks) != 2 {
		t.Fatalf("expected 2 heading chunks, got %d", len(insertedChunks))
	}
	for i, c := range insertedChunks {
		if c.DocumentID != receipt.DocumentID {
			t.Errorf("chunk %d references document %q", i, c.DocumentID)
		}
		if c.ChunkIndex != i {
			t.Errorf("chunk %d has index %d", i, c.ChunkIndex)
		}
		if c.Strategy != string(chunker.StrategyHeading) {
			t.Errorf("chunk %d strategy = %q", i, c.Strategy)
		}
	}
	if insertedChunks[1].Heading != "Tradeoffs" {
		t.Errorf("second chunk heading = %q, want Tradeoffs", insertedChunks[1].Heading)
	}
}

func TestIngest_DuplicateSkipped(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	documents := mocks.NewMockDocumentStore(ctrl)
	chunks := mocks.NewMockChunkStore(ctrl)

	existing := &storage.DocumentRecord{ID: "doc-existing"}
	documents.EXPECT().GetByFingerprint(gomock.Any(), gomock.Any()).Return(existing, nil)
	chunks.EXPECT().ListByDocument(gomock.Any(), "doc-existing").Return(
		[]*storage.ChunkRecord{{ID: "c1"}, {ID: "c2"}}, nil)

	p := NewPipeline(documents, chunks)
	receipt, err := p.Ingest(context.Background(), Document{
		SourceURL: "https://example.com/doc",
		Title:     "Chunking Notes",
		Content:   sampleDoc,
	})
	if err != nil {
		t.Fatalf("Ingest() unexpected error: %v", err)
	}

	if receipt.Accepted {
		t.Error("duplicate must not be re-accepted")
	}
	if receipt.DocumentID != "doc-existing" {
		t.Errorf("receipt document = %q, want the existing ID", receipt.DocumentID)
	}
	if receipt.ChunkCount != 2 {
		t.Errorf("receipt chunk count = %d, want 2", receipt.ChunkCount)
	}
}

func TestIngest_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	p := NewPipeline(mocks.NewMockDocumentStore(ctrl), mocks.NewMockChunkStore(ctrl))

	if _, err := p.Ingest(context.Background(), Document{Content: ""}); err == nil {
		t.Error("empty content must be rejected")
	}
	if _, err := p.Ingest(context.Background(), Document{
		Content:  "some content",
		Strategy: chunker.Strategy("recursive"),
	}); err == nil || !strings.Contains(err.Error(), "strategy") {
		t.Errorf("unknown strategy error = %v", err)
	}
}

func TestIngest_StorageError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	documents := mocks.NewMockDocumentStore(ctrl)
	chunks := mocks.NewMockChunkStore(ctrl)

	documents.EXPECT().GetByFingerprint(gomock.Any(), gomock.Any()).Return(nil, errors.New("db locked"))

	p := NewPipeline(documents, chunks)
	if _, err := p.Ingest(context.Background(), Document{
		SourceURL: "u", Title: "t", Content: "body text",
	}); err == nil {
		t.Fatal("storage failure must surface")
	}
}
