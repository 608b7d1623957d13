package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_preference_store.go -package=mocks research-ai/internal/storage PreferenceStore

import (
	"context"
	"database/sql"
	"fmt"
)

// PreferenceStore defines the interface for user preference profiles.
type PreferenceStore interface {
	// Get returns a user's preference profile. Returns ErrNotFound when the
	// user has no stored profile; callers apply defaults.
	Get(ctx context.Context, userID string) (*PreferenceRecord, error)
	// Upsert inserts or replaces a user's preference profile.
	Upsert(ctx context.Context, pref *PreferenceRecord) error
}

// PreferenceRepo provides methods for preference operations.
// It implements the PreferenceStore interface.
type PreferenceRepo struct {
	db *sql.DB
}

// NewPreferenceRepo creates a new PreferenceRepo.
func NewPreferenceRepo(db *sql.DB) *PreferenceRepo {
	return &PreferenceRepo{db: db}
}

// Get returns a user's preference profile, or ErrNotFound.
func (r *PreferenceRepo) Get(ctx context.Context, userID string) (*PreferenceRecord, error) {
	var pref PreferenceRecord
	var includeCode int
	err := r.db.QueryRowContext(ctx,
		"SELECT user_id, include_code, verbosity, citation_style FROM preferences WHERE user_id = ?",
		userID,
	).Scan(&pref.UserID, &includeCode, &pref.Verbosity, &pref.CitationStyle)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query preferences: %w", err)
	}

	pref.IncludeCode = includeCode != 0
	return &pref, nil
}

// Upsert inserts or replaces a user's preference profile.
func (r *PreferenceRepo) Upsert(ctx context.Context, pref *PreferenceRecord) error {
	includeCode := 0
	if pref.IncludeCode {
		includeCode = 1
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO preferences (user_id, include_code, verbosity, citation_style)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
		   include_code = excluded.include_code,
		   verbosity = excluded.verbosity,
		   citation_style = excluded.citation_style`,
		pref.UserID, includeCode, pref.Verbosity, pref.CitationStyle,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert preferences: %w", err)
	}
	return nil
}
