package storage

import (
	"context"

	"tangle/internal/web"
)

// Store persists webs between runs.
type Store interface {
	WebStore
	Close() error
}

// WebStore defines operations for persisting a web snapshot.
type WebStore interface {
	// SaveWeb replaces the stored snapshot with w.
	SaveWeb(ctx context.Context, w *web.Web, language string) (SaveStats, error)

	// LoadWeb rebuilds the stored snapshot, tokenizing with p.
	LoadWeb(ctx context.Context, p *web.Patterns) (*web.Web, error)

	// Language returns the language the snapshot was saved with, or ""
	// when nothing is stored.
	Language(ctx context.Context) (string, error)

	// FindReferencesTo lists the locations that reference key.
	FindReferencesTo(ctx context.Context, key string) ([]web.Location, error)
}

// SaveStats summarizes one SaveWeb call.
type SaveStats struct {
	Documents  int
	Unchanged  int
	Removed    int
	Fragments  int
	References int
	Bytes      int64
}
