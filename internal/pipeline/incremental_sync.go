package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"

	"tangle/internal/analysis"
	"tangle/internal/extractor"
	"tangle/internal/git"
	"tangle/internal/graph"
	"tangle/internal/storage"
	"tangle/internal/web"
)

var (
	ErrNoSnapshot      = errors.New("no stored snapshot")
	ErrUnknownLanguage = errors.New("snapshot has no recorded language")
)

// IncrementalSync refreshes a stored web from changed documents only.
// Unchanged documents are taken from the snapshot rather than from disk.
// An empty language means the one recorded with the snapshot.
type IncrementalSync struct {
	store    storage.WebStore
	patterns *web.Patterns
	language string

	// IsDocument decides whether a changed path not yet in the snapshot is
	// a document to add.
	IsDocument func(path string) bool
	// ReadDocument loads a changed document.
	ReadDocument func(path string) (*extractor.Document, error)
}

// Result describes one sync run.
type Result struct {
	Web      *web.Web
	Language string
	Updated  []string
	Added    []string
	Deleted  []string
	Stats    storage.SaveStats
	Impact   *analysis.ImpactReport
}

func NewIncrementalSync(store storage.WebStore, p *web.Patterns, language string) *IncrementalSync {
	return &IncrementalSync{
		store:        store,
		patterns:     p,
		language:     language,
		IsDocument:   func(string) bool { return false },
		ReadDocument: extractor.ReadDocument,
	}
}

// Run applies changes to the stored web, saves the new snapshot and
// analyzes the impact of the changes on it.
func (s *IncrementalSync) Run(ctx context.Context, changes []git.ChangedFile) (*Result, error) {
	stored, err := s.store.LoadWeb(ctx, s.patterns)
	if err != nil {
		return nil, fmt.Errorf("failed to load web: %w", err)
	}
	if len(stored.Documents()) == 0 {
		return nil, ErrNoSnapshot
	}

	language := s.language
	if language == "" {
		if language, err = s.store.Language(ctx); err != nil {
			return nil, fmt.Errorf("failed to read snapshot language: %w", err)
		}
		if language == "" {
			return nil, ErrUnknownLanguage
		}
	}

	res := &Result{Language: language}
	docs, err := s.applyChanges(stored.Documents(), changes, res)
	if err != nil {
		return nil, err
	}

	b := web.NewBuilder(s.patterns, language)
	for _, doc := range docs {
		if err := b.AddDocument(doc); err != nil {
			return nil, err
		}
	}
	res.Web = b.Web()

	res.Stats, err = s.store.SaveWeb(ctx, res.Web, language)
	if err != nil {
		return nil, fmt.Errorf("failed to save updated web: %w", err)
	}

	res.Impact = analysis.AnalyzeImpact(res.Web, graph.FromWeb(res.Web), changes)
	return res, nil
}

// applyChanges returns the document list after changes: stored documents
// keep their order, re-read or dropped as needed, and new documents follow.
func (s *IncrementalSync) applyChanges(stored []*extractor.Document, changes []git.ChangedFile, res *Result) ([]*extractor.Document, error) {
	claimed := make([]bool, len(changes))
	var docs []*extractor.Document

	for _, doc := range stored {
		i := matchChange(changes, doc.Path)
		if i < 0 {
			docs = append(docs, doc)
			continue
		}
		claimed[i] = true

		fresh, err := s.ReadDocument(doc.Path)
		if changes[i].Deleted || errors.Is(err, os.ErrNotExist) {
			res.Deleted = append(res.Deleted, doc.Path)
			continue
		}
		if err != nil {
			return nil, err
		}
		res.Updated = append(res.Updated, doc.Path)
		docs = append(docs, fresh)
	}

	for i, change := range changes {
		if claimed[i] || change.Deleted || !s.IsDocument(change.Path) {
			continue
		}
		doc, err := s.ReadDocument(change.Path)
		if err != nil {
			return nil, err
		}
		res.Added = append(res.Added, change.Path)
		docs = append(docs, doc)
	}
	return docs, nil
}

func matchChange(changes []git.ChangedFile, path string) int {
	for i, c := range changes {
		if c.Matches(path) {
			return i
		}
	}
	return -1
}
