package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/cespare/xxhash/v2"
	_ "github.com/mattn/go-sqlite3"

	"tangle/internal/extractor"
	"tangle/internal/web"
)

var _ Store = (*SQLiteStore)(nil)

type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates or opens a SQLite database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init schema: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			path TEXT PRIMARY KEY,
			seq INTEGER,
			source TEXT,
			hash TEXT,
			size INTEGER
		);`,
		`CREATE TABLE IF NOT EXISTS fragments (
			seq INTEGER PRIMARY KEY,
			path TEXT,
			section TEXT,
			name TEXT,
			starts_section INTEGER,
			has_header INTEGER,
			language TEXT,
			byte_offset INTEGER,
			line INTEGER,
			body_start INTEGER,
			body_end INTEGER
		);`,
		`CREATE TABLE IF NOT EXISTS refs (
			from_key TEXT,
			to_key TEXT,
			path TEXT,
			line INTEGER,
			byte_offset INTEGER
		);`,
		`CREATE TABLE IF NOT EXISTS meta (
			name TEXT PRIMARY KEY,
			value TEXT
		);`,
		`CREATE INDEX IF NOT EXISTS idx_fragments_key ON fragments(section);`,
		`CREATE INDEX IF NOT EXISTS idx_refs_to ON refs(to_key);`,
	}

	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

// ContentHash fingerprints a document source.
func ContentHash(src string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(src))
}

// SaveWeb replaces the stored snapshot with w. Documents whose content hash
// is unchanged keep their stored row.
func (s *SQLiteStore) SaveWeb(ctx context.Context, w *web.Web, language string) (SaveStats, error) {
	var stats SaveStats

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return stats, err
	}
	defer tx.Rollback()

	existing, err := storedHashes(ctx, tx)
	if err != nil {
		return stats, err
	}

	// 1. Documents
	keep := make(map[string]bool)
	for seq, doc := range w.Documents() {
		hash := ContentHash(doc.Source)
		keep[doc.Path] = true
		stats.Documents++
		stats.Bytes += int64(len(doc.Source))
		if existing[doc.Path] == hash {
			stats.Unchanged++
			if _, err := tx.ExecContext(ctx, `UPDATE documents SET seq = ? WHERE path = ?`, seq, doc.Path); err != nil {
				return stats, err
			}
			continue
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO documents (path, seq, source, hash, size) VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(path) DO UPDATE SET
				seq=excluded.seq,
				source=excluded.source,
				hash=excluded.hash,
				size=excluded.size
		`, doc.Path, seq, doc.Source, hash, len(doc.Source))
		if err != nil {
			return stats, fmt.Errorf("failed to save document %s: %w", doc.Path, err)
		}
	}
	for path := range existing {
		if keep[path] {
			continue
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM documents WHERE path = ?`, path); err != nil {
			return stats, err
		}
		stats.Removed++
	}

	// 2. Fragments and references are always rewritten
	for _, q := range []string{`DELETE FROM fragments`, `DELETE FROM refs`} {
		if _, err := tx.ExecContext(ctx, q); err != nil {
			return stats, err
		}
	}

	fragStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO fragments (seq, path, section, name, starts_section, has_header, language, byte_offset, line, body_start, body_end)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return stats, err
	}
	defer fragStmt.Close()

	refStmt, err := tx.PrepareContext(ctx, `INSERT INTO refs (from_key, to_key, path, line, byte_offset) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return stats, err
	}
	defer refStmt.Close()

	for seq, f := range documentOrder(w) {
		sp := f.Span()
		if _, err := fragStmt.ExecContext(ctx, seq, f.Doc.Path, f.Key, f.Name, f.StartsSection, f.HasHeader,
			f.Language, f.Offset, f.Line, sp.Start, sp.End); err != nil {
			return stats, err
		}
		stats.Fragments++

		for _, ref := range f.References(w.Patterns()) {
			if _, err := refStmt.ExecContext(ctx, f.Key, ref.Key, ref.Location.Path, ref.Location.Line, ref.Location.Offset); err != nil {
				return stats, err
			}
			stats.References++
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO meta (name, value) VALUES ('language', ?)
		ON CONFLICT(name) DO UPDATE SET value=excluded.value
	`, language); err != nil {
		return stats, err
	}

	return stats, tx.Commit()
}

// LoadWeb rebuilds the stored web. Fragment bodies are re-tokenized from the
// stored document sources, so the result borrows from freshly loaded text
// exactly as a web built from files does.
func (s *SQLiteStore) LoadWeb(ctx context.Context, p *web.Patterns) (*web.Web, error) {
	w := web.New(p)

	// 1. Load Documents
	rows, err := s.db.QueryContext(ctx, "SELECT path, source FROM documents ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	docs := make(map[string]*extractor.Document)
	for rows.Next() {
		var path, source string
		if err := rows.Scan(&path, &source); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		doc := extractor.NewDocument(path, source)
		docs[path] = doc
		w.AddDocument(doc)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// 2. Load Fragments
	fragRows, err := s.db.QueryContext(ctx, `
		SELECT path, section, name, starts_section, has_header, language, byte_offset, line, body_start, body_end
		FROM fragments ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query fragments: %w", err)
	}
	defer fragRows.Close()

	for fragRows.Next() {
		var (
			path       string
			f          web.Fragment
			start, end int
		)
		if err := fragRows.Scan(&path, &f.Key, &f.Name, &f.StartsSection, &f.HasHeader, &f.Language,
			&f.Offset, &f.Line, &start, &end); err != nil {
			return nil, fmt.Errorf("failed to scan fragment: %w", err)
		}
		doc, ok := docs[path]
		if !ok {
			return nil, fmt.Errorf("fragment %q refers to unknown document %s", f.Key, path)
		}
		if start < 0 || end > len(doc.Source) || start > end {
			return nil, fmt.Errorf("fragment %q has span %d..%d outside %s", f.Key, start, end, path)
		}
		f.Doc = doc
		f.Chunklets = p.Tokenize(doc.Source[start:end], start)
		w.Add(&f)
	}
	return w, fragRows.Err()
}

// Language returns the language tag of the stored snapshot.
func (s *SQLiteStore) Language(ctx context.Context) (string, error) {
	var lang string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM meta WHERE name = 'language'").Scan(&lang)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return lang, err
}

func (s *SQLiteStore) FindReferencesTo(ctx context.Context, key string) ([]web.Location, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT path, line, byte_offset FROM refs WHERE to_key = ? ORDER BY rowid", key)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var locs []web.Location
	for rows.Next() {
		var l web.Location
		if err := rows.Scan(&l.Path, &l.Line, &l.Offset); err != nil {
			return nil, err
		}
		locs = append(locs, l)
	}
	return locs, rows.Err()
}

func storedHashes(ctx context.Context, tx *sql.Tx) (map[string]string, error) {
	rows, err := tx.QueryContext(ctx, "SELECT path, hash FROM documents")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	hashes := make(map[string]string)
	for rows.Next() {
		var path, hash string
		if err := rows.Scan(&path, &hash); err != nil {
			return nil, err
		}
		hashes[path] = hash
	}
	return hashes, rows.Err()
}

// documentOrder lists all fragments by document, then by offset, which is
// the order the builder added them in.
func documentOrder(w *web.Web) []*web.Fragment {
	rank := make(map[*extractor.Document]int)
	for i, doc := range w.Documents() {
		rank[doc] = i
	}
	var frags []*web.Fragment
	for _, key := range w.Keys() {
		frags = append(frags, w.Fragments(key)...)
	}
	sort.SliceStable(frags, func(i, j int) bool {
		ri, rj := rank[frags[i].Doc], rank[frags[j].Doc]
		if ri != rj {
			return ri < rj
		}
		return frags[i].Offset < frags[j].Offset
	})
	return frags
}
