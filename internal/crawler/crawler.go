package crawler

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Crawler expands command line paths into the literate documents to read.
type Crawler struct {
	extensions []string
	ignored    []string
}

// NewCrawler creates a crawler that keeps files with one of extensions and
// skips directories named in ignored.
func NewCrawler(extensions, ignored []string) *Crawler {
	return &Crawler{
		extensions: extensions,
		ignored:    ignored,
	}
}

// Collect returns the documents named by paths in a deterministic order.
// Files given explicitly are kept whatever their extension; directories are
// walked in lexical order.
func (c *Crawler) Collect(paths ...string) ([]string, error) {
	var out []string
	seen := make(map[string]bool)
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("cannot read %s: %w", root, err)
		}
		if !info.IsDir() {
			add(root)
			continue
		}
		err = c.ScanProject(root, func(path string) {
			add(path)
		})
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ScanProject walks root and calls onDocument for every matching file.
func (c *Crawler) ScanProject(root string, onDocument func(path string)) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// Skip ignored directories
		if d.IsDir() {
			if path != root {
				for _, ign := range c.ignored {
					if d.Name() == ign {
						return filepath.SkipDir
					}
				}
			}
			return nil
		}

		if c.matches(d.Name()) {
			onDocument(path)
		}
		return nil
	})
}

// Matches reports whether path has one of the document extensions.
func (c *Crawler) Matches(path string) bool {
	return c.matches(filepath.Base(path))
}

func (c *Crawler) matches(name string) bool {
	name = strings.ToLower(name)
	for _, ext := range c.extensions {
		if strings.HasSuffix(name, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}
