package index

import (
	"fmt"

	"tangle/internal/crawler"
	"tangle/internal/extractor"
	"tangle/internal/web"
)

// Indexer orchestrates document discovery and web construction.
type Indexer struct {
	crawler  *crawler.Crawler
	patterns *web.Patterns
	language string
}

// NewIndexer creates a new indexer for blocks tagged language.
func NewIndexer(c *crawler.Crawler, p *web.Patterns, language string) *Indexer {
	return &Indexer{
		crawler:  c,
		patterns: p,
		language: language,
	}
}

// BuildWeb reads every document named by paths and builds one web from all
// of them. Documents contribute fragments in the order they are listed. Any
// structural error aborts the whole build.
func (i *Indexer) BuildWeb(paths ...string) (*web.Web, error) {
	docs, err := i.crawler.Collect(paths...)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("no documents found in %v", paths)
	}

	b := web.NewBuilder(i.patterns, i.language)
	for _, path := range docs {
		doc, err := extractor.ReadDocument(path)
		if err != nil {
			return nil, err
		}
		if err := b.AddDocument(doc); err != nil {
			return nil, err
		}
	}
	return b.Web(), nil
}

// ScannedBlock pairs a block with the document it was found in.
type ScannedBlock struct {
	Path  string
	Block extractor.Block
	Body  string
}

// ScanBlocks returns the raw block stream of the documents without any
// language filtering, for inspection.
func (i *Indexer) ScanBlocks(paths ...string) ([]ScannedBlock, error) {
	docs, err := i.crawler.Collect(paths...)
	if err != nil {
		return nil, err
	}
	ext := extractor.NewExtractor()
	var out []ScannedBlock
	for _, path := range docs {
		doc, blocks, err := ext.ExtractFromFile(path)
		if err != nil {
			return nil, err
		}
		for _, b := range blocks {
			out = append(out, ScannedBlock{Path: path, Block: b, Body: b.Body(doc)})
		}
	}
	return out, nil
}
