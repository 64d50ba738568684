package web

import (
	"fmt"

	"tangle/internal/extractor"
)

// Builder populates a Web from documents in a single forward pass, keeping
// only code blocks tagged with the configured language.
type Builder struct {
	patterns *Patterns
	language string
	ext      *extractor.Extractor
	web      *Web
}

// NewBuilder creates a builder for blocks tagged language.
func NewBuilder(p *Patterns, language string) *Builder {
	return &Builder{
		patterns: p,
		language: language,
		ext:      extractor.NewExtractor(),
		web:      New(p),
	}
}

// Language returns the tag filter.
func (b *Builder) Language() string {
	return b.language
}

// AddDocument scans doc and adds its matching fragments. A structural error
// leaves the web without any fragment of doc.
func (b *Builder) AddDocument(doc *extractor.Document) error {
	var frags []*Fragment
	s := b.ext.Scan(doc)
	for s.Scan() {
		f, err := b.fragment(doc, s.Block())
		if err != nil {
			return fmt.Errorf("failed to add %s: %w", doc.Path, err)
		}
		if f != nil {
			frags = append(frags, f)
		}
	}
	if err := s.Err(); err != nil {
		return fmt.Errorf("failed to scan %s: %w", doc.Path, err)
	}

	b.web.AddDocument(doc)
	for _, f := range frags {
		b.web.Add(f)
	}
	return nil
}

// Web returns the web built so far.
func (b *Builder) Web() *Web {
	return b.web
}

func (b *Builder) fragment(doc *extractor.Document, block extractor.Block) (*Fragment, error) {
	if block.Language != b.language {
		return nil, nil
	}
	if block.Quoted {
		return nil, &extractor.QuotedBlockError{Path: doc.Path, Line: block.Line, Info: block.Info}
	}
	body := block.Body(doc)
	h := b.patterns.ParseHeader(body)
	start := block.Start + h.Rest
	return &Fragment{
		Key:           h.Key(),
		Name:          h.Name,
		Chunklets:     b.patterns.Tokenize(body[h.Rest:], start),
		StartsSection: h.First,
		HasHeader:     h.Present,
		Language:      block.Language,
		Offset:        block.Start,
		Line:          block.Line,
		Doc:           doc,
	}, nil
}
