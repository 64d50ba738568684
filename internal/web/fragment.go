package web

import (
	"fmt"

	"tangle/internal/extractor"
)

// Location points at a place in a document.
type Location struct {
	Path   string `json:"path"`
	Line   int    `json:"line"`
	Offset int    `json:"offset"`
}

func (l Location) String() string {
	path := l.Path
	if path == "" {
		path = "<input>"
	}
	return fmt.Sprintf("%s:%d", path, l.Line)
}

// Fragment is one occurrence of a section body: a code block that either
// starts its section or continues it.
type Fragment struct {
	Key           string
	Name          string // raw header name
	Chunklets     []Chunklet
	StartsSection bool
	HasHeader     bool
	Language      string
	Offset        int // byte offset of the block body
	Line          int // line of the block body
	Doc           *extractor.Document
}

// Location returns the position of the fragment's code block.
func (f *Fragment) Location() Location {
	return Location{Path: f.Doc.Path, Line: f.Line, Offset: f.Offset}
}

// Body returns the fragment text after its header, unexpanded.
func (f *Fragment) Body() string {
	if len(f.Chunklets) == 0 {
		return ""
	}
	return f.Doc.Source[f.Chunklets[0].Span.Start:f.Chunklets[len(f.Chunklets)-1].Span.End]
}

// Span returns the body range in the document, empty when there is no body.
func (f *Fragment) Span() Span {
	if len(f.Chunklets) == 0 {
		return Span{Start: f.Offset, End: f.Offset}
	}
	return Span{Start: f.Chunklets[0].Span.Start, End: f.Chunklets[len(f.Chunklets)-1].Span.End}
}

// EndLine returns the last line covered by the fragment body.
func (f *Fragment) EndLine() int {
	sp := f.Span()
	if sp.Len() == 0 {
		return f.Line
	}
	return f.Doc.Line(sp.End - 1)
}

// Reference is one embedded section reference inside a fragment.
type Reference struct {
	Key      string
	Raw      string
	Location Location
}

// References lists the fragment's embedded references in order.
func (f *Fragment) References(p *Patterns) []Reference {
	var refs []Reference
	for _, c := range f.Chunklets {
		if c.Kind != ReferenceChunk {
			continue
		}
		raw := c.Raw(f.Doc.Source)
		refs = append(refs, Reference{
			Key: p.ReferenceKey(raw),
			Raw: raw,
			Location: Location{
				Path:   f.Doc.Path,
				Line:   f.Doc.Line(c.Span.Start),
				Offset: c.Span.Start,
			},
		})
	}
	return refs
}
