package extractor

import (
	"fmt"
	"os"
	"strings"
)

// Document is a source document held immutably for the lifetime of a web.
// Every span produced by the scanner and the web indexes into Source.
type Document struct {
	Path   string
	Source string
}

// NewDocument wraps already loaded text.
func NewDocument(path, source string) *Document {
	return &Document{Path: path, Source: source}
}

// ReadDocument loads a document from disk.
func ReadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document %s: %w", path, err)
	}
	return &Document{Path: path, Source: string(data)}, nil
}

// Line returns the 1-based line number containing offset.
func (d *Document) Line(offset int) int {
	if offset > len(d.Source) {
		offset = len(d.Source)
	}
	if offset < 0 {
		offset = 0
	}
	return strings.Count(d.Source[:offset], "\n") + 1
}

// Block is one code block found in a document. Start and End delimit the
// block body (the text between the opening and closing fence lines).
type Block struct {
	Language string `json:"language"`
	Info     string `json:"info"`
	File     string `json:"file,omitempty"` // from file="..." in the info string
	Start    int    `json:"start"`
	End      int    `json:"end"`
	Line     int    `json:"line"` // 1-based line of the first body byte
	Fenced   bool   `json:"fenced"`
	Quoted   bool   `json:"quoted,omitempty"` // inside a block quote; later body lines keep the markers
}

// Body returns the block body as a substring of the document source.
func (b Block) Body(doc *Document) string {
	return doc.Source[b.Start:b.End]
}
