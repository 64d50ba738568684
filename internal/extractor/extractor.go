package extractor

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Extractor finds code blocks in Markdown documents.
type Extractor struct {
	md goldmark.Markdown
}

// NewExtractor creates an extractor backed by a CommonMark parser.
func NewExtractor() *Extractor {
	return &Extractor{md: goldmark.New()}
}

// ExtractFromFile reads a document and returns it together with all of its
// code blocks in document order.
func (e *Extractor) ExtractFromFile(path string) (*Document, []Block, error) {
	doc, err := ReadDocument(path)
	if err != nil {
		return nil, nil, err
	}
	blocks, err := e.Extract(doc)
	if err != nil {
		return nil, nil, err
	}
	return doc, blocks, nil
}

// Extract drains a Scanner over doc.
func (e *Extractor) Extract(doc *Document) ([]Block, error) {
	var blocks []Block
	s := e.Scan(doc)
	for s.Scan() {
		blocks = append(blocks, s.Block())
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return blocks, nil
}

// Scan parses doc and returns a cursor over its code blocks.
func (e *Extractor) Scan(doc *Document) *Scanner {
	src := []byte(doc.Source)
	root := e.md.Parser().Parse(text.NewReader(src))
	return &Scanner{doc: doc, src: src, root: root, next: root}
}

// Scanner is a pull iterator over the code blocks of one document. Each call
// to Scan resumes the pre-order walk where the previous call stopped.
type Scanner struct {
	doc  *Document
	src  []byte
	root ast.Node
	next ast.Node

	block Block
	err   error

	// line counting resumes from the previous block
	linePos int
	line    int
}

// Scan advances to the next code block. It returns false at the end of the
// document or on the first structural error.
func (s *Scanner) Scan() bool {
	if s.err != nil {
		return false
	}
	for s.next != nil {
		n := s.advance()
		var (
			b  Block
			ok bool
		)
		switch node := n.(type) {
		case *ast.FencedCodeBlock:
			b, ok = s.fenced(node)
		case *ast.CodeBlock:
			b, ok = s.indented(node)
		}
		if s.err != nil {
			return false
		}
		if ok {
			s.block = b
			return true
		}
	}
	return false
}

// Block returns the block found by the last successful Scan.
func (s *Scanner) Block() Block {
	return s.block
}

// Err returns the structural error that stopped the scan, if any.
func (s *Scanner) Err() error {
	return s.err
}

// advance returns the current node and moves the cursor to its pre-order
// successor.
func (s *Scanner) advance() ast.Node {
	n := s.next
	if c := n.FirstChild(); c != nil {
		s.next = c
		return n
	}
	for m := n; m != nil && m != s.root; m = m.Parent() {
		if sib := m.NextSibling(); sib != nil {
			s.next = sib
			return n
		}
	}
	s.next = nil
	return n
}

func (s *Scanner) fenced(n *ast.FencedCodeBlock) (Block, bool) {
	var info string
	if n.Info != nil {
		info = string(n.Info.Segment.Value(s.src))
	}
	lang, file := ParseFenceHeader(info)

	start, end, quoted, ok := s.bodyRange(n)
	if !ok {
		if n.Info == nil {
			// empty block without info string: nothing to locate or weave
			return Block{}, false
		}
		start = lineEnd(s.src, n.Info.Segment.Stop)
		end = start
	}

	b := Block{
		Language: lang,
		Info:     info,
		File:     file,
		Start:    start,
		End:      end,
		Line:     s.lineAt(start),
		Fenced:   true,
		Quoted:   quoted,
	}
	open := lineStart(s.src, lineStart(s.src, start)-1)
	c, width := fenceRun(s.src[open:lineEnd(s.src, open)])
	if !hasClosingFence(s.src, end, c, width) {
		s.err = &MalformedBlockError{
			Path:   s.doc.Path,
			Offset: start,
			Line:   b.Line,
			Info:   info,
		}
		return Block{}, false
	}
	return b, true
}

func (s *Scanner) indented(n *ast.CodeBlock) (Block, bool) {
	start, end, quoted, ok := s.bodyRange(n)
	if !ok {
		return Block{}, false
	}
	return Block{Start: start, End: end, Line: s.lineAt(start), Quoted: quoted}, true
}

// bodyRange returns the source range of the body lines. The parser strips
// indentation from each line; the range starts at the beginning of the first
// line so that every line keeps it. A stripped prefix holding more than
// whitespace is a block quote marker: quoted is set and the range starts at
// the first content byte instead.
func (s *Scanner) bodyRange(n ast.Node) (start, end int, quoted, ok bool) {
	lines := n.Lines()
	if lines == nil || lines.Len() == 0 {
		return 0, 0, false, false
	}
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		prefix := s.src[lineStart(s.src, seg.Start):seg.Start]
		if len(bytes.Trim(prefix, " \t")) > 0 {
			quoted = true
			break
		}
	}
	start = lines.At(0).Start
	if !quoted {
		start = lineStart(s.src, start)
	}
	return start, lines.At(lines.Len() - 1).Stop, quoted, true
}

func (s *Scanner) lineAt(offset int) int {
	if s.line == 0 {
		s.line = 1
	}
	if offset < s.linePos {
		s.linePos, s.line = 0, 1
	}
	s.line += bytes.Count(s.src[s.linePos:offset], []byte("\n"))
	s.linePos = offset
	return s.line
}

func lineEnd(src []byte, pos int) int {
	if pos >= len(src) {
		return len(src)
	}
	if i := bytes.IndexByte(src[pos:], '\n'); i >= 0 {
		return pos + i + 1
	}
	return len(src)
}

func lineStart(src []byte, pos int) int {
	if pos <= 0 {
		return 0
	}
	return bytes.LastIndexByte(src[:pos], '\n') + 1
}

// fenceRun returns the fence character and run length that open line, after
// any container prefix. It returns 0, 0 when line is not a fence.
func fenceRun(line []byte) (byte, int) {
	line = bytes.TrimLeft(line, " \t>")
	if len(line) == 0 || (line[0] != '`' && line[0] != '~') {
		return 0, 0
	}
	n := 0
	for n < len(line) && line[n] == line[0] {
		n++
	}
	if n < 3 {
		return 0, 0
	}
	return line[0], n
}

// hasClosingFence reports whether the line starting at pos closes a fence
// opened with width characters c: the same character, at least as many of
// them, and nothing but whitespace after.
func hasClosingFence(src []byte, pos int, c byte, width int) bool {
	if pos >= len(src) || width == 0 {
		return false
	}
	line := bytes.TrimLeft(src[pos:lineEnd(src, pos)], " \t>")
	fc, n := fenceRun(line)
	if fc != c || n < width {
		return false
	}
	return len(bytes.TrimSpace(line[n:])) == 0
}
