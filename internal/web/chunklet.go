package web

// Span is a byte range into a document source.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of bytes covered by s.
func (s Span) Len() int {
	return s.End - s.Start
}

// ChunkKind distinguishes literal text from section references.
type ChunkKind uint8

const (
	TextChunk ChunkKind = iota
	ReferenceChunk
)

func (k ChunkKind) String() string {
	if k == ReferenceChunk {
		return "reference"
	}
	return "text"
}

// Chunklet is one token of a fragment body. A ReferenceChunk span always
// includes both delimiters.
type Chunklet struct {
	Kind ChunkKind `json:"kind"`
	Span Span      `json:"span"`
}

// Raw returns the chunklet text from the document source it indexes.
func (c Chunklet) Raw(src string) string {
	return src[c.Span.Start:c.Span.End]
}

// Tokenize splits text into literal runs and minimal ⟨...⟩ references.
// Spans are shifted by base so that callers can tokenize a slice of a larger
// document and keep document offsets. Concatenating the spans in order
// reproduces text exactly.
func (p *Patterns) Tokenize(text string, base int) []Chunklet {
	var out []Chunklet
	current := 0
	for _, loc := range p.reference.FindAllStringIndex(text, -1) {
		if current < loc[0] {
			out = append(out, Chunklet{Kind: TextChunk, Span: Span{Start: base + current, End: base + loc[0]}})
		}
		out = append(out, Chunklet{Kind: ReferenceChunk, Span: Span{Start: base + loc[0], End: base + loc[1]}})
		current = loc[1]
	}
	if current < len(text) {
		out = append(out, Chunklet{Kind: TextChunk, Span: Span{Start: base + current, End: base + len(text)}})
	}
	return out
}
