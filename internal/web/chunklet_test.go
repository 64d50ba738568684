package web

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(chunks []Chunklet) []ChunkKind {
	out := make([]ChunkKind, 0, len(chunks))
	for _, c := range chunks {
		out = append(out, c.Kind)
	}
	return out
}

func TestPatterns_Tokenize(t *testing.T) {
	p := MustDefaultPatterns()

	t.Run("empty body has no chunklets", func(t *testing.T) {
		assert.Empty(t, p.Tokenize("", 0))
	})

	t.Run("no references", func(t *testing.T) {
		chunks := p.Tokenize("fn main() {}\n", 0)
		assert.Equal(t, []ChunkKind{TextChunk}, kinds(chunks))
	})

	t.Run("reference only", func(t *testing.T) {
		chunks := p.Tokenize("⟨helper⟩", 0)
		require.Equal(t, []ChunkKind{ReferenceChunk}, kinds(chunks))
		assert.Equal(t, Span{Start: 0, End: len("⟨helper⟩")}, chunks[0].Span)
	})

	t.Run("interleaved", func(t *testing.T) {
		body := "x ⟨a⟩ y ⟨b\nc⟩"
		chunks := p.Tokenize(body, 0)
		require.Equal(t, []ChunkKind{TextChunk, ReferenceChunk, TextChunk, ReferenceChunk}, kinds(chunks))
		assert.Equal(t, "⟨a⟩", chunks[1].Raw(body))
		assert.Equal(t, "b c", p.ReferenceKey(chunks[3].Raw(body)))
	})

	t.Run("adjacent references", func(t *testing.T) {
		chunks := p.Tokenize("⟨a⟩⟨b⟩", 0)
		assert.Equal(t, []ChunkKind{ReferenceChunk, ReferenceChunk}, kinds(chunks))
	})

	t.Run("first close wins", func(t *testing.T) {
		body := "⟨a⟩ ⟩"
		chunks := p.Tokenize(body, 0)
		require.Len(t, chunks, 2)
		assert.Equal(t, "⟨a⟩", chunks[0].Raw(body))
		assert.Equal(t, " ⟩", chunks[1].Raw(body))
	})

	t.Run("unclosed open is text", func(t *testing.T) {
		assert.Equal(t, []ChunkKind{TextChunk}, kinds(p.Tokenize("a ⟨b", 0)))
	})

	t.Run("spans are shifted by base", func(t *testing.T) {
		src := "prefix|⟨a⟩ tail"
		chunks := p.Tokenize(src[7:], 7)
		require.Len(t, chunks, 2)
		assert.Equal(t, "⟨a⟩", chunks[0].Raw(src))
		assert.Equal(t, " tail", chunks[1].Raw(src))
	})
}

func TestPatterns_Tokenize_Lossless(t *testing.T) {
	p := MustDefaultPatterns()
	bodies := []string{
		"",
		"plain\n",
		"⟨a⟩",
		"⟨a⟩\n⟨b⟩\n",
		"a ⟨ b ⟩ c ⟨\n\nd⟩ e",
		"⟨⟨nested⟩⟩",
		"⟩ stray ⟨ open",
		"unicode ✓ ⟨名前⟩ ok",
	}
	for _, body := range bodies {
		var sb strings.Builder
		for _, c := range p.Tokenize(body, 0) {
			sb.WriteString(c.Raw(body))
		}
		assert.Equal(t, body, sb.String())
	}
}

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"":                 "",
		"greet":            "greet",
		"  greet  ":        "greet",
		"a\n  b\t\tc":      "a b c",
		"\n":               "",
		"already normal":   "already normal",
		"multi \r\n line ": "multi line",
	}
	for in, want := range cases {
		got := Normalize(in)
		assert.Equal(t, want, got, "Normalize(%q)", in)
		assert.Equal(t, got, Normalize(got), "Normalize must be idempotent for %q", in)
	}
}

func TestPatterns_ReferenceKey(t *testing.T) {
	p := MustDefaultPatterns()
	assert.Equal(t, "a b", p.ReferenceKey("⟨ a\n b ⟩"))
	assert.Equal(t, "", p.ReferenceKey("⟨⟩"))
	assert.Equal(t, "bare", p.ReferenceKey(" bare "))
}
