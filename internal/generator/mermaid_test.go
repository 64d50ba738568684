package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tangle/internal/extractor"
	"tangle/internal/graph"
	"tangle/internal/web"
)

func fence(body string) string {
	return "```go\n" + body + "```\n\n"
}

func buildGraph(t *testing.T, src string) *graph.Graph {
	t.Helper()
	b := web.NewBuilder(web.MustDefaultPatterns(), "go")
	require.NoError(t, b.AddDocument(extractor.NewDocument("lit.md", src)))
	return graph.FromWeb(b.Web())
}

func TestGenerateSectionGraph(t *testing.T) {
	g := buildGraph(t,
		fence("⟨⟩≡\n⟨parse input⟩\n⟨missing⟩\n")+
			fence("⟨parse input⟩≡\nx\n⟨missing⟩\n"))
	m := &MermaidGenerator{}

	t.Run("All sections", func(t *testing.T) {
		out := m.GenerateSectionGraph(g, nil)
		assert.Contains(t, out, "graph TD\n")
		assert.Contains(t, out, `    root["(root)"]`+"\n")
		assert.Contains(t, out, `    parse_input["parse input"]`+"\n")
		assert.Contains(t, out, "    root --> parse_input\n")
		assert.Contains(t, out, `    missing_missing["missing (missing)"]`+"\n")
		assert.Contains(t, out, "    style missing_missing stroke-dasharray: 5 5\n")
		assert.Contains(t, out, "    root -.-> missing_missing\n")
		assert.Contains(t, out, "    parse_input -.-> missing_missing\n")
	})

	t.Run("Restricted", func(t *testing.T) {
		out := m.GenerateSectionGraph(g, []string{"parse input"})
		assert.NotContains(t, out, "root")
		assert.Contains(t, out, "    parse_input -.-> missing_missing\n")
	})
}

func TestGenerateSectionGraph_UniqueIDs(t *testing.T) {
	g := buildGraph(t,
		fence("⟨⟩≡\n⟨a b⟩\n⟨a-b⟩\n")+
			fence("⟨a b⟩≡\none\n")+
			fence("⟨a-b⟩≡\ntwo\n"))

	out := (&MermaidGenerator{}).GenerateSectionGraph(g, nil)
	assert.Contains(t, out, `    a_b["a b"]`+"\n")
	assert.Contains(t, out, `    a_b_2["a-b"]`+"\n")
	assert.Contains(t, out, "    root --> a_b\n")
	assert.Contains(t, out, "    root --> a_b_2\n")
}

func TestGenerateSectionIndex(t *testing.T) {
	g := buildGraph(t,
		fence("⟨⟩≡\n⟨parse⟩\n⟨gone⟩\n")+
			fence("⟨parse⟩≡\nx\n"))

	out := NewMarkdownGenerator().GenerateSectionIndex(g)
	assert.Contains(t, out, "| (root) | 1 | lit.md:2 |  |\n")
	assert.Contains(t, out, "| parse | 1 | lit.md:8 | (root) |\n")
	assert.Contains(t, out, "## Unresolved references\n\n- `gone` at lit.md:4\n")
	assert.Contains(t, out, "```mermaid\ngraph TD\n")
}
