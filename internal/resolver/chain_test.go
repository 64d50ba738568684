package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tangle/internal/extractor"
	"tangle/internal/graph"
	"tangle/internal/web"
)

type fakeResolver struct {
	name string
	fn   func(g *graph.Graph) (ResolveStats, error)
}

func (f fakeResolver) Name() string { return f.name }
func (f fakeResolver) Resolve(g *graph.Graph) (ResolveStats, error) {
	return f.fn(g)
}

func TestResolverChain_Run(t *testing.T) {
	g := graph.NewGraph()
	g.Unresolved = []graph.UnresolvedRelation{
		{From: "a", Target: "x", Kind: graph.RelationReferences, Reason: graph.ReasonNoCandidate},
		{From: "b", Target: "y", Kind: graph.RelationReferences, Reason: graph.ReasonNoCandidate},
	}

	r1 := fakeResolver{
		name: "r1",
		fn: func(g *graph.Graph) (ResolveStats, error) {
			g.Unresolved[0].Candidates = []string{"c"}
			return ResolveStats{Attempted: 2, Resolved: 1, Skipped: 1}, nil
		},
	}
	r2 := fakeResolver{
		name: "r2",
		fn: func(g *graph.Graph) (ResolveStats, error) {
			g.Unresolved[1].Candidates = []string{"d"}
			return ResolveStats{Attempted: 1, Resolved: 1, Skipped: 0}, nil
		},
	}

	results := NewResolverChain(r1, r2).Run(g)

	require.Len(t, results, 2)
	assert.Equal(t, "r1", results[0].Resolver)
	assert.Equal(t, "r2", results[1].Resolver)
	assert.Equal(t, 2, results[0].UnresolvedBefore)
	assert.Equal(t, 1, results[0].UnresolvedAfter)
	assert.Equal(t, 1, results[1].UnresolvedBefore)
	assert.Equal(t, 0, results[1].UnresolvedAfter)
}

func TestDefaultChain(t *testing.T) {
	src := "```go\n⟨⟩≡\n⟨Parse Input⟩\n⟨emit...⟩\n⟨nothing like it⟩\n```\n\n" +
		"```go\n⟨parse input⟩≡\nparse\n```\n\n" +
		"```go\n⟨emit code⟩≡\nemit\n```\n\n" +
		"```go\n⟨emit data⟩≡\ndata\n```\n"
	b := web.NewBuilder(web.MustDefaultPatterns(), "go")
	require.NoError(t, b.AddDocument(extractor.NewDocument("lit.md", src)))
	g := graph.FromWeb(b.Web())
	require.Len(t, g.Unresolved, 3)

	results := NewDefaultChain().Run(g)
	require.Len(t, results, 2)
	assert.Equal(t, ResolveStats{Attempted: 3, Resolved: 1, Skipped: 2}, results[0].Stats)
	assert.Equal(t, ResolveStats{Attempted: 2, Resolved: 1, Skipped: 1}, results[1].Stats)

	assert.Equal(t, []string{"parse input"}, g.Unresolved[0].Candidates)
	assert.Equal(t, []string{"emit code", "emit data"}, g.Unresolved[1].Candidates)
	assert.Empty(t, g.Unresolved[2].Candidates)
}
