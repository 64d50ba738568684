package graph

import "tangle/internal/web"

// Graph is the section reference graph of a web.
type Graph struct {
	Nodes      map[string]*Node
	Edges      []Edge
	Unresolved []UnresolvedRelation

	order []string
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		Nodes: make(map[string]*Node),
		Edges: []Edge{},
	}
}

// FromWeb builds the graph of w: one node per section and one edge per
// embedded reference, in document order.
func FromWeb(w *web.Web) *Graph {
	g := NewGraph()
	for _, key := range w.Keys() {
		g.AddSection(key, w.Fragments(key))
	}
	g.LinkRelations(w.Patterns())
	return g
}

// AddSection adds a section node.
func (g *Graph) AddSection(key string, frags []*web.Fragment) {
	if _, ok := g.Nodes[key]; !ok {
		g.order = append(g.order, key)
	}
	g.Nodes[key] = &Node{Key: key, Fragments: frags}
}

// Keys returns the section keys in insertion order.
func (g *Graph) Keys() []string {
	return g.order
}

// LinkRelations resolves every reference of every fragment to an edge or an
// unresolved relation.
func (g *Graph) LinkRelations(p *web.Patterns) {
	g.Edges = []Edge{} // Reset edges
	g.Unresolved = nil

	for _, key := range g.order {
		for _, f := range g.Nodes[key].Fragments {
			for _, ref := range f.References(p) {
				if _, ok := g.Nodes[ref.Key]; ok {
					g.Edges = append(g.Edges, Edge{
						From:     key,
						To:       ref.Key,
						Kind:     RelationReferences,
						Location: ref.Location,
					})
					continue
				}
				reason := ReasonNoCandidate
				if ref.Key == "" {
					reason = ReasonRootTarget
				}
				g.Unresolved = append(g.Unresolved, UnresolvedRelation{
					From:     key,
					Target:   ref.Key,
					Raw:      ref.Raw,
					Kind:     RelationReferences,
					Reason:   reason,
					Location: ref.Location,
				})
			}
		}
	}
}

// GetDependencies returns the sections that key references, each once.
func (g *Graph) GetDependencies(key string) []*Node {
	var deps []*Node
	seen := make(map[string]bool)
	for _, edge := range g.Edges {
		if edge.From == key && !seen[edge.To] {
			seen[edge.To] = true
			deps = append(deps, g.Nodes[edge.To])
		}
	}
	return deps
}

// GetDependents returns the sections that reference key, each once.
func (g *Graph) GetDependents(key string) []*Node {
	var deps []*Node
	seen := make(map[string]bool)
	for _, edge := range g.Edges {
		if edge.To == key && !seen[edge.From] {
			seen[edge.From] = true
			deps = append(deps, g.Nodes[edge.From])
		}
	}
	return deps
}

// Reachable returns root and every section it transitively references, in
// breadth-first order. An unknown root yields nil.
func (g *Graph) Reachable(root string) []string {
	if _, ok := g.Nodes[root]; !ok {
		return nil
	}
	seen := map[string]bool{root: true}
	queue := []string{root}
	var out []string
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		out = append(out, cur)
		for _, dep := range g.GetDependencies(cur) {
			if !seen[dep.Key] {
				seen[dep.Key] = true
				queue = append(queue, dep.Key)
			}
		}
	}
	return out
}
