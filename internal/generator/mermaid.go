package generator

import (
	"fmt"
	"regexp"
	"strings"

	"tangle/internal/graph"
	"tangle/internal/web"
)

var nonIDChars = regexp.MustCompile(`[^a-z0-9_]`)

// MermaidGenerator creates diagrams from section graphs.
type MermaidGenerator struct{}

// GenerateSectionGraph renders the reference graph as a Mermaid flowchart.
// When keys is non-empty only those sections and the edges between them are
// drawn. Unresolved targets appear as dashed nodes.
func (m *MermaidGenerator) GenerateSectionGraph(g *graph.Graph, keys []string) string {
	if len(keys) == 0 {
		keys = g.Keys()
	}
	selected := make(map[string]bool, len(keys))
	for _, k := range keys {
		selected[k] = true
	}

	ids := newIDSet()
	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("graph TD\n")

	for _, k := range keys {
		if _, ok := g.Nodes[k]; !ok {
			continue
		}
		sb.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", ids.get(k), mermaidLabel(web.DisplayKey(k))))
	}

	type pair struct{ from, to string }
	drawn := make(map[pair]bool)
	for _, e := range g.Edges {
		if !selected[e.From] || !selected[e.To] || drawn[pair{e.From, e.To}] {
			continue
		}
		drawn[pair{e.From, e.To}] = true
		sb.WriteString(fmt.Sprintf("    %s --> %s\n", ids.get(e.From), ids.get(e.To)))
	}

	for _, u := range g.Unresolved {
		if !selected[u.From] {
			continue
		}
		id, fresh := ids.lookup("\x00"+u.Target, "missing_"+sanitizeMermaidID(u.Target))
		if fresh {
			sb.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", id, mermaidLabel(web.DisplayKey(u.Target)+" (missing)")))
			sb.WriteString(fmt.Sprintf("    style %s stroke-dasharray: 5 5\n", id))
		}
		if drawn[pair{u.From, "\x00" + u.Target}] {
			continue
		}
		drawn[pair{u.From, "\x00" + u.Target}] = true
		sb.WriteString(fmt.Sprintf("    %s -.-> %s\n", ids.get(u.From), id))
	}

	sb.WriteString("```\n")
	return sb.String()
}

// idSet hands out unique Mermaid ids for arbitrary section names.
type idSet struct {
	byKey map[string]string
	used  map[string]bool
}

func newIDSet() *idSet {
	return &idSet{byKey: make(map[string]string), used: make(map[string]bool)}
}

func (s *idSet) get(key string) string {
	base := sanitizeMermaidID(key)
	if key == "" {
		base = "root"
	}
	id, _ := s.lookup(key, base)
	return id
}

// lookup returns the id of key, allocating one derived from base on first
// use.
func (s *idSet) lookup(key, base string) (string, bool) {
	if id, ok := s.byKey[key]; ok {
		return id, false
	}
	id := base
	for i := 2; s.used[id]; i++ {
		id = fmt.Sprintf("%s_%d", base, i)
	}
	s.used[id] = true
	s.byKey[key] = id
	return id, true
}

func mermaidLabel(v string) string {
	return strings.ReplaceAll(v, `"`, "#quot;")
}

func sanitizeMermaidID(v string) string {
	v = strings.TrimSpace(strings.ToLower(v))
	if v == "" {
		return "node"
	}
	v = nonIDChars.ReplaceAllString(strings.ReplaceAll(v, "-", "_"), "_")
	if v[0] >= '0' && v[0] <= '9' {
		v = "n_" + v
	}
	return v
}
