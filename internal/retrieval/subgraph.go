package retrieval

import (
	"tangle/internal/git"
	"tangle/internal/graph"
)

// Config controls how neighborhood subgraphs are extracted.
type Config struct {
	MaxHops int
	// Direction limits traversal; the zero value follows edges both ways.
	Direction Direction
}

type Direction int

const (
	Both       Direction = iota
	Downstream           // sections referenced by the seeds
	Upstream             // sections that include the seeds
)

func DefaultConfig() Config {
	return Config{MaxHops: 2}
}

// Subgraph is a hop-limited neighborhood of seed sections.
type Subgraph struct {
	MaxHops int
	Seeds   []string
	Keys    []string // in graph order
	Depth   map[string]int
	Edges   []graph.Edge
}

// Extract collects every section within cfg.MaxHops reference hops of seeds.
// Unknown seeds are ignored.
func Extract(g *graph.Graph, seeds []string, cfg Config) *Subgraph {
	if cfg.MaxHops < 0 {
		cfg.MaxHops = 0
	}
	sg := &Subgraph{MaxHops: cfg.MaxHops, Depth: make(map[string]int)}
	if g == nil {
		return sg
	}

	queue := make([]queueItem, 0, len(seeds))
	for _, key := range seeds {
		if _, ok := g.Nodes[key]; !ok {
			continue
		}
		if _, seen := sg.Depth[key]; seen {
			continue
		}
		sg.Seeds = append(sg.Seeds, key)
		sg.Depth[key] = 0
		queue = append(queue, queueItem{key: key})
	}

	adj := make(map[string][]edgeHop)
	for _, e := range g.Edges {
		if cfg.Direction != Upstream {
			adj[e.From] = append(adj[e.From], edgeHop{to: e.To, edge: e})
		}
		if cfg.Direction != Downstream {
			adj[e.To] = append(adj[e.To], edgeHop{to: e.From, edge: e})
		}
	}

	edgeSeen := make(map[graph.Edge]bool)
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.depth >= cfg.MaxHops {
			continue
		}
		for _, next := range adj[cur.key] {
			if !edgeSeen[next.edge] {
				edgeSeen[next.edge] = true
				sg.Edges = append(sg.Edges, next.edge)
			}
			nextDepth := cur.depth + 1
			prev, seen := sg.Depth[next.to]
			if !seen || nextDepth < prev {
				sg.Depth[next.to] = nextDepth
				queue = append(queue, queueItem{key: next.to, depth: nextDepth})
			}
		}
	}

	for _, key := range g.Keys() {
		if _, ok := sg.Depth[key]; ok {
			sg.Keys = append(sg.Keys, key)
		}
	}
	return sg
}

// ExtractFromChanges seeds Extract with the sections whose fragments overlap
// the changed lines. A change without line information touches every
// fragment of its file.
func ExtractFromChanges(g *graph.Graph, changes []git.ChangedFile, cfg Config) *Subgraph {
	if g == nil {
		return &Subgraph{MaxHops: cfg.MaxHops, Depth: map[string]int{}}
	}
	return Extract(g, findSeeds(g, changes), cfg)
}

type queueItem struct {
	key   string
	depth int
}

type edgeHop struct {
	to   string
	edge graph.Edge
}

func findSeeds(g *graph.Graph, changes []git.ChangedFile) []string {
	var out []string
	for _, key := range g.Keys() {
		if touched(g.Nodes[key], changes) {
			out = append(out, key)
		}
	}
	return out
}

func touched(n *graph.Node, changes []git.ChangedFile) bool {
	for _, f := range n.Fragments {
		for _, ch := range changes {
			if ch.Matches(f.Doc.Path) && lineRangeOverlaps(f.Line, f.EndLine(), ch.ChangedLines) {
				return true
			}
		}
	}
	return false
}

func lineRangeOverlaps(start, end int, changed []int) bool {
	if len(changed) == 0 {
		return true
	}
	for _, line := range changed {
		if line >= start && line <= end {
			return true
		}
	}
	return false
}
