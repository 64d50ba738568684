package resolver

import (
	"strings"

	"tangle/internal/graph"
)

type ResolveStats struct {
	Attempted int
	Resolved  int
	Skipped   int
}

// GraphResolver proposes candidate sections for unresolved references. It
// never adds edges: weaving semantics only follow exact names.
type GraphResolver interface {
	Name() string
	Resolve(g *graph.Graph) (ResolveStats, error)
}

type StageResult struct {
	Resolver         string
	Stats            ResolveStats
	UnresolvedBefore int // relations without candidates
	UnresolvedAfter  int
	Err              error
}

type ResolverChain struct {
	resolvers []GraphResolver
}

func NewResolverChain(resolvers ...GraphResolver) *ResolverChain {
	return &ResolverChain{resolvers: resolvers}
}

func NewDefaultChain() *ResolverChain {
	return NewResolverChain(NewCaseFoldResolver(), NewAbbreviationResolver())
}

func (c *ResolverChain) Run(g *graph.Graph) []StageResult {
	if g == nil {
		return nil
	}

	var out []StageResult
	for _, r := range c.resolvers {
		before := withoutCandidates(g)
		stats, err := r.Resolve(g)
		out = append(out, StageResult{
			Resolver:         r.Name(),
			Stats:            stats,
			UnresolvedBefore: before,
			UnresolvedAfter:  withoutCandidates(g),
			Err:              err,
		})
		if err != nil {
			break
		}
	}
	return out
}

func withoutCandidates(g *graph.Graph) int {
	n := 0
	for _, u := range g.Unresolved {
		if len(u.Candidates) == 0 {
			n++
		}
	}
	return n
}

// matchResolver fills candidates for relations that have none yet using a
// name predicate.
type matchResolver struct {
	name  string
	match func(target, key string) bool
}

func (r *matchResolver) Name() string {
	return r.name
}

func (r *matchResolver) Resolve(g *graph.Graph) (ResolveStats, error) {
	var stats ResolveStats
	for i := range g.Unresolved {
		u := &g.Unresolved[i]
		if len(u.Candidates) > 0 {
			continue
		}
		stats.Attempted++
		for _, key := range g.Keys() {
			if r.match(u.Target, key) {
				u.Candidates = append(u.Candidates, key)
			}
		}
		if len(u.Candidates) > 0 {
			stats.Resolved++
		} else {
			stats.Skipped++
		}
	}
	return stats, nil
}

// NewCaseFoldResolver suggests sections whose names differ only in case.
func NewCaseFoldResolver() GraphResolver {
	return &matchResolver{
		name: "case_fold",
		match: func(target, key string) bool {
			return target != key && strings.EqualFold(target, key)
		},
	}
}

// NewAbbreviationResolver expands "prefix..." references to the sections
// whose names start with prefix.
func NewAbbreviationResolver() GraphResolver {
	return &matchResolver{
		name: "abbreviation",
		match: func(target, key string) bool {
			prefix, ok := strings.CutSuffix(target, "...")
			prefix = strings.TrimSpace(prefix)
			return ok && prefix != "" && key != target && strings.HasPrefix(key, prefix)
		},
	}
}
