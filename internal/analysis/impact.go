package analysis

import (
	"tangle/internal/git"
	"tangle/internal/graph"
	"tangle/internal/web"
)

// ImpactReport summarizes the sections affected by changes.
type ImpactReport struct {
	Fragments          []*web.Fragment
	DirectlyAffected   []string
	IndirectlyAffected []string
}

// AnalyzeImpact identifies which sections are affected by the given changes.
// A section is directly affected when one of its fragments overlaps a
// changed line, and indirectly affected when it includes such a section.
func AnalyzeImpact(w *web.Web, g *graph.Graph, changes []git.ChangedFile) *ImpactReport {
	report := &ImpactReport{
		DirectlyAffected:   []string{},
		IndirectlyAffected: []string{},
	}

	seenDirect := make(map[string]bool)
	seenIndirect := make(map[string]bool)

	// 1. Find Direct Impacts
	for _, key := range w.Keys() {
		for _, f := range w.Fragments(key) {
			for _, change := range changes {
				if !change.Matches(f.Doc.Path) || !isAffected(f, change.ChangedLines) {
					continue
				}
				report.Fragments = append(report.Fragments, f)
				if !seenDirect[key] {
					report.DirectlyAffected = append(report.DirectlyAffected, key)
					seenDirect[key] = true
				}
				break
			}
		}
	}

	// 2. Find Indirect Impacts (every section that transitively includes one)
	queue := append([]string(nil), report.DirectlyAffected...)
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, dep := range g.GetDependents(cur) {
			if !seenDirect[dep.Key] && !seenIndirect[dep.Key] {
				report.IndirectlyAffected = append(report.IndirectlyAffected, dep.Key)
				seenIndirect[dep.Key] = true
				queue = append(queue, dep.Key)
			}
		}
	}

	return report
}

func isAffected(f *web.Fragment, lines []int) bool {
	for _, line := range lines {
		if line >= f.Line && line <= f.EndLine() {
			return true
		}
	}
	return false
}
