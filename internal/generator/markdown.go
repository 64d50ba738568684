package generator

import (
	"fmt"
	"strings"

	"tangle/internal/graph"
	"tangle/internal/web"
)

// MarkdownGenerator produces a Markdown overview of a web's sections.
type MarkdownGenerator struct {
	mermaid *MermaidGenerator
}

func NewMarkdownGenerator() *MarkdownGenerator {
	return &MarkdownGenerator{mermaid: &MermaidGenerator{}}
}

// GenerateSectionIndex lists every section with its definition sites and
// referrers, followed by unresolved references and the reference diagram.
func (g *MarkdownGenerator) GenerateSectionIndex(gr *graph.Graph) string {
	var sb strings.Builder
	sb.WriteString("# Sections\n\n")
	sb.WriteString("| Section | Fragments | Defined at | Referenced by |\n")
	sb.WriteString("|---|---|---|---|\n")

	for _, key := range gr.Keys() {
		node := gr.Nodes[key]
		var defined []string
		for _, f := range node.Fragments {
			defined = append(defined, f.Location().String())
		}
		var users []string
		for _, dep := range gr.GetDependents(key) {
			users = append(users, web.DisplayKey(dep.Key))
		}
		sb.WriteString(fmt.Sprintf("| %s | %d | %s | %s |\n",
			tableCell(web.DisplayKey(key)),
			len(node.Fragments),
			tableCell(strings.Join(defined, ", ")),
			tableCell(strings.Join(users, ", ")),
		))
	}

	if len(gr.Unresolved) > 0 {
		sb.WriteString("\n## Unresolved references\n\n")
		targets, byTarget := gr.UnresolvedTargets()
		for _, target := range targets {
			var locs []string
			for _, u := range byTarget[target] {
				locs = append(locs, u.Location.String())
			}
			sb.WriteString(fmt.Sprintf("- `%s` at %s", web.DisplayKey(target), strings.Join(locs, ", ")))
			if cands := byTarget[target][0].Candidates; len(cands) > 0 {
				sb.WriteString(fmt.Sprintf(" (did you mean `%s`?)", strings.Join(cands, "`, `")))
			}
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n## Reference graph\n\n")
	sb.WriteString(g.mermaid.GenerateSectionGraph(gr, nil))
	return sb.String()
}

func tableCell(v string) string {
	return strings.ReplaceAll(v, "|", `\|`)
}
