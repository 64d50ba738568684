package ir

import (
	"tangle/internal/graph"
	"tangle/internal/web"
)

// Evidence describes where a fragment or reference sits in a document.
type Evidence struct {
	Filepath  string `json:"filepath"`
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line,omitempty"`
	Offset    int    `json:"offset"`
}

// FragmentIR is one code block contributing to a section.
type FragmentIR struct {
	Name          string   `json:"name"`
	StartsSection bool     `json:"starts_section"`
	HasHeader     bool     `json:"has_header"`
	Language      string   `json:"language"`
	Evidence      Evidence `json:"evidence"`
}

// SectionIR is a section and its fragments in document order.
type SectionIR struct {
	Key       string       `json:"key"`
	Fragments []FragmentIR `json:"fragments"`
}

// EdgeIR is a reference from one section to another.
type EdgeIR struct {
	From       string   `json:"from"`
	To         string   `json:"to"`
	Kind       string   `json:"kind"`
	Resolved   bool     `json:"resolved"`
	Candidates []string `json:"candidates,omitempty"`
	Evidence   Evidence `json:"evidence"`
}

// GraphSnapshot is the exported view of a web and its reference graph.
type GraphSnapshot struct {
	Version   string      `json:"version"`
	Documents []string    `json:"documents"`
	Sections  []SectionIR `json:"sections"`
	Edges     []EdgeIR    `json:"edges"`
}

// Snapshot exports w and its graph g. Unresolved references are included as
// edges with Resolved set to false.
func Snapshot(w *web.Web, g *graph.Graph) *GraphSnapshot {
	s := &GraphSnapshot{
		Version:   "v1",
		Documents: []string{},
		Sections:  []SectionIR{},
		Edges:     []EdgeIR{},
	}
	for _, doc := range w.Documents() {
		s.Documents = append(s.Documents, doc.Path)
	}

	for _, key := range w.Keys() {
		sec := SectionIR{Key: key}
		for _, f := range w.Fragments(key) {
			sec.Fragments = append(sec.Fragments, FragmentIR{
				Name:          f.Name,
				StartsSection: f.StartsSection,
				HasHeader:     f.HasHeader,
				Language:      f.Language,
				Evidence: Evidence{
					Filepath:  f.Doc.Path,
					StartLine: f.Line,
					EndLine:   f.EndLine(),
					Offset:    f.Offset,
				},
			})
		}
		s.Sections = append(s.Sections, sec)
	}

	for _, e := range g.Edges {
		s.Edges = append(s.Edges, EdgeIR{
			From:     e.From,
			To:       e.To,
			Kind:     string(e.Kind),
			Resolved: true,
			Evidence: locationEvidence(e.Location),
		})
	}
	for _, u := range g.Unresolved {
		s.Edges = append(s.Edges, EdgeIR{
			From:       u.From,
			To:         u.Target,
			Kind:       string(u.Kind),
			Candidates: u.Candidates,
			Evidence:   locationEvidence(u.Location),
		})
	}
	return s
}

func locationEvidence(l web.Location) Evidence {
	return Evidence{Filepath: l.Path, StartLine: l.Line, Offset: l.Offset}
}
