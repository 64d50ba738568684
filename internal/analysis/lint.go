package analysis

import (
	"fmt"
	"strings"

	"tangle/internal/graph"
	"tangle/internal/web"
)

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

type FindingKind string

const (
	KindMissingRoot        FindingKind = "missing_root"
	KindUnresolved         FindingKind = "unresolved"
	KindCycle              FindingKind = "cycle"
	KindUnreachable        FindingKind = "unreachable"
	KindOrphanContinuation FindingKind = "orphan_continuation"
	KindDuplicateStart     FindingKind = "duplicate_start"
)

// Finding is one problem in a web.
type Finding struct {
	Kind      FindingKind
	Severity  Severity
	Section   string
	Message   string
	Locations []web.Location
}

func (f Finding) String() string {
	where := ""
	if len(f.Locations) > 0 {
		locs := make([]string, 0, len(f.Locations))
		for _, l := range f.Locations {
			locs = append(locs, l.String())
		}
		where = " [" + strings.Join(locs, ", ") + "]"
	}
	return fmt.Sprintf("%s: %s: %s%s", f.Severity, f.Kind, f.Message, where)
}

// Options controls which conditions are errors.
type Options struct {
	Root   string
	Strict bool // unresolved references are errors
}

// Lint checks a web for unresolved references, cycles, sections unreachable
// from the root and inconsistent start/continuation markers.
func Lint(w *web.Web, g *graph.Graph, opts Options) []Finding {
	var findings []Finding

	root := web.Normalize(opts.Root)
	if !w.Has(root) {
		findings = append(findings, Finding{
			Kind:     KindMissingRoot,
			Severity: SeverityError,
			Section:  root,
			Message:  fmt.Sprintf("section %s is not defined", web.DisplayKey(root)),
		})
	}

	unresolvedSeverity := SeverityWarning
	if opts.Strict {
		unresolvedSeverity = SeverityError
	}
	targets, byTarget := g.UnresolvedTargets()
	for _, target := range targets {
		rels := byTarget[target]
		locs := make([]web.Location, 0, len(rels))
		for _, r := range rels {
			locs = append(locs, r.Location)
		}
		msg := fmt.Sprintf("reference to undefined section %s", web.DisplayKey(target))
		if cands := rels[0].Candidates; len(cands) > 0 {
			refs := make([]string, 0, len(cands))
			for _, c := range cands {
				refs = append(refs, w.Patterns().Reference(c))
			}
			msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(refs, " or "))
		}
		findings = append(findings, Finding{
			Kind:      KindUnresolved,
			Severity:  unresolvedSeverity,
			Section:   target,
			Message:   msg,
			Locations: locs,
		})
	}

	for _, cycle := range FindCycles(g) {
		names := make([]string, 0, len(cycle))
		for _, k := range cycle {
			names = append(names, web.DisplayKey(k))
		}
		findings = append(findings, Finding{
			Kind:      KindCycle,
			Severity:  SeverityError,
			Section:   cycle[0],
			Message:   "cyclic reference " + strings.Join(names, " -> "),
			Locations: fragmentLocations(w.Fragments(cycle[0])[:1]),
		})
	}

	if w.Has(root) {
		reachable := make(map[string]bool)
		for _, k := range g.Reachable(root) {
			reachable[k] = true
		}
		for _, key := range w.Keys() {
			if reachable[key] {
				continue
			}
			findings = append(findings, Finding{
				Kind:      KindUnreachable,
				Severity:  SeverityWarning,
				Section:   key,
				Message:   fmt.Sprintf("section %s is never used by %s", web.DisplayKey(key), web.DisplayKey(root)),
				Locations: fragmentLocations(w.Fragments(key)[:1]),
			})
		}
	}

	for _, key := range w.Keys() {
		findings = append(findings, checkMarkers(key, w.Fragments(key))...)
	}

	return findings
}

// HasErrors reports whether any finding is an error.
func HasErrors(findings []Finding) bool {
	for _, f := range findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}

func checkMarkers(key string, frags []*web.Fragment) []Finding {
	var findings []Finding
	started := false
	for i, f := range frags {
		if !f.HasHeader {
			continue
		}
		switch {
		case f.StartsSection && started:
			findings = append(findings, Finding{
				Kind:      KindDuplicateStart,
				Severity:  SeverityWarning,
				Section:   key,
				Message:   fmt.Sprintf("section %s is started again; use the continuation marker to append", web.DisplayKey(key)),
				Locations: fragmentLocations(frags[i : i+1]),
			})
		case !f.StartsSection && !started:
			findings = append(findings, Finding{
				Kind:      KindOrphanContinuation,
				Severity:  SeverityWarning,
				Section:   key,
				Message:   fmt.Sprintf("section %s is continued before it is started", web.DisplayKey(key)),
				Locations: fragmentLocations(frags[i : i+1]),
			})
		}
		if f.StartsSection {
			started = true
		}
	}
	return findings
}

func fragmentLocations(frags []*web.Fragment) []web.Location {
	locs := make([]web.Location, 0, len(frags))
	for _, f := range frags {
		locs = append(locs, f.Location())
	}
	return locs
}
