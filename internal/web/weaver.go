package web

import (
	"fmt"
	"strings"
)

// UnresolvedReference describes a reference that was dropped while weaving.
type UnresolvedReference struct {
	Key      string // missing section
	Raw      string
	From     string // section whose fragment holds the reference
	Location Location
}

// UnresolvedHandler is notified of references dropped in lenient mode.
type UnresolvedHandler func(UnresolvedReference)

// Weaver expands sections of a web into flat text. It keeps no state between
// Weave calls.
type Weaver struct {
	web          *Web
	strict       bool
	markers      bool
	prefix       string
	onUnresolved UnresolvedHandler
}

// Option configures a Weaver.
type Option func(*Weaver)

// WithStrict makes unresolved references fail the weave instead of being
// dropped.
func WithStrict(strict bool) Option {
	return func(w *Weaver) { w.strict = strict }
}

// WithCommentPrefix sets the line comment used for traceability markers.
func WithCommentPrefix(prefix string) Option {
	return func(w *Weaver) { w.prefix = prefix }
}

// WithMarkers toggles the marker line written before each inlined section.
func WithMarkers(enabled bool) Option {
	return func(w *Weaver) { w.markers = enabled }
}

// WithUnresolvedHandler registers a callback for dropped references.
func WithUnresolvedHandler(h UnresolvedHandler) Option {
	return func(w *Weaver) { w.onUnresolved = h }
}

// NewWeaver creates a lenient weaver with "//" markers.
func NewWeaver(web *Web, opts ...Option) *Weaver {
	w := &Weaver{web: web, markers: true, prefix: "//"}
	for _, o := range opts {
		o(w)
	}
	return w
}

// Weave returns the fully expanded text of key. Fragments are concatenated
// in document order and every reference is replaced by a marker line and
// the referenced section's own expansion. A section referenced from several
// places is expanded at each of them.
func (w *Weaver) Weave(key string) (string, error) {
	key = Normalize(key)
	if !w.web.Has(key) {
		return "", fmt.Errorf("%w: %s", ErrSectionNotFound, DisplayKey(key))
	}
	var sb strings.Builder
	if err := w.weave(&sb, key, map[string]bool{}, nil); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (w *Weaver) weave(sb *strings.Builder, key string, active map[string]bool, path []string) error {
	active[key] = true
	defer delete(active, key)
	path = append(path, key)

	for _, f := range w.web.Fragments(key) {
		src := f.Doc.Source
		for _, c := range f.Chunklets {
			raw := c.Raw(src)
			if c.Kind == TextChunk {
				sb.WriteString(raw)
				continue
			}

			ref := w.web.patterns.ReferenceKey(raw)
			if !w.web.Has(ref) {
				if w.strict {
					return &UnresolvedReferenceError{Name: ref, Locations: w.web.ReferencesTo(ref)}
				}
				if w.onUnresolved != nil {
					w.onUnresolved(UnresolvedReference{
						Key:  ref,
						Raw:  raw,
						From: key,
						Location: Location{
							Path:   f.Doc.Path,
							Line:   f.Doc.Line(c.Span.Start),
							Offset: c.Span.Start,
						},
					})
				}
				continue
			}
			if active[ref] {
				return &CyclicReferenceError{Path: cycleFrom(path, ref)}
			}

			w.writeMarker(sb, raw)
			if err := w.weave(sb, ref, active, path); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *Weaver) writeMarker(sb *strings.Builder, raw string) {
	if !w.markers {
		return
	}
	sb.WriteByte('\n')
	if w.prefix != "" {
		sb.WriteString(w.prefix)
		sb.WriteByte(' ')
	}
	sb.WriteString(raw)
	sb.WriteByte('\n')
}

func cycleFrom(path []string, key string) []string {
	for i, k := range path {
		if k == key {
			out := make([]string, 0, len(path)-i+1)
			out = append(out, path[i:]...)
			return append(out, key)
		}
	}
	return append(append([]string(nil), path...), key)
}
