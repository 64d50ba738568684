package web

import "tangle/internal/extractor"

// Web maps normalized section keys to their fragments in document order.
// It borrows all text from its documents and is read-only once built.
type Web struct {
	patterns *Patterns
	sections map[string][]*Fragment
	order    []string
	docs     []*extractor.Document
}

// New creates an empty web that resolves references with p.
func New(p *Patterns) *Web {
	return &Web{
		patterns: p,
		sections: make(map[string][]*Fragment),
	}
}

// Patterns returns the patterns the web was built with.
func (w *Web) Patterns() *Patterns {
	return w.patterns
}

// Add appends f to the fragment list of its key.
func (w *Web) Add(f *Fragment) {
	if _, ok := w.sections[f.Key]; !ok {
		w.order = append(w.order, f.Key)
	}
	w.sections[f.Key] = append(w.sections[f.Key], f)
}

// AddDocument records doc as a source of the web.
func (w *Web) AddDocument(doc *extractor.Document) {
	w.docs = append(w.docs, doc)
}

// Documents returns the documents in the order they were added.
func (w *Web) Documents() []*extractor.Document {
	return w.docs
}

// Has reports whether key has at least one fragment.
func (w *Web) Has(key string) bool {
	return len(w.sections[key]) > 0
}

// Fragments returns the fragments of key in document order.
func (w *Web) Fragments(key string) []*Fragment {
	return w.sections[key]
}

// Keys returns all section keys in order of first appearance.
func (w *Web) Keys() []string {
	return w.order
}

// Len returns the number of sections.
func (w *Web) Len() int {
	return len(w.order)
}

// FragmentCount returns the total number of fragments.
func (w *Web) FragmentCount() int {
	n := 0
	for _, frags := range w.sections {
		n += len(frags)
	}
	return n
}

// ReferencesTo returns every location that references key.
func (w *Web) ReferencesTo(key string) []Location {
	var locs []Location
	for _, k := range w.order {
		for _, f := range w.sections[k] {
			for _, ref := range f.References(w.patterns) {
				if ref.Key == key {
					locs = append(locs, ref.Location)
				}
			}
		}
	}
	return locs
}
