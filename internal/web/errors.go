package web

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSectionNotFound is returned when the requested section has no fragments.
var ErrSectionNotFound = errors.New("section not found")

// UnresolvedReferenceError reports a reference to a section that is never
// defined, with every place that references it.
type UnresolvedReferenceError struct {
	Name      string
	Locations []Location
}

func (e *UnresolvedReferenceError) Error() string {
	locs := make([]string, 0, len(e.Locations))
	for _, l := range e.Locations {
		locs = append(locs, l.String())
	}
	return fmt.Sprintf("unresolved reference to section %q (referenced at %s)", e.Name, strings.Join(locs, ", "))
}

// CyclicReferenceError reports a section that includes itself. Path starts
// at the first section of the cycle and ends with it again.
type CyclicReferenceError struct {
	Path []string
}

func (e *CyclicReferenceError) Error() string {
	names := make([]string, 0, len(e.Path))
	for _, k := range e.Path {
		names = append(names, DisplayKey(k))
	}
	return fmt.Sprintf("cyclic reference: %s", strings.Join(names, " -> "))
}
