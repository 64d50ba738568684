package graph

import "tangle/internal/web"

type RelationKind string

const (
	RelationReferences RelationKind = "references"
)

type UnresolvedReason string

const (
	ReasonNoCandidate UnresolvedReason = "no_candidate"
	ReasonRootTarget  UnresolvedReason = "root_target"
)

// Node is one section of the web.
type Node struct {
	Key       string
	Fragments []*web.Fragment
}

// Edge is a reference from one section to another.
type Edge struct {
	From     string
	To       string
	Kind     RelationKind
	Location web.Location
}

// UnresolvedRelation is a reference whose target section does not exist.
type UnresolvedRelation struct {
	From       string
	Target     string
	Raw        string
	Kind       RelationKind
	Reason     UnresolvedReason
	Location   web.Location
	Candidates []string // existing sections the reference may have meant
}
