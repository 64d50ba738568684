package graph

// UnresolvedReasonCounts counts unresolved references per reason.
func (g *Graph) UnresolvedReasonCounts() map[UnresolvedReason]int {
	counts := make(map[UnresolvedReason]int)
	if g == nil {
		return counts
	}
	for _, u := range g.Unresolved {
		reason := u.Reason
		if reason == "" {
			reason = ReasonNoCandidate
		}
		counts[reason]++
	}
	return counts
}

// UnresolvedTargets groups unresolved relations by missing section, keeping
// the order in which each target was first seen.
func (g *Graph) UnresolvedTargets() ([]string, map[string][]UnresolvedRelation) {
	byTarget := make(map[string][]UnresolvedRelation)
	var order []string
	if g == nil {
		return order, byTarget
	}
	for _, u := range g.Unresolved {
		if _, ok := byTarget[u.Target]; !ok {
			order = append(order, u.Target)
		}
		byTarget[u.Target] = append(byTarget[u.Target], u)
	}
	return order, byTarget
}
