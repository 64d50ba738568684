package analysis

import "tangle/internal/graph"

// FindCycles returns every reference cycle reachable in g. Each cycle starts
// and ends with the same key, e.g. [a b a].
func FindCycles(g *graph.Graph) [][]string {
	const (
		white = iota
		gray
		black
	)
	color := make(map[string]int, len(g.Nodes))
	var stack []string
	var cycles [][]string

	var visit func(key string)
	visit = func(key string) {
		color[key] = gray
		stack = append(stack, key)
		for _, dep := range g.GetDependencies(key) {
			switch color[dep.Key] {
			case white:
				visit(dep.Key)
			case gray:
				for i := len(stack) - 1; i >= 0; i-- {
					if stack[i] == dep.Key {
						cycle := append([]string(nil), stack[i:]...)
						cycles = append(cycles, append(cycle, dep.Key))
						break
					}
				}
			}
		}
		stack = stack[:len(stack)-1]
		color[key] = black
	}

	for _, key := range g.Keys() {
		if color[key] == white {
			visit(key)
		}
	}
	return cycles
}
