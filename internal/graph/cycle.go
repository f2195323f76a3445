package graph

// Only eager dependencies take part in cycle detection; a deferred edge is
// how a cycle is broken.

type cycleDetector struct {
	graph   *Graph
	index   int
	stack   []string
	onStack map[string]bool
	indices map[string]int
	lowlink map[string]int
	sccs    [][]string
}

// DetectCycles returns the strongly connected components that form cycles,
// including self-loops.
func (g *Graph) DetectCycles() [][]string {
	detector := &cycleDetector{
		graph:   g,
		onStack: make(map[string]bool),
		indices: make(map[string]int),
		lowlink: make(map[string]int),
	}

	for _, id := range g.order {
		if _, visited := detector.indices[id]; !visited {
			detector.strongConnect(id)
		}
	}

	var cycles [][]string
	for _, scc := range detector.sccs {
		if len(scc) > 1 {
			cycles = append(cycles, scc)
		} else if len(scc) == 1 && contains(g.nodes[scc[0]].Dependencies, scc[0]) {
			cycles = append(cycles, scc)
		}
	}

	return cycles
}

func (d *cycleDetector) strongConnect(id string) {
	d.indices[id] = d.index
	d.lowlink[id] = d.index
	d.index++
	d.stack = append(d.stack, id)
	d.onStack[id] = true

	for _, dep := range d.graph.nodes[id].Dependencies {
		if _, exists := d.graph.nodes[dep]; !exists {
			continue
		}

		if _, visited := d.indices[dep]; !visited {
			d.strongConnect(dep)
			d.lowlink[id] = min(d.lowlink[id], d.lowlink[dep])
		} else if d.onStack[dep] {
			d.lowlink[id] = min(d.lowlink[id], d.indices[dep])
		}
	}

	if d.lowlink[id] == d.indices[id] {
		var scc []string
		for {
			n := len(d.stack) - 1
			w := d.stack[n]
			d.stack = d.stack[:n]
			d.onStack[w] = false
			scc = append(scc, w)
			if w == id {
				break
			}
		}
		d.sccs = append(d.sccs, scc)
	}
}

func (g *Graph) HasCycle() bool {
	return len(g.DetectCycles()) > 0
}

// OnCycle returns the set of nodes that sit on some cycle.
func (g *Graph) OnCycle() map[string]bool {
	marked := make(map[string]bool)
	for _, scc := range g.DetectCycles() {
		for _, id := range scc {
			marked[id] = true
		}
	}
	return marked
}

// FindCyclePath returns the first cycle reachable from start, beginning and
// ending with the node that closes it.
func (g *Graph) FindCyclePath(start string) []string {
	visited := make(map[string]bool)
	path := make([]string, 0)
	inPath := make(map[string]bool)

	var dfs func(id string) []string
	dfs = func(id string) []string {
		if inPath[id] {
			cyclePath := make([]string, 0)
			found := false
			for _, p := range path {
				if p == id {
					found = true
				}
				if found {
					cyclePath = append(cyclePath, p)
				}
			}
			return append(cyclePath, id)
		}

		if visited[id] {
			return nil
		}

		visited[id] = true
		path = append(path, id)
		inPath[id] = true

		node, exists := g.nodes[id]
		if exists {
			for _, dep := range node.Dependencies {
				if _, exists := g.nodes[dep]; !exists {
					continue
				}
				if cycle := dfs(dep); cycle != nil {
					return cycle
				}
			}
		}

		path = path[:len(path)-1]
		inPath[id] = false
		return nil
	}

	return dfs(start)
}

func (g *Graph) CyclePaths() [][]string {
	var paths [][]string
	for _, scc := range g.DetectCycles() {
		if path := g.FindCyclePath(scc[len(scc)-1]); path != nil {
			paths = append(paths, path)
		}
	}
	return paths
}
