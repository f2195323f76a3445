// Package graph is a static snapshot of the dependencies a container
// forest declares. It is built for inspection and never consulted during
// resolution.
package graph

// Node is one identifier in the snapshot.
type Node struct {
	ID       string
	Kind     string
	Lifetime string
	Owner    int
	// Dependencies are resolved while the node is built.
	Dependencies []string
	// Deferred are lazy references, resolved only on first use.
	Deferred []string
}

type Graph struct {
	nodes map[string]*Node
	order []string
}

func New() *Graph {
	return &Graph{
		nodes: make(map[string]*Node),
	}
}

// AddNode inserts node, replacing any node with the same ID.
func (g *Graph) AddNode(node Node) {
	if _, exists := g.nodes[node.ID]; !exists {
		g.order = append(g.order, node.ID)
	}
	n := node
	n.Dependencies = clone(node.Dependencies)
	n.Deferred = clone(node.Deferred)
	g.nodes[node.ID] = &n
}

func (g *Graph) HasNode(id string) bool {
	_, exists := g.nodes[id]
	return exists
}

func (g *Graph) Node(id string) (Node, bool) {
	node, exists := g.nodes[id]
	if !exists {
		return Node{}, false
	}
	n := *node
	n.Dependencies = clone(node.Dependencies)
	n.Deferred = clone(node.Deferred)
	return n, true
}

func (g *Graph) Dependencies(id string) []string {
	node, exists := g.nodes[id]
	if !exists {
		return nil
	}
	return clone(node.Dependencies)
}

// Dependents lists the nodes that depend on id, eagerly or lazily.
func (g *Graph) Dependents(id string) []string {
	var dependents []string
	for _, nodeID := range g.order {
		node := g.nodes[nodeID]
		if contains(node.Dependencies, id) || contains(node.Deferred, id) {
			dependents = append(dependents, nodeID)
		}
	}
	return dependents
}

// Nodes lists node IDs in insertion order.
func (g *Graph) Nodes() []string {
	return clone(g.order)
}

func (g *Graph) Size() int {
	return len(g.nodes)
}

// Validate returns dependencies that have no node of their own.
func (g *Graph) Validate() []string {
	var missing []string
	seen := make(map[string]bool)

	for _, id := range g.order {
		node := g.nodes[id]
		for _, deps := range [][]string{node.Dependencies, node.Deferred} {
			for _, dep := range deps {
				if _, exists := g.nodes[dep]; !exists && !seen[dep] {
					missing = append(missing, dep)
					seen[dep] = true
				}
			}
		}
	}

	return missing
}

func clone(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

func contains(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
