package graph

import "errors"

var ErrCycleDetected = errors.New("cycle detected in graph")

// ResolutionOrder lists target and everything it eagerly depends on, each
// after its own dependencies.
func (g *Graph) ResolutionOrder(target string) ([]string, error) {
	if !g.HasNode(target) {
		return []string{target}, nil
	}

	visited := make(map[string]bool)
	visiting := make(map[string]bool)
	var order []string

	var visit func(id string) error
	visit = func(id string) error {
		if visiting[id] {
			return ErrCycleDetected
		}
		if visited[id] {
			return nil
		}

		visiting[id] = true

		for _, dep := range g.nodes[id].Dependencies {
			if _, exists := g.nodes[dep]; !exists {
				continue
			}
			if err := visit(dep); err != nil {
				return err
			}
		}

		visiting[id] = false
		visited[id] = true
		order = append(order, id)
		return nil
	}

	if err := visit(target); err != nil {
		return nil, err
	}

	return order, nil
}
