package container

import (
	"slices"

	"github.com/danpasecinic/thimble/internal/ident"
)

// checkAliasCycle follows token providers from id through this container's
// own registry and fails if a target repeats. The walk stops at the first
// target that is unregistered here or registered with a non-token provider.
func (c *Container) checkAliasCycle(id ident.Identifier, p TokenProvider) error {
	path := []ident.Identifier{id}
	target, _ := p.Token.(ident.Identifier)

	for target != nil {
		seen := slices.Contains(path, target)
		path = append(path, target)
		if seen {
			return errCircularAlias(aliasNames(path))
		}

		next, ok := c.registry.Get(target)
		if !ok {
			return nil
		}
		tp, ok := next.(TokenProvider)
		if !ok {
			return nil
		}
		target, _ = tp.Token.(ident.Identifier)
	}
	return nil
}

func aliasNames(path []ident.Identifier) []string {
	names := make([]string, len(path))
	for i, id := range path {
		names[i] = id.String()
	}
	return names
}
