package container

import (
	"github.com/danpasecinic/thimble/internal/ident"
)

type entryKind uint8

const (
	kindClass entryKind = iota
	kindProvider
)

// link is one node of the resolution chain. Chains are persistent: pushing
// returns a new head and never mutates the tail, so sibling branches that
// share a prefix cannot observe each other.
type link struct {
	id   ident.Identifier
	kind entryKind
	done bool
	next *link
}

// role names the slot a dependency is being resolved for.
type role struct {
	parent   *ident.Class
	index    int
	property string
}

// resolution is the state of one top-level Resolve call.
type resolution struct {
	chain *link
	depth int
	cache map[ident.Identifier]any
	role  *role
}

func newResolution() *resolution {
	return &resolution{
		cache: make(map[ident.Identifier]any),
	}
}

func (r *resolution) push(id ident.Identifier, kind entryKind) (*resolution, *link) {
	head := &link{id: id, kind: kind, next: r.chain}
	return &resolution{
		chain: head,
		depth: r.depth + 1,
		cache: r.cache,
		role:  r.role,
	}, head
}

func (r *resolution) withParam(parent *ident.Class, index int) *resolution {
	return r.withRole(&role{parent: parent, index: index})
}

func (r *resolution) withProperty(parent *ident.Class, name string) *resolution {
	return r.withRole(&role{parent: parent, property: name})
}

func (r *resolution) withRole(ro *role) *resolution {
	return &resolution{
		chain: r.chain,
		depth: r.depth,
		cache: r.cache,
		role:  ro,
	}
}

// active reports whether id is already being resolved in the given role
// somewhere up the chain.
func (r *resolution) active(id ident.Identifier, kind entryKind) bool {
	for l := r.chain; l != nil; l = l.next {
		if !l.done && l.kind == kind && l.id == id {
			return true
		}
	}
	return false
}

// path renders the chain from the top-level request down to the head.
func (r *resolution) path() []string {
	names := make([]string, r.depth)
	i := r.depth - 1
	for l := r.chain; l != nil; l = l.next {
		names[i] = l.id.String()
		i--
	}
	return names
}
