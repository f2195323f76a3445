package container

import (
	"github.com/danpasecinic/thimble/internal/ident"
)

// Registry maps identifiers to providers in registration order. It is owned
// by a single container and not safe for concurrent use.
type Registry struct {
	providers map[ident.Identifier]Provider
	order     []ident.Identifier
}

func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[ident.Identifier]Provider),
	}
}

func (r *Registry) Set(id ident.Identifier, p Provider) {
	if _, exists := r.providers[id]; !exists {
		r.order = append(r.order, id)
	}
	r.providers[id] = p
}

func (r *Registry) Get(id ident.Identifier) (Provider, bool) {
	p, ok := r.providers[id]
	return p, ok
}

func (r *Registry) Has(id ident.Identifier) bool {
	_, ok := r.providers[id]
	return ok
}

// Keys lists registered identifiers in first-registration order.
func (r *Registry) Keys() []ident.Identifier {
	keys := make([]ident.Identifier, len(r.order))
	copy(keys, r.order)
	return keys
}

func (r *Registry) Size() int {
	return len(r.providers)
}

func (r *Registry) Clear() {
	r.providers = make(map[ident.Identifier]Provider)
	r.order = nil
}

// Cache holds the instances a container owns.
type Cache struct {
	instances map[ident.Identifier]any
	order     []ident.Identifier
}

func NewCache() *Cache {
	return &Cache{
		instances: make(map[ident.Identifier]any),
	}
}

func (c *Cache) Get(id ident.Identifier) (any, bool) {
	v, ok := c.instances[id]
	return v, ok
}

func (c *Cache) Set(id ident.Identifier, v any) {
	if _, exists := c.instances[id]; !exists {
		c.order = append(c.order, id)
	}
	c.instances[id] = v
}

// Values lists cached instances in insertion order.
func (c *Cache) Values() []any {
	values := make([]any, 0, len(c.order))
	for _, id := range c.order {
		values = append(values, c.instances[id])
	}
	return values
}

func (c *Cache) Keys() []ident.Identifier {
	keys := make([]ident.Identifier, len(c.order))
	copy(keys, c.order)
	return keys
}

func (c *Cache) Size() int {
	return len(c.instances)
}

func (c *Cache) Clear() {
	c.instances = make(map[ident.Identifier]any)
	c.order = nil
}
