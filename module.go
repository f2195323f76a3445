package thimble

import (
	"fmt"
)

// Module bundles class descriptions and registrations under a name.
// Descriptions go to the forest's metadata store once; registrations are
// made on every container the module is applied to.
type Module struct {
	name          string
	descriptions  []description
	registrations []registration
	submodules    []*Module
	described     map[*MetadataStore]bool
}

type description struct {
	class *Class
	opts  []DescribeOption
}

type registration struct {
	id       any
	provider any
}

func NewModule(name string) *Module {
	return &Module{
		name:      name,
		described: make(map[*MetadataStore]bool),
	}
}

func (m *Module) Name() string {
	return m.name
}

// Describe adds the shape of class.
func (m *Module) Describe(class *Class, opts ...DescribeOption) *Module {
	m.descriptions = append(m.descriptions, description{class: class, opts: opts})
	return m
}

// Register adds a registration; see Container.Register.
func (m *Module) Register(id any, provider any) *Module {
	m.registrations = append(m.registrations, registration{id: id, provider: provider})
	return m
}

func (m *Module) Bind(id any, target any) *Module {
	return m.Register(id, TokenProvider{Token: target})
}

func (m *Module) Value(id any, value any) *Module {
	return m.Register(id, ValueProvider{Value: value})
}

// Include applies submodule before m.
func (m *Module) Include(submodule *Module) *Module {
	m.submodules = append(m.submodules, submodule)
	return m
}

func (m *Module) apply(c *Container) error {
	for _, sub := range m.submodules {
		if err := sub.apply(c); err != nil {
			return err
		}
	}

	store := c.Metadata()
	if !m.described[store] {
		for _, d := range m.descriptions {
			if err := store.Injectable(d.class, d.opts...); err != nil {
				return errModuleApplyFailed(m.name, err)
			}
		}
		m.described[store] = true
	}

	for i, r := range m.registrations {
		if err := c.Register(r.id, r.provider); err != nil {
			return errModuleApplyFailed(m.name, fmt.Errorf("registration #%d: %w", i, err))
		}
	}

	return nil
}

// Apply applies modules to c in order.
func (c *Container) Apply(modules ...*Module) error {
	for _, m := range modules {
		if err := m.apply(c); err != nil {
			return err
		}
		c.Logger().Debug("applied module", "module", m.name)
	}
	return nil
}
