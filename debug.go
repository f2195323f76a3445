package thimble

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/danpasecinic/thimble/internal/container"
	"github.com/danpasecinic/thimble/internal/graph"
	"github.com/danpasecinic/thimble/internal/ident"
)

// ownerMetadata marks a node known only from its described shape.
const ownerMetadata = -1

type GraphInfo struct {
	Services []ServiceInfo
}

// ServiceInfo describes one identifier visible from a container. Owner is
// the distance to the container holding the registration, or -1 for a
// class that is only described.
type ServiceInfo struct {
	Key          string
	Kind         string
	Lifetime     string
	Owner        int
	Dependencies []string
	Deferred     []string
	Dependents   []string
	Cached       bool
	OnCycle      bool
}

// Graph is a static view of what c can resolve: its registrations, those of
// its ancestors it does not shadow, and every described class. A disposed
// container has an empty graph.
func (c *Container) Graph() GraphInfo {
	if c.Disposed() {
		return GraphInfo{}
	}

	g, cached := c.dependencyGraph()
	onCycle := g.OnCycle()

	ids := g.Nodes()
	services := make([]ServiceInfo, 0, len(ids))
	for _, id := range ids {
		node, _ := g.Node(id)
		services = append(
			services, ServiceInfo{
				Key:          id,
				Kind:         node.Kind,
				Lifetime:     node.Lifetime,
				Owner:        node.Owner,
				Dependencies: node.Dependencies,
				Deferred:     node.Deferred,
				Dependents:   g.Dependents(id),
				Cached:       cached[id],
				OnCycle:      onCycle[id],
			},
		)
	}

	return GraphInfo{Services: services}
}

// Validate reports dependencies that are neither registered nor
// constructible, and static cycles that no lazy reference breaks.
func (c *Container) Validate() error {
	if c.Disposed() {
		return container.DisposedError()
	}

	g, _ := c.dependencyGraph()

	if missing := g.Validate(); len(missing) > 0 {
		return newError(
			ErrCodeUnregisteredToken,
			"missing dependencies: "+strings.Join(missing, ", "),
			nil,
		)
	}

	if g.HasCycle() {
		paths := g.CyclePaths()
		return newError(
			ErrCodeCircularDependency,
			"Discovery of circular dependencies: "+strings.Join(paths[0], " -> "),
			nil,
		).WithStack(paths[0])
	}

	return nil
}

// ResolutionOrder lists the identifiers id eagerly depends on, each after
// its own dependencies, ending with id.
func (c *Container) ResolutionOrder(id any) ([]string, error) {
	if c.Disposed() {
		return nil, container.DisposedError()
	}

	key, ok := ident.Of(id)
	if !ok {
		return nil, newError(ErrCodeUnrecognizedIdentifier, "unrecognized service identifier", nil)
	}

	g, _ := c.dependencyGraph()
	order, err := g.ResolutionOrder(key.String())
	if err != nil {
		return nil, newError(ErrCodeCircularDependency, "cannot order dependencies of "+key.String(), err)
	}
	return order, nil
}

func (c *Container) dependencyGraph() (*graph.Graph, map[string]bool) {
	g := graph.New()
	cached := make(map[string]bool)
	seen := make(map[ident.Identifier]bool)
	var referenced []*ident.Class

	depth := 0
	for cur := c.internal; cur != nil; cur = cur.Parent() {
		for _, key := range cur.Keys() {
			if seen[key] {
				continue
			}
			seen[key] = true

			p, _, _ := cur.Lookup(key)
			node := graph.Node{ID: key.String(), Kind: p.Kind(), Owner: depth}
			switch p := p.(type) {
			case container.ClassProvider:
				node.Dependencies = []string{p.Class.String()}
				referenced = append(referenced, p.Class)
			case container.TokenProvider:
				target, _ := ident.Of(p.Token)
				node.Dependencies = []string{target.String()}
				if class := classOf(target); class != nil {
					referenced = append(referenced, class)
				}
			}
			g.AddNode(node)
		}
		depth++
	}

	store := c.config.metadata
	for _, class := range store.Classes() {
		if seen[class] {
			continue
		}
		seen[class] = true

		md, _ := store.Lookup(class)
		node := graph.Node{
			ID:       class.String(),
			Kind:     "class",
			Lifetime: md.Lifetime.String(),
			Owner:    ownerMetadata,
		}

		deps := make([]any, 0, len(md.Params)+len(md.Properties))
		deps = append(deps, md.Params...)
		for _, prop := range md.Properties {
			deps = append(deps, prop.ID)
		}

		for _, dep := range deps {
			key, ok := ident.Of(dep)
			if !ok {
				node.Dependencies = append(node.Dependencies, "<invalid>")
				continue
			}
			if class := classOf(key); class != nil {
				referenced = append(referenced, class)
			}
			if _, lazy := key.(*ident.LazyRef); lazy {
				node.Deferred = append(node.Deferred, key.String())
			} else {
				node.Dependencies = append(node.Dependencies, key.String())
			}
		}
		g.AddNode(node)
	}

	for _, class := range referenced {
		if seen[class] || class.Required() > 0 {
			continue
		}
		seen[class] = true
		g.AddNode(graph.Node{ID: class.String(), Kind: "class", Owner: ownerMetadata})
	}

	for key := range seen {
		for cur := c.internal; cur != nil; cur = cur.Parent() {
			if _, ok := cur.Cached(key); ok {
				cached[key.String()] = true
				break
			}
		}
	}

	return g, cached
}

func classOf(id ident.Identifier) *ident.Class {
	switch v := id.(type) {
	case *ident.Class:
		return v
	case *ident.LazyRef:
		return v.Class()
	case *ident.EagerRef:
		return v.Class()
	default:
		return nil
	}
}

func (c *Container) PrintGraph() {
	c.FprintGraph(os.Stdout)
}

func (c *Container) FprintGraph(w io.Writer) {
	info := c.Graph()

	if len(info.Services) == 0 {
		_, _ = fmt.Fprintln(w, "(empty container)")
		return
	}

	for _, svc := range info.Services {
		status := "○"
		if svc.Cached {
			status = "●"
		}
		if svc.OnCycle {
			status += "!"
		}

		deps := make([]string, 0, len(svc.Dependencies)+len(svc.Deferred))
		deps = append(deps, svc.Dependencies...)
		for _, d := range svc.Deferred {
			deps = append(deps, "~"+d)
		}

		if len(deps) == 0 {
			_, _ = fmt.Fprintf(w, "%s %s\n", status, svc.Key)
		} else {
			_, _ = fmt.Fprintf(w, "%s %s ← %s\n", status, svc.Key, strings.Join(deps, ", "))
		}
	}
}

func (c *Container) SprintGraph() string {
	var sb strings.Builder
	c.FprintGraph(&sb)
	return sb.String()
}

func (c *Container) FprintGraphDOT(w io.Writer) {
	info := c.Graph()

	_, _ = fmt.Fprintln(w, "digraph dependencies {")
	_, _ = fmt.Fprintln(w, "  rankdir=LR;")
	_, _ = fmt.Fprintln(w, "  node [shape=box];")

	for _, svc := range info.Services {
		style := ""
		switch {
		case svc.OnCycle:
			style = ", style=filled, fillcolor=salmon"
		case svc.Cached:
			style = ", style=filled, fillcolor=lightblue"
		}
		_, _ = fmt.Fprintf(w, "  %q [label=%q%s];\n", svc.Key, svc.Key, style)
	}

	_, _ = fmt.Fprintln(w)

	for _, svc := range info.Services {
		for _, dep := range svc.Dependencies {
			_, _ = fmt.Fprintf(w, "  %q -> %q;\n", svc.Key, dep)
		}
		for _, dep := range svc.Deferred {
			_, _ = fmt.Fprintf(w, "  %q -> %q [style=dashed];\n", svc.Key, dep)
		}
	}

	_, _ = fmt.Fprintln(w, "}")
}

func (c *Container) SprintGraphDOT() string {
	var sb strings.Builder
	c.FprintGraphDOT(&sb)
	return sb.String()
}

// FprintRegistry renders the identifiers visible from c as a table.
func (c *Container) FprintRegistry(w io.Writer) {
	info := c.Graph()

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("container " + c.ID())
	t.AppendHeader(table.Row{"Identifier", "Kind", "Lifetime", "Owner", "Cached"})
	for _, svc := range info.Services {
		t.AppendRow(table.Row{svc.Key, svc.Kind, svc.Lifetime, ownerLabel(svc.Owner), svc.Cached})
	}
	style := table.StyleLight
	style.Options.DrawBorder = false
	t.SetStyle(style)
	t.Render()
}

func (c *Container) SprintRegistry() string {
	var sb strings.Builder
	c.FprintRegistry(&sb)
	return sb.String()
}

func ownerLabel(depth int) string {
	switch depth {
	case ownerMetadata:
		return "metadata"
	case 0:
		return "self"
	case 1:
		return "parent"
	default:
		return fmt.Sprintf("ancestor+%d", depth)
	}
}
