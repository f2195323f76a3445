package metadata

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/danpasecinic/thimble/internal/ident"
	"github.com/danpasecinic/thimble/internal/scope"
)

const stringPrefix = "string:"

var ErrManifest = errors.New("invalid metadata manifest")

// Catalog maps the names used in a manifest to identifiers.
type Catalog map[string]any

type manifest struct {
	Classes []classEntry `yaml:"classes"`
}

type classEntry struct {
	Name       string          `yaml:"name"`
	Lifetime   scope.Lifetime  `yaml:"lifetime"`
	Params     []string        `yaml:"params"`
	Properties []propertyEntry `yaml:"properties"`
}

type propertyEntry struct {
	Name string `yaml:"name"`
	ID   string `yaml:"id"`
}

// LoadManifest reads class descriptions from YAML and defines them in s.
// Names resolve through catalog; a "string:" prefix denotes a literal
// string token. Nothing is defined unless the whole manifest is valid.
func (s *Store) LoadManifest(r io.Reader, catalog Catalog) error {
	var m manifest
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: %w", ErrManifest, err)
	}

	classes := make([]*ident.Class, 0, len(m.Classes))
	shapes := make([]Metadata, 0, len(m.Classes))
	seen := make(map[*ident.Class]bool, len(m.Classes))

	for _, entry := range m.Classes {
		class, err := catalog.class(entry.Name)
		if err != nil {
			return err
		}
		if seen[class] || s.Has(class) {
			return fmt.Errorf("%w for class %s", ErrDuplicate, class.Name())
		}
		seen[class] = true

		md := Metadata{Lifetime: entry.Lifetime}
		for _, name := range entry.Params {
			id, err := catalog.identifier(name)
			if err != nil {
				return fmt.Errorf("%w: class %s: %w", ErrManifest, entry.Name, err)
			}
			md.Params = append(md.Params, id)
		}
		for _, prop := range entry.Properties {
			if prop.Name == "" {
				return fmt.Errorf("%w: class %s: property without name", ErrManifest, entry.Name)
			}
			id, err := catalog.identifier(prop.ID)
			if err != nil {
				return fmt.Errorf("%w: class %s: %w", ErrManifest, entry.Name, err)
			}
			md.Properties = append(md.Properties, Property{Name: prop.Name, ID: id})
		}

		classes = append(classes, class)
		shapes = append(shapes, md)
	}

	for i, class := range classes {
		if err := s.Define(class, shapes[i]); err != nil {
			return err
		}
	}
	return nil
}

func (c Catalog) class(name string) (*ident.Class, error) {
	v, ok := c[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown class %q", ErrManifest, name)
	}
	class, ok := v.(*ident.Class)
	if !ok || class == nil {
		return nil, fmt.Errorf("%w: %q is not a class", ErrManifest, name)
	}
	return class, nil
}

func (c Catalog) identifier(name string) (any, error) {
	if literal, ok := strings.CutPrefix(name, stringPrefix); ok {
		return ident.StringToken(literal), nil
	}
	v, ok := c[name]
	if !ok {
		return nil, fmt.Errorf("unknown identifier %q", name)
	}
	if _, ok := ident.Of(v); !ok {
		return nil, fmt.Errorf("%q is not an identifier", name)
	}
	return v, nil
}
