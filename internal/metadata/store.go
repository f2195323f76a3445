// Package metadata holds the declared dependency shape of classes. It is
// written by whatever collects the declarations and only read by the
// resolution engine.
package metadata

import (
	"errors"
	"fmt"

	"github.com/danpasecinic/thimble/internal/ident"
	"github.com/danpasecinic/thimble/internal/scope"
)

var (
	ErrDuplicate = errors.New("metadata already defined")
	ErrNilClass  = errors.New("metadata target class is nil")
)

// Property is a named field to inject after construction.
type Property struct {
	Name string
	ID   any
}

// Metadata is the injectable shape of one class. Params and property IDs
// are kept as declared, so a nil entry records a dependency that was not
// yet initialised when it was collected.
type Metadata struct {
	Lifetime   scope.Lifetime
	Params     []any
	Properties []Property
}

type Store struct {
	entries map[*ident.Class]Metadata
	order   []*ident.Class
}

func New() *Store {
	return &Store{
		entries: make(map[*ident.Class]Metadata),
	}
}

// Define records the shape of class. Entries are append-only.
func (s *Store) Define(class *ident.Class, md Metadata) error {
	if class == nil {
		return ErrNilClass
	}
	if _, exists := s.entries[class]; exists {
		return fmt.Errorf("%w for class %s", ErrDuplicate, class.Name())
	}

	params := make([]any, len(md.Params))
	copy(params, md.Params)
	props := make([]Property, len(md.Properties))
	copy(props, md.Properties)

	s.entries[class] = Metadata{
		Lifetime:   md.Lifetime,
		Params:     params,
		Properties: props,
	}
	s.order = append(s.order, class)
	return nil
}

func (s *Store) Lookup(class *ident.Class) (Metadata, bool) {
	md, ok := s.entries[class]
	return md, ok
}

func (s *Store) Has(class *ident.Class) bool {
	_, ok := s.entries[class]
	return ok
}

// Classes lists described classes in definition order.
func (s *Store) Classes() []*ident.Class {
	classes := make([]*ident.Class, len(s.order))
	copy(classes, s.order)
	return classes
}

func (s *Store) Len() int {
	return len(s.entries)
}

func (s *Store) Reset() {
	s.entries = make(map[*ident.Class]Metadata)
	s.order = nil
}
