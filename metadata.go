package thimble

import (
	"errors"
	"io"

	"github.com/danpasecinic/thimble/internal/metadata"
)

// Metadata is the injectable shape of a class: its lifetime, the
// identifiers of its constructor parameters in order, and the properties
// set after construction.
type Metadata = metadata.Metadata

type Property = metadata.Property

// Catalog names the identifiers a manifest may refer to.
type Catalog = metadata.Catalog

// MetadataStore collects class shapes for a container forest. It is
// append-only; only Reset on the root container clears it.
type MetadataStore struct {
	store *metadata.Store
}

func NewMetadataStore() *MetadataStore {
	return &MetadataStore{store: metadata.New()}
}

type DescribeOption func(*Metadata)

func WithLifetime(l Lifetime) DescribeOption {
	return func(md *Metadata) {
		md.Lifetime = l
	}
}

// WithParams declares the identifiers of the constructor parameters. A nil
// entry stands for a class variable that was still unset; resolving it
// reports a likely declaration cycle.
func WithParams(ids ...any) DescribeOption {
	return func(md *Metadata) {
		md.Params = append(md.Params, ids...)
	}
}

// WithProperty declares an exported field to inject after construction.
func WithProperty(name string, id any) DescribeOption {
	return func(md *Metadata) {
		md.Properties = append(md.Properties, Property{Name: name, ID: id})
	}
}

// Injectable describes class. Describing a class twice fails.
func (s *MetadataStore) Injectable(class *Class, opts ...DescribeOption) error {
	var md Metadata
	for _, opt := range opts {
		opt(&md)
	}
	return s.define(class, md)
}

func (s *MetadataStore) MustInjectable(class *Class, opts ...DescribeOption) {
	if err := s.Injectable(class, opts...); err != nil {
		panic(err)
	}
}

func (s *MetadataStore) define(class *Class, md Metadata) error {
	err := s.store.Define(class, md)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, metadata.ErrNilClass):
		return errInvalidClass(err)
	default:
		return errDuplicateMetadata(class.Name(), err)
	}
}

func (s *MetadataStore) Lookup(class *Class) (Metadata, bool) {
	return s.store.Lookup(class)
}

func (s *MetadataStore) Has(class *Class) bool {
	return s.store.Has(class)
}

// Classes lists described classes in the order they were described.
func (s *MetadataStore) Classes() []*Class {
	return s.store.Classes()
}

func (s *MetadataStore) Len() int {
	return s.store.Len()
}

// LoadManifest describes the classes listed in a YAML manifest:
//
//	classes:
//	  - name: Database
//	    lifetime: singleton
//	    params: [Config]
//	    properties:
//	      - name: Logger
//	        id: "string:logger"
//
// Names resolve through catalog; a "string:" prefix is a literal string
// token. The manifest is applied entirely or not at all.
func (s *MetadataStore) LoadManifest(r io.Reader, catalog Catalog) error {
	err := s.store.LoadManifest(r, catalog)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, metadata.ErrDuplicate):
		return errDuplicateMetadata("manifest", err)
	default:
		return errInvalidManifest(err)
	}
}
