package thimble

import (
	"fmt"
	reflectPkg "reflect"

	"github.com/danpasecinic/thimble/internal/ident"
	"github.com/danpasecinic/thimble/internal/reflect"
)

const TagKey = "thimble"

// deferredHandle is implemented by every *Deferred[T] so a handle can be
// built for a field type known only at runtime.
type deferredHandle interface {
	bind(thunk ident.Thunk)
}

func (d *Deferred[T]) bind(thunk ident.Thunk) {
	d.thunk = thunk
}

// Autowire describes class from the `thimble` tags on the fields of the
// struct it constructs. The tag value names the dependency in catalog; a
// name missing from catalog is a string token, and an empty name is the
// field name. The lazy option injects a catalog class as a *Deferred[T]
// field. opts are applied after the tagged properties, so WithParams and
// WithLifetime still work.
//
//	type Handler struct {
//	    DB    *sql.DB                `thimble:"db"`
//	    Audit *thimble.Deferred[*Log] `thimble:"Log,lazy"`
//	}
func Autowire(store *MetadataStore, class *Class, catalog Catalog, opts ...DescribeOption) error {
	if class == nil {
		return errInvalidClass(fmt.Errorf("autowire target class is nil"))
	}

	fields, err := reflect.TaggedFields(class.Type(), TagKey)
	if err != nil {
		return errAutowire(class, err)
	}

	described := make([]DescribeOption, 0, len(fields)+len(opts))
	for _, field := range fields {
		id, err := autowireID(field, catalog)
		if err != nil {
			return errAutowire(class, err)
		}
		described = append(described, WithProperty(field.Name, id))
	}
	described = append(described, opts...)

	return store.Injectable(class, described...)
}

func MustAutowire(store *MetadataStore, class *Class, catalog Catalog, opts ...DescribeOption) {
	if err := Autowire(store, class, catalog, opts...); err != nil {
		panic(err)
	}
}

func autowireID(field reflect.TaggedField, catalog Catalog) (any, error) {
	name := field.Value
	if name == "" {
		name = field.Name
	}

	id, inCatalog := catalog[name]
	if !field.Has("lazy") {
		if inCatalog {
			return id, nil
		}
		return StringToken(name), nil
	}

	class, ok := id.(*Class)
	if !inCatalog || !ok {
		return nil, fmt.Errorf("field %s: lazy dependency %q is not a class in the catalog", field.Name, name)
	}

	handle := field.Type
	if handle.Kind() != reflectPkg.Ptr {
		return nil, fmt.Errorf("field %s: lazy dependency needs a *Deferred field, got %s", field.Name, handle)
	}
	if _, ok := reflectPkg.New(handle.Elem()).Interface().(deferredHandle); !ok {
		return nil, fmt.Errorf("field %s: lazy dependency needs a *Deferred field, got %s", field.Name, handle)
	}

	return ident.NewLazyRef(
		func() *Class { return class },
		func(thunk ident.Thunk) any {
			d := reflectPkg.New(handle.Elem()).Interface()
			d.(deferredHandle).bind(thunk)
			return d
		},
	), nil
}

func errAutowire(class *Class, cause error) *Error {
	return newError(
		ErrCodeInvalidClass,
		fmt.Sprintf("cannot autowire class '%s'", class.Name()),
		cause,
	).WithService(class.Name())
}
