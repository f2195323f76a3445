package thimble

import (
	"fmt"
	"sync"

	"github.com/danpasecinic/thimble/internal/container"
	"github.com/danpasecinic/thimble/internal/ident"
	"github.com/danpasecinic/thimble/internal/reflect"
)

// Resolver is what factories receive: the container that is resolving.
// *Container satisfies it as well.
type Resolver = container.Resolver

var _ Resolver = (*Container)(nil)

// Get resolves id and asserts the result to T.
func Get[T any](r Resolver, id any) (T, error) {
	var zero T

	instance, err := r.Resolve(id)
	if err != nil {
		return zero, err
	}

	typed, ok := instance.(T)
	if !ok {
		return zero, errTypeMismatch(describeID(id), reflect.TypeName[T](), instance)
	}
	return typed, nil
}

func MustGet[T any](r Resolver, id any) T {
	v, err := Get[T](r, id)
	if err != nil {
		panic(err)
	}
	return v
}

// TryGet reports only whether id resolved to a T.
func TryGet[T any](r Resolver, id any) (T, bool) {
	v, err := Get[T](r, id)
	return v, err == nil
}

func describeID(id any) string {
	if key, ok := ident.Of(id); ok {
		return key.String()
	}
	return fmt.Sprintf("%v", id)
}

// Deferred is injected in place of a class referenced through Lazy. The
// first Get resolves the class and every later call returns that outcome.
type Deferred[T any] struct {
	thunk ident.Thunk
	once  sync.Once
	value T
	err   error
}

func (d *Deferred[T]) Get() (T, error) {
	d.once.Do(
		func() {
			instance, err := d.thunk()
			if err != nil {
				d.err = err
				return
			}
			typed, ok := instance.(T)
			if !ok {
				d.err = errTypeMismatch("deferred", reflect.TypeName[T](), instance)
				return
			}
			d.value = typed
		},
	)
	return d.value, d.err
}

func (d *Deferred[T]) MustGet() T {
	v, err := d.Get()
	if err != nil {
		panic(err)
	}
	return v
}
