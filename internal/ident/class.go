package ident

import (
	reflectPkg "reflect"

	"github.com/danpasecinic/thimble/internal/reflect"
)

// Class is a nominal reference to a constructible type. Identity is the
// pointer: two classes built from the same constructor are different
// identifiers.
type Class struct {
	name  string
	typ   reflectPkg.Type
	ctor  *reflect.Func
	alloc func() any
}

// NewClass wraps a constructor function. When name is empty the class is
// named after the constructor's result type.
func NewClass(ctor any, name string) (*Class, error) {
	fn, err := reflect.NewFunc(ctor)
	if err != nil {
		return nil, err
	}

	if name == "" {
		name = reflect.ShortName(fn.Out())
	}

	return &Class{
		name: name,
		typ:  fn.Out(),
		ctor: fn,
	}, nil
}

// AllocClass builds a class for t whose instances are allocated rather than
// constructed, so it takes no parameters.
func AllocClass(t reflectPkg.Type, name string) *Class {
	if name == "" {
		name = reflect.ShortName(t)
	}

	return &Class{
		name:  name,
		typ:   t,
		alloc: reflect.Allocator(t),
	}
}

func (c *Class) Name() string {
	return c.name
}

func (c *Class) String() string {
	return c.name
}

func (c *Class) Type() reflectPkg.Type {
	return c.typ
}

// Required is the number of constructor parameters with no default.
func (c *Class) Required() int {
	if c.ctor == nil {
		return 0
	}
	return c.ctor.Required()
}

// Params is the declared constructor parameter count.
func (c *Class) Params() int {
	if c.ctor == nil {
		return 0
	}
	return c.ctor.NumIn()
}

// Accepts reports whether n declared dependencies fit the constructor.
func (c *Class) Accepts(n int) bool {
	if c.ctor == nil {
		return n == 0
	}
	if n < c.ctor.Required() {
		return false
	}
	return c.ctor.Variadic() || n <= c.ctor.NumIn()
}

func (c *Class) New(args []any) (any, error) {
	if c.ctor == nil {
		return c.alloc(), nil
	}
	return c.ctor.Call(args)
}

func (*Class) identifier() {}
