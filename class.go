package thimble

import (
	"github.com/danpasecinic/thimble/internal/ident"
	"github.com/danpasecinic/thimble/internal/reflect"
)

type ClassOption func(*classConfig)

type classConfig struct {
	name string
}

// WithName overrides the class name used in diagnostics. It defaults to the
// constructed type's name.
func WithName(name string) ClassOption {
	return func(cfg *classConfig) {
		cfg.name = name
	}
}

// TryNewClass wraps a constructor, a function returning a value or a value
// and an error.
func TryNewClass(ctor any, opts ...ClassOption) (*Class, error) {
	cfg := &classConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	class, err := ident.NewClass(ctor, cfg.name)
	if err != nil {
		return nil, errInvalidClass(err)
	}
	return class, nil
}

// NewClass is TryNewClass that panics on an invalid constructor.
func NewClass(ctor any, opts ...ClassOption) *Class {
	class, err := TryNewClass(ctor, opts...)
	if err != nil {
		panic(err)
	}
	return class
}

// ClassOf returns a parameterless class for T whose instances are
// allocated, new(S) when T is *S, and filled through property injection.
func ClassOf[T any](opts ...ClassOption) *Class {
	cfg := &classConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return ident.AllocClass(reflect.TypeFor[T](), cfg.name)
}
