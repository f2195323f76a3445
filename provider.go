package thimble

import (
	"github.com/danpasecinic/thimble/internal/container"
)

type Provider = container.Provider

// ValueProvider always yields Value. A nil Value is rejected.
type ValueProvider = container.ValueProvider

// FactoryProvider is called on every resolution. Lifetimes never apply to
// it.
type FactoryProvider = container.FactoryProvider

// ClassProvider resolves Class as if it were requested directly.
type ClassProvider = container.ClassProvider

// TokenProvider aliases another identifier.
type TokenProvider = container.TokenProvider

func UseValue(v any) ValueProvider {
	return ValueProvider{Value: v}
}

// UseFactory adapts a typed factory.
func UseFactory[T any](fn func(r Resolver) (T, error)) FactoryProvider {
	return FactoryProvider{
		Factory: func(r container.Resolver) (any, error) {
			v, err := fn(r)
			if err != nil {
				return nil, err
			}
			return v, nil
		},
	}
}

func UseClass(class *Class) ClassProvider {
	return ClassProvider{Class: class}
}

func UseToken(id any) TokenProvider {
	return TokenProvider{Token: id}
}
