package container

import (
	"github.com/danpasecinic/thimble/internal/ident"
)

// Resolver is the view of a container handed to factory providers.
type Resolver interface {
	Resolve(id any) (any, error)
	IsRegistered(id any, recursive bool) (bool, error)
}

// Provider is a registered recipe for producing a value. The set of
// implementations is closed.
type Provider interface {
	Kind() string
	provider()
}

// ValueProvider always yields Value.
type ValueProvider struct {
	Value any
}

func (ValueProvider) Kind() string { return "value" }
func (ValueProvider) provider()    {}

// FactoryProvider calls Factory on every resolution with the container that
// resolved it. Lifetimes do not apply.
type FactoryProvider struct {
	Factory func(Resolver) (any, error)
}

func (FactoryProvider) Kind() string { return "factory" }
func (FactoryProvider) provider()    {}

// ClassProvider resolves Class as if it had been requested directly, so a
// registration under the class itself still applies.
type ClassProvider struct {
	Class *ident.Class
}

func (ClassProvider) Kind() string { return "class" }
func (ClassProvider) provider()    {}

// TokenProvider redirects to the registration of Token.
type TokenProvider struct {
	Token any
}

func (TokenProvider) Kind() string { return "token" }
func (TokenProvider) provider()    {}

// normalizeProvider accepts the provider shapes Register understands. A bare
// class is shorthand for a ClassProvider. ok is false for anything else.
func normalizeProvider(p any) (Provider, bool) {
	switch v := p.(type) {
	case ValueProvider:
		if v.Value == nil {
			return nil, false
		}
		return v, true
	case *ValueProvider:
		if v == nil {
			return nil, false
		}
		return normalizeProvider(*v)
	case FactoryProvider:
		return v, v.Factory != nil
	case *FactoryProvider:
		if v == nil {
			return nil, false
		}
		return normalizeProvider(*v)
	case ClassProvider:
		return v, v.Class != nil
	case *ClassProvider:
		if v == nil {
			return nil, false
		}
		return normalizeProvider(*v)
	case TokenProvider:
		id, ok := ident.Of(v.Token)
		if !ok {
			return nil, false
		}
		return TokenProvider{Token: id}, true
	case *TokenProvider:
		if v == nil {
			return nil, false
		}
		return normalizeProvider(*v)
	case *ident.Class:
		if v == nil {
			return nil, false
		}
		return ClassProvider{Class: v}, true
	default:
		return nil, false
	}
}
