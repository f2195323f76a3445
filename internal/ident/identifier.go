// Package ident defines the service identifiers a container can be asked
// to resolve.
package ident

import (
	"github.com/danpasecinic/thimble/internal/reflect"
)

// Identifier is any key usable to request an instance. The set of
// implementations is closed.
type Identifier interface {
	String() string
	identifier()
}

// StringToken is a plain string key. Strings passed to the public API are
// normalised to it.
type StringToken string

func (s StringToken) String() string {
	return string(s)
}

func (StringToken) identifier() {}

// Symbol is a unique key: two symbols with the same description are still
// different identifiers.
type Symbol struct {
	description string
}

func NewSymbol(description string) *Symbol {
	return &Symbol{description: description}
}

func (s *Symbol) Description() string {
	return s.description
}

func (s *Symbol) String() string {
	return "Symbol(" + s.description + ")"
}

func (*Symbol) identifier() {}

// Token is an opaque, identity-compared key whose label only serves
// diagnostics.
type Token struct {
	label string
}

func NewToken(label string) *Token {
	return &Token{label: label}
}

func (t *Token) Label() string {
	return t.label
}

func (t *Token) String() string {
	return "Token('" + t.label + "')"
}

func (*Token) identifier() {}

// Of normalises v into an Identifier. Typed nil pointers are rejected.
func Of(v any) (Identifier, bool) {
	switch id := v.(type) {
	case nil:
		return nil, false
	case string:
		return StringToken(id), true
	case Identifier:
		if reflect.IsNil(id) {
			return nil, false
		}
		return id, true
	default:
		return nil, false
	}
}
