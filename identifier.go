package thimble

import (
	"github.com/danpasecinic/thimble/internal/ident"
)

// Identifier is any key a container can be asked to resolve. Plain Go
// strings are accepted wherever an identifier is expected and are treated
// as StringToken.
type Identifier = ident.Identifier

type (
	StringToken = ident.StringToken
	// Symbol is unique per NewSymbol call; the description is informative.
	Symbol = ident.Symbol
	// Token is an opaque identity-compared key labelled for diagnostics.
	Token = ident.Token
	// Class is a nominal reference to a constructible type.
	Class = ident.Class
	// LazyRef defers a class until the handed-out Deferred is read.
	LazyRef = ident.LazyRef
	// EagerRef defers reading a class variable until resolution reaches it.
	EagerRef = ident.EagerRef
)

func NewSymbol(description string) *Symbol {
	return ident.NewSymbol(description)
}

func NewToken(label string) *Token {
	return ident.NewToken(label)
}

// Ref returns an eager reference to the class target yields. Use it when a
// class variable is declared after the metadata that mentions it.
func Ref(target func() *Class) *EagerRef {
	return ident.NewEagerRef(target)
}

// Lazy returns a reference that is injected as a *Deferred[T]. The class is
// resolved, with a fresh top-level resolution, on the first Get.
func Lazy[T any](target func() *Class) *LazyRef {
	return ident.NewLazyRef(
		target, func(thunk ident.Thunk) any {
			return &Deferred[T]{thunk: thunk}
		},
	)
}
