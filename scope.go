package thimble

import (
	"github.com/danpasecinic/thimble/internal/scope"
)

// Lifetime governs instance reuse and which container owns, and disposes,
// an instance. The zero value is Transient.
type Lifetime = scope.Lifetime

const (
	Transient             = scope.Transient
	Singleton             = scope.Singleton
	PerContainer          = scope.PerContainer
	PerContainerInherited = scope.PerContainerInherited
	PerResolution         = scope.PerResolution
)

// ParseLifetime accepts the names Lifetime.String produces as well as the
// long forms perContainer, perContainerInherited and perResolution.
func ParseLifetime(s string) (Lifetime, error) {
	return scope.Parse(s)
}
