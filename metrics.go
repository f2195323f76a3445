package thimble

import (
	"github.com/danpasecinic/thimble/internal/container"
)

// ResolveHook observes every top-level Resolve, including failures.
type ResolveHook = container.ResolveHook

// RegisterHook observes successful registrations with the provider kind.
type RegisterHook = container.RegisterHook

// DisposeHook observes a finished Dispose with the number of instances the
// container owned.
type DisposeHook = container.DisposeHook
