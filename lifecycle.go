package thimble

import (
	"github.com/danpasecinic/thimble/internal/container"
)

// Instances cached by a container are disposed with it when they implement
// one of these interfaces. A returned channel is awaited until it yields a
// value or is closed; errors and panics are logged and dropped.
type (
	Disposer       = container.Disposer
	ErrorDisposer  = container.ErrorDisposer
	SignalDisposer = container.SignalDisposer
	AsyncDisposer  = container.AsyncDisposer
)

func IsDisposable(v any) bool {
	return container.IsDisposable(v)
}

// DisposeFunc adapts a function to ErrorDisposer.
type DisposeFunc func() error

func (f DisposeFunc) Dispose() error {
	return f()
}
