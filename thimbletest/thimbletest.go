// Package thimbletest wraps a container with helpers that fail the test
// instead of returning errors.
package thimbletest

import (
	"context"

	"github.com/danpasecinic/thimble"
)

type TB interface {
	Helper()
	Fatal(args ...any)
	Fatalf(format string, args ...any)
	Cleanup(f func())
}

type TestContainer struct {
	*thimble.Container
	tb TB
}

// New returns a root container that is disposed when the test ends.
func New(tb TB, opts ...thimble.Option) *TestContainer {
	tb.Helper()

	return wrap(tb, thimble.New(opts...))
}

func wrap(tb TB, c *thimble.Container) *TestContainer {
	tc := &TestContainer{
		Container: c,
		tb:        tb,
	}

	tb.Cleanup(
		func() {
			if c.Disposed() {
				return
			}
			if err := c.Dispose(context.Background()); err != nil {
				tb.Fatalf("failed to dispose container: %v", err)
			}
		},
	)

	return tc
}

// Child creates a child container that is disposed when the test ends,
// before its parent.
func (tc *TestContainer) Child() *TestContainer {
	tc.tb.Helper()

	child, err := tc.CreateChildContainer()
	if err != nil {
		tc.tb.Fatalf("failed to create child container: %v", err)
	}
	return wrap(tc.tb, child)
}

func (tc *TestContainer) RequireRegister(id any, provider any) {
	tc.tb.Helper()

	if err := tc.Register(id, provider); err != nil {
		tc.tb.Fatalf("failed to register %v: %v", id, err)
	}
}

func (tc *TestContainer) RequireDescribe(class *thimble.Class, opts ...thimble.DescribeOption) {
	tc.tb.Helper()

	if err := tc.Metadata().Injectable(class, opts...); err != nil {
		tc.tb.Fatalf("failed to describe %s: %v", class, err)
	}
}

func (tc *TestContainer) RequireResolve(id any) any {
	tc.tb.Helper()

	v, err := tc.Container.Resolve(id)
	if err != nil {
		tc.tb.Fatalf("failed to resolve %v: %v", id, err)
	}
	return v
}

func (tc *TestContainer) RequireDispose(ctx context.Context) {
	tc.tb.Helper()

	if err := tc.Dispose(ctx); err != nil {
		tc.tb.Fatalf("failed to dispose container: %v", err)
	}
}

func (tc *TestContainer) RequireValidate() {
	tc.tb.Helper()

	if err := tc.Validate(); err != nil {
		tc.tb.Fatalf("container validation failed: %v", err)
	}
}

// Replace overrides id with a constant on this container only.
func Replace(tc *TestContainer, id any, value any) {
	tc.tb.Helper()

	if err := tc.Register(id, thimble.UseValue(value)); err != nil {
		tc.tb.Fatalf("failed to replace %v: %v", id, err)
	}
}

func Resolve[T any](tc *TestContainer, id any) T {
	tc.tb.Helper()

	v, err := thimble.Get[T](tc.Container, id)
	if err != nil {
		tc.tb.Fatalf("failed to resolve %v: %v", id, err)
	}
	return v
}

func AssertHas(tc *TestContainer, id any) {
	tc.tb.Helper()

	ok, err := tc.Has(id)
	if err != nil {
		tc.tb.Fatalf("failed to check %v: %v", id, err)
	}
	if !ok {
		tc.tb.Fatalf("expected container to have %v", id)
	}
}

func AssertNotHas(tc *TestContainer, id any) {
	tc.tb.Helper()

	ok, err := tc.Has(id)
	if err != nil {
		tc.tb.Fatalf("failed to check %v: %v", id, err)
	}
	if ok {
		tc.tb.Fatalf("expected container to not have %v", id)
	}
}
