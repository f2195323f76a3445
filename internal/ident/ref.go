package ident

// Thunk performs a deferred top-level resolution.
type Thunk func() (any, error)

// LazyRef points at a class that is only resolved when the handle produced
// by Wrap is first dereferenced.
type LazyRef struct {
	target func() *Class
	wrap   func(Thunk) any
}

func NewLazyRef(target func() *Class, wrap func(Thunk) any) *LazyRef {
	return &LazyRef{target: target, wrap: wrap}
}

func (r *LazyRef) Class() *Class {
	if r.target == nil {
		return nil
	}
	return r.target()
}

// Wrap builds the forwarding handle handed to dependents in place of the
// real instance.
func (r *LazyRef) Wrap(thunk Thunk) any {
	return r.wrap(thunk)
}

func (r *LazyRef) String() string {
	return refName(r.Class())
}

func (*LazyRef) identifier() {}

// EagerRef defers reading a class variable until the engine reaches it, then
// resolves the class immediately.
type EagerRef struct {
	target func() *Class
}

func NewEagerRef(target func() *Class) *EagerRef {
	return &EagerRef{target: target}
}

func (r *EagerRef) Class() *Class {
	if r.target == nil {
		return nil
	}
	return r.target()
}

func (r *EagerRef) String() string {
	return refName(r.Class())
}

func (*EagerRef) identifier() {}

func refName(c *Class) string {
	if c == nil {
		return "<nil>"
	}
	return c.Name()
}
