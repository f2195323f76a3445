package container

import (
	"errors"
	"time"

	"github.com/danpasecinic/thimble/internal/ident"
	"github.com/danpasecinic/thimble/internal/reflect"
	"github.com/danpasecinic/thimble/internal/scope"
)

// Resolve produces an instance for id, starting a fresh resolution.
func (c *Container) Resolve(id any) (any, error) {
	if c.disposed {
		return nil, errDisposed()
	}

	start := time.Now()
	key, ok := ident.Of(id)
	if !ok {
		err := errUnrecognized()
		c.callResolveHooks(unknownKey, time.Since(start), err)
		return nil, err
	}

	instance, err := c.resolve(key, newResolution())
	if err != nil {
		c.logger.Debug("resolve failed", "service", key.String(), "error", err)
	}
	c.callResolveHooks(key.String(), time.Since(start), err)
	return instance, err
}

const unknownKey = "<unknown>"

func (c *Container) callResolveHooks(key string, duration time.Duration, err error) {
	for _, hook := range c.hooks.OnResolve {
		hook(key, duration, err)
	}
}

func (c *Container) resolve(id ident.Identifier, res *resolution) (any, error) {
	if c.disposed {
		return nil, errDisposed()
	}

	if p, _, ok := c.Lookup(id); ok {
		return c.resolveProvider(id, p, res)
	}

	switch v := id.(type) {
	case ident.StringToken, *ident.Symbol, *ident.Token:
		return nil, errUnregisteredToken(id.String())
	case *ident.LazyRef:
		return c.resolveLazy(v, res.role), nil
	case *ident.EagerRef:
		class := v.Class()
		if class == nil {
			return nil, unresolvable(res.role)
		}
		return c.resolve(class, res)
	case *ident.Class:
		return c.resolveClass(v, res)
	default:
		return nil, errUnrecognized()
	}
}

func (c *Container) resolveProvider(id ident.Identifier, p Provider, res *resolution) (any, error) {
	if res.active(id, kindProvider) {
		return nil, errCircularDependency(res.path(), id.String(), RoleProvider)
	}
	next, entry := res.push(id, kindProvider)

	var (
		instance any
		err      error
	)
	switch p := p.(type) {
	case ValueProvider:
		instance = p.Value
	case FactoryProvider:
		instance, err = p.Factory(c)
		if err != nil {
			err = providerErr(id.String(), err)
		}
	case ClassProvider:
		instance, err = c.resolve(p.Class, next)
	case TokenProvider:
		target, ok := p.Token.(ident.Identifier)
		if !ok {
			return nil, errUnrecognized()
		}
		instance, err = c.resolve(target, next)
	default:
		return nil, errInvalidProvider(id.String())
	}
	if err != nil {
		return nil, err
	}

	entry.done = true
	return instance, nil
}

// resolveLazy hands back the forwarding handle at once. The handle resolves
// the class with a fresh top-level call the first time it is read.
func (c *Container) resolveLazy(ref *ident.LazyRef, r *role) any {
	return ref.Wrap(
		func() (any, error) {
			class := ref.Class()
			if class == nil {
				return nil, unresolvable(r)
			}
			return c.Resolve(class)
		},
	)
}

func (c *Container) resolveClass(class *ident.Class, res *resolution) (any, error) {
	if res.active(class, kindClass) {
		return nil, errCircularDependency(res.path(), class.Name(), RoleClass)
	}
	next, entry := res.push(class, kindClass)

	md, described := c.metadata.Lookup(class)
	if !described {
		if class.Required() > 0 {
			if res.role != nil {
				return nil, errCannotInjectRole(res.role, false)
			}
			return nil, errCannotInjectClass(class.Name())
		}
		instance, err := class.New(nil)
		if err != nil {
			return nil, providerErr(class.Name(), err)
		}
		entry.done = true
		res.cache[class] = instance
		return instance, nil
	}

	if instance, hit, err := c.beforeInstantiate(class, md.Lifetime, res); hit || err != nil {
		if err != nil {
			return nil, err
		}
		entry.done = true
		return instance, nil
	}

	if !class.Accepts(len(md.Params)) {
		return nil, errCannotInjectClass(class.Name())
	}

	args := make([]any, len(md.Params))
	for i, dep := range md.Params {
		v, err := c.resolveDependency(dep, next.withParam(class, i))
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	props := make([]any, len(md.Properties))
	for i, prop := range md.Properties {
		v, err := c.resolveDependency(prop.ID, next.withProperty(class, prop.Name))
		if err != nil {
			return nil, err
		}
		props[i] = v
	}

	instance, err := class.New(args)
	if err != nil {
		var argErr *reflect.ArgumentError
		if errors.As(err, &argErr) {
			cause := errCannotInjectRole(&role{parent: class, index: argErr.Index}, false)
			cause.Cause = argErr.Err
			return nil, cause
		}
		return nil, providerErr(class.Name(), err)
	}

	for i, prop := range md.Properties {
		if err := reflect.SetField(instance, prop.Name, props[i]); err != nil {
			cause := errCannotInjectRole(&role{parent: class, property: prop.Name}, false)
			cause.Cause = err
			return nil, cause
		}
	}

	c.afterInstantiate(class, md.Lifetime, instance)

	entry.done = true
	res.cache[class] = instance
	return instance, nil
}

func (c *Container) resolveDependency(dep any, res *resolution) (any, error) {
	id, ok := ident.Of(dep)
	if !ok {
		return nil, errCannotInjectRole(res.role, reflect.IsNil(dep))
	}
	return c.resolve(id, res)
}

// beforeInstantiate returns a previously created instance when the lifetime
// allows reuse. A singleton requested below the root is resolved by the root
// with a fresh chain, without firing resolve hooks a second time.
func (c *Container) beforeInstantiate(
	class *ident.Class,
	lifetime scope.Lifetime,
	res *resolution,
) (any, bool, error) {
	switch lifetime {
	case scope.PerContainer:
		v, ok := c.instances.Get(class)
		return v, ok, nil
	case scope.PerResolution:
		v, ok := res.cache[class]
		return v, ok, nil
	case scope.Singleton:
		if !c.IsRoot() {
			fresh := newResolution()
			fresh.role = res.role
			v, err := c.root().resolve(class, fresh)
			return v, true, err
		}
		v, ok := c.instances.Get(class)
		return v, ok, nil
	case scope.PerContainerInherited:
		for cur := c; cur != nil; cur = cur.parent {
			if v, ok := cur.instances.Get(class); ok {
				return v, true, nil
			}
		}
		return nil, false, nil
	default:
		return nil, false, nil
	}
}

func (c *Container) afterInstantiate(class *ident.Class, lifetime scope.Lifetime, instance any) {
	switch lifetime {
	case scope.Singleton:
		c.root().instances.Set(class, instance)
	case scope.PerContainer, scope.PerContainerInherited:
		c.instances.Set(class, instance)
	}
}

// unresolvable reports a dependency whose identifier is missing or invalid.
func unresolvable(r *role) *Error {
	if r == nil {
		return errUnrecognized()
	}
	return errCannotInjectRole(r, true)
}

func providerErr(service string, err error) error {
	var coded *Error
	if errors.As(err, &coded) {
		return err
	}
	return errProviderFailed(service, err)
}
