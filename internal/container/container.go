package container

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/danpasecinic/thimble/internal/ident"
	"github.com/danpasecinic/thimble/internal/metadata"
)

type ResolveHook func(key string, duration time.Duration, err error)

type RegisterHook func(key string, kind string)

type DisposeHook func(container string, instances int, duration time.Duration, err error)

// Hooks are shared by every container of a forest.
type Hooks struct {
	OnResolve  []ResolveHook
	OnRegister []RegisterHook
	OnDispose  []DisposeHook
}

type Config struct {
	Logger   *slog.Logger
	Metadata *metadata.Store
	Hooks    *Hooks
}

// Container is one scope of a container forest. It is not safe for
// concurrent use.
type Container struct {
	id        uuid.UUID
	parent    *Container
	registry  *Registry
	instances *Cache
	metadata  *metadata.Store
	hooks     *Hooks
	base      *slog.Logger
	logger    *slog.Logger
	disposed  bool
}

// New creates a root container.
func New(cfg *Config) *Container {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	store := cfg.Metadata
	if store == nil {
		store = metadata.New()
	}
	hooks := cfg.Hooks
	if hooks == nil {
		hooks = &Hooks{}
	}

	return newContainer(nil, logger, store, hooks)
}

func newContainer(parent *Container, logger *slog.Logger, store *metadata.Store, hooks *Hooks) *Container {
	id := uuid.New()
	return &Container{
		id:        id,
		parent:    parent,
		registry:  NewRegistry(),
		instances: NewCache(),
		metadata:  store,
		hooks:     hooks,
		base:      logger,
		logger:    logger.With("container", id.String()),
	}
}

// CreateChildContainer returns a container whose lookups fall through to c.
func (c *Container) CreateChildContainer() (*Container, error) {
	if c.disposed {
		return nil, errDisposed()
	}

	child := newContainer(c, c.base, c.metadata, c.hooks)
	child.logger.Debug("created child container", "parent", c.id.String())
	return child, nil
}

func (c *Container) ID() uuid.UUID {
	return c.id
}

func (c *Container) Parent() *Container {
	return c.parent
}

func (c *Container) IsRoot() bool {
	return c.parent == nil
}

func (c *Container) root() *Container {
	r := c
	for r.parent != nil {
		r = r.parent
	}
	return r
}

func (c *Container) Disposed() bool {
	return c.disposed
}

func (c *Container) Metadata() *metadata.Store {
	return c.metadata
}

func (c *Container) Logger() *slog.Logger {
	return c.logger
}

// Register stores provider under id. A nil provider for a class, or a class
// provider pointing at id itself, is accepted and ignored.
func (c *Container) Register(id any, provider any) error {
	if c.disposed {
		return errDisposed()
	}

	key, ok := ident.Of(id)
	if !ok {
		return errUnrecognized()
	}

	if provider == nil {
		if _, isClass := key.(*ident.Class); isClass {
			return nil
		}
		return errInvalidProvider(key.String())
	}

	p, ok := normalizeProvider(provider)
	if !ok {
		return errInvalidProvider(key.String())
	}

	switch p := p.(type) {
	case ClassProvider:
		if ident.Identifier(p.Class) == key {
			return nil
		}
	case TokenProvider:
		if err := c.checkAliasCycle(key, p); err != nil {
			c.logger.Debug("rejected alias", "service", key.String(), "error", err)
			return err
		}
	}

	c.registry.Set(key, p)
	c.logger.Debug("registered provider", "service", key.String(), "kind", p.Kind())

	for _, hook := range c.hooks.OnRegister {
		hook(key.String(), p.Kind())
	}
	return nil
}

// IsRegistered reports whether id has a provider on c, or on any ancestor
// when recursive is set.
func (c *Container) IsRegistered(id any, recursive bool) (bool, error) {
	if c.disposed {
		return false, errDisposed()
	}

	key, ok := ident.Of(id)
	if !ok {
		return false, nil
	}

	for cur := c; cur != nil; cur = cur.parent {
		if cur.registry.Has(key) {
			return true, nil
		}
		if !recursive {
			break
		}
	}
	return false, nil
}

// Has reports whether id can be resolved without falling back to anything
// but a declared shape: tokens must be registered somewhere in the chain and
// classes must be registered or described.
func (c *Container) Has(id any) (bool, error) {
	if c.disposed {
		return false, errDisposed()
	}

	key, ok := ident.Of(id)
	if !ok {
		return false, nil
	}
	if _, _, found := c.Lookup(key); found {
		return true, nil
	}

	switch v := key.(type) {
	case *ident.Class:
		return c.metadata.Has(v), nil
	case *ident.LazyRef:
		class := v.Class()
		return class != nil && c.metadata.Has(class), nil
	case *ident.EagerRef:
		class := v.Class()
		return class != nil && c.metadata.Has(class), nil
	default:
		return false, nil
	}
}

// Reset drops the registry and cached instances without disposing them. On
// the root container it also clears the metadata store.
func (c *Container) Reset() error {
	if c.disposed {
		return errDisposed()
	}

	c.instances.Clear()
	c.registry.Clear()
	if c.IsRoot() {
		c.metadata.Reset()
	}

	c.logger.Debug("container reset")
	return nil
}

// Lookup finds the provider for id on c or its ancestors. depth is 0 when
// c itself owns the registration.
func (c *Container) Lookup(id ident.Identifier) (Provider, int, bool) {
	depth := 0
	for cur := c; cur != nil; cur = cur.parent {
		if p, ok := cur.registry.Get(id); ok {
			return p, depth, true
		}
		depth++
	}
	return nil, 0, false
}

// Keys lists the identifiers registered directly on c.
func (c *Container) Keys() []ident.Identifier {
	return c.registry.Keys()
}

func (c *Container) Size() int {
	return c.registry.Size()
}

// Cached returns the instance c itself holds for id.
func (c *Container) Cached(id ident.Identifier) (any, bool) {
	return c.instances.Get(id)
}

func (c *Container) CachedKeys() []ident.Identifier {
	return c.instances.Keys()
}
