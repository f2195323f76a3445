package thimble

import (
	"context"
	"log/slog"

	"github.com/danpasecinic/thimble/internal/container"
)

// Container is one scope of a container forest. Lookups fall through to the
// parent; a parent never sees registrations made on a child. A Container is
// not safe for concurrent use.
type Container struct {
	internal *container.Container
	config   *containerConfig
	parent   *Container
}

type containerConfig struct {
	logger   *slog.Logger
	metadata *MetadataStore
	hooks    container.Hooks
}

// New creates a root container.
func New(opts ...Option) *Container {
	cfg := &containerConfig{
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.metadata == nil {
		cfg.metadata = NewMetadataStore()
	}

	internal := container.New(
		&container.Config{
			Logger:   cfg.logger,
			Metadata: cfg.metadata.store,
			Hooks:    &cfg.hooks,
		},
	)

	return &Container{
		internal: internal,
		config:   cfg,
	}
}

// IsRegistered reports whether id has a provider on c, or on any ancestor
// when recursive is set.
func (c *Container) IsRegistered(id any, recursive bool) (bool, error) {
	return c.internal.IsRegistered(id, recursive)
}

// Register stores a provider under id. provider is a ValueProvider,
// FactoryProvider, ClassProvider or TokenProvider, or a *Class as shorthand
// for a ClassProvider. Registering a class under itself, or a class with a
// nil provider, is a no-op.
func (c *Container) Register(id any, provider any) error {
	return c.internal.Register(id, provider)
}

// RegisterClass is the bare-class form of Register. It records nothing:
// classes resolve through their constructor by default.
func (c *Container) RegisterClass(class *Class) error {
	return c.internal.Register(class, nil)
}

func (c *Container) MustRegister(id any, provider any) {
	if err := c.Register(id, provider); err != nil {
		panic(err)
	}
}

// Resolve produces an instance for id.
func (c *Container) Resolve(id any) (any, error) {
	return c.internal.Resolve(id)
}

// Has reports whether id is registered anywhere in the chain or, for a
// class, has a described shape.
func (c *Container) Has(id any) (bool, error) {
	return c.internal.Has(id)
}

// Reset drops the registry and cached instances without disposing them. On
// the root container it also clears the metadata store.
func (c *Container) Reset() error {
	return c.internal.Reset()
}

// Dispose marks c disposed and disposes the instances it owns. It waits for
// asynchronous disposals until they settle or ctx ends.
func (c *Container) Dispose(ctx context.Context) error {
	return c.internal.Dispose(ctx)
}

// CreateChildContainer returns a new scope whose parent is c.
func (c *Container) CreateChildContainer() (*Container, error) {
	child, err := c.internal.CreateChildContainer()
	if err != nil {
		return nil, err
	}

	return &Container{
		internal: child,
		config:   c.config,
		parent:   c,
	}, nil
}

// ID identifies c in logs and debug output.
func (c *Container) ID() string {
	return c.internal.ID().String()
}

func (c *Container) Parent() *Container {
	return c.parent
}

func (c *Container) IsRoot() bool {
	return c.parent == nil
}

func (c *Container) Disposed() bool {
	return c.internal.Disposed()
}

// Metadata returns the store shared by the whole forest.
func (c *Container) Metadata() *MetadataStore {
	return c.config.metadata
}

func (c *Container) Logger() *slog.Logger {
	return c.internal.Logger()
}
