// Package thimble is a hierarchical dependency injection container.
//
// Dependencies are named by identifiers: plain strings, symbols, tokens and
// classes. A class wraps a constructor; what it needs is described once in a
// MetadataStore shared by a whole container forest, and registrations map
// identifiers to providers per container.
//
// # Quick Start
//
//	store := thimble.NewMetadataStore()
//
//	Config := thimble.NewClass(func() *Config { return &Config{Port: 8080} })
//	Server := thimble.NewClass(func(cfg *Config) *Server { return &Server{cfg: cfg} })
//
//	store.MustInjectable(Config, thimble.WithLifetime(thimble.Singleton))
//	store.MustInjectable(Server, thimble.WithParams(Config))
//
//	c := thimble.New(thimble.WithMetadata(store))
//	srv, err := thimble.Get[*Server](c, Server)
//
// # Providers
//
// A registration binds an identifier to one of four providers:
//
//	c.Register("dsn", thimble.UseValue("postgres://..."))
//	c.Register(DBToken, thimble.UseFactory(func(r thimble.Resolver) (*DB, error) { ... }))
//	c.Register(Repo, thimble.UseClass(PostgresRepo))
//	c.Register("repo", thimble.UseToken(Repo))
//
// A class with no registration is constructed from its metadata. Token
// aliases that would loop are rejected when registered.
//
// # Lifetimes
//
// Transient builds a new instance every time. Singleton shares one instance
// across the forest, cached at the root. PerContainer caches in the
// container that resolves it, and PerContainerInherited reuses an
// ancestor's instance when there is one. PerResolution shares one instance
// within a single top-level Resolve.
//
// # Child Containers
//
//	child, _ := c.CreateChildContainer()
//	child.Register("request-id", thimble.UseValue(id))
//	defer child.Dispose(ctx)
//
// Lookups fall through to the parent. Disposing a container disposes only
// the instances it cached.
//
// # Cycles
//
// A class that depends on itself through its metadata fails with a message
// that lists the chain, such as "Discovery of circular dependencies: B -> A -> B".
// Break the loop with Lazy, which injects a *Deferred[T] resolved on first
// use:
//
//	store.MustInjectable(A, thimble.WithParams(thimble.Lazy[*B](func() *thimble.Class { return B })))
//
// # Autowiring
//
// Autowire describes a class from `thimble` struct tags:
//
//	type Handler struct {
//	    Repo *Repo  `thimble:"Repo"`
//	    DSN  string `thimble:"dsn"`
//	}
//	thimble.MustAutowire(store, thimble.ClassOf[*Handler](), thimble.Catalog{"Repo": Repo})
//
// # Modules
//
//	var Storage = thimble.NewModule("storage").
//	    Describe(Repo, thimble.WithParams("dsn")).
//	    Value("dsn", "postgres://...")
//
//	c.Apply(Storage)
//
// # Observability
//
// Observers are called after every registration, resolution and disposal:
//
//	thimble.New(thimble.WithResolveObserver(func(key string, d time.Duration, err error) { ... }))
//
// Graph, FprintGraph, FprintGraphDOT and FprintRegistry show what a
// container can resolve.
package thimble
