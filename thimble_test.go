package thimble_test

import (
	"errors"
	"log/slog"
	"os"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danpasecinic/thimble"
)

type Config struct {
	Port int
	Host string
}

type Database struct {
	Config *Config
	Name   string
}

type Server struct {
	DB     *Database
	Config *Config
}

var (
	ConfigClass = thimble.NewClass(
		func() *Config {
			return &Config{Port: 8080, Host: "localhost"}
		},
	)
	DatabaseClass = thimble.NewClass(
		func(cfg *Config) *Database {
			return &Database{Config: cfg, Name: "main"}
		},
	)
	ServerClass = thimble.NewClass(
		func(db *Database, cfg *Config) *Server {
			return &Server{DB: db, Config: cfg}
		},
	)
)

// newApp returns a root container whose store describes the Config,
// Database and Server classes.
func newApp(t *testing.T, configLifetime thimble.Lifetime) *thimble.Container {
	t.Helper()

	store := thimble.NewMetadataStore()
	require.NoError(t, store.Injectable(ConfigClass, thimble.WithLifetime(configLifetime)))
	require.NoError(t, store.Injectable(DatabaseClass, thimble.WithParams(ConfigClass)))
	require.NoError(t, store.Injectable(ServerClass, thimble.WithParams(DatabaseClass, ConfigClass)))

	return thimble.New(thimble.WithMetadata(store))
}

func TestNew(t *testing.T) {
	t.Parallel()

	c := thimble.New()
	require.NotNil(t, c)
	assert.True(t, c.IsRoot())
	assert.Nil(t, c.Parent())
	assert.NotEmpty(t, c.ID())
	assert.NotNil(t, c.Metadata())
	assert.False(t, c.Disposed())
}

func TestNewWithLogger(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	c := thimble.New(thimble.WithLogger(logger))
	require.NotNil(t, c.Logger())
}

func TestProviders(t *testing.T) {
	t.Parallel()

	c := thimble.New()
	require.NoError(t, c.Register("port", thimble.UseValue(8080)))
	require.NoError(
		t, c.Register(
			"addr", thimble.UseFactory(
				func(r thimble.Resolver) (string, error) {
					port, err := thimble.Get[int](r, "port")
					if err != nil {
						return "", err
					}
					return "localhost:" + strconv.Itoa(port), nil
				},
			),
		),
	)
	require.NoError(t, c.Register("config", thimble.UseClass(ConfigClass)))
	require.NoError(t, c.Register("alias", thimble.UseToken("port")))

	port, err := thimble.Get[int](c, "port")
	require.NoError(t, err)
	assert.Equal(t, 8080, port)

	addr, err := thimble.Get[string](c, "addr")
	require.NoError(t, err)
	assert.Equal(t, "localhost:8080", addr)

	cfg, err := thimble.Get[*Config](c, "config")
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)

	alias, err := thimble.Get[int](c, "alias")
	require.NoError(t, err)
	assert.Equal(t, 8080, alias)
}

func TestProviderPointers(t *testing.T) {
	t.Parallel()

	c := thimble.New()
	require.NoError(t, c.Register("v", &thimble.ValueProvider{Value: "x"}))
	require.NoError(t, c.Register("c", ConfigClass))

	v, err := c.Resolve("v")
	require.NoError(t, err)
	assert.Equal(t, "x", v)

	cfg, err := thimble.Get[*Config](c, "c")
	require.NoError(t, err)
	assert.Equal(t, "localhost", cfg.Host)
}

func TestRegisterInvalidProvider(t *testing.T) {
	t.Parallel()

	c := thimble.New()

	err := c.Register("a", 42)
	require.Error(t, err)
	assert.True(t, thimble.IsInvalidProvider(err))
	assert.Equal(t, "This provider is not an valid provider.", err.Error())

	err = c.Register("b", nil)
	assert.True(t, errors.Is(err, thimble.ErrInvalidProvider))

	err = c.Register("c", thimble.UseValue(nil))
	assert.True(t, thimble.IsInvalidProvider(err))

	// A class registered with no provider keeps resolving from metadata.
	require.NoError(t, c.Register(ConfigClass, nil))
	require.NoError(t, c.RegisterClass(ConfigClass))
	ok, err := c.IsRegistered(ConfigClass, false)
	require.NoError(t, err)
	assert.False(t, ok)

	err = c.Register(3.5, thimble.UseValue(1))
	assert.True(t, thimble.IsUnrecognizedIdentifier(err))
	assert.Equal(t, "unrecognized service identifier", err.Error())
}

func TestResolveUnregistered(t *testing.T) {
	t.Parallel()

	c := thimble.New()

	tests := []struct {
		name string
		id   any
		want string
	}{
		{"string", "missing", `Attempted to resolve unregistered dependency token: "missing"`},
		{
			"token", thimble.NewToken("db"),
			`Attempted to resolve unregistered dependency token: "Token('db')"`,
		},
		{
			"symbol", thimble.NewSymbol("cache"),
			`Attempted to resolve unregistered dependency token: "Symbol(cache)"`,
		},
	}

	for _, tt := range tests {
		t.Run(
			tt.name, func(t *testing.T) {
				t.Parallel()

				_, err := c.Resolve(tt.id)
				require.Error(t, err)
				assert.True(t, thimble.IsUnregisteredToken(err))
				assert.Equal(t, tt.want, err.Error())
			},
		)
	}

	_, err := c.Resolve(42)
	assert.True(t, thimble.IsUnrecognizedIdentifier(err))
}

func TestTypedAccessors(t *testing.T) {
	t.Parallel()

	c := thimble.New()
	c.MustRegister("name", thimble.UseValue("thimble"))

	_, err := thimble.Get[int](c, "name")
	require.Error(t, err)
	assert.True(t, thimble.IsTypeMismatch(err))
	assert.Contains(t, err.Error(), "not int")

	v, ok := thimble.TryGet[string](c, "name")
	assert.True(t, ok)
	assert.Equal(t, "thimble", v)

	_, ok = thimble.TryGet[string](c, "other")
	assert.False(t, ok)

	assert.Equal(t, "thimble", thimble.MustGet[string](c, "name"))
	assert.Panics(
		t, func() {
			thimble.MustGet[string](c, "other")
		},
	)
}

func TestConstructorInjection(t *testing.T) {
	t.Parallel()

	c := newApp(t, thimble.Singleton)

	srv, err := thimble.Get[*Server](c, ServerClass)
	require.NoError(t, err)
	require.NotNil(t, srv.DB)
	assert.Equal(t, "main", srv.DB.Name)
	assert.Same(t, srv.Config, srv.DB.Config)
}

func TestPropertyInjection(t *testing.T) {
	t.Parallel()

	type Handler struct {
		DB   *Database
		Name string
	}

	handlerClass := thimble.ClassOf[*Handler]()
	store := thimble.NewMetadataStore()
	require.NoError(t, store.Injectable(ConfigClass))
	require.NoError(t, store.Injectable(DatabaseClass, thimble.WithParams(ConfigClass)))
	require.NoError(
		t, store.Injectable(
			handlerClass,
			thimble.WithProperty("DB", DatabaseClass),
			thimble.WithProperty("Name", "handler-name"),
		),
	)

	c := thimble.New(thimble.WithMetadata(store))
	require.NoError(t, c.Register("handler-name", thimble.UseValue("users")))

	h, err := thimble.Get[*Handler](c, handlerClass)
	require.NoError(t, err)
	assert.Equal(t, "users", h.Name)
	assert.Equal(t, "main", h.DB.Name)
}

func TestCannotInject(t *testing.T) {
	t.Parallel()

	c := thimble.New()

	_, err := c.Resolve(DatabaseClass)
	require.Error(t, err)
	assert.True(t, thimble.IsCannotInject(err))
	assert.Equal(t, "Cannot inject dependencies for class 'Database'.", err.Error())

	store := c.Metadata()
	require.NoError(t, store.Injectable(DatabaseClass, thimble.WithParams(nil)))

	_, err = c.Resolve(DatabaseClass)
	require.Error(t, err)
	assert.Equal(
		t,
		"Cannot inject dependency at #0 for constructor 'Database'. "+
			"Could mean a circular dependency problem. Try using `ref` function.",
		err.Error(),
	)
}

func TestCannotInjectUndescribedDependency(t *testing.T) {
	t.Parallel()

	type Holder struct {
		DB *Database
	}
	holderClass := thimble.ClassOf[*Holder]()

	c := thimble.New()
	store := c.Metadata()
	require.NoError(t, store.Injectable(ServerClass, thimble.WithParams(DatabaseClass, ConfigClass)))
	require.NoError(t, store.Injectable(holderClass, thimble.WithProperty("DB", DatabaseClass)))

	_, err := c.Resolve(ServerClass)
	require.Error(t, err)
	assert.True(t, thimble.IsCannotInject(err))
	assert.Equal(t, "Cannot inject dependency at #0 for constructor 'Server'.", err.Error())

	_, err = c.Resolve(holderClass)
	require.Error(t, err)
	assert.True(t, thimble.IsCannotInject(err))
	assert.Equal(t, "Cannot inject property dependency 'DB' for class 'Holder'.", err.Error())
}

func TestEagerRef(t *testing.T) {
	t.Parallel()

	var late *thimble.Class

	store := thimble.NewMetadataStore()
	require.NoError(
		t, store.Injectable(
			DatabaseClass, thimble.WithParams(
				thimble.Ref(
					func() *thimble.Class {
						return late
					},
				),
			),
		),
	)
	late = ConfigClass

	c := thimble.New(thimble.WithMetadata(store))
	db, err := thimble.Get[*Database](c, DatabaseClass)
	require.NoError(t, err)
	assert.Equal(t, 8080, db.Config.Port)
}

func TestCircularDependency(t *testing.T) {
	t.Parallel()

	type A struct{ B any }
	type B struct{ A any }

	aClass := thimble.NewClass(func(b any) *A { return &A{B: b} })
	bClass := thimble.NewClass(func(a any) *B { return &B{A: a} })

	store := thimble.NewMetadataStore()
	store.MustInjectable(aClass, thimble.WithParams(bClass))
	store.MustInjectable(bClass, thimble.WithParams(aClass))
	c := thimble.New(thimble.WithMetadata(store))

	_, err := c.Resolve(bClass)
	require.Error(t, err)
	assert.True(t, thimble.IsCircularDependency(err))
	assert.Equal(t, "Discovery of circular dependencies: B -> A -> B", err.Error())

	var e *thimble.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, thimble.RoleClass, e.Role)
	assert.Equal(t, []string{"B", "A", "B"}, e.Stack)
}

func TestCircularProviders(t *testing.T) {
	t.Parallel()

	type A struct{}
	aClass := thimble.NewClass(func() *A { return &A{} })

	c := thimble.New()
	require.NoError(t, c.Register("a", thimble.UseClass(aClass)))
	require.NoError(t, c.Register(aClass, thimble.UseToken("a")))

	_, err := c.Resolve("a")
	require.Error(t, err)
	assert.True(t, thimble.IsCircularDependency(err))

	var e *thimble.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, thimble.RoleProvider, e.Role)
	assert.Equal(t, "Discovery of circular dependencies: a -> A -> a", err.Error())
}

func TestLazyBreaksCycle(t *testing.T) {
	t.Parallel()

	type Parent struct {
		Child any
	}
	type Child struct {
		Parent *thimble.Deferred[*Parent]
	}

	var parentClass *thimble.Class
	childClass := thimble.NewClass(
		func(p *thimble.Deferred[*Parent]) *Child {
			return &Child{Parent: p}
		},
	)
	parentClass = thimble.NewClass(
		func(child *Child) *Parent {
			return &Parent{Child: child}
		},
	)

	store := thimble.NewMetadataStore()
	store.MustInjectable(parentClass, thimble.WithParams(childClass), thimble.WithLifetime(thimble.Singleton))
	store.MustInjectable(
		childClass, thimble.WithParams(
			thimble.Lazy[*Parent](
				func() *thimble.Class {
					return parentClass
				},
			),
		),
	)
	c := thimble.New(thimble.WithMetadata(store))

	parent, err := thimble.Get[*Parent](c, parentClass)
	require.NoError(t, err)

	child := parent.Child.(*Child)
	got, err := child.Parent.Get()
	require.NoError(t, err)
	assert.Same(t, parent, got)

	again := child.Parent.MustGet()
	assert.Same(t, got, again)
}

func TestLazyTypeMismatch(t *testing.T) {
	t.Parallel()

	type Holder struct {
		Lazy *thimble.Deferred[*Server]
	}
	holderClass := thimble.NewClass(
		func(d *thimble.Deferred[*Server]) *Holder {
			return &Holder{Lazy: d}
		},
	)

	store := thimble.NewMetadataStore()
	store.MustInjectable(
		holderClass, thimble.WithParams(
			thimble.Lazy[*Server](
				func() *thimble.Class {
					return ConfigClass
				},
			),
		),
	)
	c := thimble.New(thimble.WithMetadata(store))

	h, err := thimble.Get[*Holder](c, holderClass)
	require.NoError(t, err)

	_, err = h.Lazy.Get()
	assert.True(t, thimble.IsTypeMismatch(err))
}

func TestAliasCycles(t *testing.T) {
	t.Parallel()

	c := thimble.New()

	err := thimble.Bind(c, "x", "x")
	require.Error(t, err)
	assert.True(t, thimble.IsCircularAlias(err))
	assert.Equal(t, "Token registration cycle detected! x -> x", err.Error())

	require.NoError(t, thimble.Bind(c, "a", "b"))
	require.NoError(t, thimble.Bind(c, "b", "c"))

	err = thimble.Bind(c, "c", "a")
	require.Error(t, err)
	assert.Equal(t, "Token registration cycle detected! c -> a -> b -> c", err.Error())

	ok, err := c.IsRegistered("c", false)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, thimble.BindValue(c, "c", 3))
	v, err := c.Resolve("a")
	require.NoError(t, err)
	assert.Equal(t, 3, v)
}

func TestChildContainerVisibility(t *testing.T) {
	t.Parallel()

	parent := thimble.New()
	require.NoError(t, parent.Register("shared", thimble.UseValue("root")))

	child, err := parent.CreateChildContainer()
	require.NoError(t, err)
	assert.False(t, child.IsRoot())
	assert.Same(t, parent, child.Parent())
	assert.NotEqual(t, parent.ID(), child.ID())
	assert.Same(t, parent.Metadata(), child.Metadata())

	require.NoError(t, child.Register("local", thimble.UseValue("child")))

	v, err := child.Resolve("shared")
	require.NoError(t, err)
	assert.Equal(t, "root", v)

	_, err = parent.Resolve("local")
	assert.True(t, thimble.IsUnregisteredToken(err))

	ok, err := child.IsRegistered("shared", false)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = child.IsRegistered("shared", true)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, child.Register("shared", thimble.UseValue("override")))
	v, err = child.Resolve("shared")
	require.NoError(t, err)
	assert.Equal(t, "override", v)

	v, err = parent.Resolve("shared")
	require.NoError(t, err)
	assert.Equal(t, "root", v)
}

func TestHas(t *testing.T) {
	t.Parallel()

	c := newApp(t, thimble.Transient)
	require.NoError(t, c.Register("dsn", thimble.UseValue("postgres://")))

	child, err := c.CreateChildContainer()
	require.NoError(t, err)

	for _, id := range []any{"dsn", ConfigClass, ServerClass} {
		ok, err := child.Has(id)
		require.NoError(t, err)
		assert.True(t, ok, "%v", id)
	}

	other := thimble.NewClass(func() *Config { return nil })
	for _, id := range []any{"missing", other, 42} {
		ok, err := child.Has(id)
		require.NoError(t, err)
		assert.False(t, ok, "%v", id)
	}
}

func TestReset(t *testing.T) {
	t.Parallel()

	c := newApp(t, thimble.Singleton)
	require.NoError(t, c.Register("dsn", thimble.UseValue("postgres://")))

	first, err := c.Resolve(ConfigClass)
	require.NoError(t, err)

	child, err := c.CreateChildContainer()
	require.NoError(t, err)
	require.NoError(t, child.Reset())
	assert.Equal(t, 3, c.Metadata().Len())

	require.NoError(t, c.Reset())
	assert.Equal(t, 0, c.Metadata().Len())

	ok, err := c.IsRegistered("dsn", false)
	require.NoError(t, err)
	assert.False(t, ok)

	second, err := c.Resolve(ConfigClass)
	require.NoError(t, err)
	assert.NotSame(t, first, second)
}

func TestFactoryErrors(t *testing.T) {
	t.Parallel()

	c := thimble.New()
	boom := errors.New("boom")

	require.NoError(
		t, c.Register(
			"failing", thimble.UseFactory(
				func(thimble.Resolver) (int, error) {
					return 0, boom
				},
			),
		),
	)
	require.NoError(
		t, c.Register(
			"forwarding", thimble.UseFactory(
				func(r thimble.Resolver) (int, error) {
					return thimble.Get[int](r, "missing")
				},
			),
		),
	)

	_, err := c.Resolve("failing")
	require.Error(t, err)
	assert.True(t, thimble.IsProviderFailed(err))
	assert.ErrorIs(t, err, boom)

	_, err = c.Resolve("forwarding")
	assert.True(t, thimble.IsUnregisteredToken(err))
	assert.False(t, thimble.IsProviderFailed(err))
}

func TestClassConstruction(t *testing.T) {
	t.Parallel()

	_, err := thimble.TryNewClass(42)
	require.Error(t, err)
	assert.ErrorIs(t, err, thimble.ErrInvalidClass)

	assert.Panics(
		t, func() {
			thimble.NewClass("not a function")
		},
	)

	named := thimble.NewClass(func() *Config { return &Config{} }, thimble.WithName("AppConfig"))
	assert.Equal(t, "AppConfig", named.Name())
	assert.Equal(t, "Config", thimble.ClassOf[*Config]().Name())
}

func TestDisposedGating(t *testing.T) {
	t.Parallel()

	c := newApp(t, thimble.Transient)
	require.NoError(t, c.Dispose(t.Context()))
	assert.True(t, c.Disposed())

	const msg = "This container has been disposed, you cannot interact with a disposed container"

	err := c.Register("a", thimble.UseValue(1))
	assert.True(t, thimble.IsDisposed(err))
	assert.Equal(t, msg, err.Error())

	_, err = c.Resolve(ConfigClass)
	assert.ErrorIs(t, err, thimble.ErrDisposedContainer)

	_, err = c.IsRegistered("a", true)
	assert.True(t, thimble.IsDisposed(err))

	_, err = c.Has("a")
	assert.True(t, thimble.IsDisposed(err))

	assert.True(t, thimble.IsDisposed(c.Reset()))
	assert.True(t, thimble.IsDisposed(c.Dispose(t.Context())))

	_, err = c.CreateChildContainer()
	assert.True(t, thimble.IsDisposed(err))

	assert.True(t, thimble.IsDisposed(c.Validate()))
	_, err = c.ResolutionOrder(ServerClass)
	assert.True(t, thimble.IsDisposed(err))
	assert.Empty(t, c.Graph().Services)
	assert.Contains(t, c.SprintGraph(), "empty container")
}
