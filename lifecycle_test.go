package thimble_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danpasecinic/thimble"
)

type Connection struct {
	closed atomic.Bool
}

func (c *Connection) Dispose() {
	c.closed.Store(true)
}

type FailingPool struct {
	closed atomic.Bool
}

func (p *FailingPool) Dispose() error {
	p.closed.Store(true)
	return errors.New("pool already drained")
}

type PanickingCache struct{}

func (*PanickingCache) Dispose() {
	panic("cache exploded")
}

type Worker struct {
	stopped atomic.Bool
	delay   time.Duration
}

func (w *Worker) Dispose() <-chan error {
	done := make(chan error, 1)
	go func() {
		time.Sleep(w.delay)
		w.stopped.Store(true)
		done <- nil
	}()
	return done
}

func disposableStore(t *testing.T, lifetime thimble.Lifetime, classes ...*thimble.Class) *thimble.MetadataStore {
	t.Helper()

	store := thimble.NewMetadataStore()
	for _, class := range classes {
		require.NoError(t, store.Injectable(class, thimble.WithLifetime(lifetime)))
	}
	return store
}

func TestDispose(t *testing.T) {
	t.Parallel()

	connClass := thimble.ClassOf[*Connection]()
	poolClass := thimble.ClassOf[*FailingPool]()
	cacheClass := thimble.ClassOf[*PanickingCache]()
	workerClass := thimble.NewClass(func() *Worker { return &Worker{delay: 10 * time.Millisecond} })

	store := disposableStore(t, thimble.PerContainer, connClass, poolClass, cacheClass, workerClass)
	c := thimble.New(thimble.WithMetadata(store))

	conn := thimble.MustGet[*Connection](c, connClass)
	pool := thimble.MustGet[*FailingPool](c, poolClass)
	thimble.MustGet[*PanickingCache](c, cacheClass)
	worker := thimble.MustGet[*Worker](c, workerClass)

	require.NoError(t, c.Dispose(t.Context()))

	assert.True(t, conn.closed.Load())
	assert.True(t, pool.closed.Load())
	assert.True(t, worker.stopped.Load())
	assert.True(t, c.Disposed())
}

func TestDisposeOwnership(t *testing.T) {
	t.Parallel()

	connClass := thimble.ClassOf[*Connection]()
	store := disposableStore(t, thimble.PerContainer, connClass)

	root := thimble.New(thimble.WithMetadata(store))
	child, err := root.CreateChildContainer()
	require.NoError(t, err)

	rootConn := thimble.MustGet[*Connection](root, connClass)
	childConn := thimble.MustGet[*Connection](child, connClass)

	require.NoError(t, child.Dispose(t.Context()))
	assert.True(t, childConn.closed.Load())
	assert.False(t, rootConn.closed.Load())
	assert.False(t, root.Disposed())

	require.NoError(t, root.Dispose(t.Context()))
	assert.True(t, rootConn.closed.Load())
}

func TestDisposeSkipsTransient(t *testing.T) {
	t.Parallel()

	connClass := thimble.ClassOf[*Connection]()
	store := disposableStore(t, thimble.Transient, connClass)
	c := thimble.New(thimble.WithMetadata(store))

	conn := thimble.MustGet[*Connection](c, connClass)
	require.NoError(t, c.Dispose(t.Context()))
	assert.False(t, conn.closed.Load())
}

func TestDisposeSingletonAtRoot(t *testing.T) {
	t.Parallel()

	connClass := thimble.ClassOf[*Connection]()
	store := disposableStore(t, thimble.Singleton, connClass)

	root := thimble.New(thimble.WithMetadata(store))
	child, err := root.CreateChildContainer()
	require.NoError(t, err)

	conn := thimble.MustGet[*Connection](child, connClass)
	require.NoError(t, child.Dispose(t.Context()))
	assert.False(t, conn.closed.Load())

	require.NoError(t, root.Dispose(t.Context()))
	assert.True(t, conn.closed.Load())
}

func TestDisposeContextDeadline(t *testing.T) {
	t.Parallel()

	workerClass := thimble.NewClass(func() *Worker { return &Worker{delay: time.Second} })
	store := disposableStore(t, thimble.PerContainer, workerClass)
	c := thimble.New(thimble.WithMetadata(store))
	thimble.MustGet[*Worker](c, workerClass)

	ctx, cancel := context.WithTimeout(t.Context(), 10*time.Millisecond)
	defer cancel()

	err := c.Dispose(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.True(t, c.Disposed())
}

func TestDisposeFunc(t *testing.T) {
	t.Parallel()

	var called atomic.Bool
	fn := thimble.DisposeFunc(
		func() error {
			called.Store(true)
			return nil
		},
	)

	assert.True(t, thimble.IsDisposable(fn))
	assert.True(t, thimble.IsDisposable(&Connection{}))
	assert.False(t, thimble.IsDisposable(&Config{}))

	require.NoError(t, fn.Dispose())
	assert.True(t, called.Load())
}
