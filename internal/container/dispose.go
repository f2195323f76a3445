package container

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

// Disposer and its variants are the dispose methods recognised on cached
// instances. Channel results are awaited until they yield or close.
type Disposer interface {
	Dispose()
}

type ErrorDisposer interface {
	Dispose() error
}

type SignalDisposer interface {
	Dispose() <-chan struct{}
}

type AsyncDisposer interface {
	Dispose() <-chan error
}

// IsDisposable reports whether v has a recognised dispose method.
func IsDisposable(v any) bool {
	switch v.(type) {
	case Disposer, ErrorDisposer, SignalDisposer, AsyncDisposer:
		return true
	default:
		return false
	}
}

// Dispose marks c disposed and tears down the instances c itself caches.
// Failures of individual instances are logged and dropped. Pending
// asynchronous disposals are awaited together; if ctx ends first Dispose
// returns ctx.Err() and leaves them running.
func (c *Container) Dispose(ctx context.Context) error {
	if c.disposed {
		return errDisposed()
	}
	c.disposed = true

	start := time.Now()
	instances := c.instances.Values()
	c.logger.Debug("disposing container", "instances", len(instances))

	var g errgroup.Group
	for _, instance := range instances {
		wait := c.disposeInstance(instance)
		if wait == nil {
			continue
		}
		g.Go(
			func() error {
				wait()
				return nil
			},
		)
	}

	done := make(chan struct{})
	go func() {
		_ = g.Wait()
		close(done)
	}()

	var err error
	select {
	case <-done:
	case <-ctx.Done():
		err = ctx.Err()
	}

	duration := time.Since(start)
	c.logger.Debug("container disposed", "duration", duration, "error", err)
	for _, hook := range c.hooks.OnDispose {
		hook(c.id.String(), len(instances), duration, err)
	}
	return err
}

// disposeInstance runs the synchronous part of an instance's dispose method
// and returns a wait function when the method handed back a channel.
func (c *Container) disposeInstance(instance any) (wait func()) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Debug("dispose panicked", "instance", fmt.Sprintf("%T", instance), "panic", r)
			wait = nil
		}
	}()

	switch d := instance.(type) {
	case AsyncDisposer:
		ch := d.Dispose()
		if ch == nil {
			return nil
		}
		return func() {
			if err := <-ch; err != nil {
				c.logger.Debug("dispose failed", "instance", fmt.Sprintf("%T", instance), "error", err)
			}
		}
	case SignalDisposer:
		ch := d.Dispose()
		if ch == nil {
			return nil
		}
		return func() {
			<-ch
		}
	case ErrorDisposer:
		if err := d.Dispose(); err != nil {
			c.logger.Debug("dispose failed", "instance", fmt.Sprintf("%T", instance), "error", err)
		}
	case Disposer:
		d.Dispose()
	}
	return nil
}
