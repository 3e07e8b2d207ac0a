package preview

import (
	"context"
	"sync"
)

// Controller owns the preview surface for one picker session. Both signal
// sources (pointer hover and selection-state changes) funnel into Show; the
// current-category check collapses redundant calls so render work is paid
// once per distinct selection, and a stale in-flight render can never
// clobber a newer one.
type Controller struct {
	renderer Renderer
	surface  Surface
	sample   func(category string) string
	onError  func(error)

	ctx    context.Context
	cancel context.CancelFunc

	mu         sync.Mutex
	current    string
	hasCurrent bool
	disposed   bool
	inflight   sync.WaitGroup
}

// New builds a controller for one session. sample converts a category into
// the short document handed to the renderer; onError receives render
// failures and may be nil. Failures are never fatal to the session.
func New(r Renderer, s Surface, sample func(string) string, onError func(error)) *Controller {
	ctx, cancel := context.WithCancel(context.Background())
	return &Controller{
		renderer: r,
		surface:  s,
		sample:   sample,
		onError:  onError,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Show makes category the current selection and kicks off a render for it.
// A call naming the already-current category is a no-op: no re-render, no
// unmount. Otherwise the previous content is cleared, the category is
// recorded as current immediately, and the render proceeds asynchronously;
// right before mounting, the result is dropped unless its category is still
// current, so a fast sequence of calls converges on the last one.
func (c *Controller) Show(category string) {
	c.mu.Lock()
	if c.disposed || (c.hasCurrent && c.current == category) {
		c.mu.Unlock()
		return
	}
	c.current = category
	c.hasCurrent = true
	c.surface.Clear()
	ctx := c.ctx
	c.inflight.Add(1)
	c.mu.Unlock()

	src := c.sample(category)
	go func() {
		defer c.inflight.Done()
		frame, err := c.renderer.Render(ctx, src)
		if err != nil {
			if c.onError != nil && ctx.Err() == nil {
				c.onError(err)
			}
			return
		}
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.disposed || !c.hasCurrent || c.current != category {
			// Superseded while in flight; discard.
			return
		}
		c.surface.Mount(frame)
	}()
}

// Current reports the currently previewed category, if any.
func (c *Controller) Current() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		return "", false
	}
	return c.current, c.hasCurrent
}

// Dispose tears the session down: cancels any in-flight render, unmounts the
// surface and releases the renderer. Safe to call repeatedly and safe to
// call when nothing was ever shown. Every session exit path must end here.
func (c *Controller) Dispose() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.disposed = true
	c.hasCurrent = false
	c.cancel()
	c.surface.Clear()
	c.mu.Unlock()
	c.renderer.Release()
}

// settle blocks until every render started so far has finished or been
// discarded. Test hook.
func (c *Controller) settle() {
	c.inflight.Wait()
}
