package agent

import (
	"context"
	"sync/atomic"
)

// Controller is the shared control surface between an agent's Address and
// its Driver. It tracks whether the driver is still willing to start new
// work (the active flag, LevelFlag) and carries an abort context that is
// cancelled on LevelAbort. A Controller is created once per agent and
// lives for the agent's whole lifetime.
type Controller struct {
	active atomic.Bool

	abortCtx context.Context
	abortFn  context.CancelFunc

	registered atomic.Bool
}

// NewController returns a Controller in the active state.
func NewController() *Controller {
	ctx, cancel := context.WithCancel(context.Background())

	c := &Controller{
		abortCtx: ctx,
		abortFn:  cancel,
	}
	c.active.Store(true)

	return c
}

// IsActive reports whether the driver should keep starting new work.
func (c *Controller) IsActive() bool {
	return c.active.Load()
}

// Stop applies LevelFlag: no new units of work will be started, but
// in-flight ones are left alone.
func (c *Controller) Stop() {
	c.active.Store(false)
}

// Abort applies LevelAbort: the active flag is cleared and the shared
// abort context is cancelled.
func (c *Controller) Abort() {
	c.active.Store(false)
	c.abortFn()
}

// Aborted reports whether Abort has been called.
func (c *Controller) Aborted() bool {
	select {
	case <-c.abortCtx.Done():
		return true
	default:
		return false
	}
}

// Interruptor returns the handle performers use to observe LevelAbort.
// Every call returns an equally valid handle; there is no single-owner
// restriction on reading it.
func (c *Controller) Interruptor() Interruptor {
	return Interruptor{ctrl: c}
}

// TakeAbortSignal returns the controller's abort context exactly once. The
// driver takes it when it starts, so a second driver cannot register
// against the same controller; every later call returns
// ErrRegistrationTaken.
func (c *Controller) TakeAbortSignal() (context.Context, error) {
	if !c.registered.CompareAndSwap(false, true) {
		return nil, ErrRegistrationTaken
	}

	return c.abortCtx, nil
}

// Interruptor is a read-only view of a Controller's abort signal, handed to
// performers so they can cooperate with LevelAbort without being able to
// flip the controller themselves.
type Interruptor struct {
	ctrl *Controller
}

// Done returns a channel that closes when LevelAbort is applied.
func (i Interruptor) Done() <-chan struct{} {
	return i.ctrl.abortCtx.Done()
}

// IsActive reports whether the owning driver is still active.
func (i Interruptor) IsActive() bool {
	return i.ctrl.IsActive()
}

// Context returns a context.Context that is cancelled on LevelAbort, handy
// for threading into agent-supplied I/O calls.
func (i Interruptor) Context() context.Context {
	return i.ctrl.abortCtx
}
