package agent

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// Context is the capability surface handed to an agent's own hooks and
// handlers. It is the only way agent code can reach its own address,
// inspect its liveness, request a shutdown, or redirect the state machine
// from inside an event handler.
type Context[A any, O any] struct {
	addr *Address[A, O]

	// pending holds a state transition requested from within an event
	// handler while the driver is in events mode. It always wins over
	// continuing to drain the mailbox.
	pending atomic.Pointer[Next[A, O]]
}

func newContext[A any, O any](addr *Address[A, O]) *Context[A, O] {
	return &Context[A, O]{addr: addr}
}

// Address returns the agent's own address.
func (c *Context[A, O]) Address() *Address[A, O] {
	return c.addr
}

// ID returns the agent's identity.
func (c *Context[A, O]) ID() uuid.UUID {
	return c.addr.ID()
}

// IsAlive reports whether the agent is still active and accepting work.
func (c *Context[A, O]) IsAlive() bool {
	return c.addr.IsAlive()
}

// Shutdown closes the mailbox, letting the driver drain it and exit.
func (c *Context[A, O]) Shutdown() {
	c.addr.Shutdown()
}

// Stop applies LevelFlag to the agent's own controller.
func (c *Context[A, O]) Stop() {
	c.addr.ctrl.Stop()
}

// Controller returns the agent's shared controller.
func (c *Context[A, O]) Controller() *Controller {
	return c.addr.ctrl
}

// Interruptor returns a read-only view of the abort signal.
func (c *Context[A, O]) Interruptor() Interruptor {
	return c.addr.ctrl.Interruptor()
}

// Transition schedules the next state transition. Called from inside an
// event handler, it takes effect the next time the driver checks for
// pending work, pre-empting a return to mailbox draining.
func (c *Context[A, O]) Transition(next Next[A, O]) {
	c.pending.Store(&next)
}

func (c *Context[A, O]) takePending() (Next[A, O], bool) {
	p := c.pending.Swap(nil)
	if p == nil {
		var zero Next[A, O]
		return zero, false
	}
	return *p, true
}
