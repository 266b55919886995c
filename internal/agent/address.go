package agent

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// outputSlot is completed exactly once, by Finalize (success) or by the
// driver giving up (failure), and can be observed by any number of Join
// callers.
type outputSlot[O any] struct {
	done chan struct{}
	once sync.Once
	val  O
	err  error
}

func newOutputSlot[O any]() *outputSlot[O] {
	return &outputSlot[O]{done: make(chan struct{})}
}

func (s *outputSlot[O]) complete(val O, err error) {
	s.once.Do(func() {
		s.val, s.err = val, err
		close(s.done)
	})
}

func (s *outputSlot[O]) join(ctx context.Context) (O, error) {
	select {
	case <-s.done:
		return s.val, s.err
	case <-ctx.Done():
		var zero O
		return zero, ctx.Err()
	}
}

// Address is a cloneable handle to a running agent. Any number of Address
// values may refer to the same underlying agent; none of them owns it.
// Sending through an Address never blocks.
type Address[A any, O any] struct {
	id   uuid.UUID
	mb   *mailbox[A, O]
	ctrl *Controller
	out  *outputSlot[O]
}

func newAddress[A any, O any]() *Address[A, O] {
	return &Address[A, O]{
		id:   uuid.New(),
		mb:   newMailbox[A, O](),
		ctrl: NewController(),
		out:  newOutputSlot[O](),
	}
}

// ID returns the agent's stable identity.
func (a *Address[A, O]) ID() uuid.UUID {
	return a.id
}

// IsAlive reports whether the agent's driver is still active.
func (a *Address[A, O]) IsAlive() bool {
	return a.ctrl.IsActive() && !a.mb.isClosed()
}

// Event delivers a self-dispatching message to the agent's mailbox. It
// returns ErrMailboxClosed once the agent has begun shutting down.
func Event[A any, O any, E EventHandler[A, O]](addr *Address[A, O], event E) error {
	err := addr.mb.send(newMailboxEnvelope[A, O](event))
	if err != nil {
		log.DebugS(context.Background(), "event dropped, mailbox closed",
			"agent_id", addr.id, "err", err)
	}
	return err
}

// Interrupt applies the given interruption level to the agent: LevelEvent
// enqueues an interrupt envelope, LevelFlag stops the controller, and
// LevelAbort aborts it. No method picks a default level: Stop and Abort are
// shorthands for LevelFlag and LevelAbort, and Context has no interrupt
// method of its own.
func (a *Address[A, O]) Interrupt(level Level) {
	switch level {
	case LevelAbort:
		a.ctrl.Abort()
	case LevelFlag:
		a.ctrl.Stop()
	default:
		// LevelEvent: enqueue a distinguished interrupt envelope so
		// it's handled in order with the rest of the mailbox.
		_ = a.mb.send(mailboxEnvelope[A, O]{
			handle: func(ag A, ctx *Context[A, O]) error {
				callInterrupt[A, O](ag, ctx)
				return nil
			},
		})
	}
}

// Stop is sugar for Interrupt(LevelFlag), the address-side default.
func (a *Address[A, O]) Stop() {
	a.Interrupt(LevelFlag)
}

// Abort is sugar for Interrupt(LevelAbort).
func (a *Address[A, O]) Abort() {
	a.Interrupt(LevelAbort)
}

// Shutdown closes the mailbox. The driver drains whatever is left in it
// and then exits; no new messages are accepted afterward.
func (a *Address[A, O]) Shutdown() {
	a.mb.close()
}

// Controller exposes the agent's shared controller.
func (a *Address[A, O]) Controller() *Controller {
	return a.ctrl
}

// Join blocks until the agent produces its terminal Output, or ctx is
// done first.
func (a *Address[A, O]) Join(ctx context.Context) (O, error) {
	return a.out.join(ctx)
}

// Recipient narrows an Address down to only the subset of events a given
// payload type declares itself willing to send; it's the type a component
// should depend on when it only ever needs to push one kind of message.
type Recipient[E any] struct {
	send func(event E) error
}

// NewRecipient adapts an Address into a Recipient for one event type.
func NewRecipient[A any, O any, E EventHandler[A, O]](addr *Address[A, O]) Recipient[E] {
	return Recipient[E]{
		send: func(event E) error {
			return Event[A, O](addr, event)
		},
	}
}

// Send delivers event through the recipient.
func (r Recipient[E]) Send(event E) error {
	return r.send(event)
}
