package agent

import (
	"context"
	"iter"
	"sync"
)

// mailboxEnvelope is a self-dispatching unit of mailbox work: it already
// knows both the payload and the handler that applies it, so the mailbox
// itself never needs to know what message types flow through it.
type mailboxEnvelope[A any, O any] struct {
	handle func(ag A, ctx *Context[A, O]) error
}

func newMailboxEnvelope[A any, O any, E EventHandler[A, O]](event E) mailboxEnvelope[A, O] {
	return mailboxEnvelope[A, O]{
		handle: func(ag A, ctx *Context[A, O]) error {
			err := event.HandleEvent(ag, ctx)
			if err == nil {
				return nil
			}
			if f, ok := any(event).(EventFallbacker[A, O]); ok {
				return f.FallbackEvent(err, ctx)
			}
			return err
		},
	}
}

// mailbox is an unbounded, FIFO, single-consumer queue of envelopes for one
// agent. Unlike a buffered channel it never blocks a sender: Send only
// fails once the mailbox has been closed. This is a deliberate departure
// from a bounded channel-backed mailbox (the teacher's ChannelMailbox) to
// satisfy the runtime's no-backpressure guarantee.
type mailbox[A any, O any] struct {
	mu     sync.Mutex
	queue  []mailboxEnvelope[A, O]
	closed bool
	signal chan struct{}
}

func newMailbox[A any, O any]() *mailbox[A, O] {
	return &mailbox[A, O]{signal: make(chan struct{}, 1)}
}

func (m *mailbox[A, O]) wake() {
	select {
	case m.signal <- struct{}{}:
	default:
	}
}

// send enqueues an envelope, returning ErrMailboxClosed if the mailbox has
// already been closed.
func (m *mailbox[A, O]) send(e mailboxEnvelope[A, O]) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrMailboxClosed
	}
	m.queue = append(m.queue, e)
	m.mu.Unlock()

	m.wake()
	return nil
}

func (m *mailbox[A, O]) tryRecv() (mailboxEnvelope[A, O], bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.queue) == 0 {
		return mailboxEnvelope[A, O]{}, false
	}

	e := m.queue[0]
	m.queue[0] = mailboxEnvelope[A, O]{}
	m.queue = m.queue[1:]
	return e, true
}

// recv blocks until an envelope is available, the mailbox closes with an
// empty queue, or ctx is done.
func (m *mailbox[A, O]) recv(ctx context.Context) (mailboxEnvelope[A, O], bool) {
	for {
		if e, ok := m.tryRecv(); ok {
			return e, true
		}

		m.mu.Lock()
		closed := m.closed
		m.mu.Unlock()
		if closed {
			return mailboxEnvelope[A, O]{}, false
		}

		select {
		case <-m.signal:
		case <-ctx.Done():
			return mailboxEnvelope[A, O]{}, false
		}
	}
}

// close marks the mailbox closed. Already-queued envelopes remain readable
// via drain; Send after close always fails.
func (m *mailbox[A, O]) close() {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()

	m.wake()
}

func (m *mailbox[A, O]) isClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

func (m *mailbox[A, O]) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}

// drain yields every envelope still queued at the moment of iteration,
// without blocking. The driver does not use it: it empties a closed
// mailbox through recv, which returns queued envelopes before reporting
// the close.
func (m *mailbox[A, O]) drain() iter.Seq[mailboxEnvelope[A, O]] {
	return func(yield func(mailboxEnvelope[A, O]) bool) {
		for {
			e, ok := m.tryRecv()
			if !ok {
				return
			}
			if !yield(e) {
				return
			}
		}
	}
}
