// Package timer supplies the trivial event-producing wrappers spec.md
// describes as living outside the runtime core: a ticker that pushes a
// periodic event into an agent's mailbox, and a drainer that batches a
// buffered channel onto the same cadence.
package timer

import (
	"time"

	"github.com/corvid-labs/hybridagent/internal/agent"
)

// Ticker delivers a fresh event, built from the current tick time, to an
// address on a fixed interval until Stop is called.
type Ticker[A any, O any, E agent.EventHandler[A, O]] struct {
	ticker *time.Ticker
	stop   chan struct{}
}

// Start begins ticking immediately.
func Start[A any, O any, E agent.EventHandler[A, O]](
	addr *agent.Address[A, O],
	interval time.Duration,
	makeEvent func(tick time.Time) E,
) *Ticker[A, O, E] {

	t := &Ticker[A, O, E]{
		ticker: time.NewTicker(interval),
		stop:   make(chan struct{}),
	}

	go func() {
		for {
			select {
			case tm := <-t.ticker.C:
				if err := agent.Event[A, O](addr, makeEvent(tm)); err != nil {
					return
				}
			case <-t.stop:
				return
			}
		}
	}()

	return t
}

// Stop halts the ticker and its delivery goroutine.
func (t *Ticker[A, O, E]) Stop() {
	t.ticker.Stop()
	close(t.stop)
}

// Drainer batches values arriving on a channel and flushes them to a
// Recipient on a fixed cadence, rather than one event send per value.
type Drainer[E any] struct {
	stop chan struct{}
}

// StartDrainer begins draining ch into recipient every interval.
func StartDrainer[E any](ch <-chan E, recipient agent.Recipient[E], interval time.Duration) *Drainer[E] {
	d := &Drainer[E]{stop: make(chan struct{})}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		var buf []E
		for {
			select {
			case e := <-ch:
				buf = append(buf, e)
			case <-ticker.C:
				for _, e := range buf {
					_ = recipient.Send(e)
				}
				buf = buf[:0]
			case <-d.stop:
				return
			}
		}
	}()

	return d
}

// Stop halts the drainer's goroutine without flushing a final batch.
func (d *Drainer[E]) Stop() {
	close(d.stop)
}
