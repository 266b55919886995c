// Package pool distributes events across a fixed set of identically
// behaved agents using round-robin scheduling, the same role
// actorutil.Pool plays for the teacher's actor system.
package pool

import (
	"sync/atomic"

	"github.com/corvid-labs/hybridagent/internal/agent"
)

// Config configures a new Pool.
type Config[A any, O any] struct {
	// ID identifies the pool, used only for logging/diagnostics.
	ID string

	// Size is the number of agents to spawn. Defaults to 1.
	Size int

	// Factory builds the idx'th pool member.
	Factory func(idx int) A
}

// Pool is a fixed-size set of agents addressed as one round-robin target.
type Pool[A any, O any] struct {
	id    string
	addrs []*agent.Address[A, O]
	next  atomic.Uint64
}

// New spawns cfg.Size agents via cfg.Factory and returns the pool.
func New[A any, O any](cfg Config[A, O]) *Pool[A, O] {
	if cfg.Size <= 0 {
		cfg.Size = 1
	}

	p := &Pool[A, O]{
		id:    cfg.ID,
		addrs: make([]*agent.Address[A, O], cfg.Size),
	}
	for i := 0; i < cfg.Size; i++ {
		p.addrs[i] = agent.Spawn[A, O](cfg.Factory(i))
	}

	return p
}

// ID returns the pool's identifier.
func (p *Pool[A, O]) ID() string {
	return p.id
}

// Size returns the number of agents in the pool.
func (p *Pool[A, O]) Size() int {
	return len(p.addrs)
}

// Addresses returns a copy of the pool's member addresses.
func (p *Pool[A, O]) Addresses() []*agent.Address[A, O] {
	out := make([]*agent.Address[A, O], len(p.addrs))
	copy(out, p.addrs)
	return out
}

func (p *Pool[A, O]) pick() *agent.Address[A, O] {
	idx := p.next.Add(1) % uint64(len(p.addrs))
	return p.addrs[idx]
}

// Shutdown closes every pool member's mailbox.
func (p *Pool[A, O]) Shutdown() {
	for _, addr := range p.addrs {
		addr.Shutdown()
	}
}

// Send delivers event to the next agent in round-robin order.
func Send[A any, O any, E agent.EventHandler[A, O]](p *Pool[A, O], event E) error {
	return agent.Event[A, O](p.pick(), event)
}

// Broadcast delivers event to every agent in the pool.
func Broadcast[A any, O any, E agent.EventHandler[A, O]](p *Pool[A, O], event E) {
	for _, addr := range p.addrs {
		_ = agent.Event[A, O](addr, event)
	}
}
