package agent

import "context"

// Unit is the default, information-free Output type for agents that don't
// produce a terminal value.
type Unit struct{}

// Initializer is an optional agent hook returning the first transition to
// run. Agents that don't implement it fall back to Beginner, and if that's
// also absent, to Next.Events.
type Initializer[A any, O any] interface {
	Initialize(ctx *Context[A, O]) Next[A, O]
}

// Beginner is the simpler half of Initializer: a first transition with no
// context dependency.
type Beginner[A any, O any] interface {
	Begin() Next[A, O]
}

// Interruptible lets an agent react to a cooperative (LevelEvent)
// interrupt. The default behavior, when unimplemented, is ctx.Shutdown().
type Interruptible[A any, O any] interface {
	OnInterrupt(ctx *Context[A, O])
}

// Failer lets an agent observe a non-fatal handler or state error. The
// default behavior is to log it.
type Failer[A any, O any] interface {
	Failed(err error, ctx *Context[A, O])
}

// Rollbacker is invoked at most once per driver lifetime, only on a
// LevelAbort-forced termination. recovered reports whether ag holds a
// usable agent value; when false, ag is the zero value and must not be
// used. The default behavior is a no-op.
type Rollbacker[A any, O any] interface {
	Rollback(ag A, recovered bool, err error, ctx *Context[A, O])
}

// Finalizer produces the agent's terminal Output. An agent that implements
// it owns termination outright: Ender, even if also implemented, is not
// invoked automatically alongside it.
type Finalizer[A any, O any] interface {
	Finalize(ctx *Context[A, O]) O
}

// Ender runs only as the default finalizer, for an agent that implements
// no Finalizer of its own; it never runs alongside an explicit Finalize.
type Ender interface {
	End()
}

// EventHandler is implemented by a message payload, not by the agent: the
// envelope built from it already knows how to apply itself. This is what
// "OnEvent" looks like from the payload's side.
type EventHandler[A any, O any] interface {
	HandleEvent(ag A, ctx *Context[A, O]) error
}

// EventFallbacker lets an event payload recover from its own handler
// error; absent this, a handler error is routed straight to Failer.
type EventFallbacker[A any, O any] interface {
	FallbackEvent(err error, ctx *Context[A, O]) error
}

// DutyEvent is a payload that, instead of returning only an error, decides
// the agent's next transition. It runs directly in the driver's loop.
type DutyEvent[A any, O any] interface {
	HandleDuty(ag A, ctx *Context[A, O]) (Next[A, O], error)
}

// LoopbackEvent is a payload dispatched through the driver's InContext
// branch: the handler can both mutate the context and produce the next
// transition, exactly like DutyEvent, but the dispatch is staged through
// an internal envelope rather than run inline.
type LoopbackEvent[A any, O any] interface {
	HandleLoopback(ag A, ctx *Context[A, O]) (Next[A, O], error)
}

// AsyncState is the minimal shape of a DoAsync state: one unit of async
// work that either yields the next transition or an error.
type AsyncState[A any, O any] interface {
	Once(ctx context.Context, ag A) (Next[A, O], error)
}

// AsyncStateMany overrides the default "loop Once until it returns
// Some(Next)" behavior with its own iteration step.
type AsyncStateMany[A any, O any] interface {
	Many(ctx context.Context, ag A) (Next[A, O], bool, error)
}

// AsyncStateRepairer attempts to recover from a single failed iteration.
// Returning a non-nil error ends the loop via Fallback.
type AsyncStateRepairer interface {
	Repair(err error) error
}

// AsyncStateFallbacker produces the terminal transition after Repair
// fails (or when there is no Repair at all).
type AsyncStateFallbacker[A any, O any] interface {
	FallbackState(ag A, err error) Next[A, O]
}

// SyncState is the blocking counterpart of AsyncState: Once runs on a
// dedicated worker and observes cancellation via the Interruptor rather
// than a context.
type SyncState[A any, O any] interface {
	OnceBlocking(ag A, interruptor Interruptor) (Next[A, O], error)
}

// SyncStateMany is the blocking counterpart of AsyncStateMany.
type SyncStateMany[A any, O any] interface {
	ManyBlocking(ag A, interruptor Interruptor) (Next[A, O], bool, error)
}

// Molter lets an agent hand itself off to a successor of a different type
// once its runtime reaches Next.Morph. Molt is called after the current
// driver has fully wound down; ok=false means no successor is available
// and the chain ends here.
type Molter[A any, B any] interface {
	Molt(ag A) (B, bool)
}
