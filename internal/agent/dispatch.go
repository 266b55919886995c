package agent

import "context"

// callFailed runs the agent's optional Failer hook, or logs the error if
// the agent doesn't implement one. A handler or duty error never by
// itself terminates the agent; this is always advisory.
func callFailed[A any, O any](ag A, ctx *Context[A, O], err error) {
	if f, ok := any(ag).(Failer[A, O]); ok {
		f.Failed(err, ctx)
		return
	}
	log.ErrorS(context.Background(), "unhandled agent error", "err", err)
}

// callInterrupt runs the agent's optional Interruptible hook, defaulting
// to a graceful Shutdown.
func callInterrupt[A any, O any](ag A, ctx *Context[A, O]) {
	if i, ok := any(ag).(Interruptible[A, O]); ok {
		i.OnInterrupt(ctx)
		return
	}
	ctx.Shutdown()
}

// callInitial resolves the first Next for a freshly spawned agent,
// preferring Initializer over Beginner over a bare Events default.
func callInitial[A any, O any](ag A, ctx *Context[A, O]) Next[A, O] {
	if i, ok := any(ag).(Initializer[A, O]); ok {
		return i.Initialize(ctx)
	}
	if b, ok := any(ag).(Beginner[A, O]); ok {
		return b.Begin()
	}
	return Events[A, O]()
}

// callFinalize resolves the agent's terminal Output. An agent that
// implements Finalizer owns its own termination entirely and is trusted to
// call End itself if it wants one; Ender only runs automatically as the
// *default* finalizer, for an agent that supplies no Finalize of its own.
func callFinalize[A any, O any](ag A, ctx *Context[A, O]) O {
	if f, ok := any(ag).(Finalizer[A, O]); ok {
		return f.Finalize(ctx)
	}

	var out O
	if e, ok := any(ag).(Ender); ok {
		e.End()
	}
	return out
}

// callRollback runs the agent's optional Rollbacker hook. recovered is
// false (and ag the zero value) when the driver ended without an agent
// value to hand back.
func callRollback[A any, O any](ag A, recovered bool, err error, ctx *Context[A, O]) {
	if r, ok := any(ag).(Rollbacker[A, O]); ok {
		r.Rollback(ag, recovered, err, ctx)
	}
}
