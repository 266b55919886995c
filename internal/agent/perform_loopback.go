package agent

// loopbackPerformer stages event to be dispatched by the driver's own
// InContext branch, rather than running the handler here directly. This
// mirrors the driver algorithm's "Continue{agent, InContext(envelope)}"
// step: the driver dispatches the envelope and reloads the pending
// next-state from the context afterward.
type loopbackPerformer[A any, O any, E LoopbackEvent[A, O]] struct {
	event E
}

func (p loopbackPerformer[A, O, E]) Perform(ctx *Context[A, O], ag A) Transition[A, O] {
	return continueInContext[A, O](ag, func(ag A, ctx *Context[A, O]) (Next[A, O], error) {
		return p.event.HandleLoopback(ag, ctx)
	})
}
