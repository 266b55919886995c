package agent

// eventsPerformer is the Next produced by Next.Events: it carries no work
// of its own, it only tells the driver to switch into mailbox-draining
// mode.
type eventsPerformer[A any, O any] struct{}

func (eventsPerformer[A, O]) Perform(ctx *Context[A, O], ag A) Transition[A, O] {
	return continueEvents[A, O](ag)
}
