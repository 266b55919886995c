package agent

// interruptPerformer is terminal: it ends the state-machine run, either
// cleanly (Done) or with an error that will route through agent.Failed
// before finalize (Fail).
type interruptPerformer[A any, O any] struct {
	err error
}

func (p interruptPerformer[A, O]) Perform(ctx *Context[A, O], ag A) Transition[A, O] {
	if p.err != nil {
		return continueStopFailed[A, O](ag, p.err)
	}
	return continueStopStopped[A, O](ag)
}
