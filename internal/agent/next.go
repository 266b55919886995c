package agent

// Next is a one-shot description of the transition that should run after
// the current one. It is opaque; construct one with Events, Done, Fail,
// DoAsync, DoSync, Duty, InContext, or Morph.
type Next[A any, O any] struct {
	performer Performer[A, O]
}

func (n Next[A, O]) perform(ctx *Context[A, O], ag A) Transition[A, O] {
	if n.performer == nil {
		return continueEvents[A, O](ag)
	}
	return n.performer.Perform(ctx, ag)
}

// Events switches the driver into mailbox-draining mode.
func Events[A any, O any]() Next[A, O] {
	return Next[A, O]{performer: eventsPerformer[A, O]{}}
}

// Done ends the agent's state-machine run successfully.
func Done[A any, O any]() Next[A, O] {
	return Next[A, O]{performer: interruptPerformer[A, O]{}}
}

// Fail ends the agent's state-machine run with an error, routing through
// agent.Failed before finalize.
func Fail[A any, O any](err error) Next[A, O] {
	return Next[A, O]{performer: interruptPerformer[A, O]{err: err}}
}

// DoAsync runs state on the driver's own task, repeatedly, until it
// produces the following Next.
func DoAsync[A any, O any, S AsyncState[A, O]](state S) Next[A, O] {
	return Next[A, O]{performer: asyncPerformer[A, O, S]{state: state}}
}

// DoSync runs state on a dedicated blocking worker, the same way, but
// off the driver's own task.
func DoSync[A any, O any, S SyncState[A, O]](state S) Next[A, O] {
	return Next[A, O]{performer: syncPerformer[A, O, S]{state: state}}
}

// Duty runs event's handler inline, in the driver's own task, and uses
// its return value as the following transition.
func Duty[A any, O any, E DutyEvent[A, O]](event E) Next[A, O] {
	return Next[A, O]{performer: dutyPerformer[A, O, E]{event: event}}
}

// InContext stages event through an internal envelope dispatched by the
// driver's InContext branch, letting its handler mutate the context and
// choose the following transition.
func InContext[A any, O any, E LoopbackEvent[A, O]](event E) Next[A, O] {
	return Next[A, O]{performer: loopbackPerformer[A, O, E]{event: event}}
}

// Morph ends the current driver and hands the agent to its Molter.
// RunMolt returns the successor it produces; no driver is started for the
// successor, and a driver started by Spawn that reaches Morph never
// completes its Address.
func Morph[A any, O any]() Next[A, O] {
	return Next[A, O]{performer: moltPerformer[A, O]{}}
}
