package agent

// dutyPerformer runs event's handler inline, on the driver's own task,
// and uses its return value directly as the following transition. A
// handler error is advisory: it is reported through Failed and the
// driver falls back to events mode rather than stopping.
type dutyPerformer[A any, O any, E DutyEvent[A, O]] struct {
	event E
}

func (p dutyPerformer[A, O, E]) Perform(ctx *Context[A, O], ag A) Transition[A, O] {
	next, err := p.event.HandleDuty(ag, ctx)
	if err != nil {
		callFailed[A, O](ag, ctx, err)
		return continueNext[A, O](ag, Events[A, O]())
	}
	return continueNext[A, O](ag, next)
}
