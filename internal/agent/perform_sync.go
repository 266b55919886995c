package agent

// syncPerformer is the blocking counterpart of asyncPerformer: the same
// once/many/repair/fallback control structure, but each iteration runs on
// the shared blocking pool instead of the driver's own task. Cancellation
// is observed between iterations via the interruptor, never mid-call.
type syncPerformer[A any, O any, S SyncState[A, O]] struct {
	state S
}

type syncStepResult[A any, O any] struct {
	next Next[A, O]
	ok   bool
	err  error
}

func (p syncPerformer[A, O, S]) Perform(ctx *Context[A, O], ag A) Transition[A, O] {
	interruptor := ctx.Interruptor()

	for {
		if !interruptor.IsActive() {
			return continueNext[A, O](ag, Done[A, O]())
		}

		res := runBlocking(func() syncStepResult[A, O] {
			next, ok, err := callSyncMany[A, O](p.state, ag, interruptor)
			return syncStepResult[A, O]{next: next, ok: ok, err: err}
		})

		if res.err != nil {
			if rerr := repairState(p.state, res.err); rerr != nil {
				return continueNext[A, O](ag, fallbackState[A, O](p.state, ag, rerr))
			}
			continue
		}
		if res.ok {
			return continueNext[A, O](ag, res.next)
		}
	}
}

func callSyncMany[A any, O any, S SyncState[A, O]](state S, ag A, interruptor Interruptor) (Next[A, O], bool, error) {
	if m, ok := any(state).(SyncStateMany[A, O]); ok {
		return m.ManyBlocking(ag, interruptor)
	}

	next, err := state.OnceBlocking(ag, interruptor)
	if err != nil {
		var zero Next[A, O]
		return zero, false, err
	}
	return next, true, nil
}
