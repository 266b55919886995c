package agent

import "context"

// asyncPerformer runs state's work on the driver's own task, repeatedly
// calling its iteration step until one produces a Next or the driver's
// interruptor goes inactive.
type asyncPerformer[A any, O any, S AsyncState[A, O]] struct {
	state S
}

func (p asyncPerformer[A, O, S]) Perform(ctx *Context[A, O], ag A) Transition[A, O] {
	interruptor := ctx.Interruptor()

	for {
		if !interruptor.IsActive() {
			return continueNext[A, O](ag, Done[A, O]())
		}

		next, ok, err := callAsyncMany[A, O](interruptor.Context(), p.state, ag)
		if err != nil {
			if rerr := repairState(p.state, err); rerr != nil {
				return continueNext[A, O](ag, fallbackState[A, O](p.state, ag, rerr))
			}
			continue
		}
		if ok {
			return continueNext[A, O](ag, next)
		}
	}
}

func callAsyncMany[A any, O any, S AsyncState[A, O]](ctx context.Context, state S, ag A) (Next[A, O], bool, error) {
	if m, ok := any(state).(AsyncStateMany[A, O]); ok {
		return m.Many(ctx, ag)
	}

	next, err := state.Once(ctx, ag)
	if err != nil {
		var zero Next[A, O]
		return zero, false, err
	}
	return next, true, nil
}

// repairState attempts to recover from a single failed iteration. Without
// a Repair override the error is returned unchanged, which ends the loop
// via fallbackState.
func repairState[S any](state S, err error) error {
	if r, ok := any(state).(AsyncStateRepairer); ok {
		return r.Repair(err)
	}
	return err
}

// fallbackState produces the terminal transition for a state whose
// iteration could not be repaired. Without a Fallback override this just
// fails the agent with the original error.
func fallbackState[A any, O any, S any](state S, ag A, err error) Next[A, O] {
	if f, ok := any(state).(AsyncStateFallbacker[A, O]); ok {
		return f.FallbackState(ag, err)
	}
	return Fail[A, O](err)
}
