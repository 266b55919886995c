package agent

import (
	"context"
	"errors"
)

// SpawnOption configures a spawned agent. None are defined yet; it exists
// so the signature of Spawn doesn't need to change when the first one is.
type SpawnOption func(*spawnConfig)

type spawnConfig struct{}

// Spawn starts ag's driver on its own goroutine and returns an Address
// immediately. The driver owns ag exclusively from this point forward;
// the caller must not touch it directly again.
func Spawn[A any, O any](ag A, opts ...SpawnOption) *Address[A, O] {
	var cfg spawnConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	addr := newAddress[A, O]()
	ctx := newContext[A, O](addr)

	go runDriver[A, O](ctx, ag)

	return addr
}

type loopOutcome uint8

const (
	loopStopped loopOutcome = iota
	loopFailed
	loopTransformed
	loopCrashed
)

func runDriver[A any, O any](ctx *Context[A, O], ag A) {
	final, outcome, err := runLoop[A, O](ctx, ag)

	switch outcome {
	case loopTransformed:
		// The agent was handed off to a successor elsewhere; this
		// driver's address never completes. Callers that intend to
		// molt should drive the chain with RunMolt, not a bare Spawn.
		log.DebugS(context.Background(), "agent transformed, address abandoned",
			"agent_id", ctx.ID())
		return

	case loopCrashed:
		// The driver's abort paths return context.Canceled together with
		// the last agent value it held; the other crash paths carry none.
		recovered := errors.Is(err, context.Canceled)
		callRollback[A, O](final, recovered, err, ctx)
		ctx.addr.out.complete(*new(O), errors.Join(ErrNoOutput, err))

	case loopStopped, loopFailed:
		out := callFinalize[A, O](final, ctx)
		ctx.addr.out.complete(out, nil)
	}
}

// runLoop drives one agent from its first Next through to termination. It
// returns the last agent value seen, why the loop ended, and (for
// loopCrashed) the error responsible. A loopFailed error has already been
// passed to Failed and is not returned.
func runLoop[A any, O any](ctx *Context[A, O], ag A) (A, loopOutcome, error) {
	abortCtx, err := ctx.Controller().TakeAbortSignal()
	if err != nil {
		var zero A
		return zero, loopCrashed, err
	}

	current := ag
	pending := callInitial[A, O](current, ctx)
	havePending := true

	for {
		select {
		case <-abortCtx.Done():
			return current, loopCrashed, context.Canceled
		default:
		}

		if havePending {
			t := pending.perform(ctx, current)
			current = t.agent

			switch t.kind {
			case transContinueNext:
				pending = t.next
				havePending = true

			case transContinueEvents:
				havePending = false

			case transContinueInContext:
				next, derr := t.dispatchNext(current, ctx)
				if derr != nil {
					callFailed[A, O](current, ctx, derr)
					pending = Events[A, O]()
					havePending = true
					continue
				}
				if p, ok := ctx.takePending(); ok {
					pending = p
				} else {
					pending = next
				}
				havePending = true

			case transContinueStopStopped:
				return current, loopStopped, nil

			case transContinueStopFailed:
				callFailed[A, O](current, ctx, t.err)
				return current, loopFailed, nil

			case transConsumeTransformed:
				return current, loopTransformed, nil

			case transConsumeCrashed:
				return current, loopCrashed, t.err
			}
			continue
		}

		if !ctx.Controller().IsActive() {
			if ctx.Controller().Aborted() {
				return current, loopCrashed, context.Canceled
			}
			return current, loopStopped, nil
		}

		env, ok := ctx.addr.mb.recv(abortCtx)
		if !ok {
			if ctx.addr.mb.isClosed() {
				return current, loopStopped, nil
			}
			return current, loopCrashed, context.Canceled
		}

		if herr := env.handle(current, ctx); herr != nil {
			callFailed[A, O](current, ctx, herr)
		}

		if p, ok := ctx.takePending(); ok {
			pending = p
			havePending = true
		}
	}
}

// RunMolt drives initial through to a Next.Morph transition and returns
// the successor agent produced by its Molter implementation. When the run
// ends without reaching Morph, or Molt reports no successor, the zero
// value is returned with ErrNoOutput. Each call performs one hand-off;
// chain several calls together to drive a sequence of distinct agent
// types, each molting into the next.
func RunMolt[A any, O any, B any](initial A) (B, error) {
	addr := newAddress[A, O]()
	ctx := newContext[A, O](addr)

	final, outcome, err := runLoop[A, O](ctx, initial)
	if err != nil {
		var zero B
		return zero, err
	}
	if outcome != loopTransformed {
		var zero B
		return zero, ErrNoOutput
	}

	molter, ok := any(final).(Molter[A, B])
	if !ok {
		var zero B
		return zero, errors.New("agent: molt reached but agent has no Molter[A, B] implementation for the requested successor type")
	}

	successor, ok := molter.Molt(final)
	if !ok {
		var zero B
		return zero, ErrNoOutput
	}

	return successor, nil
}
