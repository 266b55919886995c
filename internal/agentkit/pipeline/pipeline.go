// Package pipeline demonstrates a domain workflow expressed purely with
// the runtime core's DoAsync state machine: a sequence of stages, each
// transforming a shared value, run one at a time until the last stage
// completes or one of them errors.
package pipeline

import (
	"context"

	"github.com/corvid-labs/hybridagent/internal/agent"
)

// Stage transforms a pipeline's running value, or fails it outright.
type Stage[S any] func(ctx context.Context, in S) (S, error)

// Pipeline is the agent driving a fixed sequence of stages over a shared
// value of type S, which also doubles as its Output.
type Pipeline[S any] struct {
	state  S
	stages []Stage[S]
	idx    int
}

// New builds a Pipeline starting from initial and running stages in
// order.
func New[S any](initial S, stages ...Stage[S]) *Pipeline[S] {
	return &Pipeline[S]{state: initial, stages: stages}
}

// Begin kicks off the first stage.
func (p *Pipeline[S]) Begin() agent.Next[*Pipeline[S], S] {
	return agent.DoAsync[*Pipeline[S], S](stageState[S]{})
}

// Finalize returns the value produced by the last stage that succeeded,
// or the initial value when none did.
func (p *Pipeline[S]) Finalize(_ *agent.Context[*Pipeline[S], S]) S {
	return p.state
}

type stageState[S any] struct{}

func (stageState[S]) Once(ctx context.Context, ag *Pipeline[S]) (agent.Next[*Pipeline[S], S], error) {
	if ag.idx >= len(ag.stages) {
		return agent.Done[*Pipeline[S], S](), nil
	}

	out, err := ag.stages[ag.idx](ctx, ag.state)
	if err != nil {
		var zero agent.Next[*Pipeline[S], S]
		return zero, err
	}

	ag.state = out
	ag.idx++

	return agent.DoAsync[*Pipeline[S], S](stageState[S]{}), nil
}

func (stageState[S]) FallbackState(ag *Pipeline[S], err error) agent.Next[*Pipeline[S], S] {
	return agent.Fail[*Pipeline[S], S](err)
}

// Run spawns a Pipeline over stages starting from initial and blocks for
// its result.
func Run[S any](ctx context.Context, initial S, stages ...Stage[S]) (S, error) {
	addr := agent.Spawn[*Pipeline[S], S](New(initial, stages...))
	return addr.Join(ctx)
}
