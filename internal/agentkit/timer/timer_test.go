package timer_test

import (
	"testing"
	"time"

	"github.com/corvid-labs/hybridagent/internal/agent"
	"github.com/corvid-labs/hybridagent/internal/agentkit/timer"
	"github.com/stretchr/testify/require"
)

type tickAgent struct {
	ticks chan time.Time
}

func (tickAgent) Begin() agent.Next[*tickAgent, agent.Unit] {
	return agent.Events[*tickAgent, agent.Unit]()
}

type tickEvent struct {
	at time.Time
}

func (e tickEvent) HandleEvent(ag *tickAgent, _ *agent.Context[*tickAgent, agent.Unit]) error {
	ag.ticks <- e.at
	return nil
}

func TestTicker(t *testing.T) {
	t.Parallel()

	ticks := make(chan time.Time, 4)
	addr := agent.Spawn[*tickAgent, agent.Unit](&tickAgent{ticks: ticks})
	defer addr.Shutdown()

	tk := timer.Start[*tickAgent, agent.Unit](addr, 5*time.Millisecond, func(at time.Time) tickEvent {
		return tickEvent{at: at}
	})
	defer tk.Stop()

	select {
	case <-ticks:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for a tick")
	}
}

func TestDrainer(t *testing.T) {
	t.Parallel()

	ticks := make(chan time.Time, 4)
	addr := agent.Spawn[*tickAgent, agent.Unit](&tickAgent{ticks: ticks})
	defer addr.Shutdown()

	recipient := agent.NewRecipient[*tickAgent, agent.Unit, tickEvent](addr)

	src := make(chan tickEvent, 8)
	d := timer.StartDrainer[tickEvent](src, recipient, 5*time.Millisecond)
	defer d.Stop()

	src <- tickEvent{at: time.Now()}

	select {
	case <-ticks:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for drained tick")
	}
	require.NotNil(t, recipient)
}
