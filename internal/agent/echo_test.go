package agent_test

import (
	"context"
	"testing"
	"time"

	"github.com/corvid-labs/hybridagent/internal/agent"
	"github.com/stretchr/testify/require"
)

// echoAgent answers every message it receives by appending it to a log,
// and ends as soon as it's told to stop.
type echoAgent struct {
	received []string
}

func (a *echoAgent) Begin() agent.Next[*echoAgent, []string] {
	return agent.Events[*echoAgent, []string]()
}

func (a *echoAgent) Finalize(_ *agent.Context[*echoAgent, []string]) []string {
	return a.received
}

type echoMsg struct {
	text  string
	reply chan<- string
}

func (m echoMsg) HandleEvent(ag *echoAgent, _ *agent.Context[*echoAgent, []string]) error {
	ag.received = append(ag.received, m.text)
	if m.reply != nil {
		m.reply <- "echo:" + m.text
	}
	return nil
}

type stopMsg struct{}

func (stopMsg) HandleEvent(ag *echoAgent, ctx *agent.Context[*echoAgent, []string]) error {
	ctx.Shutdown()
	return nil
}

func TestEchoAgentRoundTrip(t *testing.T) {
	t.Parallel()

	addr := agent.Spawn[*echoAgent, []string](&echoAgent{})

	reply := make(chan string, 1)
	require.NoError(t, agent.Event[*echoAgent, []string](addr, echoMsg{text: "hello", reply: reply}))

	select {
	case got := <-reply:
		require.Equal(t, "echo:hello", got)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for echo reply")
	}

	require.NoError(t, agent.Event[*echoAgent, []string](addr, stopMsg{}))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	out, err := addr.Join(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"hello"}, out)
}

func TestEchoAgentInterruptDefaultsToShutdown(t *testing.T) {
	t.Parallel()

	addr := agent.Spawn[*echoAgent, []string](&echoAgent{})
	require.NoError(t, agent.Event[*echoAgent, []string](addr, echoMsg{text: "before"}))

	addr.Interrupt(agent.LevelEvent)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	out, err := addr.Join(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"before"}, out)
}

func TestEchoAgentMailboxClosedAfterShutdown(t *testing.T) {
	t.Parallel()

	addr := agent.Spawn[*echoAgent, []string](&echoAgent{})
	addr.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, err := addr.Join(ctx)
	require.NoError(t, err)

	err = agent.Event[*echoAgent, []string](addr, echoMsg{text: "late"})
	require.ErrorIs(t, err, agent.ErrMailboxClosed)
}
