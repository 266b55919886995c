package agent_test

import (
	"testing"

	"github.com/corvid-labs/hybridagent/internal/agent"
	"github.com/stretchr/testify/require"
)

// shellOne, shellTwo, shellThree model a molt chain: each hands itself off
// to the next, possibly-differently-typed, successor until the chain ends
// without producing one.
type shellOne struct{ name string }

func (s *shellOne) Begin() agent.Next[*shellOne, agent.Unit] {
	return agent.Morph[*shellOne, agent.Unit]()
}

func (s *shellOne) Molt(_ *shellOne) (*shellTwo, bool) {
	return &shellTwo{name: s.name, hops: 1}, true
}

type shellTwo struct {
	name string
	hops int
}

func (s *shellTwo) Begin() agent.Next[*shellTwo, agent.Unit] {
	return agent.Morph[*shellTwo, agent.Unit]()
}

func (s *shellTwo) Molt(_ *shellTwo) (*shellThree, bool) {
	return &shellThree{name: s.name, hops: s.hops + 1}, true
}

type shellThree struct {
	name string
	hops int
}

func (s *shellThree) Begin() agent.Next[*shellThree, agent.Unit] {
	return agent.Morph[*shellThree, agent.Unit]()
}

// Molt returning ok=false ends the chain here: shellThree is terminal.
func (s *shellThree) Molt(_ *shellThree) (*shellThree, bool) {
	return nil, false
}

func TestMoltChainHandsOffThroughSuccessorTypes(t *testing.T) {
	t.Parallel()

	two, err := agent.RunMolt[*shellOne, agent.Unit, *shellTwo](&shellOne{name: "alpha"})
	require.NoError(t, err)
	require.Equal(t, "alpha", two.name)
	require.Equal(t, 1, two.hops)

	three, err := agent.RunMolt[*shellTwo, agent.Unit, *shellThree](two)
	require.NoError(t, err)
	require.Equal(t, "alpha", three.name)
	require.Equal(t, 2, three.hops)

	_, err = agent.RunMolt[*shellThree, agent.Unit, *shellThree](three)
	require.ErrorIs(t, err, agent.ErrNoOutput)
}
