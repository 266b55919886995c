package agent_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/corvid-labs/hybridagent/internal/agent"
	"github.com/stretchr/testify/require"
)

// pollingChild is a minimal tracked worker: it loops in a DoAsync state
// that periodically rechecks the interruptor, so a LevelFlag Stop (the
// level a Tracker cascade applies unless WithAbortOnTerminate is set) is
// noticed within one short
// iteration rather than requiring an explicit stop message.
type pollingChild struct{}

func (c *pollingChild) Begin() agent.Next[*pollingChild, agent.Unit] {
	return agent.DoAsync[*pollingChild, agent.Unit](pollState{})
}

type pollState struct{}

func (pollState) Once(ctx context.Context, _ *pollingChild) (agent.Next[*pollingChild, agent.Unit], error) {
	select {
	case <-time.After(time.Millisecond):
	case <-ctx.Done():
	}
	return agent.DoAsync[*pollingChild, agent.Unit](pollState{}), nil
}

type rootGroup = int

type supervisorAgent struct {
	sess *agent.SupervisorSession[*supervisorAgent, agent.Unit, rootGroup]

	mu            sync.Mutex
	finishedRels  []agent.Relation[rootGroup]
	finishedCount int
}

func (a *supervisorAgent) Initialize(ctx *agent.Context[*supervisorAgent, agent.Unit]) agent.Next[*supervisorAgent, agent.Unit] {
	a.sess = agent.NewSupervisorSession[*supervisorAgent, agent.Unit, rootGroup](ctx)
	return agent.Events[*supervisorAgent, agent.Unit]()
}

func (a *supervisorAgent) Session() *agent.SupervisorSession[*supervisorAgent, agent.Unit, rootGroup] {
	return a.sess
}

func (a *supervisorAgent) Finished(rel agent.Relation[rootGroup], _ *agent.Context[*supervisorAgent, agent.Unit]) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.finishedRels = append(a.finishedRels, rel)
	a.finishedCount++
}

func (a *supervisorAgent) Finalize(_ *agent.Context[*supervisorAgent, agent.Unit]) agent.Unit {
	return agent.Unit{}
}

type spawnChildrenEvent struct {
	group rootGroup
	n     int
	done  chan struct{}
}

func (e spawnChildrenEvent) HandleEvent(ag *supervisorAgent, _ *agent.Context[*supervisorAgent, agent.Unit]) error {
	for i := 0; i < e.n; i++ {
		agent.SpawnTrackable[*supervisorAgent, agent.Unit, rootGroup, *pollingChild, agent.Unit](
			ag.sess, e.group, &pollingChild{},
		)
	}
	close(e.done)
	return nil
}

type shutdownEvent struct{}

func (shutdownEvent) HandleEvent(ag *supervisorAgent, _ *agent.Context[*supervisorAgent, agent.Unit]) error {
	ag.sess.Shutdown()
	return nil
}

func TestSupervisorCascadeFinishesEveryChild(t *testing.T) {
	t.Parallel()

	ag := &supervisorAgent{}
	addr := agent.Spawn[*supervisorAgent, agent.Unit](ag)

	spawned := make(chan struct{})
	require.NoError(t, agent.Event[*supervisorAgent, agent.Unit](addr, spawnChildrenEvent{
		group: 0, n: 5, done: spawned,
	}))
	<-spawned

	require.NoError(t, agent.Event[*supervisorAgent, agent.Unit](addr, shutdownEvent{}))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := addr.Join(ctx)
	require.NoError(t, err)

	ag.mu.Lock()
	defer ag.mu.Unlock()
	require.Equal(t, 5, ag.finishedCount)
	require.Len(t, ag.finishedRels, 5)
}

// TestTrackerCascadesGroupsInDescendingOrder checks that a cascade
// shutdown interrupts groups in descending key order, one finished group
// (interrupted and empty) at a time, matching Tracker.tryTerminateNext.
func TestTrackerCascadesGroupsInDescendingOrder(t *testing.T) {
	t.Parallel()

	tracker := agent.NewTracker[int]()

	c0, c1, c2 := agent.NewController(), agent.NewController(), agent.NewController()
	rel0 := tracker.Register(0, c0)
	rel1 := tracker.Register(1, c1)
	rel2 := tracker.Register(2, c2)

	tracker.TerminateAll()

	// Group 2 is interrupted first; groups 0 and 1 are untouched because
	// the cascade stops descending until group 2 is empty.
	require.False(t, c2.IsActive())
	require.True(t, c1.IsActive())
	require.True(t, c0.IsActive())

	snap := tracker.Snapshot()
	require.Len(t, snap, 3)
	require.Equal(t, 2, snap[0].Group)
	require.True(t, snap[0].Interrupted)
	require.Equal(t, 1, snap[1].Group)
	require.False(t, snap[1].Interrupted)
	require.Equal(t, 0, snap[2].Group)
	require.False(t, snap[2].Interrupted)

	// Detaching group 2's only activity lets the cascade descend: group 1
	// is interrupted next, group 0 still untouched.
	require.NoError(t, tracker.Unregister(rel2))
	require.False(t, c1.IsActive())
	require.True(t, c0.IsActive())

	// Detaching group 1 lets the cascade reach group 0, the last one.
	require.NoError(t, tracker.Unregister(rel1))
	require.False(t, c0.IsActive())

	require.NoError(t, tracker.Unregister(rel0))
	require.True(t, tracker.IsEmpty())
}

// TestTrackerWithAbortOnTerminateAborts checks that WithAbortOnTerminate
// makes a cascade call Abort, not merely Stop, on each child it interrupts.
func TestTrackerWithAbortOnTerminateAborts(t *testing.T) {
	t.Parallel()

	tracker := agent.NewTracker[int](agent.WithAbortOnTerminate())

	ctrl := agent.NewController()
	tracker.Register(0, ctrl)

	tracker.TerminateAll()

	require.False(t, ctrl.IsActive())
	require.True(t, ctrl.Aborted())
}
