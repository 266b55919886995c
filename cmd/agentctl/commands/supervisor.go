package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/corvid-labs/hybridagent/internal/agent"
	"github.com/corvid-labs/hybridagent/internal/agentkit/report"
	"github.com/spf13/cobra"
)

var supervisorChildren int

var supervisorCmd = &cobra.Command{
	Use:   "supervisor",
	Short: "Spawn a supervisor with tracked children and cascade-shut them down",
	Long: `supervisor spawns a small agent that tracks a number of
children in one group, prints a status report of the tracker, then
triggers a cascade shutdown and waits for every child to detach.`,
	RunE: runSupervisor,
}

func init() {
	supervisorCmd.Flags().IntVarP(
		&supervisorChildren, "children", "c", 3,
		"Number of children to spawn under the supervisor",
	)
}

type demoWorker struct{}

func (*demoWorker) Begin() agent.Next[*demoWorker, agent.Unit] {
	return agent.DoAsync[*demoWorker, agent.Unit](demoWorkerState{})
}

type demoWorkerState struct{}

func (demoWorkerState) Once(ctx context.Context, _ *demoWorker) (agent.Next[*demoWorker, agent.Unit], error) {
	select {
	case <-time.After(10 * time.Millisecond):
	case <-ctx.Done():
	}
	return agent.DoAsync[*demoWorker, agent.Unit](demoWorkerState{}), nil
}

type demoGroup = int

type demoSupervisor struct {
	sess *agent.SupervisorSession[*demoSupervisor, agent.Unit, demoGroup]
}

func (s *demoSupervisor) Initialize(ctx *agent.Context[*demoSupervisor, agent.Unit]) agent.Next[*demoSupervisor, agent.Unit] {
	s.sess = agent.NewSupervisorSession[*demoSupervisor, agent.Unit, demoGroup](ctx)
	return agent.Events[*demoSupervisor, agent.Unit]()
}

func (s *demoSupervisor) Session() *agent.SupervisorSession[*demoSupervisor, agent.Unit, demoGroup] {
	return s.sess
}

func (s *demoSupervisor) Finalize(_ *agent.Context[*demoSupervisor, agent.Unit]) agent.Unit {
	return agent.Unit{}
}

type spawnWorkers struct {
	n    int
	done chan struct{}
}

func (e spawnWorkers) HandleEvent(ag *demoSupervisor, _ *agent.Context[*demoSupervisor, agent.Unit]) error {
	for i := 0; i < e.n; i++ {
		agent.SpawnTrackable[*demoSupervisor, agent.Unit, demoGroup, *demoWorker, agent.Unit](
			ag.sess, 0, &demoWorker{},
		)
	}
	close(e.done)
	return nil
}

type printReport struct {
	result chan<- string
}

func (e printReport) HandleEvent(ag *demoSupervisor, _ *agent.Context[*demoSupervisor, agent.Unit]) error {
	md, _, err := report.Render(ag.sess.Tracker().Snapshot(), ag.sess.Tracker().Terminating())
	if err != nil {
		e.result <- fmt.Sprintf("report render failed: %v", err)
		return nil
	}
	e.result <- md
	return nil
}

type shutdownSupervisor struct{}

func (shutdownSupervisor) HandleEvent(ag *demoSupervisor, _ *agent.Context[*demoSupervisor, agent.Unit]) error {
	ag.sess.Shutdown()
	return nil
}

func runSupervisor(cmd *cobra.Command, args []string) error {
	addr := agent.Spawn[*demoSupervisor, agent.Unit](&demoSupervisor{})

	spawned := make(chan struct{})
	if err := agent.Event[*demoSupervisor, agent.Unit](addr, spawnWorkers{n: supervisorChildren, done: spawned}); err != nil {
		return err
	}
	<-spawned

	reportCh := make(chan string, 1)
	if err := agent.Event[*demoSupervisor, agent.Unit](addr, printReport{result: reportCh}); err != nil {
		return err
	}
	fmt.Println(<-reportCh)

	if err := agent.Event[*demoSupervisor, agent.Unit](addr, shutdownSupervisor{}); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()
	if _, err := addr.Join(ctx); err != nil {
		return fmt.Errorf("supervisor did not shut down cleanly: %w", err)
	}

	fmt.Println("all children detached, supervisor finalized")
	return nil
}
