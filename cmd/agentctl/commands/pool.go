package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/corvid-labs/hybridagent/internal/agent"
	"github.com/corvid-labs/hybridagent/internal/agentkit/pool"
	"github.com/corvid-labs/hybridagent/internal/agentkit/request"
	"github.com/spf13/cobra"
)

var (
	poolSize     int
	poolMessages int
)

var poolCmd = &cobra.Command{
	Use:   "pool [text]",
	Short: "Round-robin a batch of requests across a pool of identical agents",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPool,
}

func init() {
	poolCmd.Flags().IntVarP(&poolSize, "size", "s", 3, "Number of pool members")
	poolCmd.Flags().IntVarP(&poolMessages, "messages", "m", 6, "Number of requests to issue")
}

// upperWorker replies to each request with the upper-cased payload and the
// index of the worker that handled it, so round-robin distribution is
// visible in the output.
type upperWorker struct {
	idx int
}

func (*upperWorker) Begin() agent.Next[*upperWorker, agent.Unit] {
	return agent.Events[*upperWorker, agent.Unit]()
}

type upperRequest struct {
	request.Request[string, string]
}

func (r upperRequest) HandleEvent(ag *upperWorker, _ *agent.Context[*upperWorker, agent.Unit]) error {
	r.Reply(fmt.Sprintf("[worker %d] %s", ag.idx, strings.ToUpper(r.Payload)))
	return nil
}

func runPool(cmd *cobra.Command, args []string) error {
	text := "hello from the pool"
	if len(args) == 1 {
		text = args[0]
	}

	p := pool.New[*upperWorker, agent.Unit](pool.Config[*upperWorker, agent.Unit]{
		ID:   "demo-pool",
		Size: poolSize,
		Factory: func(idx int) *upperWorker {
			return &upperWorker{idx: idx}
		},
	})
	defer p.Shutdown()

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
	defer cancel()

	for i := 0; i < poolMessages; i++ {
		addr := p.Addresses()[i%p.Size()]
		reply, err := request.Ask[*upperWorker, agent.Unit, string, string](
			ctx, addr, fmt.Sprintf("%s #%d", text, i),
			func(r request.Request[string, string]) upperRequest {
				return upperRequest{r}
			},
		)
		if err != nil {
			return err
		}
		fmt.Println(reply)
	}

	return nil
}
