package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/corvid-labs/hybridagent/internal/agentkit/pipeline"
	"github.com/spf13/cobra"
)

var pipelineCmd = &cobra.Command{
	Use:   "pipeline [n]",
	Short: "Run a demo DoAsync pipeline over a starting integer",
	Long: `pipeline spawns a single agent that drives a fixed sequence of
stages over a shared integer value, using nothing but the runtime's
DoAsync state machine, and prints the value after each stage.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPipeline,
}

func runPipeline(cmd *cobra.Command, args []string) error {
	start := 1
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid starting value %q: %w", args[0], err)
		}
		start = n
	}

	var trace []string
	stage := func(label string, fn func(int) int) pipeline.Stage[int] {
		return func(_ context.Context, in int) (int, error) {
			out := fn(in)
			trace = append(trace, fmt.Sprintf("%s: %d -> %d", label, in, out))
			return out, nil
		}
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
	defer cancel()

	out, err := pipeline.Run[int](ctx, start,
		stage("double", func(in int) int { return in * 2 }),
		stage("increment", func(in int) int { return in + 1 }),
		stage("square", func(in int) int { return in * in }),
	)
	if err != nil {
		return err
	}

	fmt.Println(strings.Join(trace, "\n"))
	fmt.Printf("result: %d\n", out)
	return nil
}
