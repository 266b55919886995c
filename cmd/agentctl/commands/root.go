// Package commands implements agentctl's cobra subcommands: small,
// self-contained demonstrations of the runtime driving real agents end to
// end, useful both as a smoke test and as living documentation.
package commands

import (
	"fmt"
	"os"

	btclogv1 "github.com/btcsuite/btclog"
	"github.com/btcsuite/btclog/v2"
	"github.com/corvid-labs/hybridagent/internal/agent"
	"github.com/corvid-labs/hybridagent/internal/agentkit/pool"
	"github.com/corvid-labs/hybridagent/internal/agentkit/request"
	"github.com/corvid-labs/hybridagent/internal/build"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	logDir  string

	logRotator *build.RotatingLogWriter
)

// rootCmd is the base command for the CLI.
var rootCmd = &cobra.Command{
	Use:   "agentctl",
	Short: "Drive the hybrid actor/state-machine runtime from the command line",
	Long: `agentctl exercises the runtime core directly: spawning agents,
running them through async state machines, supervising groups of
children, and tearing them down in cascade order.`,
	PersistentPreRun:  setupLogging,
	PersistentPostRun: teardownLogging,
}

// setupLogging wires up btclog handlers the same way the teacher's daemon
// does: console always, plus a rotating log file when --log-dir is set.
func setupLogging(cmd *cobra.Command, args []string) {
	var fileHandler btclog.Handler

	if logDir != "" {
		logRotator = build.NewRotatingLogWriter()
		if err := logRotator.InitLogRotator(&build.LogRotatorConfig{
			LogDir: logDir,
		}); err != nil {
			fmt.Fprintf(os.Stderr, "failed to init log rotator: %v (continuing without file logging)\n", err)
			logRotator = nil
		} else {
			fileHandler = btclog.NewDefaultHandler(logRotator)
		}
	}

	handlers := build.NewFanoutHandler(btclog.NewDefaultHandler(os.Stderr), fileHandler)

	level := btclogv1.LevelInfo
	if verbose {
		level = btclogv1.LevelDebug
	}
	handlers.SetLevel(level)

	logger := btclog.NewSLogger(handlers)
	agent.UseLogger(logger)
	request.UseLogger(logger.WithPrefix("request"))
	pool.UseLogger(logger.WithPrefix("pool"))
}

func teardownLogging(cmd *cobra.Command, args []string) {
	if logRotator != nil {
		_ = logRotator.Close()
	}
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(
		&verbose, "verbose", "v", false,
		"Enable debug-level logging",
	)
	rootCmd.PersistentFlags().StringVar(
		&logDir, "log-dir", "",
		"Directory for a rotating log file (empty disables file logging)",
	)

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(pipelineCmd)
	rootCmd.AddCommand(supervisorCmd)
	rootCmd.AddCommand(poolCmd)
}
