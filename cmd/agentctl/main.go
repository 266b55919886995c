package main

import (
	"fmt"
	"os"

	"github.com/corvid-labs/hybridagent/cmd/agentctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
