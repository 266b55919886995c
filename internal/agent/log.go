package agent

import "github.com/btcsuite/btclog/v2"

// log is the package-level logger for the runtime core. It defaults to
// discarding everything; callers wire up a real logger with UseLogger the
// same way the rest of the stack does.
var log btclog.Logger = btclog.Disabled

// UseLogger sets the package-level logger used by the agent runtime.
func UseLogger(logger btclog.Logger) {
	log = logger
}
