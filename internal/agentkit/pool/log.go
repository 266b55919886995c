package pool

import "github.com/btcsuite/btclog/v2"

var log btclog.Logger = btclog.Disabled

// UseLogger sets the package-level logger used for pool lifecycle events.
func UseLogger(logger btclog.Logger) {
	log = logger
}
