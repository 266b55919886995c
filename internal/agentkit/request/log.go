package request

import "github.com/btcsuite/btclog/v2"

var log btclog.Logger = btclog.Disabled

// UseLogger sets the package-level logger used for ask/timeout diagnostics.
func UseLogger(logger btclog.Logger) {
	log = logger
}
