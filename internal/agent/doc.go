// Package agent implements a hybrid actor/state-machine runtime. An Agent
// interleaves two modes of operation: a reactive event-processing loop that
// dequeues typed messages from a mailbox, and a finite-state-machine mode in
// which the agent transactionally runs named states. States may execute
// asynchronously, synchronously on a blocking worker, or by looping a
// message back onto the agent itself.
//
// The package is organized around a small closed set of concepts: Agent
// (user-supplied domain logic), Context (the per-agent mutable control
// surface), Address (a cloneable handle to send messages and await output),
// Next (a one-shot description of the following transition), and Performer
// (the strategy — async, sync, duty, loopback, events, interrupt, molt —
// that realizes a Next). A Driver owns exactly one Agent and alternates
// between running its pending state and draining its mailbox.
package agent
