package agent

import "errors"

var (
	// ErrMailboxClosed is returned by Send/Event when the target agent's
	// mailbox has already been closed.
	ErrMailboxClosed = errors.New("agent: mailbox closed")

	// ErrNoOutput is returned by Address.Join, joined with the cause, when
	// the agent's driver crashed or was aborted without reaching Finalize,
	// and by RunMolt when no successor is produced.
	ErrNoOutput = errors.New("agent: no output produced")

	// ErrRegistrationTaken is returned by Controller.TakeAbortSignal when
	// called more than once for the same agent.
	ErrRegistrationTaken = errors.New("agent: abort signal already taken")

	// ErrNotActive reports that a driver has already stopped accepting
	// work. No function in this package returns it.
	ErrNotActive = errors.New("agent: agent is not active")

	// ErrAlreadyDetached is returned by Tracker.Unregister for a Relation
	// that has already been unregistered.
	ErrAlreadyDetached = errors.New("agent: activity already detached")
)
