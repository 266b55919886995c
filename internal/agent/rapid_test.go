package agent

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// TestMailboxFIFOProperty checks the mailbox's central invariant: whatever
// order envelopes are sent in is the order they're received in, regardless
// of how many were enqueued before the first receive.
func TestMailboxFIFOProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(0, 64).Draw(rt, "n")

		mb := newMailbox[*noopAgent, Unit]()
		want := make([]int, n)
		got := make([]int, 0, n)
		for i := 0; i < n; i++ {
			want[i] = i
			require.NoError(t, mb.send(mailboxEnvelope[*noopAgent, Unit]{
				handle: func(_ *noopAgent, _ *Context[*noopAgent, Unit]) error {
					got = append(got, i)
					return nil
				},
			}))
		}

		for i := 0; i < n; i++ {
			env, ok := mb.tryRecv()
			if !ok {
				rt.Fatalf("expected envelope %d, mailbox empty", i)
			}
			require.NoError(t, env.handle(nil, nil))
		}
		require.Equal(t, want, got)

		_, ok := mb.tryRecv()
		require.False(t, ok)
	})
}

// TestControllerMonotonicProperty checks that once a Controller stops being
// active, no sequence of further level applications makes it active again:
// IsActive only ever transitions true -> false, never back.
func TestControllerMonotonicProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		c := NewController()

		numOps := rapid.IntRange(0, 20).Draw(rt, "numOps")
		sawInactive := false

		for i := 0; i < numOps; i++ {
			level := rapid.SampledFrom([]Level{LevelFlag, LevelAbort}).Draw(rt, "level")

			switch level {
			case LevelFlag:
				c.Stop()
			case LevelAbort:
				c.Abort()
			}

			active := c.IsActive()
			if sawInactive {
				if active {
					rt.Fatalf("controller became active again after going inactive")
				}
			}
			if !active {
				sawInactive = true
			}
		}
	})
}
