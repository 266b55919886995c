package agent

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// These tests exercise the mailbox directly (same-package, since mailbox
// and mailboxEnvelope are unexported), adapted from the teacher's own
// mailbox coverage: FIFO order, blocking receive, and post-close drain
// semantics.
type noopAgent struct{}

func TestMailboxFIFOOrder(t *testing.T) {
	t.Parallel()

	mb := newMailbox[*noopAgent, Unit]()

	var order []int
	for i := 0; i < 5; i++ {
		i := i
		require.NoError(t, mb.send(mailboxEnvelope[*noopAgent, Unit]{
			handle: func(_ *noopAgent, _ *Context[*noopAgent, Unit]) error {
				order = append(order, i)
				return nil
			},
		}))
	}

	for i := 0; i < 5; i++ {
		env, ok := mb.tryRecv()
		require.True(t, ok)
		require.NoError(t, env.handle(nil, nil))
	}
	require.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestMailboxRecvBlocksUntilSend(t *testing.T) {
	t.Parallel()

	mb := newMailbox[*noopAgent, Unit]()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, ok := mb.recv(context.Background())
		require.True(t, ok)
	}()

	select {
	case <-done:
		t.Fatal("recv returned before anything was sent")
	case <-time.After(20 * time.Millisecond):
	}

	require.NoError(t, mb.send(mailboxEnvelope[*noopAgent, Unit]{
		handle: func(_ *noopAgent, _ *Context[*noopAgent, Unit]) error { return nil },
	}))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("recv did not wake up after send")
	}
}

func TestMailboxCloseDrainsThenRejectsNewSends(t *testing.T) {
	t.Parallel()

	mb := newMailbox[*noopAgent, Unit]()
	require.NoError(t, mb.send(mailboxEnvelope[*noopAgent, Unit]{}))
	require.NoError(t, mb.send(mailboxEnvelope[*noopAgent, Unit]{}))

	mb.close()
	require.True(t, mb.isClosed())

	require.ErrorIs(t, mb.send(mailboxEnvelope[*noopAgent, Unit]{}), ErrMailboxClosed)

	count := 0
	for range mb.drain() {
		count++
	}
	require.Equal(t, 2, count)

	_, ok := mb.recv(context.Background())
	require.False(t, ok)
}

func TestControllerLevels(t *testing.T) {
	t.Parallel()

	c := NewController()
	require.True(t, c.IsActive())
	require.False(t, c.Aborted())

	c.Stop()
	require.False(t, c.IsActive())
	require.False(t, c.Aborted())

	c2 := NewController()
	c2.Abort()
	require.False(t, c2.IsActive())
	require.True(t, c2.Aborted())
	select {
	case <-c2.Interruptor().Done():
	default:
		t.Fatal("interruptor should observe LevelAbort")
	}
}

func TestControllerTakeAbortSignalOnce(t *testing.T) {
	t.Parallel()

	c := NewController()
	_, err := c.TakeAbortSignal()
	require.NoError(t, err)

	_, err = c.TakeAbortSignal()
	require.ErrorIs(t, err, ErrRegistrationTaken)
}
