// Package request provides request/response sugar over the agent
// runtime's one-way event delivery, the same role actorutil.AskAwait plays
// for the teacher's Ask/Future actor model. The runtime core deliberately
// has no Ask primitive of its own (OnRequest is specified as expressible
// purely in terms of OnEvent); this package is that expression.
package request

import (
	"context"
	"fmt"

	"github.com/corvid-labs/hybridagent/internal/agent"
	"github.com/lightningnetwork/lnd/fn/v2"
)

// Request carries a payload to an agent plus a one-shot reply channel.
// Domain message types embed a Request and implement agent.EventHandler,
// calling Reply or Fail from inside HandleEvent.
type Request[Req any, Resp any] struct {
	Payload Req
	reply   chan fn.Result[Resp]
}

// New returns a Request and the channel its eventual reply arrives on.
func New[Req any, Resp any](payload Req) (Request[Req, Resp], <-chan fn.Result[Resp]) {
	ch := make(chan fn.Result[Resp], 1)
	return Request[Req, Resp]{Payload: payload, reply: ch}, ch
}

// Reply completes the request successfully.
func (r Request[Req, Resp]) Reply(resp Resp) {
	r.reply <- fn.Ok(resp)
}

// Fail completes the request with an error.
func (r Request[Req, Resp]) Fail(err error) {
	r.reply <- fn.Err[Resp](err)
}

// Ask wraps payload in a Request via wrap, sends it to addr, and blocks
// for the reply or until ctx is done.
func Ask[A any, O any, Req any, Resp any, E agent.EventHandler[A, O]](
	ctx context.Context,
	addr *agent.Address[A, O],
	payload Req,
	wrap func(Request[Req, Resp]) E,
) (Resp, error) {

	req, replyCh := New[Req, Resp](payload)
	event := wrap(req)

	if err := agent.Event[A, O](addr, event); err != nil {
		var zero Resp
		return zero, err
	}

	select {
	case res := <-replyCh:
		return res.Unpack()
	case <-ctx.Done():
		var zero Resp
		return zero, ctx.Err()
	}
}

// ParallelAsk issues Ask against every address in addrs concurrently, with
// the same payload, and collects results in input order.
func ParallelAsk[A any, O any, Req any, Resp any, E agent.EventHandler[A, O]](
	ctx context.Context,
	addrs []*agent.Address[A, O],
	payload Req,
	wrap func(Request[Req, Resp]) E,
) []fn.Result[Resp] {

	type indexed struct {
		idx int
		res fn.Result[Resp]
	}

	out := make(chan indexed, len(addrs))
	for i, addr := range addrs {
		go func(i int, addr *agent.Address[A, O]) {
			val, err := Ask[A, O, Req, Resp](ctx, addr, payload, wrap)
			if err != nil {
				out <- indexed{i, fn.Err[Resp](err)}
				return
			}
			out <- indexed{i, fn.Ok(val)}
		}(i, addr)
	}

	results := make([]fn.Result[Resp], len(addrs))
	for range addrs {
		r := <-out
		results[r.idx] = r.res
	}
	return results
}

// FirstSuccess behaves like ParallelAsk but returns as soon as one address
// replies successfully, cancelling the rest. If every address fails, the
// last error observed is returned.
func FirstSuccess[A any, O any, Req any, Resp any, E agent.EventHandler[A, O]](
	ctx context.Context,
	addrs []*agent.Address[A, O],
	payload Req,
	wrap func(Request[Req, Resp]) E,
) (Resp, error) {

	if len(addrs) == 0 {
		var zero Resp
		return zero, fmt.Errorf("request: no addresses provided")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	out := make(chan fn.Result[Resp], len(addrs))
	for _, addr := range addrs {
		go func(addr *agent.Address[A, O]) {
			val, err := Ask[A, O, Req, Resp](ctx, addr, payload, wrap)
			if err != nil {
				out <- fn.Err[Resp](err)
				return
			}
			out <- fn.Ok(val)
		}(addr)
	}

	var lastErr error
	for range addrs {
		select {
		case res := <-out:
			val, err := res.Unpack()
			if err == nil {
				cancel()
				return val, nil
			}
			lastErr = err
		case <-ctx.Done():
			var zero Resp
			return zero, ctx.Err()
		}
	}

	var zero Resp
	return zero, lastErr
}

// TellAll sends event to every recipient, fire-and-forget. A send error is
// logged, not returned: a closed mailbox is a routine outcome of a
// shrinking pool.
func TellAll[E any](recipients []agent.Recipient[E], event E) {
	for _, r := range recipients {
		if err := r.Send(event); err != nil {
			log.DebugS(context.Background(), "tell dropped", "err", err)
		}
	}
}
