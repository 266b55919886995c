package agent

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"sync/atomic"
)

// ActivityId identifies one child registered with a Tracker.
type ActivityId uint64

// Relation is the receipt returned by registering a child with a Tracker;
// it's what the detach handler and Finished hook key off of.
type Relation[G any] struct {
	ID    ActivityId
	Group G
}

type trackerGroup struct {
	interrupted bool
	ids         map[ActivityId]struct{}
}

type trackerActivity[G any] struct {
	group G
	ctrl  *Controller
}

// Tracker is a supervisor's bookkeeping of its children, keyed by a
// user-supplied total order (GroupBy). It is mutated only from within the
// owning supervisor's own handlers, so it carries no internal locking.
type Tracker[G cmp.Ordered] struct {
	groups           map[G]*trackerGroup
	activities       map[ActivityId]*trackerActivity[G]
	nextID           atomic.Uint64
	terminating      bool
	abortOnTerminate bool
}

// SupervisorOption is a functional option for configuring a Tracker.
type SupervisorOption func(*supervisorConfig)

type supervisorConfig struct {
	abortOnTerminate bool
}

// WithAbortOnTerminate makes a cascade shutdown call Abort, rather than
// Stop, on each child's Controller. Abort jumps straight to LevelAbort,
// skipping the grace a child would otherwise get to notice LevelFlag on its
// own; use it when children hold no state worth a graceful drain.
func WithAbortOnTerminate() SupervisorOption {
	return func(c *supervisorConfig) { c.abortOnTerminate = true }
}

// NewTracker returns an empty Tracker.
func NewTracker[G cmp.Ordered](opts ...SupervisorOption) *Tracker[G] {
	var cfg supervisorConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Tracker[G]{
		groups:           make(map[G]*trackerGroup),
		activities:       make(map[ActivityId]*trackerActivity[G]),
		abortOnTerminate: cfg.abortOnTerminate,
	}
}

func (t *Tracker[G]) interrupt(ctrl *Controller) {
	if t.abortOnTerminate {
		ctrl.Abort()
		return
	}
	ctrl.Stop()
}

// Register allocates an ActivityId for ctrl within group. If group is
// already interrupted (a cascade shutdown is in progress and has already
// reached or passed it), the new child is interrupted immediately.
func (t *Tracker[G]) Register(group G, ctrl *Controller) Relation[G] {
	id := ActivityId(t.nextID.Add(1))
	t.activities[id] = &trackerActivity[G]{group: group, ctrl: ctrl}

	grp, ok := t.groups[group]
	if !ok {
		grp = &trackerGroup{ids: make(map[ActivityId]struct{})}
		t.groups[group] = grp
	}
	grp.ids[id] = struct{}{}

	if grp.interrupted {
		t.interrupt(ctrl)
	} else if t.terminating {
		// A group the cascade already emptied was removed, so this child
		// may sit in a fresh group above the one in progress; re-running
		// the cascade step interrupts it in that case.
		t.tryTerminateNext()
	}

	return Relation[G]{ID: id, Group: group}
}

// Unregister removes rel's activity from the slab. If its group becomes
// empty it is removed too. If a cascade shutdown is in progress, the next
// eligible group is interrupted.
func (t *Tracker[G]) Unregister(rel Relation[G]) error {
	if _, ok := t.activities[rel.ID]; !ok {
		return ErrAlreadyDetached
	}
	delete(t.activities, rel.ID)

	if grp, ok := t.groups[rel.Group]; ok {
		delete(grp.ids, rel.ID)
		if len(grp.ids) == 0 {
			delete(t.groups, rel.Group)
		}
	}

	if t.terminating {
		t.tryTerminateNext()
	}

	return nil
}

// IsEmpty reports whether the tracker has no registered activities.
func (t *Tracker[G]) IsEmpty() bool {
	return len(t.activities) == 0
}

// Terminating reports whether TerminateAll has been called.
func (t *Tracker[G]) Terminating() bool {
	return t.terminating
}

// GroupSnapshot is a read-only view of one group's bookkeeping, used by
// status-reporting callers outside the tracker's single-writer goroutine.
type GroupSnapshot[G any] struct {
	Group       G
	Interrupted bool
	Activities  []ActivityId
}

// Snapshot returns every group's current state, ordered the same way a
// cascade shutdown would visit them (descending key order).
func (t *Tracker[G]) Snapshot() []GroupSnapshot[G] {
	keys := make([]G, 0, len(t.groups))
	for k := range t.groups {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b G) int { return cmp.Compare(b, a) })

	out := make([]GroupSnapshot[G], 0, len(keys))
	for _, key := range keys {
		grp := t.groups[key]

		ids := make([]ActivityId, 0, len(grp.ids))
		for id := range grp.ids {
			ids = append(ids, id)
		}
		slices.Sort(ids)

		out = append(out, GroupSnapshot[G]{
			Group:       key,
			Interrupted: grp.interrupted,
			Activities:  ids,
		})
	}
	return out
}

// TerminateAll begins a cascade shutdown: groups are interrupted in
// descending key order, one "finished" (interrupted and empty) group at a
// time.
func (t *Tracker[G]) TerminateAll() {
	t.terminating = true
	t.tryTerminateNext()
}

func (t *Tracker[G]) tryTerminateNext() {
	keys := make([]G, 0, len(t.groups))
	for k := range t.groups {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b G) int { return cmp.Compare(b, a) })

	for _, key := range keys {
		grp := t.groups[key]

		if !grp.interrupted {
			grp.interrupted = true
			for id := range grp.ids {
				if act, ok := t.activities[id]; ok {
					t.interrupt(act.ctrl)
				}
			}
		}

		if !(grp.interrupted && len(grp.ids) == 0) {
			break
		}
	}
}

// Supervising is implemented by a supervisor agent to expose the session
// that owns its Tracker, so the generic detach envelope built by
// SpawnTrackable can reach it.
type Supervising[A any, O any, G any] interface {
	Session() *SupervisorSession[A, O, G]
}

// SupervisorFinished is an optional hook invoked once a tracked child has
// fully detached; at the moment it runs, rel.ID is already absent from the
// tracker.
type SupervisorFinished[A any, O any, G any] interface {
	Finished(rel Relation[G], ctx *Context[A, O])
}

// SupervisorSession augments an agent's Context with a Tracker, giving it
// the capabilities described as "Supervisor" in the handler-capability
// set.
type SupervisorSession[A any, O any, G cmp.Ordered] struct {
	*Context[A, O]
	tracker *Tracker[G]
}

// NewSupervisorSession wraps ctx with a fresh Tracker.
func NewSupervisorSession[A any, O any, G cmp.Ordered](
	ctx *Context[A, O], opts ...SupervisorOption,
) *SupervisorSession[A, O, G] {

	return &SupervisorSession[A, O, G]{Context: ctx, tracker: NewTracker[G](opts...)}
}

// Tracker exposes the underlying Tracker.
func (s *SupervisorSession[A, O, G]) Tracker() *Tracker[G] {
	return s.tracker
}

// Shutdown attempts a cascade shutdown of every tracked child first; if
// the tracker is already empty the session shuts down synchronously,
// without waiting on a round trip through a detach message.
func (s *SupervisorSession[A, O, G]) Shutdown() {
	s.tracker.TerminateAll()
	if s.tracker.IsEmpty() {
		s.Context.Shutdown()
	}
}

type detachEvent[A any, O any, G cmp.Ordered] struct {
	rel Relation[G]
}

func (d detachEvent[A, O, G]) HandleEvent(ag A, ctx *Context[A, O]) error {
	sup, ok := any(ag).(Supervising[A, O, G])
	if !ok {
		return errors.New("agent: supervisor does not implement Supervising[A, O, G]")
	}

	sess := sup.Session()
	if err := sess.tracker.Unregister(d.rel); err != nil {
		return err
	}

	if f, ok := any(ag).(SupervisorFinished[A, O, G]); ok {
		f.Finished(d.rel, ctx)
	}

	if sess.tracker.Terminating() && sess.tracker.IsEmpty() {
		sess.Context.Shutdown()
	}

	return nil
}

// SpawnTrackable spawns child, registers it with sess's Tracker under
// group, and arranges for a DetachFrom-equivalent self-message once the
// child finishes. The returned Address is the child's own, usable
// independently of the supervisor relationship.
func SpawnTrackable[A any, O any, G cmp.Ordered, B any, OB any](
	sess *SupervisorSession[A, O, G], group G, child B,
) (Relation[G], *Address[B, OB]) {

	childAddr := Spawn[B, OB](child)
	rel := sess.tracker.Register(group, childAddr.Controller())

	selfAddr := sess.Address()
	go func() {
		_, _ = childAddr.Join(context.Background())
		_ = Event[A, O](selfAddr, detachEvent[A, O, G]{rel: rel})
	}()

	return rel, childAddr
}
