package dnd

// State is the drag lifecycle: Idle → Dragging → Idle. There are no
// intermediate persisted states; hover is ephemeral UI feedback.
type State int

const (
	Idle State = iota
	Dragging
)

// Engine is the coordinating drag state machine. One engine tracks at most one
// gesture at a time; it holds no persisted state and treats the snapshot as an
// immutable value owned by the caller.
//
// The engine is single-threaded by design: it runs inside the UI event loop
// and is purely reactive to input and snapshot-update events.
type Engine struct {
	snap Snapshot

	cb Callbacks

	state  State
	active ItemID
	hover  ItemID
}

func NewEngine(cb Callbacks) *Engine {
	return &Engine{cb: cb}
}

// SetSnapshot replaces the hierarchy snapshot. A swap while a gesture is in
// flight cancels that gesture with no commit: the dragged identity is
// immutable per gesture, so a concurrently changed hierarchy makes the
// gesture stale (fail-safe, not fail-silent — callers should re-render and
// drop the stale drag visuals).
func (e *Engine) SetSnapshot(s Snapshot) {
	e.snap = s
	if e.state == Dragging {
		e.reset()
	}
}

// Snapshot returns the current snapshot (for adapters building target lists).
func (e *Engine) Snapshot() Snapshot { return e.snap }

func (e *Engine) State() State { return e.state }

// Active returns the item being dragged, if any.
func (e *Engine) Active() (ItemID, bool) {
	if e.state != Dragging {
		return ItemID{}, false
	}
	return e.active, true
}

// Hover returns the current hover target, if any. Advisory only.
func (e *Engine) Hover() (ItemID, bool) {
	if e.state != Dragging || e.hover.IsZero() {
		return ItemID{}, false
	}
	return e.hover, true
}

// StartDrag begins a gesture. Valid only from Idle; a second StartDrag while
// Dragging is ignored. The id must resolve in the current snapshot.
func (e *Engine) StartDrag(id ItemID) bool {
	if e.state != Idle {
		return false
	}
	if !e.snap.Contains(id) {
		return false
	}
	e.state = Dragging
	e.active = id
	e.hover = ItemID{}
	return true
}

// UpdateHover records the current hover target. No commit happens here: the
// pointer merely passing over candidates must never produce writes.
func (e *Engine) UpdateHover(over ItemID) {
	if e.state != Dragging {
		return
	}
	e.hover = over
}

// EndDrag completes the gesture: plans the drop against the snapshot present
// right now, dispatches the plan, and unconditionally returns to Idle. A zero
// over id means "dropped outside any droppable" and plans to nothing.
func (e *Engine) EndDrag(over ItemID) Plan {
	if e.state != Dragging {
		return NoOp{}
	}
	active := e.active
	e.reset()

	plan := PlanDrop(e.snap, active, over)
	Dispatch(e.cb, plan)
	return plan
}

// Cancel aborts the gesture with no commit.
func (e *Engine) Cancel() {
	e.reset()
}

func (e *Engine) reset() {
	e.state = Idle
	e.active = ItemID{}
	e.hover = ItemID{}
}
