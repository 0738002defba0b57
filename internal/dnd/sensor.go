package dnd

// PointerSensor distinguishes clicks from drags: a press becomes a drag only
// once the pointer has moved past the activation distance. Below the
// threshold the interaction stays a plain click and never reaches the state
// machine. Coordinates are whatever unit the host UI uses (pixels, cells).
type PointerSensor struct {
	eng       *Engine
	threshold int

	pressed  bool
	dragging bool
	pressID  ItemID
	startX   int
	startY   int
}

// DefaultActivationDistance is tuned for cell-based UIs; pixel-based hosts
// should pass a larger threshold.
const DefaultActivationDistance = 2

func NewPointerSensor(eng *Engine, threshold int) *PointerSensor {
	if threshold <= 0 {
		threshold = DefaultActivationDistance
	}
	return &PointerSensor{eng: eng, threshold: threshold}
}

// Press records a pointer-down over the given item. No gesture starts yet.
func (s *PointerSensor) Press(id ItemID, x, y int) {
	if id.IsZero() {
		return
	}
	s.pressed = true
	s.dragging = false
	s.pressID = id
	s.startX = x
	s.startY = y
}

// Move feeds pointer motion. Once motion exceeds the activation distance the
// gesture starts; afterwards the hovered item (resolved by the caller from
// coordinates) updates the engine's hover target.
func (s *PointerSensor) Move(x, y int, over ItemID) {
	if !s.pressed {
		return
	}
	if !s.dragging {
		dx := x - s.startX
		dy := y - s.startY
		if dx*dx+dy*dy < s.threshold*s.threshold {
			return
		}
		if !s.eng.StartDrag(s.pressID) {
			// Stale press (item vanished) — swallow the rest of this interaction.
			s.pressed = false
			return
		}
		s.dragging = true
	}
	s.eng.UpdateHover(over)
}

// Release ends the interaction. For a drag it drops on the given target and
// returns the plan; for a plain click it returns clicked=true so the caller
// can treat it as selection.
func (s *PointerSensor) Release(over ItemID) (plan Plan, clicked bool) {
	pressed, dragging := s.pressed, s.dragging
	s.pressed = false
	s.dragging = false
	s.pressID = ItemID{}

	if !pressed {
		return NoOp{}, false
	}
	if !dragging {
		return NoOp{}, true
	}
	return s.eng.EndDrag(over), false
}

// Dragging reports whether the current interaction has crossed the threshold.
func (s *PointerSensor) Dragging() bool { return s.dragging }

// KeyboardSensor gives keyboard input the same semantics as pointer drag:
// grab, step the hover target through an ordered candidate list, drop. This
// is the accessibility path, so it produces exactly the same
// StartDrag/UpdateHover/EndDrag sequence the pointer sensor does.
type KeyboardSensor struct {
	eng     *Engine
	targets []ItemID
	idx     int
}

func NewKeyboardSensor(eng *Engine) *KeyboardSensor {
	return &KeyboardSensor{eng: eng, idx: -1}
}

// Grab starts a keyboard gesture on id. targets is the ordered list of drop
// candidates as currently rendered (typically the flattened board rows); it
// must contain id.
func (s *KeyboardSensor) Grab(id ItemID, targets []ItemID) bool {
	at := -1
	for i, t := range targets {
		if t == id {
			at = i
			break
		}
	}
	if at < 0 {
		return false
	}
	if !s.eng.StartDrag(id) {
		return false
	}
	s.targets = targets
	s.idx = at
	s.eng.UpdateHover(id)
	return true
}

func (s *KeyboardSensor) MoveUp() bool   { return s.step(-1) }
func (s *KeyboardSensor) MoveDown() bool { return s.step(1) }

func (s *KeyboardSensor) step(d int) bool {
	if _, ok := s.eng.Active(); !ok {
		return false
	}
	next := s.idx + d
	if next < 0 || next >= len(s.targets) {
		return false
	}
	s.idx = next
	s.eng.UpdateHover(s.targets[s.idx])
	return true
}

// Target returns the current keyboard hover target.
func (s *KeyboardSensor) Target() (ItemID, bool) {
	if _, ok := s.eng.Active(); !ok || s.idx < 0 || s.idx >= len(s.targets) {
		return ItemID{}, false
	}
	return s.targets[s.idx], true
}

// Drop ends the gesture at the current target.
func (s *KeyboardSensor) Drop() Plan {
	target, ok := s.Target()
	s.clear()
	if !ok {
		return s.eng.EndDrag(ItemID{})
	}
	return s.eng.EndDrag(target)
}

// Cancel aborts the gesture with no commit.
func (s *KeyboardSensor) Cancel() {
	s.clear()
	s.eng.Cancel()
}

func (s *KeyboardSensor) clear() {
	s.targets = nil
	s.idx = -1
}
