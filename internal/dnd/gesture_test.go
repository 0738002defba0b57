package dnd

import (
	"reflect"
	"testing"
)

// commitRecorder captures dispatched commits for assertions.
type commitRecorder struct {
	moves    []TaskMove
	reorders []TaskReorder
	sections []SectionReorder
}

func (r *commitRecorder) callbacks() Callbacks {
	return Callbacks{
		OnTaskMove: func(taskID, sectionID string, index int) {
			r.moves = append(r.moves, TaskMove{TaskID: taskID, SectionID: sectionID, Index: index})
		},
		OnTaskReorder: func(sectionID string, taskIDs []string) {
			r.reorders = append(r.reorders, TaskReorder{SectionID: sectionID, TaskIDs: taskIDs})
		},
		OnSectionReorder: func(blockID string, sectionIDs []string) {
			r.sections = append(r.sections, SectionReorder{BlockID: blockID, SectionIDs: sectionIDs})
		},
	}
}

func (r *commitRecorder) total() int {
	return len(r.moves) + len(r.reorders) + len(r.sections)
}

func newTestEngine(t *testing.T) (*Engine, *commitRecorder) {
	t.Helper()
	rec := &commitRecorder{}
	eng := NewEngine(rec.callbacks())
	eng.SetSnapshot(testSnapshot())
	return eng, rec
}

func TestEngine_DragCommitCycle(t *testing.T) {
	eng, rec := newTestEngine(t)

	if !eng.StartDrag(TaskID("B")) {
		t.Fatalf("StartDrag failed")
	}
	eng.UpdateHover(TaskID("C"))
	if rec.total() != 0 {
		t.Fatalf("hover must never commit; got %d commits", rec.total())
	}

	plan := eng.EndDrag(TaskID("C"))
	want := TaskReorder{SectionID: "S1", TaskIDs: []string{"A", "C", "B"}}
	if !reflect.DeepEqual(plan, Plan(want)) {
		t.Fatalf("plan = %#v, want %#v", plan, want)
	}
	if len(rec.reorders) != 1 || !reflect.DeepEqual(rec.reorders[0], want) {
		t.Fatalf("dispatched reorders = %#v", rec.reorders)
	}
	if eng.State() != Idle {
		t.Fatalf("engine must return to Idle after EndDrag")
	}
}

func TestEngine_SingleActiveDrag(t *testing.T) {
	eng, _ := newTestEngine(t)

	if !eng.StartDrag(TaskID("A")) {
		t.Fatalf("first StartDrag failed")
	}
	if eng.StartDrag(TaskID("B")) {
		t.Fatalf("second StartDrag while Dragging must be rejected")
	}
	active, ok := eng.Active()
	if !ok || active != TaskID("A") {
		t.Fatalf("active = %v, %v; want task A", active, ok)
	}
}

func TestEngine_StartDragUnknownID(t *testing.T) {
	eng, _ := newTestEngine(t)
	if eng.StartDrag(TaskID("gone")) {
		t.Fatalf("StartDrag must reject ids missing from the snapshot")
	}
	if eng.State() != Idle {
		t.Fatalf("state = %v, want Idle", eng.State())
	}
}

func TestEngine_SnapshotSwapCancelsGesture(t *testing.T) {
	eng, rec := newTestEngine(t)

	if !eng.StartDrag(TaskID("A")) {
		t.Fatalf("StartDrag failed")
	}
	// A concurrent edit arrives mid-gesture.
	eng.SetSnapshot(testSnapshot())

	if eng.State() != Idle {
		t.Fatalf("snapshot swap while Dragging must cancel the gesture")
	}
	plan := eng.EndDrag(TaskID("C"))
	if _, ok := plan.(NoOp); !ok {
		t.Fatalf("EndDrag after cancellation = %#v, want NoOp", plan)
	}
	if rec.total() != 0 {
		t.Fatalf("cancelled gesture must not commit; got %d commits", rec.total())
	}
}

func TestEngine_DropOutside(t *testing.T) {
	eng, rec := newTestEngine(t)
	eng.StartDrag(TaskID("A"))
	plan := eng.EndDrag(ItemID{})
	if _, ok := plan.(NoOp); !ok {
		t.Fatalf("drop outside any droppable = %#v, want NoOp", plan)
	}
	if rec.total() != 0 {
		t.Fatalf("NoOp must not invoke callbacks")
	}
	if eng.State() != Idle {
		t.Fatalf("engine must be Idle after drop outside")
	}
}

func TestEngine_CancelClearsHover(t *testing.T) {
	eng, _ := newTestEngine(t)
	eng.StartDrag(SectionID("S1"))
	eng.UpdateHover(SectionID("S2"))
	if _, ok := eng.Hover(); !ok {
		t.Fatalf("expected a hover target while Dragging")
	}
	eng.Cancel()
	if _, ok := eng.Hover(); ok {
		t.Fatalf("hover must be cleared on cancel")
	}
	if _, ok := eng.Active(); ok {
		t.Fatalf("active must be cleared on cancel")
	}
}

func TestEngine_HoverIgnoredWhenIdle(t *testing.T) {
	eng, _ := newTestEngine(t)
	eng.UpdateHover(TaskID("A"))
	if _, ok := eng.Hover(); ok {
		t.Fatalf("hover outside a gesture must be ignored")
	}
}

func TestEngine_SectionReorderDispatch(t *testing.T) {
	eng, rec := newTestEngine(t)
	eng.StartDrag(SectionID("S2"))
	eng.EndDrag(SectionID("S1"))
	if len(rec.sections) != 1 {
		t.Fatalf("expected one section reorder, got %#v", rec.sections)
	}
	want := SectionReorder{BlockID: "X", SectionIDs: []string{"S2", "S1"}}
	if !reflect.DeepEqual(rec.sections[0], want) {
		t.Fatalf("got %#v, want %#v", rec.sections[0], want)
	}
}

func TestEngine_NewGestureAllowedAfterDrop(t *testing.T) {
	// Commit is fire-and-forget; the next gesture may start immediately even
	// if the previous commit's persistence work is still in flight.
	eng, rec := newTestEngine(t)
	eng.StartDrag(TaskID("A"))
	eng.EndDrag(SectionID("S2"))
	if !eng.StartDrag(TaskID("B")) {
		t.Fatalf("engine must accept a new gesture right after EndDrag")
	}
	if len(rec.moves) != 1 {
		t.Fatalf("expected exactly one move commit, got %#v", rec.moves)
	}
}

func TestDispatch_NilCallbacks(t *testing.T) {
	// Missing callbacks must not panic.
	Dispatch(Callbacks{}, TaskMove{TaskID: "A", SectionID: "S2", Index: 0})
	Dispatch(Callbacks{}, TaskReorder{SectionID: "S1", TaskIDs: []string{"A"}})
	Dispatch(Callbacks{}, SectionReorder{BlockID: "X", SectionIDs: []string{"S1"}})
	Dispatch(Callbacks{}, NoOp{})
	Dispatch(Callbacks{}, nil)
}
