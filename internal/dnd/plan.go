// Package dnd implements the drag-and-drop reordering engine for the
// block → section → task hierarchy: identifier resolution, per-gesture drag
// state, drop planning, and commit dispatch. The engine computes new logical
// orders only; persistence belongs to the caller via the commit callbacks.
package dnd

// Plan is the computed outcome of a gesture. It is a closed set: the commit
// dispatcher is a total switch over these four cases instead of a chain of
// null checks.
type Plan interface {
	isPlan()
}

// NoOp means the gesture ends with no callback invoked: dropped outside any
// target, dropped on itself, an unsupported move, or a stale identifier.
type NoOp struct{}

// TaskReorder is a same-section reorder. TaskIDs is the full ordered id list
// for the section after the move.
type TaskReorder struct {
	SectionID string
	TaskIDs   []string
}

// TaskMove is a cross-section move. Index is the insertion position among the
// destination section's tasks, clamped to [0, len]. The source section needs
// no re-emit: removing one element preserves the relative order of the rest.
type TaskMove struct {
	TaskID    string
	SectionID string
	Index     int
}

// SectionReorder reorders sections within one block. SectionIDs is the full
// ordered id list for the block after the move.
type SectionReorder struct {
	BlockID    string
	SectionIDs []string
}

func (NoOp) isPlan()           {}
func (TaskReorder) isPlan()    {}
func (TaskMove) isPlan()       {}
func (SectionReorder) isPlan() {}

// PlanDrop decides what a drop means: same-container reorder, cross-container
// move, section reorder, or nothing. It reads the snapshot present at drop
// time; any identifier that no longer resolves aborts the whole gesture
// (stale snapshot, concurrent edit).
//
// Drop-on-task uses insert-before semantics: the moved item lands at the
// hovered item's current index.
func PlanDrop(snap Snapshot, active, over ItemID) Plan {
	if active.IsZero() || over.IsZero() {
		return NoOp{}
	}
	if active == over {
		return NoOp{}
	}

	ix := BuildIndex(snap)

	switch active.Kind {
	case KindTask:
		return planTaskDrop(snap, ix, active, over)
	case KindSection:
		return planSectionDrop(ix, active, over)
	default:
		return NoOp{}
	}
}

func planTaskDrop(snap Snapshot, ix *Index, active, over ItemID) Plan {
	_, fromSection, ok := snap.FindTask(active.ID)
	if !ok {
		return NoOp{}
	}

	var targetSection string
	var targetIndex int

	switch over.Kind {
	case KindSection:
		// Dropping on a section header appends to that section.
		if _, _, ok := snap.FindSection(over.ID); !ok {
			return NoOp{}
		}
		targetSection = over.ID
		targetIndex = len(ix.SectionTasks(over.ID))
	case KindTask:
		_, sec, ok := snap.FindTask(over.ID)
		if !ok {
			return NoOp{}
		}
		targetSection = sec
		targetIndex = indexOf(ix.SectionTasks(sec), over.ID)
		if targetIndex < 0 {
			return NoOp{}
		}
	default:
		return NoOp{}
	}

	if targetSection == fromSection {
		ordered := moveID(ix.SectionTasks(fromSection), active.ID, targetIndex)
		if ordered == nil {
			return NoOp{}
		}
		return TaskReorder{SectionID: fromSection, TaskIDs: ordered}
	}

	return TaskMove{
		TaskID:    active.ID,
		SectionID: targetSection,
		Index:     clamp(targetIndex, 0, len(ix.SectionTasks(targetSection))),
	}
}

func planSectionDrop(ix *Index, active, over ItemID) Plan {
	// Sections reorder only against other sections; a section dropped on a
	// task (or anything else) is not a move.
	if over.Kind != KindSection {
		return NoOp{}
	}
	fromBlock, ok := ix.ContainerOf(active)
	if !ok {
		return NoOp{}
	}
	overBlock, ok := ix.ContainerOf(over)
	if !ok {
		return NoOp{}
	}
	// Cross-block section moves are unsupported.
	if fromBlock != overBlock {
		return NoOp{}
	}

	ids := ix.BlockSections(fromBlock)
	target := indexOf(ids, over.ID)
	if target < 0 {
		return NoOp{}
	}
	ordered := moveID(ids, active.ID, target)
	if ordered == nil {
		return NoOp{}
	}
	return SectionReorder{BlockID: fromBlock, SectionIDs: ordered}
}

// moveID extracts id from ids and re-inserts it at index (an index into the
// original list, insert-before). Extract-then-insert, never swap, so the
// relative order of all untouched items is preserved. Returns nil when id is
// not present.
func moveID(ids []string, id string, index int) []string {
	from := indexOf(ids, id)
	if from < 0 {
		return nil
	}

	rest := make([]string, 0, len(ids)-1)
	for _, x := range ids {
		if x != id {
			rest = append(rest, x)
		}
	}
	index = clamp(index, 0, len(rest))

	out := make([]string, 0, len(ids))
	out = append(out, rest[:index]...)
	out = append(out, id)
	out = append(out, rest[index:]...)
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
