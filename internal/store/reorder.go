package store

import (
	"time"

	"roadmap-cli/internal/dnd"
)

// Snapshot builds the immutable nested hierarchy the dnd engine reads. It is
// rebuilt from the document after every commit; the engine never sees the
// document itself.
func Snapshot(db *DB) dnd.Snapshot {
	snap := dnd.Snapshot{}
	for _, b := range db.BlockList() {
		node := dnd.BlockNode{Block: b}
		for _, sec := range db.BlockSections(b.ID) {
			node.Sections = append(node.Sections, dnd.SectionNode{
				Section: sec,
				Tasks:   db.SectionTasks(sec.ID),
			})
		}
		snap.Blocks = append(snap.Blocks, node)
	}
	return snap
}

// ApplyTaskReorder realizes a same-section reorder plan: tasks take the dense
// sort order of their position in orderedIDs. Ids that don't belong to the
// section are skipped (stale plan against a moved task). Returns true when
// anything changed, so idempotent re-applies stay cheap no-ops.
func ApplyTaskReorder(db *DB, sectionID string, orderedIDs []string) bool {
	changed := false
	now := time.Now().UTC()
	pos := 0
	for _, id := range orderedIDs {
		t, ok := db.FindTask(id)
		if !ok || t.SectionID != sectionID {
			continue
		}
		if t.SortOrder != pos {
			t.SortOrder = pos
			t.UpdatedAt = now
			changed = true
		}
		pos++
	}
	return changed
}

// ApplyTaskMove realizes a cross-section move plan: the task changes owner
// exactly once and lands at index among its new siblings, which are
// renumbered densely. The source section is not renumbered — removing one
// element preserves the relative order of the remainder.
func ApplyTaskMove(db *DB, taskID, sectionID string, index int) bool {
	t, ok := db.FindTask(taskID)
	if !ok {
		return false
	}
	if _, ok := db.FindSection(sectionID); !ok {
		return false
	}
	if t.SectionID == sectionID {
		// Degenerate plan; route through reorder semantics instead of
		// duplicating the task in its own sibling list.
		ids := orderedTaskIDs(db, sectionID)
		return ApplyTaskReorder(db, sectionID, insertAt(removeID(ids, taskID), taskID, index))
	}

	now := time.Now().UTC()
	siblings := orderedTaskIDs(db, sectionID)
	t.SectionID = sectionID
	t.UpdatedAt = now

	final := insertAt(siblings, taskID, index)
	for pos, id := range final {
		ft, ok := db.FindTask(id)
		if !ok {
			continue
		}
		if ft.SortOrder != pos {
			ft.SortOrder = pos
			ft.UpdatedAt = now
		}
	}
	return true
}

// ApplySectionReorder realizes a section reorder within one block.
func ApplySectionReorder(db *DB, blockID string, orderedIDs []string) bool {
	changed := false
	now := time.Now().UTC()
	pos := 0
	for _, id := range orderedIDs {
		sec, ok := db.FindSection(id)
		if !ok || sec.BlockID != blockID {
			continue
		}
		if sec.SortOrder != pos {
			sec.SortOrder = pos
			sec.UpdatedAt = now
			changed = true
		}
		pos++
	}
	return changed
}

// NextSortOrder returns the append position for a new child.
func NextSortOrder(orders []int) int {
	max := -1
	for _, o := range orders {
		if o > max {
			max = o
		}
	}
	return max + 1
}

func orderedTaskIDs(db *DB, sectionID string) []string {
	tasks := db.SectionTasks(sectionID)
	ids := make([]string, 0, len(tasks))
	for _, t := range tasks {
		ids = append(ids, t.ID)
	}
	return ids
}

func removeID(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, x := range ids {
		if x != id {
			out = append(out, x)
		}
	}
	return out
}

func insertAt(ids []string, id string, index int) []string {
	if index < 0 {
		index = 0
	}
	if index > len(ids) {
		index = len(ids)
	}
	out := make([]string, 0, len(ids)+1)
	out = append(out, ids[:index]...)
	out = append(out, id)
	out = append(out, ids[index:]...)
	return out
}
