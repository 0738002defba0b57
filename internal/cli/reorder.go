package cli

import (
	"fmt"

	"roadmap-cli/internal/dnd"
	"roadmap-cli/internal/store"
)

// Reorder commands route through the drag engine: the CLI is just another
// input sensor producing an (active, target) pair, so scripted moves and
// interactive drags share one planner and one set of store appliers.

func dragCallbacks(db *store.DB, changed *bool) dnd.Callbacks {
	return dnd.Callbacks{
		OnTaskMove: func(taskID, sectionID string, index int) {
			if store.ApplyTaskMove(db, taskID, sectionID, index) {
				*changed = true
			}
		},
		OnTaskReorder: func(sectionID string, taskIDs []string) {
			if store.ApplyTaskReorder(db, sectionID, taskIDs) {
				*changed = true
			}
		},
		OnSectionReorder: func(blockID string, sectionIDs []string) {
			if store.ApplySectionReorder(db, blockID, sectionIDs) {
				*changed = true
			}
		},
	}
}

// runDrag performs one synthetic gesture against the current document and
// reports the resulting plan and whether the document changed.
func runDrag(db *store.DB, active, target dnd.ItemID) (dnd.Plan, bool, error) {
	changed := false
	eng := dnd.NewEngine(dragCallbacks(db, &changed))
	eng.SetSnapshot(store.Snapshot(db))
	if !eng.StartDrag(active) {
		return nil, false, fmt.Errorf("cannot move %s: not on the board", active.ID)
	}
	plan := eng.EndDrag(target)
	return plan, changed, nil
}

func planName(p dnd.Plan) string {
	switch p.(type) {
	case dnd.TaskReorder:
		return "task-reorder"
	case dnd.TaskMove:
		return "task-move"
	case dnd.SectionReorder:
		return "section-reorder"
	default:
		return "noop"
	}
}
