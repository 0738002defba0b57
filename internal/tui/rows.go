package tui

import (
	"roadmap-cli/internal/dnd"
	"roadmap-cli/internal/model"
)

type rowKind int

const (
	rowSectionHeader rowKind = iota
	rowTask
)

// boardRow is one rendered line of the board body. The flattened row list is
// also the ordered drop-candidate list for keyboard drags, so row order and
// target order can never disagree.
type boardRow struct {
	kind    rowKind
	id      dnd.ItemID
	section model.Section
	task    model.Task
}

// buildRows flattens one block of the snapshot into display rows: each
// section header followed by its tasks.
func buildRows(snap dnd.Snapshot, blockID string) []boardRow {
	var rows []boardRow
	for _, b := range snap.Blocks {
		if b.Block.ID != blockID {
			continue
		}
		for _, sec := range b.Sections {
			rows = append(rows, boardRow{
				kind:    rowSectionHeader,
				id:      dnd.SectionID(sec.Section.ID),
				section: sec.Section,
			})
			for _, t := range sec.Tasks {
				rows = append(rows, boardRow{
					kind:    rowTask,
					id:      dnd.TaskID(t.ID),
					section: sec.Section,
					task:    t,
				})
			}
		}
	}
	return rows
}

func rowTargets(rows []boardRow) []dnd.ItemID {
	targets := make([]dnd.ItemID, 0, len(rows))
	for _, r := range rows {
		targets = append(targets, r.id)
	}
	return targets
}

func rowIndexOf(rows []boardRow, id dnd.ItemID) int {
	for i, r := range rows {
		if r.id == id {
			return i
		}
	}
	return -1
}
