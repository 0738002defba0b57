package cli

import (
	"errors"
	"strings"

	"roadmap-cli/internal/dnd"
	"roadmap-cli/internal/store"

	"github.com/spf13/cobra"
)

func newTasksMoveCmd(app *App) *cobra.Command {
	var before, after, toSection string
	cmd := &cobra.Command{
		Use:   "move <task-id>",
		Short: "Move a task before/after a sibling or to the end of a section",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			taskID := strings.TrimSpace(args[0])
			t, ok := db.FindTask(taskID)
			if !ok {
				return writeErr(cmd, errNotFound("task", taskID))
			}

			target, err := resolveTaskTarget(db, t.ID, before, after, toSection)
			if err != nil {
				return writeErr(cmd, err)
			}
			plan, changed, err := runDrag(db, dnd.TaskID(t.ID), target)
			if err != nil {
				return writeErr(cmd, err)
			}
			if changed {
				if err := s.Save(db); err != nil {
					return writeErr(cmd, err)
				}
				_ = s.AppendEvent("task.move", t.ID, map[string]any{
					"plan":      planName(plan),
					"sectionId": t.SectionID,
				})
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"task":    t,
				"plan":    planName(plan),
				"changed": changed,
				"order":   siblingOrder(db, t.SectionID),
			}})
		},
	}
	cmd.Flags().StringVar(&before, "before", "", "Place the task directly before this task")
	cmd.Flags().StringVar(&after, "after", "", "Place the task directly after this task")
	cmd.Flags().StringVar(&toSection, "to-section", "", "Append the task to this section")
	return cmd
}

// resolveTaskTarget translates the CLI's explicit before/after intent into the
// engine's hover-target vocabulary. The planner removes the active task and
// inserts at the target's index, so the right target depends on direction:
// moving down within a section lands after the hovered task, moving down from
// elsewhere (or up) lands before it. "after X" therefore targets X itself when
// the task sits above X in the same section, and X's next sibling (or the
// section, when X is last) otherwise; "before X" mirrors that.
func resolveTaskTarget(db *store.DB, taskID, before, after, toSection string) (dnd.ItemID, error) {
	before = strings.TrimSpace(before)
	after = strings.TrimSpace(after)
	toSection = strings.TrimSpace(toSection)

	set := 0
	for _, v := range []string{before, after, toSection} {
		if v != "" {
			set++
		}
	}
	if set != 1 {
		return dnd.ItemID{}, errors.New("exactly one of --before, --after, --to-section is required")
	}

	if toSection != "" {
		if _, ok := db.FindSection(toSection); !ok {
			return dnd.ItemID{}, errNotFound("section", toSection)
		}
		return dnd.SectionID(toSection), nil
	}

	refID := before
	if after != "" {
		refID = after
	}
	if refID == taskID {
		return dnd.ItemID{}, errors.New("cannot move a task relative to itself")
	}
	ref, ok := db.FindTask(refID)
	if !ok {
		return dnd.ItemID{}, errNotFound("task", refID)
	}

	siblings := db.SectionTasks(ref.SectionID)
	refIdx, activeIdx := -1, -1
	for i, sib := range siblings {
		switch sib.ID {
		case ref.ID:
			refIdx = i
		case taskID:
			activeIdx = i
		}
	}

	if after != "" {
		if activeIdx >= 0 && activeIdx < refIdx {
			return dnd.TaskID(ref.ID), nil
		}
		if refIdx == len(siblings)-1 {
			return dnd.SectionID(ref.SectionID), nil
		}
		return dnd.TaskID(siblings[refIdx+1].ID), nil
	}

	if activeIdx >= 0 && activeIdx < refIdx {
		return dnd.TaskID(siblings[refIdx-1].ID), nil
	}
	return dnd.TaskID(ref.ID), nil
}

func siblingOrder(db *store.DB, sectionID string) []string {
	tasks := db.SectionTasks(sectionID)
	ids := make([]string, 0, len(tasks))
	for _, t := range tasks {
		ids = append(ids, t.ID)
	}
	return ids
}
