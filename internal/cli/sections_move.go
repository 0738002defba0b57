package cli

import (
	"errors"
	"strings"

	"roadmap-cli/internal/dnd"
	"roadmap-cli/internal/store"

	"github.com/spf13/cobra"
)

func newSectionsMoveCmd(app *App) *cobra.Command {
	var before, after string
	cmd := &cobra.Command{
		Use:   "move <section-id>",
		Short: "Move a section before/after a sibling in the same block",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			sectionID := strings.TrimSpace(args[0])
			sec, ok := db.FindSection(sectionID)
			if !ok {
				return writeErr(cmd, errNotFound("section", sectionID))
			}

			target, err := resolveSectionTarget(db, sec.ID, sec.BlockID, before, after)
			if err != nil {
				return writeErr(cmd, err)
			}
			plan, changed, err := runDrag(db, dnd.SectionID(sec.ID), target)
			if err != nil {
				return writeErr(cmd, err)
			}
			if changed {
				if err := s.Save(db); err != nil {
					return writeErr(cmd, err)
				}
				_ = s.AppendEvent("section.move", sec.ID, map[string]any{
					"plan":    planName(plan),
					"blockId": sec.BlockID,
				})
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"section": sec,
				"plan":    planName(plan),
				"changed": changed,
				"order":   sectionOrderIDs(db, sec.BlockID),
			}})
		},
	}
	cmd.Flags().StringVar(&before, "before", "", "Place the section directly before this section")
	cmd.Flags().StringVar(&after, "after", "", "Place the section directly after this section")
	return cmd
}

// resolveSectionTarget mirrors resolveTaskTarget for sections. Sections only
// reorder within their own block, so a reference in another block is an error
// here rather than a silent no-op from the planner.
func resolveSectionTarget(db *store.DB, sectionID, blockID, before, after string) (dnd.ItemID, error) {
	before = strings.TrimSpace(before)
	after = strings.TrimSpace(after)
	if (before == "") == (after == "") {
		return dnd.ItemID{}, errors.New("exactly one of --before, --after is required")
	}

	refID := before
	if after != "" {
		refID = after
	}
	if refID == sectionID {
		return dnd.ItemID{}, errors.New("cannot move a section relative to itself")
	}
	ref, ok := db.FindSection(refID)
	if !ok {
		return dnd.ItemID{}, errNotFound("section", refID)
	}
	if ref.BlockID != blockID {
		return dnd.ItemID{}, errors.New("sections can only be reordered within their own block")
	}

	siblings := db.BlockSections(blockID)
	refIdx, activeIdx := -1, -1
	for i, sib := range siblings {
		switch sib.ID {
		case ref.ID:
			refIdx = i
		case sectionID:
			activeIdx = i
		}
	}

	if after != "" {
		if activeIdx > refIdx {
			return dnd.SectionID(siblings[refIdx+1].ID), nil
		}
		return dnd.SectionID(ref.ID), nil
	}
	if activeIdx < refIdx {
		return dnd.SectionID(siblings[refIdx-1].ID), nil
	}
	return dnd.SectionID(ref.ID), nil
}

func sectionOrderIDs(db *store.DB, blockID string) []string {
	secs := db.BlockSections(blockID)
	ids := make([]string, 0, len(secs))
	for _, sec := range secs {
		ids = append(ids, sec.ID)
	}
	return ids
}
