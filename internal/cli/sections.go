package cli

import (
	"errors"
	"strings"
	"time"

	"roadmap-cli/internal/model"
	"roadmap-cli/internal/mutate"
	"roadmap-cli/internal/store"

	"github.com/spf13/cobra"
)

func newSectionsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sections",
		Short: "Manage sections within a block",
	}
	cmd.AddCommand(newSectionsAddCmd(app))
	cmd.AddCommand(newSectionsListCmd(app))
	cmd.AddCommand(newSectionsRenameCmd(app))
	cmd.AddCommand(newSectionsArchiveCmd(app))
	cmd.AddCommand(newSectionsMoveCmd(app))
	return cmd
}

func newSectionsAddCmd(app *App) *cobra.Command {
	var blockID string
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a section to a block (appends at the end)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if strings.TrimSpace(blockID) == "" {
				return writeErr(cmd, errors.New("--block is required"))
			}
			if _, ok := db.FindBlock(blockID); !ok {
				return writeErr(cmd, errNotFound("block", blockID))
			}
			now := time.Now().UTC()
			siblings := db.BlockSections(blockID)
			orders := make([]int, 0, len(siblings))
			for _, sec := range siblings {
				orders = append(orders, sec.SortOrder)
			}
			sec := model.Section{
				ID:        s.NextID(db, "sec"),
				BlockID:   blockID,
				Title:     strings.TrimSpace(args[0]),
				SortOrder: store.NextSortOrder(orders),
				CreatedAt: now,
				UpdatedAt: now,
			}
			db.Sections = append(db.Sections, sec)
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			_ = s.AppendEvent("section.create", sec.ID, map[string]any{"blockId": blockID, "title": sec.Title})
			return writeOut(cmd, app, map[string]any{"data": sec})
		},
	}
	cmd.Flags().StringVar(&blockID, "block", "", "Owning block id")
	return cmd
}

func newSectionsListCmd(app *App) *cobra.Command {
	var blockID string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a block's sections in display order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if strings.TrimSpace(blockID) == "" {
				return writeErr(cmd, errors.New("--block is required"))
			}
			if _, ok := db.FindBlock(blockID); !ok {
				return writeErr(cmd, errNotFound("block", blockID))
			}
			return writeOut(cmd, app, map[string]any{"data": db.BlockSections(blockID)})
		},
	}
	cmd.Flags().StringVar(&blockID, "block", "", "Owning block id")
	return cmd
}

func newSectionsRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <section-id> <title>",
		Short: "Rename a section",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := mutate.RenameSection(db, args[0], args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			if res.Changed {
				if err := s.Save(db); err != nil {
					return writeErr(cmd, err)
				}
				_ = s.AppendEvent("section.rename", args[0], res.EventPayload)
			}
			sec, _ := db.FindSection(args[0])
			return writeOut(cmd, app, map[string]any{"data": sec})
		},
	}
}

func newSectionsArchiveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "archive <section-id>",
		Short: "Archive a section (hides it and its tasks from the board)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := mutate.SetSectionArchived(db, args[0], true)
			if err != nil {
				return writeErr(cmd, err)
			}
			if res.Changed {
				if err := s.Save(db); err != nil {
					return writeErr(cmd, err)
				}
				_ = s.AppendEvent("section.archive", args[0], res.EventPayload)
			}
			sec, _ := db.FindSection(args[0])
			return writeOut(cmd, app, map[string]any{"data": sec})
		},
	}
}
