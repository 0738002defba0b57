package cli

import (
	"strings"
	"time"

	"roadmap-cli/internal/model"
	"roadmap-cli/internal/mutate"
	"roadmap-cli/internal/store"

	"github.com/spf13/cobra"
)

func newBlocksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blocks",
		Short: "Manage blocks (top-level roadmap phases)",
	}
	cmd.AddCommand(newBlocksAddCmd(app))
	cmd.AddCommand(newBlocksListCmd(app))
	cmd.AddCommand(newBlocksRenameCmd(app))
	cmd.AddCommand(newBlocksArchiveCmd(app))
	return cmd
}

func newBlocksAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <title>",
		Short: "Add a block",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			now := time.Now().UTC()
			orders := make([]int, 0, len(db.Blocks))
			for _, b := range db.Blocks {
				orders = append(orders, b.SortOrder)
			}
			b := model.Block{
				ID:        s.NextID(db, "blk"),
				Title:     strings.TrimSpace(args[0]),
				SortOrder: store.NextSortOrder(orders),
				CreatedAt: now,
				UpdatedAt: now,
			}
			db.Blocks = append(db.Blocks, b)
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			_ = s.AppendEvent("block.create", b.ID, map[string]any{"title": b.Title})
			return writeOut(cmd, app, map[string]any{"data": b})
		},
	}
}

func newBlocksListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List blocks in display order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": db.BlockList()})
		},
	}
}

func newBlocksRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <block-id> <title>",
		Short: "Rename a block",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := mutate.RenameBlock(db, args[0], args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			if res.Changed {
				if err := s.Save(db); err != nil {
					return writeErr(cmd, err)
				}
				_ = s.AppendEvent("block.rename", args[0], res.EventPayload)
			}
			b, _ := db.FindBlock(args[0])
			return writeOut(cmd, app, map[string]any{"data": b})
		},
	}
}

func newBlocksArchiveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "archive <block-id>",
		Short: "Archive a block (hides it and its sections from the board)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := mutate.SetBlockArchived(db, args[0], true)
			if err != nil {
				return writeErr(cmd, err)
			}
			if res.Changed {
				if err := s.Save(db); err != nil {
					return writeErr(cmd, err)
				}
				_ = s.AppendEvent("block.archive", args[0], res.EventPayload)
			}
			b, _ := db.FindBlock(args[0])
			return writeOut(cmd, app, map[string]any{"data": b})
		},
	}
}
