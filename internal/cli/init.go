package cli

import (
	"time"

	"roadmap-cli/internal/model"
	"roadmap-cli/internal/store"

	"github.com/spf13/cobra"
)

func newInitCmd(app *App) *cobra.Command {
	var title string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a store in the current directory (with a starter block)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := app.storeDir()
			if err != nil {
				return writeErr(cmd, err)
			}
			s := store.Store{Dir: dir}
			db, err := s.Load()
			if err != nil {
				return writeErr(cmd, err)
			}

			created := []model.Block{}
			if len(db.Blocks) == 0 {
				now := time.Now().UTC()
				b := model.Block{
					ID:        s.NextID(db, "blk"),
					Title:     title,
					SortOrder: 0,
					CreatedAt: now,
					UpdatedAt: now,
				}
				db.Blocks = append(db.Blocks, b)
				for i, name := range []string{"Backlog", "In progress", "Done"} {
					db.Sections = append(db.Sections, model.Section{
						ID:        s.NextID(db, "sec"),
						BlockID:   b.ID,
						Title:     name,
						SortOrder: i,
						CreatedAt: now,
						UpdatedAt: now,
					})
				}
				if err := s.Save(db); err != nil {
					return writeErr(cmd, err)
				}
				_ = s.AppendEvent("block.create", b.ID, map[string]any{"title": b.Title})
				created = append(created, b)
			}

			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"dir":     dir,
				"created": created,
			}})
		},
	}
	cmd.Flags().StringVar(&title, "title", "Roadmap", "Title for the starter block")
	return cmd
}
