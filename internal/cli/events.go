package cli

import (
	"github.com/spf13/cobra"

	"roadmap-cli/internal/store"
)

func newEventsCmd(app *App) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "events",
		Short: "List the append-only change log (oldest first)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := app.storeDir()
			if err != nil {
				return writeErr(cmd, err)
			}
			events, err := store.ReadEvents(dir, limit)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": events})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "Only the most recent N events (0 = all)")
	return cmd
}
