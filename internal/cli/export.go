package cli

import (
	"fmt"
	"os"
	"strings"

	"roadmap-cli/internal/publish"

	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the board as markdown (stdout or --out file)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			md := publish.Markdown(db)

			if strings.TrimSpace(out) == "" {
				fmt.Fprint(cmd.OutOrStdout(), md)
				return nil
			}
			if err := os.WriteFile(out, []byte(md), 0o644); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"path": out, "bytes": len(md)}})
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "Write to this file instead of stdout")
	return cmd
}
