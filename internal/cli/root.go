package cli

import (
	"fmt"
	"os"
	"strings"

	"roadmap-cli/internal/format"
	"roadmap-cli/internal/store"
	"roadmap-cli/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	PrettyJSON bool
	Format     string
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "roadmap",
		Short:        "Roadmap (local-first) board CLI + TUI",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive board
  roadmap

  # Scriptable commands
  roadmap blocks list
  roadmap tasks add "Ship the parser" --section sec-abc

  # Reorder without the TUI
  roadmap tasks move task-x1 --before task-y2
  roadmap tasks move task-x1 --to-section sec-done
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runBoard(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("ROADMAP_DIR", ""), "Path to store dir (default: discover .roadmap upward from cwd)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("ROADMAP_FORMAT", "json"), "Output format (json)")

	cmd.AddCommand(newInitCmd(app))
	cmd.AddCommand(newBlocksCmd(app))
	cmd.AddCommand(newSectionsCmd(app))
	cmd.AddCommand(newTasksCmd(app))
	cmd.AddCommand(newEventsCmd(app))
	cmd.AddCommand(newBoardCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func (app *App) storeDir() (string, error) {
	if strings.TrimSpace(app.Dir) != "" {
		return app.Dir, nil
	}
	return store.DefaultDir()
}

func loadDB(app *App) (*store.DB, store.Store, error) {
	dir, err := app.storeDir()
	if err != nil {
		return nil, store.Store{}, err
	}
	s := store.Store{Dir: dir}
	db, err := s.Load()
	if err != nil {
		return nil, store.Store{}, err
	}
	return db, s, nil
}

func runBoard(app *App) error {
	db, s, err := loadDB(app)
	if err != nil {
		return err
	}
	return tui.Run(s, db)
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
