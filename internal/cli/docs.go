package cli

import (
	"fmt"
	"strings"

	"roadmap-cli/internal/docs"

	"github.com/spf13/cobra"
)

func newDocsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "docs [topic]",
		Short: "Show built-in documentation topics",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return writeOut(cmd, app, map[string]any{"data": docs.Topics()})
			}
			topic := strings.ToLower(strings.TrimSpace(args[0]))
			content, ok := docs.Get(topic)
			if !ok {
				return writeErr(cmd, fmt.Errorf("unknown topic: %q (try: %s)", topic, strings.Join(docs.Topics(), ", ")))
			}
			fmt.Fprint(cmd.OutOrStdout(), content)
			return nil
		},
	}
}
