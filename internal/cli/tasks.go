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

func newTasksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Manage tasks",
	}
	cmd.AddCommand(newTasksAddCmd(app))
	cmd.AddCommand(newTasksListCmd(app))
	cmd.AddCommand(newTasksShowCmd(app))
	cmd.AddCommand(newTasksSetStatusCmd(app))
	cmd.AddCommand(newTasksDescribeCmd(app))
	cmd.AddCommand(newTasksArchiveCmd(app))
	cmd.AddCommand(newTasksMoveCmd(app))
	return cmd
}

func newTasksArchiveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "archive <task-id>",
		Short: "Archive a task (hides it from the board)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := mutate.SetTaskArchived(db, args[0], true)
			if err != nil {
				return writeErr(cmd, err)
			}
			if res.Changed {
				if err := s.Save(db); err != nil {
					return writeErr(cmd, err)
				}
				_ = s.AppendEvent("task.archive", args[0], res.EventPayload)
			}
			t, _ := db.FindTask(args[0])
			return writeOut(cmd, app, map[string]any{"data": t})
		},
	}
}

func newTasksAddCmd(app *App) *cobra.Command {
	var sectionID string
	var status string
	var due string
	var tags []string
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task to a section (appends at the end)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if strings.TrimSpace(sectionID) == "" {
				return writeErr(cmd, errors.New("--section is required"))
			}
			if _, ok := db.FindSection(sectionID); !ok {
				return writeErr(cmd, errNotFound("section", sectionID))
			}
			st, err := store.ParseStatus(status)
			if err != nil {
				return writeErr(cmd, err)
			}
			dueAt, err := model.ParseDateTime(due)
			if err != nil {
				return writeErr(cmd, err)
			}
			now := time.Now().UTC()
			siblings := db.SectionTasks(sectionID)
			orders := make([]int, 0, len(siblings))
			for _, t := range siblings {
				orders = append(orders, t.SortOrder)
			}
			t := model.Task{
				ID:        s.NextID(db, "task"),
				SectionID: sectionID,
				Title:     strings.TrimSpace(args[0]),
				Status:    st,
				Due:       dueAt,
				Tags:      tags,
				SortOrder: store.NextSortOrder(orders),
				CreatedAt: now,
				UpdatedAt: now,
			}
			db.Tasks = append(db.Tasks, t)
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			_ = s.AppendEvent("task.create", t.ID, map[string]any{"sectionId": sectionID, "title": t.Title})
			return writeOut(cmd, app, map[string]any{"data": t})
		},
	}
	cmd.Flags().StringVar(&sectionID, "section", "", "Owning section id")
	cmd.Flags().StringVar(&status, "status", "todo", "Initial status (todo|doing|done)")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD or \"YYYY-MM-DD HH:MM\")")
	cmd.Flags().StringArrayVar(&tags, "tag", nil, "Tag (repeatable)")
	return cmd
}

func newTasksListCmd(app *App) *cobra.Command {
	var sectionID string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a section's tasks in display order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if strings.TrimSpace(sectionID) == "" {
				return writeErr(cmd, errors.New("--section is required"))
			}
			if _, ok := db.FindSection(sectionID); !ok {
				return writeErr(cmd, errNotFound("section", sectionID))
			}
			return writeOut(cmd, app, map[string]any{"data": db.SectionTasks(sectionID)})
		},
	}
	cmd.Flags().StringVar(&sectionID, "section", "", "Owning section id")
	return cmd
}

func newTasksShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <task-id>",
		Short: "Show one task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			t, ok := db.FindTask(args[0])
			if !ok {
				return writeErr(cmd, errNotFound("task", args[0]))
			}
			return writeOut(cmd, app, map[string]any{"data": t})
		},
	}
}

func newTasksSetStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set-status <task-id> <status>",
		Short: "Set a task's status (todo|doing|done)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			st, err := store.ParseStatus(args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := mutate.SetTaskStatus(db, args[0], st)
			if err != nil {
				return writeErr(cmd, err)
			}
			if res.Changed {
				if err := s.Save(db); err != nil {
					return writeErr(cmd, err)
				}
				_ = s.AppendEvent("task.status", args[0], res.EventPayload)
			}
			t, _ := db.FindTask(args[0])
			return writeOut(cmd, app, map[string]any{"data": t})
		},
	}
}

func newTasksDescribeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "describe <task-id> <markdown>",
		Short: "Set a task's description (markdown)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := mutate.SetTaskDescription(db, args[0], args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			if res.Changed {
				if err := s.Save(db); err != nil {
					return writeErr(cmd, err)
				}
				_ = s.AppendEvent("task.describe", args[0], nil)
			}
			t, _ := db.FindTask(args[0])
			return writeOut(cmd, app, map[string]any{"data": t})
		},
	}
}
