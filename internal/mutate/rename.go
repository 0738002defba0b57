package mutate

import (
	"errors"
	"strings"
	"time"

	"roadmap-cli/internal/store"
)

var ErrEmptyTitle = errors.New("title must not be empty")

type RenameResult struct {
	Changed      bool
	EventPayload map[string]any
}

func RenameBlock(db *store.DB, blockID, title string) (RenameResult, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return RenameResult{}, ErrEmptyTitle
	}
	b, ok := db.FindBlock(strings.TrimSpace(blockID))
	if !ok {
		return RenameResult{}, NotFoundError{Kind: "block", ID: blockID}
	}
	if b.Title == title {
		return RenameResult{Changed: false}, nil
	}
	b.Title = title
	b.UpdatedAt = time.Now().UTC()
	return RenameResult{Changed: true, EventPayload: map[string]any{"title": title}}, nil
}

func RenameSection(db *store.DB, sectionID, title string) (RenameResult, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return RenameResult{}, ErrEmptyTitle
	}
	sec, ok := db.FindSection(strings.TrimSpace(sectionID))
	if !ok {
		return RenameResult{}, NotFoundError{Kind: "section", ID: sectionID}
	}
	if sec.Title == title {
		return RenameResult{Changed: false}, nil
	}
	sec.Title = title
	sec.UpdatedAt = time.Now().UTC()
	return RenameResult{Changed: true, EventPayload: map[string]any{"title": title}}, nil
}

// SetTaskDescription replaces the task's markdown description. An empty string
// clears it.
func SetTaskDescription(db *store.DB, taskID, description string) (RenameResult, error) {
	t, ok := db.FindTask(strings.TrimSpace(taskID))
	if !ok {
		return RenameResult{}, NotFoundError{Kind: "task", ID: taskID}
	}
	if t.Description == description {
		return RenameResult{Changed: false}, nil
	}
	t.Description = description
	t.UpdatedAt = time.Now().UTC()
	return RenameResult{Changed: true}, nil
}
