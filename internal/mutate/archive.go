package mutate

import (
	"strings"
	"time"

	"roadmap-cli/internal/store"
)

type ArchiveResult struct {
	Changed      bool
	EventPayload map[string]any
}

// SetBlockArchived hides or restores a block (and, through the ordered
// accessors, everything under it). Callers save db and append the event.
func SetBlockArchived(db *store.DB, blockID string, archived bool) (ArchiveResult, error) {
	blockID = strings.TrimSpace(blockID)
	b, ok := db.FindBlock(blockID)
	if !ok {
		return ArchiveResult{}, NotFoundError{Kind: "block", ID: blockID}
	}
	if b.Archived == archived {
		return ArchiveResult{Changed: false}, nil
	}
	b.Archived = archived
	b.UpdatedAt = time.Now().UTC()
	return ArchiveResult{Changed: true, EventPayload: map[string]any{"archived": archived}}, nil
}

func SetSectionArchived(db *store.DB, sectionID string, archived bool) (ArchiveResult, error) {
	sectionID = strings.TrimSpace(sectionID)
	sec, ok := db.FindSection(sectionID)
	if !ok {
		return ArchiveResult{}, NotFoundError{Kind: "section", ID: sectionID}
	}
	if sec.Archived == archived {
		return ArchiveResult{Changed: false}, nil
	}
	sec.Archived = archived
	sec.UpdatedAt = time.Now().UTC()
	return ArchiveResult{Changed: true, EventPayload: map[string]any{"archived": archived}}, nil
}

func SetTaskArchived(db *store.DB, taskID string, archived bool) (ArchiveResult, error) {
	taskID = strings.TrimSpace(taskID)
	t, ok := db.FindTask(taskID)
	if !ok {
		return ArchiveResult{}, NotFoundError{Kind: "task", ID: taskID}
	}
	if t.Archived == archived {
		return ArchiveResult{Changed: false}, nil
	}
	t.Archived = archived
	t.UpdatedAt = time.Now().UTC()
	return ArchiveResult{Changed: true, EventPayload: map[string]any{"archived": archived}}, nil
}
