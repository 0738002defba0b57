package mutate

import (
	"errors"
	"strings"
	"time"

	"roadmap-cli/internal/model"
	"roadmap-cli/internal/statusutil"
	"roadmap-cli/internal/store"
)

var ErrInvalidStatus = errors.New("invalid status")

type SetStatusResult struct {
	Task         *model.Task
	Changed      bool
	EventPayload map[string]any
}

// SetTaskStatus sets task.Status. Callers are responsible for saving db and
// appending the task.status event.
func SetTaskStatus(db *store.DB, taskID string, status model.TaskStatus) (SetStatusResult, error) {
	taskID = strings.TrimSpace(taskID)
	t, ok := db.FindTask(taskID)
	if !ok {
		return SetStatusResult{}, NotFoundError{Kind: "task", ID: taskID}
	}
	if !statusutil.Valid(status) {
		return SetStatusResult{}, ErrInvalidStatus
	}
	if t.Status == status {
		return SetStatusResult{Task: t, Changed: false}, nil
	}

	prev := t.Status
	t.Status = status
	t.UpdatedAt = time.Now().UTC()
	return SetStatusResult{
		Task:    t,
		Changed: true,
		EventPayload: map[string]any{
			"from": string(prev),
			"to":   string(status),
		},
	}, nil
}
