package statusutil

import (
	"roadmap-cli/internal/model"
)

// Task statuses form a fixed three-state cycle. The helpers here are the one
// place that knows the cycle order, so the TUI toggle and any future surfaces
// stay in agreement.

var cycle = []model.TaskStatus{model.StatusTodo, model.StatusDoing, model.StatusDone}

func Valid(s model.TaskStatus) bool {
	for _, c := range cycle {
		if c == s {
			return true
		}
	}
	return false
}

// Next advances the status one step through todo → doing → done → todo.
// Unknown statuses reset to todo.
func Next(s model.TaskStatus) model.TaskStatus {
	for i, c := range cycle {
		if c == s {
			return cycle[(i+1)%len(cycle)]
		}
	}
	return model.StatusTodo
}

func IsDone(s model.TaskStatus) bool { return s == model.StatusDone }

// Label is the display form used in detail panes and exports.
func Label(s model.TaskStatus) string {
	switch s {
	case model.StatusTodo:
		return "TODO"
	case model.StatusDoing:
		return "DOING"
	case model.StatusDone:
		return "DONE"
	default:
		return string(s)
	}
}
