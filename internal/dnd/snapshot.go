package dnd

import "roadmap-cli/internal/model"

// Snapshot is the immutable hierarchy view the engine reads. The caller owns
// it and rebuilds it after every commit; the engine never mutates it and never
// retains one across gesture boundaries.
type Snapshot struct {
	Blocks []BlockNode
}

type BlockNode struct {
	Block    model.Block
	Sections []SectionNode
}

type SectionNode struct {
	Section model.Section
	Tasks   []model.Task
}

// FindTask returns the task and its owning section id. Not-found is not an
// error: it signals a stale identifier (the snapshot changed concurrently) and
// the pending operation should be abandoned.
func (s Snapshot) FindTask(id string) (model.Task, string, bool) {
	for _, b := range s.Blocks {
		for _, sec := range b.Sections {
			for _, t := range sec.Tasks {
				if t.ID == id {
					return t, sec.Section.ID, true
				}
			}
		}
	}
	return model.Task{}, "", false
}

// FindSection returns the section and its owning block id.
func (s Snapshot) FindSection(id string) (model.Section, string, bool) {
	for _, b := range s.Blocks {
		for _, sec := range b.Sections {
			if sec.Section.ID == id {
				return sec.Section, b.Block.ID, true
			}
		}
	}
	return model.Section{}, "", false
}

// Contains reports whether the identified item exists in the snapshot.
func (s Snapshot) Contains(id ItemID) bool {
	if id.IsZero() {
		return false
	}
	switch id.Kind {
	case KindTask:
		_, _, ok := s.FindTask(id.ID)
		return ok
	case KindSection:
		_, _, ok := s.FindSection(id.ID)
		return ok
	default:
		return false
	}
}
