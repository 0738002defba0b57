package dnd

// Callbacks are the externally supplied commit handlers. Exactly one is
// invoked per successfully planned gesture. The engine treats commit as
// fire-and-forget: failure handling and optimistic-UI rollback belong to the
// caller, which holds the authoritative state.
type Callbacks struct {
	OnTaskMove       func(taskID, sectionID string, index int)
	OnTaskReorder    func(sectionID string, taskIDs []string)
	OnSectionReorder func(blockID string, sectionIDs []string)
}

// Dispatch routes a plan to its callback. Total over the closed plan set;
// NoOp and nil callbacks invoke nothing.
func Dispatch(cb Callbacks, p Plan) {
	switch p := p.(type) {
	case TaskReorder:
		if cb.OnTaskReorder != nil {
			cb.OnTaskReorder(p.SectionID, p.TaskIDs)
		}
	case TaskMove:
		if cb.OnTaskMove != nil {
			cb.OnTaskMove(p.TaskID, p.SectionID, p.Index)
		}
	case SectionReorder:
		if cb.OnSectionReorder != nil {
			cb.OnSectionReorder(p.BlockID, p.SectionIDs)
		}
	case NoOp, nil:
	}
}
