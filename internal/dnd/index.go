package dnd

// Index is a derived view over one snapshot: ordered child-id lists per
// container plus owner lookups. It is rebuilt per drop (cheap: one walk of the
// snapshot) and never mutated in place, so position math is never stale within
// a gesture.
type Index struct {
	sectionTasks  map[string][]string
	blockSections map[string][]string
	taskSection   map[string]string
	sectionBlock  map[string]string
}

func BuildIndex(s Snapshot) *Index {
	ix := &Index{
		sectionTasks:  map[string][]string{},
		blockSections: map[string][]string{},
		taskSection:   map[string]string{},
		sectionBlock:  map[string]string{},
	}
	for _, b := range s.Blocks {
		secIDs := make([]string, 0, len(b.Sections))
		for _, sec := range b.Sections {
			secIDs = append(secIDs, sec.Section.ID)
			ix.sectionBlock[sec.Section.ID] = b.Block.ID

			taskIDs := make([]string, 0, len(sec.Tasks))
			for _, t := range sec.Tasks {
				taskIDs = append(taskIDs, t.ID)
				ix.taskSection[t.ID] = sec.Section.ID
			}
			ix.sectionTasks[sec.Section.ID] = taskIDs
		}
		ix.blockSections[b.Block.ID] = secIDs
	}
	return ix
}

// SectionTasks returns the ordered task ids of a section, exactly as rendered.
func (ix *Index) SectionTasks(sectionID string) []string {
	return ix.sectionTasks[sectionID]
}

// BlockSections returns the ordered section ids of a block.
func (ix *Index) BlockSections(blockID string) []string {
	return ix.blockSections[blockID]
}

// ContainerOf returns the id of the container owning the given item:
// the section id for a task, the block id for a section.
func (ix *Index) ContainerOf(id ItemID) (string, bool) {
	switch id.Kind {
	case KindTask:
		c, ok := ix.taskSection[id.ID]
		return c, ok
	case KindSection:
		c, ok := ix.sectionBlock[id.ID]
		return c, ok
	default:
		return "", false
	}
}

func indexOf(ids []string, id string) int {
	for i, x := range ids {
		if x == id {
			return i
		}
	}
	return -1
}
