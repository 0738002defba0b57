package dnd

import (
	"reflect"
	"testing"

	"roadmap-cli/internal/model"
)

// testSnapshot builds the fixture used across the planner tests:
//
//	Block X: S1 [A B C], S2 [D E]
//	Block Y: S3 [F]
func testSnapshot() Snapshot {
	return Snapshot{Blocks: []BlockNode{
		testBlock("X",
			testSection("S1", "X", "A", "B", "C"),
			testSection("S2", "X", "D", "E"),
		),
		testBlock("Y",
			testSection("S3", "Y", "F"),
		),
	}}
}

func testBlock(id string, secs ...SectionNode) BlockNode {
	return BlockNode{Block: model.Block{ID: id, Title: id}, Sections: secs}
}

func testSection(id, blockID string, taskIDs ...string) SectionNode {
	n := SectionNode{Section: model.Section{ID: id, BlockID: blockID, Title: id}}
	for _, t := range taskIDs {
		n.Tasks = append(n.Tasks, model.Task{ID: t, SectionID: id, Title: t})
	}
	return n
}

func TestPlanDrop_TaskOntoTask_SameSection(t *testing.T) {
	got := PlanDrop(testSnapshot(), TaskID("B"), TaskID("C"))
	want := TaskReorder{SectionID: "S1", TaskIDs: []string{"A", "C", "B"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

func TestPlanDrop_TaskOntoTask_InsertBefore(t *testing.T) {
	// Dragging C onto A lands C at A's current index.
	got := PlanDrop(testSnapshot(), TaskID("C"), TaskID("A"))
	want := TaskReorder{SectionID: "S1", TaskIDs: []string{"C", "A", "B"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

func TestPlanDrop_TaskOntoSectionHeader_Appends(t *testing.T) {
	got := PlanDrop(testSnapshot(), TaskID("A"), SectionID("S2"))
	want := TaskMove{TaskID: "A", SectionID: "S2", Index: 2}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

func TestPlanDrop_TaskOntoOwnSectionHeader_ReordersToEnd(t *testing.T) {
	got := PlanDrop(testSnapshot(), TaskID("A"), SectionID("S1"))
	want := TaskReorder{SectionID: "S1", TaskIDs: []string{"B", "C", "A"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

func TestPlanDrop_TaskOntoForeignTask_Moves(t *testing.T) {
	got := PlanDrop(testSnapshot(), TaskID("A"), TaskID("E"))
	want := TaskMove{TaskID: "A", SectionID: "S2", Index: 1}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

func TestPlanDrop_SelfDrop_IsNoOp(t *testing.T) {
	snap := testSnapshot()
	for _, id := range []ItemID{TaskID("A"), TaskID("E"), SectionID("S1"), SectionID("S3")} {
		if _, ok := PlanDrop(snap, id, id).(NoOp); !ok {
			t.Fatalf("self-drop of %v: expected NoOp", id)
		}
	}
}

func TestPlanDrop_NilTarget_IsNoOp(t *testing.T) {
	if _, ok := PlanDrop(testSnapshot(), TaskID("A"), ItemID{}).(NoOp); !ok {
		t.Fatalf("expected NoOp for drop outside any target")
	}
}

func TestPlanDrop_SectionOntoSection_SameBlock(t *testing.T) {
	snap := Snapshot{Blocks: []BlockNode{
		testBlock("X",
			testSection("S1", "X"),
			testSection("S2", "X"),
			testSection("S3", "X"),
		),
	}}
	got := PlanDrop(snap, SectionID("S3"), SectionID("S1"))
	want := SectionReorder{BlockID: "X", SectionIDs: []string{"S3", "S1", "S2"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

func TestPlanDrop_SectionAcrossBlocks_IsNoOp(t *testing.T) {
	if _, ok := PlanDrop(testSnapshot(), SectionID("S1"), SectionID("S3")).(NoOp); !ok {
		t.Fatalf("cross-block section move must plan to nothing")
	}
}

func TestPlanDrop_SectionOntoTask_IsNoOp(t *testing.T) {
	if _, ok := PlanDrop(testSnapshot(), SectionID("S1"), TaskID("D")).(NoOp); !ok {
		t.Fatalf("section dropped on a task must plan to nothing")
	}
}

func TestPlanDrop_StaleActiveID_IsNoOp(t *testing.T) {
	if _, ok := PlanDrop(testSnapshot(), TaskID("gone"), TaskID("A")).(NoOp); !ok {
		t.Fatalf("unresolvable active id must abort the gesture")
	}
}

func TestPlanDrop_StaleOverID_IsNoOp(t *testing.T) {
	if _, ok := PlanDrop(testSnapshot(), TaskID("A"), TaskID("gone")).(NoOp); !ok {
		t.Fatalf("unresolvable over id must abort the gesture")
	}
	if _, ok := PlanDrop(testSnapshot(), TaskID("A"), SectionID("gone")).(NoOp); !ok {
		t.Fatalf("unresolvable over section must abort the gesture")
	}
}

func TestPlanDrop_ReorderPreservesUntouchedOrder(t *testing.T) {
	snap := Snapshot{Blocks: []BlockNode{
		testBlock("X", testSection("S1", "X", "a", "b", "c", "d", "e")),
	}}
	// Move every task onto every other task; the remaining four must keep
	// their relative order in the emitted list.
	ids := []string{"a", "b", "c", "d", "e"}
	for _, active := range ids {
		for _, over := range ids {
			if active == over {
				continue
			}
			plan, ok := PlanDrop(snap, TaskID(active), TaskID(over)).(TaskReorder)
			if !ok {
				t.Fatalf("drag %s onto %s: expected TaskReorder", active, over)
			}
			if len(plan.TaskIDs) != len(ids) {
				t.Fatalf("drag %s onto %s: emitted %v", active, over, plan.TaskIDs)
			}
			var rest []string
			for _, id := range plan.TaskIDs {
				if id != active {
					rest = append(rest, id)
				}
			}
			var want []string
			for _, id := range ids {
				if id != active {
					want = append(want, id)
				}
			}
			if !reflect.DeepEqual(rest, want) {
				t.Fatalf("drag %s onto %s: untouched order changed: %v", active, over, plan.TaskIDs)
			}
		}
	}
}

func TestPlanDrop_RoundTrip(t *testing.T) {
	// Applying the emitted ordered list and re-indexing reproduces exactly
	// the order the user dropped into.
	snap := testSnapshot()
	plan, ok := PlanDrop(snap, TaskID("B"), TaskID("C")).(TaskReorder)
	if !ok {
		t.Fatalf("expected TaskReorder")
	}

	applied := Snapshot{Blocks: []BlockNode{
		testBlock("X",
			testSection("S1", "X", plan.TaskIDs...),
			testSection("S2", "X", "D", "E"),
		),
	}}
	ix := BuildIndex(applied)
	if got, want := ix.SectionTasks("S1"), []string{"A", "C", "B"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("rebuilt index order = %v, want %v", got, want)
	}
}

func TestMoveID_MissingID(t *testing.T) {
	if got := moveID([]string{"a", "b"}, "x", 0); got != nil {
		t.Fatalf("expected nil for missing id, got %v", got)
	}
}

func TestMoveID_ClampsIndex(t *testing.T) {
	if got, want := moveID([]string{"a", "b", "c"}, "a", 99), []string{"b", "c", "a"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if got, want := moveID([]string{"a", "b", "c"}, "c", -5), []string{"c", "a", "b"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
