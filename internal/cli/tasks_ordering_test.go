package cli

import (
	"testing"
)

func TestTasksMove_BeforeEarlierSibling(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	seedBoard(t, dir)

	_, stderr, err := runCLI(t, []string{"--dir", dir, "tasks", "move", "task-c", "--before", "task-b"})
	if err != nil {
		t.Fatalf("tasks move error: %v\nstderr:\n%s", err, string(stderr))
	}
	db := loadBoard(t, dir)
	wantOrder(t, taskOrder(t, db, "sec-s1"), []string{"task-a", "task-c", "task-b"})
}

func TestTasksMove_BeforeLaterSibling(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	seedBoard(t, dir)

	// Moving down: A ends up directly before C.
	_, stderr, err := runCLI(t, []string{"--dir", dir, "tasks", "move", "task-a", "--before", "task-c"})
	if err != nil {
		t.Fatalf("tasks move error: %v\nstderr:\n%s", err, string(stderr))
	}
	db := loadBoard(t, dir)
	wantOrder(t, taskOrder(t, db, "sec-s1"), []string{"task-b", "task-a", "task-c"})
}

func TestTasksMove_AfterEarlierSibling(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	seedBoard(t, dir)

	_, stderr, err := runCLI(t, []string{"--dir", dir, "tasks", "move", "task-c", "--after", "task-a"})
	if err != nil {
		t.Fatalf("tasks move error: %v\nstderr:\n%s", err, string(stderr))
	}
	db := loadBoard(t, dir)
	wantOrder(t, taskOrder(t, db, "sec-s1"), []string{"task-a", "task-c", "task-b"})
}

func TestTasksMove_AfterLaterSibling(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	seedBoard(t, dir)

	// Moving down: A ends up directly after B, not past it.
	_, stderr, err := runCLI(t, []string{"--dir", dir, "tasks", "move", "task-a", "--after", "task-b"})
	if err != nil {
		t.Fatalf("tasks move error: %v\nstderr:\n%s", err, string(stderr))
	}
	db := loadBoard(t, dir)
	wantOrder(t, taskOrder(t, db, "sec-s1"), []string{"task-b", "task-a", "task-c"})
}

func TestTasksMove_AfterLastSibling(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	seedBoard(t, dir)

	_, stderr, err := runCLI(t, []string{"--dir", dir, "tasks", "move", "task-a", "--after", "task-c"})
	if err != nil {
		t.Fatalf("tasks move error: %v\nstderr:\n%s", err, string(stderr))
	}
	db := loadBoard(t, dir)
	wantOrder(t, taskOrder(t, db, "sec-s1"), []string{"task-b", "task-c", "task-a"})
}

func TestTasksMove_AlreadyInPlace_NoChange(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	seedBoard(t, dir)

	// task-a is already directly before task-b.
	_, stderr, err := runCLI(t, []string{"--dir", dir, "tasks", "move", "task-a", "--before", "task-b"})
	if err != nil {
		t.Fatalf("tasks move error: %v\nstderr:\n%s", err, string(stderr))
	}
	db := loadBoard(t, dir)
	wantOrder(t, taskOrder(t, db, "sec-s1"), []string{"task-a", "task-b", "task-c"})
}

func TestTasksMove_CrossSectionBefore(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	seedBoard(t, dir)

	_, stderr, err := runCLI(t, []string{"--dir", dir, "tasks", "move", "task-d", "--before", "task-b"})
	if err != nil {
		t.Fatalf("tasks move error: %v\nstderr:\n%s", err, string(stderr))
	}
	db := loadBoard(t, dir)
	wantOrder(t, taskOrder(t, db, "sec-s1"), []string{"task-a", "task-d", "task-b", "task-c"})
	wantOrder(t, taskOrder(t, db, "sec-s2"), []string{"task-e"})
}

func TestTasksMove_CrossSectionAfterLast(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	seedBoard(t, dir)

	_, stderr, err := runCLI(t, []string{"--dir", dir, "tasks", "move", "task-d", "--after", "task-c"})
	if err != nil {
		t.Fatalf("tasks move error: %v\nstderr:\n%s", err, string(stderr))
	}
	db := loadBoard(t, dir)
	wantOrder(t, taskOrder(t, db, "sec-s1"), []string{"task-a", "task-b", "task-c", "task-d"})
}

func TestTasksMove_ToSectionAppends(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	seedBoard(t, dir)

	_, stderr, err := runCLI(t, []string{"--dir", dir, "tasks", "move", "task-a", "--to-section", "sec-s2"})
	if err != nil {
		t.Fatalf("tasks move error: %v\nstderr:\n%s", err, string(stderr))
	}
	db := loadBoard(t, dir)
	wantOrder(t, taskOrder(t, db, "sec-s1"), []string{"task-b", "task-c"})
	wantOrder(t, taskOrder(t, db, "sec-s2"), []string{"task-d", "task-e", "task-a"})

	task, ok := db.FindTask("task-a")
	if !ok || task.SectionID != "sec-s2" {
		t.Fatalf("expected task-a owned by sec-s2, got %+v", task)
	}
}

func TestTasksMove_ToEmptySection(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	seedBoard(t, dir)

	_, stderr, err := runCLI(t, []string{"--dir", dir, "tasks", "move", "task-b", "--to-section", "sec-s3"})
	if err != nil {
		t.Fatalf("tasks move error: %v\nstderr:\n%s", err, string(stderr))
	}
	db := loadBoard(t, dir)
	wantOrder(t, taskOrder(t, db, "sec-s3"), []string{"task-b"})
	wantOrder(t, taskOrder(t, db, "sec-s1"), []string{"task-a", "task-c"})
}

func TestTasksMove_FlagValidation(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	seedBoard(t, dir)

	cases := [][]string{
		{"--dir", dir, "tasks", "move", "task-a"},
		{"--dir", dir, "tasks", "move", "task-a", "--before", "task-b", "--after", "task-c"},
		{"--dir", dir, "tasks", "move", "task-a", "--before", "task-a"},
		{"--dir", dir, "tasks", "move", "task-a", "--before", "task-nope"},
		{"--dir", dir, "tasks", "move", "task-a", "--to-section", "sec-nope"},
		{"--dir", dir, "tasks", "move", "task-nope", "--before", "task-b"},
	}
	for _, args := range cases {
		if _, _, err := runCLI(t, args); err == nil {
			t.Fatalf("expected error for args %v", args)
		}
	}

	// None of the rejected commands may have touched the board.
	db := loadBoard(t, dir)
	wantOrder(t, taskOrder(t, db, "sec-s1"), []string{"task-a", "task-b", "task-c"})
	wantOrder(t, taskOrder(t, db, "sec-s2"), []string{"task-d", "task-e"})
}

func TestSectionsMove_AfterLast(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	seedBoard(t, dir)

	_, stderr, err := runCLI(t, []string{"--dir", dir, "sections", "move", "sec-s1", "--after", "sec-s2"})
	if err != nil {
		t.Fatalf("sections move error: %v\nstderr:\n%s", err, string(stderr))
	}
	db := loadBoard(t, dir)
	secs := db.BlockSections("blk-x")
	got := []string{secs[0].ID, secs[1].ID}
	wantOrder(t, got, []string{"sec-s2", "sec-s1"})
}

func TestSectionsMove_BeforeFirst(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	seedBoard(t, dir)

	_, stderr, err := runCLI(t, []string{"--dir", dir, "sections", "move", "sec-s2", "--before", "sec-s1"})
	if err != nil {
		t.Fatalf("sections move error: %v\nstderr:\n%s", err, string(stderr))
	}
	db := loadBoard(t, dir)
	secs := db.BlockSections("blk-x")
	got := []string{secs[0].ID, secs[1].ID}
	wantOrder(t, got, []string{"sec-s2", "sec-s1"})
}

func TestSectionsMove_CrossBlockRejected(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	seedBoard(t, dir)

	if _, _, err := runCLI(t, []string{"--dir", dir, "sections", "move", "sec-s1", "--after", "sec-s3"}); err == nil {
		t.Fatal("expected error for cross-block section move")
	}
	db := loadBoard(t, dir)
	secs := db.BlockSections("blk-x")
	got := []string{secs[0].ID, secs[1].ID}
	wantOrder(t, got, []string{"sec-s1", "sec-s2"})
}
