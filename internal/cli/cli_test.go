package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"roadmap-cli/internal/model"
	"roadmap-cli/internal/store"
)

func runCLI(t *testing.T, args []string) (stdout []byte, stderr []byte, err error) {
	t.Helper()

	cmd := NewRootCmd()

	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)

	e := cmd.Execute()
	return outBuf.Bytes(), errBuf.Bytes(), e
}

// seedBoard writes a two-block board:
//
//	blk-x: sec-s1 [task-a task-b task-c], sec-s2 [task-d task-e]
//	blk-y: sec-s3 []
func seedBoard(t *testing.T, dir string) {
	t.Helper()
	now := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

	db := &store.DB{
		Version: 1,
		Blocks: []model.Block{
			{ID: "blk-x", Title: "Launch", SortOrder: 0, CreatedAt: now, UpdatedAt: now},
			{ID: "blk-y", Title: "Later", SortOrder: 1, CreatedAt: now, UpdatedAt: now},
		},
		Sections: []model.Section{
			{ID: "sec-s1", BlockID: "blk-x", Title: "Backlog", SortOrder: 0, CreatedAt: now, UpdatedAt: now},
			{ID: "sec-s2", BlockID: "blk-x", Title: "Doing", SortOrder: 1, CreatedAt: now, UpdatedAt: now},
			{ID: "sec-s3", BlockID: "blk-y", Title: "Ideas", SortOrder: 0, CreatedAt: now, UpdatedAt: now},
		},
		Tasks: []model.Task{
			{ID: "task-a", SectionID: "sec-s1", Title: "A", Status: model.StatusTodo, SortOrder: 0, CreatedAt: now, UpdatedAt: now},
			{ID: "task-b", SectionID: "sec-s1", Title: "B", Status: model.StatusTodo, SortOrder: 1, CreatedAt: now, UpdatedAt: now},
			{ID: "task-c", SectionID: "sec-s1", Title: "C", Status: model.StatusTodo, SortOrder: 2, CreatedAt: now, UpdatedAt: now},
			{ID: "task-d", SectionID: "sec-s2", Title: "D", Status: model.StatusDoing, SortOrder: 0, CreatedAt: now, UpdatedAt: now},
			{ID: "task-e", SectionID: "sec-s2", Title: "E", Status: model.StatusTodo, SortOrder: 1, CreatedAt: now, UpdatedAt: now},
		},
	}
	if err := (store.Store{Dir: dir}).Save(db); err != nil {
		t.Fatalf("seed store: %v", err)
	}
}

func loadBoard(t *testing.T, dir string) *store.DB {
	t.Helper()
	db, err := (store.Store{Dir: dir}).Load()
	if err != nil {
		t.Fatalf("load db: %v", err)
	}
	return db
}

func taskOrder(t *testing.T, db *store.DB, sectionID string) []string {
	t.Helper()
	tasks := db.SectionTasks(sectionID)
	ids := make([]string, 0, len(tasks))
	for _, task := range tasks {
		ids = append(ids, task.ID)
	}
	return ids
}

func wantOrder(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected order %v; got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v; got %v", want, got)
		}
	}
}

func TestInit_SeedsStarterBlock(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	if _, stderr, err := runCLI(t, []string{"--dir", dir, "init", "--title", "My roadmap"}); err != nil {
		t.Fatalf("init error: %v\nstderr:\n%s", err, string(stderr))
	}

	db := loadBoard(t, dir)
	blocks := db.BlockList()
	if len(blocks) != 1 || blocks[0].Title != "My roadmap" {
		t.Fatalf("expected one starter block, got %+v", blocks)
	}
	secs := db.BlockSections(blocks[0].ID)
	if len(secs) != 3 {
		t.Fatalf("expected 3 starter sections, got %d", len(secs))
	}
	for i, want := range []string{"Backlog", "In progress", "Done"} {
		if secs[i].Title != want || secs[i].SortOrder != i {
			t.Fatalf("section %d: got %q/%d, want %q/%d", i, secs[i].Title, secs[i].SortOrder, want, i)
		}
	}
}

func TestInit_IsIdempotent(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	for i := 0; i < 2; i++ {
		if _, stderr, err := runCLI(t, []string{"--dir", dir, "init"}); err != nil {
			t.Fatalf("init run %d error: %v\nstderr:\n%s", i, err, string(stderr))
		}
	}
	db := loadBoard(t, dir)
	if len(db.Blocks) != 1 {
		t.Fatalf("expected 1 block after repeated init, got %d", len(db.Blocks))
	}
}

func TestTasksAdd_AppendsAtEnd(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	seedBoard(t, dir)

	stdout, stderr, err := runCLI(t, []string{"--dir", dir, "tasks", "add", "Ship it", "--section", "sec-s1", "--due", "2026-02-01", "--tag", "launch"})
	if err != nil {
		t.Fatalf("tasks add error: %v\nstderr:\n%s", err, string(stderr))
	}

	var out struct {
		Data model.Task `json:"data"`
	}
	if err := json.Unmarshal(stdout, &out); err != nil {
		t.Fatalf("unmarshal output: %v\n%s", err, string(stdout))
	}
	if out.Data.Title != "Ship it" || out.Data.SortOrder != 3 {
		t.Fatalf("unexpected created task: %+v", out.Data)
	}
	if out.Data.Due == nil || out.Data.Due.Date != "2026-02-01" || out.Data.Due.Time != nil {
		t.Fatalf("unexpected due: %+v", out.Data.Due)
	}

	db := loadBoard(t, dir)
	order := taskOrder(t, db, "sec-s1")
	wantOrder(t, order, []string{"task-a", "task-b", "task-c", out.Data.ID})
}

func TestTasksAdd_RejectsInvalidDue(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	seedBoard(t, dir)

	if _, _, err := runCLI(t, []string{"--dir", dir, "tasks", "add", "X", "--section", "sec-s1", "--due", "tomorrow"}); err == nil {
		t.Fatal("expected error for invalid due date")
	}
}

func TestTasksSetStatus_RoundTrips(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	seedBoard(t, dir)

	if _, stderr, err := runCLI(t, []string{"--dir", dir, "tasks", "set-status", "task-a", "done"}); err != nil {
		t.Fatalf("set-status error: %v\nstderr:\n%s", err, string(stderr))
	}
	db := loadBoard(t, dir)
	task, ok := db.FindTask("task-a")
	if !ok || task.Status != model.StatusDone {
		t.Fatalf("expected task-a done, got %+v", task)
	}

	if _, _, err := runCLI(t, []string{"--dir", dir, "tasks", "set-status", "task-a", "blocked"}); err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestTasksShow_UnknownID(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	seedBoard(t, dir)

	if _, _, err := runCLI(t, []string{"--dir", dir, "tasks", "show", "task-nope"}); err == nil {
		t.Fatal("expected error for unknown task id")
	}
}

func TestSectionsArchive_HidesFromListing(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	seedBoard(t, dir)

	if _, stderr, err := runCLI(t, []string{"--dir", dir, "sections", "archive", "sec-s2"}); err != nil {
		t.Fatalf("sections archive error: %v\nstderr:\n%s", err, string(stderr))
	}
	db := loadBoard(t, dir)
	secs := db.BlockSections("blk-x")
	if len(secs) != 1 || secs[0].ID != "sec-s1" {
		t.Fatalf("expected only sec-s1 visible, got %+v", secs)
	}
}

func TestExport_RendersMarkdownToStdout(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	seedBoard(t, dir)

	stdout, stderr, err := runCLI(t, []string{"--dir", dir, "export"})
	if err != nil {
		t.Fatalf("export error: %v\nstderr:\n%s", err, string(stderr))
	}
	out := string(stdout)
	for _, want := range []string{"# Launch", "## Backlog", "- [ ] A"} {
		if !strings.Contains(out, want) {
			t.Fatalf("export missing %q:\n%s", want, out)
		}
	}
}

func TestDocs_TopicAndListing(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	stdout, stderr, err := runCLI(t, []string{"--dir", dir, "docs", "reordering"})
	if err != nil {
		t.Fatalf("docs error: %v\nstderr:\n%s", err, string(stderr))
	}
	if !strings.Contains(string(stdout), "sortOrder") {
		t.Fatalf("unexpected docs output:\n%s", string(stdout))
	}
	if _, _, err := runCLI(t, []string{"--dir", dir, "docs", "nope"}); err == nil {
		t.Fatal("expected error for unknown topic")
	}
}

func TestOutputEnvelope_IsDataWrapped(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	seedBoard(t, dir)

	stdout, stderr, err := runCLI(t, []string{"--dir", dir, "blocks", "list"})
	if err != nil {
		t.Fatalf("blocks list error: %v\nstderr:\n%s", err, string(stderr))
	}
	var out struct {
		Data []model.Block `json:"data"`
	}
	if err := json.Unmarshal(stdout, &out); err != nil {
		t.Fatalf("unmarshal output: %v\n%s", err, string(stdout))
	}
	if len(out.Data) != 2 || out.Data[0].ID != "blk-x" || out.Data[1].ID != "blk-y" {
		t.Fatalf("unexpected block list: %+v", out.Data)
	}
}
