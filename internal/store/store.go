package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"roadmap-cli/internal/model"
)

// DB is the full in-memory document: every block, section, and task of one
// store dir. Mutations happen on the document; Save persists it wholesale.
type DB struct {
	Version  int             `json:"version"`
	Blocks   []model.Block   `json:"blocks"`
	Sections []model.Section `json:"sections"`
	Tasks    []model.Task    `json:"tasks"`
}

type Store struct {
	Dir string
}

const storeDirName = ".roadmap"

// DiscoverDir walks upward from start looking for a .roadmap dir, so commands
// work from anywhere inside a project tree.
func DiscoverDir(start string) (string, bool) {
	dir := start
	for {
		candidate := filepath.Join(dir, storeDirName)
		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func DefaultDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if found, ok := DiscoverDir(cwd); ok {
		return found, nil
	}
	return filepath.Join(cwd, storeDirName), nil
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) Load() (*DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	return s.LoadSQLite(context.Background())
}

func (s Store) Save(db *DB) error {
	if err := s.Ensure(); err != nil {
		return err
	}
	return s.SaveSQLite(context.Background(), db)
}

func (s Store) AppendEvent(typ, entityID string, payload any) error {
	return s.appendEventSQLite(context.Background(), typ, entityID, payload)
}

func (db *DB) FindBlock(id string) (*model.Block, bool) {
	for i := range db.Blocks {
		if db.Blocks[i].ID == id {
			return &db.Blocks[i], true
		}
	}
	return nil, false
}

func (db *DB) FindSection(id string) (*model.Section, bool) {
	for i := range db.Sections {
		if db.Sections[i].ID == id {
			return &db.Sections[i], true
		}
	}
	return nil, false
}

func (db *DB) FindTask(id string) (*model.Task, bool) {
	for i := range db.Tasks {
		if db.Tasks[i].ID == id {
			return &db.Tasks[i], true
		}
	}
	return nil, false
}

// BlockList returns non-archived blocks in display order.
func (db *DB) BlockList() []model.Block {
	out := make([]model.Block, 0, len(db.Blocks))
	for _, b := range db.Blocks {
		if b.Archived {
			continue
		}
		out = append(out, b)
	}
	sort.SliceStable(out, func(i, j int) bool { return compareOrder(out[i].SortOrder, out[i].ID, out[j].SortOrder, out[j].ID) < 0 })
	return out
}

// BlockSections returns a block's non-archived sections in display order.
func (db *DB) BlockSections(blockID string) []model.Section {
	out := make([]model.Section, 0, 8)
	for _, s := range db.Sections {
		if s.BlockID != blockID || s.Archived {
			continue
		}
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool { return compareOrder(out[i].SortOrder, out[i].ID, out[j].SortOrder, out[j].ID) < 0 })
	return out
}

// SectionTasks returns a section's non-archived tasks in display order.
func (db *DB) SectionTasks(sectionID string) []model.Task {
	out := make([]model.Task, 0, 16)
	for _, t := range db.Tasks {
		if t.SectionID != sectionID || t.Archived {
			continue
		}
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool { return compareOrder(out[i].SortOrder, out[i].ID, out[j].SortOrder, out[j].ID) < 0 })
	return out
}

// compareOrder sorts by sortOrder, then ID so duplicate orders (which can
// appear after interrupted writes) still render deterministically.
func compareOrder(oa int, ida string, ob int, idb string) int {
	if oa != ob {
		if oa < ob {
			return -1
		}
		return 1
	}
	if ida < idb {
		return -1
	}
	if ida > idb {
		return 1
	}
	return 0
}

func ParseStatus(s string) (model.TaskStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "todo":
		return model.StatusTodo, nil
	case "doing":
		return model.StatusDoing, nil
	case "done":
		return model.StatusDone, nil
	default:
		return "", fmt.Errorf("invalid status: %q (expected todo|doing|done)", s)
	}
}
