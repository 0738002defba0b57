package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"path/filepath"
	"time"

	"roadmap-cli/internal/model"

	_ "modernc.org/sqlite"
)

// SQLiteFileName is the database file inside a store dir. Exposed so the TUI
// can watch it for external changes.
const SQLiteFileName = "roadmap.sqlite"

func (s Store) sqlitePath() string {
	return filepath.Join(filepath.Clean(s.Dir), SQLiteFileName)
}

func (s Store) openSQLite(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.sqlitePath())
	if err != nil {
		return nil, err
	}
	// Pragmas for multi-process local usage. WAL enables one writer + many
	// readers; busy_timeout avoids "database is locked" flakiness.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := s.migrateSQLite(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func (s Store) migrateSQLite(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS blocks (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			sort_order INTEGER NOT NULL,
			archived INTEGER NOT NULL DEFAULT 0,
			created_at_unixms INTEGER NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS sections (
			id TEXT PRIMARY KEY,
			block_id TEXT NOT NULL,
			title TEXT NOT NULL,
			sort_order INTEGER NOT NULL,
			archived INTEGER NOT NULL DEFAULT 0,
			created_at_unixms INTEGER NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS tasks (
			id TEXT PRIMARY KEY,
			section_id TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL,
			sort_order INTEGER NOT NULL,
			due_json TEXT,
			tags_json TEXT,
			archived INTEGER NOT NULL DEFAULT 0,
			created_at_unixms INTEGER NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS events (
			id TEXT PRIMARY KEY,
			ts_unixms INTEGER NOT NULL,
			type TEXT NOT NULL,
			entity_id TEXT NOT NULL,
			payload_json TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sections_block ON sections(block_id);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_section ON tasks(section_id);`,
		`CREATE INDEX IF NOT EXISTS idx_events_entity ON events(entity_id, ts_unixms);`,
	}
	for _, q := range stmts {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

func (s Store) LoadSQLite(ctx context.Context) (*DB, error) {
	sq, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer sq.Close()

	out := &DB{Version: 1}

	rows, err := sq.QueryContext(ctx, `SELECT id, title, sort_order, archived, created_at_unixms, updated_at_unixms FROM blocks`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var b model.Block
		var archived int
		var created, updated int64
		if err := rows.Scan(&b.ID, &b.Title, &b.SortOrder, &archived, &created, &updated); err != nil {
			rows.Close()
			return nil, err
		}
		b.Archived = archived != 0
		b.CreatedAt = time.UnixMilli(created).UTC()
		b.UpdatedAt = time.UnixMilli(updated).UTC()
		out.Blocks = append(out.Blocks, b)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}

	rows, err = sq.QueryContext(ctx, `SELECT id, block_id, title, sort_order, archived, created_at_unixms, updated_at_unixms FROM sections`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var sec model.Section
		var archived int
		var created, updated int64
		if err := rows.Scan(&sec.ID, &sec.BlockID, &sec.Title, &sec.SortOrder, &archived, &created, &updated); err != nil {
			rows.Close()
			return nil, err
		}
		sec.Archived = archived != 0
		sec.CreatedAt = time.UnixMilli(created).UTC()
		sec.UpdatedAt = time.UnixMilli(updated).UTC()
		out.Sections = append(out.Sections, sec)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}

	rows, err = sq.QueryContext(ctx, `SELECT id, section_id, title, description, status, sort_order, due_json, tags_json, archived, created_at_unixms, updated_at_unixms FROM tasks`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var t model.Task
		var status string
		var dueJSON, tagsJSON sql.NullString
		var archived int
		var created, updated int64
		if err := rows.Scan(&t.ID, &t.SectionID, &t.Title, &t.Description, &status, &t.SortOrder, &dueJSON, &tagsJSON, &archived, &created, &updated); err != nil {
			rows.Close()
			return nil, err
		}
		t.Status = model.TaskStatus(status)
		t.Archived = archived != 0
		t.CreatedAt = time.UnixMilli(created).UTC()
		t.UpdatedAt = time.UnixMilli(updated).UTC()
		if dueJSON.Valid && dueJSON.String != "" {
			var due model.DateTime
			if err := json.Unmarshal([]byte(dueJSON.String), &due); err == nil {
				t.Due = &due
			}
		}
		if tagsJSON.Valid && tagsJSON.String != "" {
			_ = json.Unmarshal([]byte(tagsJSON.String), &t.Tags)
		}
		out.Tasks = append(out.Tasks, t)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	return out, nil
}

// SaveSQLite persists the whole document in one transaction. The document is
// small (a local board), so a full rewrite keeps the write path simple and
// leaves no partially-applied reorders behind.
func (s Store) SaveSQLite(ctx context.Context, db *DB) error {
	sq, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer sq.Close()

	tx, err := sq.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, q := range []string{`DELETE FROM blocks`, `DELETE FROM sections`, `DELETE FROM tasks`} {
		if _, err := tx.ExecContext(ctx, q); err != nil {
			return err
		}
	}

	for _, b := range db.Blocks {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO blocks (id, title, sort_order, archived, created_at_unixms, updated_at_unixms) VALUES (?, ?, ?, ?, ?, ?)`,
			b.ID, b.Title, b.SortOrder, boolToInt(b.Archived), b.CreatedAt.UnixMilli(), b.UpdatedAt.UnixMilli(),
		); err != nil {
			return err
		}
	}
	for _, sec := range db.Sections {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO sections (id, block_id, title, sort_order, archived, created_at_unixms, updated_at_unixms) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			sec.ID, sec.BlockID, sec.Title, sec.SortOrder, boolToInt(sec.Archived), sec.CreatedAt.UnixMilli(), sec.UpdatedAt.UnixMilli(),
		); err != nil {
			return err
		}
	}
	for _, t := range db.Tasks {
		var dueJSON, tagsJSON any
		if t.Due != nil {
			b, err := json.Marshal(t.Due)
			if err != nil {
				return err
			}
			dueJSON = string(b)
		}
		if len(t.Tags) > 0 {
			b, err := json.Marshal(t.Tags)
			if err != nil {
				return err
			}
			tagsJSON = string(b)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO tasks (id, section_id, title, description, status, sort_order, due_json, tags_json, archived, created_at_unixms, updated_at_unixms) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			t.ID, t.SectionID, t.Title, t.Description, string(t.Status), t.SortOrder, dueJSON, tagsJSON, boolToInt(t.Archived), t.CreatedAt.UnixMilli(), t.UpdatedAt.UnixMilli(),
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s Store) appendEventSQLite(ctx context.Context, typ, entityID string, payload any) error {
	sq, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer sq.Close()

	id, err := newRandomID("evt")
	if err != nil {
		return err
	}
	payloadJSON := "{}"
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		payloadJSON = string(b)
	}
	_, err = sq.ExecContext(ctx,
		`INSERT INTO events (id, ts_unixms, type, entity_id, payload_json) VALUES (?, ?, ?, ?, ?)`,
		id, time.Now().UTC().UnixMilli(), typ, entityID, payloadJSON,
	)
	return err
}

// ReadEvents returns events oldest-first. If limit > 0, the most recent
// `limit` events are returned (still oldest-first within the window).
func ReadEvents(dir string, limit int) ([]model.Event, error) {
	s := Store{Dir: dir}
	ctx := context.Background()
	sq, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer sq.Close()

	// rowid preserves insertion order even for same-millisecond appends.
	q := `SELECT id, ts_unixms, type, entity_id, payload_json FROM events ORDER BY rowid ASC`
	var rows *sql.Rows
	if limit > 0 {
		q = `SELECT id, ts_unixms, type, entity_id, payload_json FROM (
			SELECT rowid AS rid, id, ts_unixms, type, entity_id, payload_json FROM events ORDER BY rowid DESC LIMIT ?
		) ORDER BY rid ASC`
		rows, err = sq.QueryContext(ctx, q, limit)
	} else {
		rows, err = sq.QueryContext(ctx, q)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Event{}
	for rows.Next() {
		var ev model.Event
		var ts int64
		var payloadJSON string
		if err := rows.Scan(&ev.ID, &ts, &ev.Type, &ev.EntityID, &payloadJSON); err != nil {
			return nil, err
		}
		ev.TS = time.UnixMilli(ts).UTC()
		var payload any
		if err := json.Unmarshal([]byte(payloadJSON), &payload); err == nil {
			ev.Payload = payload
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
