package model

import (
	"fmt"
	"strings"
	"time"
)

type TaskStatus string

const (
	StatusTodo  TaskStatus = "todo"
	StatusDoing TaskStatus = "doing"
	StatusDone  TaskStatus = "done"
)

// Block is the top-level grouping of sections (e.g. a roadmap phase).
type Block struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	SortOrder int       `json:"sortOrder"`
	Archived  bool      `json:"archived"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Section groups tasks within a block. SortOrder defines its position among
// the block's sections.
type Section struct {
	ID        string    `json:"id"`
	BlockID   string    `json:"blockId"`
	Title     string    `json:"title"`
	SortOrder int       `json:"sortOrder"`
	Archived  bool      `json:"archived"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Task is the leaf work item. A task belongs to exactly one section at all
// times; SortOrder defines its position among that section's tasks.
type Task struct {
	ID          string     `json:"id"`
	SectionID   string     `json:"sectionId"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      TaskStatus `json:"status"`
	SortOrder   int        `json:"sortOrder"`
	Due         *DateTime  `json:"due,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	Archived    bool       `json:"archived"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// DateTime represents an optional time attached to a date.
// If Time is nil, the value is date-only (no time semantics).
type DateTime struct {
	Date string  `json:"date"`           // YYYY-MM-DD
	Time *string `json:"time,omitempty"` // HH:MM
}

// ParseDateTime parses "YYYY-MM-DD" or "YYYY-MM-DD HH:MM". Empty input means
// no due value.
func ParseDateTime(s string) (*DateTime, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse("2006-01-02 15:04", s); err == nil {
		hm := t.Format("15:04")
		return &DateTime{Date: t.Format("2006-01-02"), Time: &hm}, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return &DateTime{Date: t.Format("2006-01-02")}, nil
	}
	return nil, fmt.Errorf("invalid date: %q (expected YYYY-MM-DD or YYYY-MM-DD HH:MM)", s)
}

// String renders the value in its input form.
func (d DateTime) String() string {
	if d.Time != nil {
		return d.Date + " " + *d.Time
	}
	return d.Date
}

type Event struct {
	ID       string    `json:"id"`
	TS       time.Time `json:"ts"`
	Type     string    `json:"type"`
	EntityID string    `json:"entityId"`
	Payload  any       `json:"payload"`
}
