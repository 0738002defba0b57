package tui

import (
	"strconv"
	"strings"
	"time"

	"roadmap-cli/internal/dnd"
	"roadmap-cli/internal/model"
	"roadmap-cli/internal/store"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

func newAddInput() textinput.Model {
	in := textinput.New()
	in.Placeholder = "Task title"
	in.CharLimit = 200
	in.Width = 40
	return in
}

// startAdd opens the inline add prompt targeting the section under the cursor.
func (m *boardModel) startAdd() {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		m.status = "no sections yet"
		return
	}
	row := m.rows[m.cursor]
	if row.kind == rowSectionHeader {
		m.addSection = row.section.ID
	} else {
		m.addSection = row.task.SectionID
	}
	m.adding = true
	m.status = ""
	m.addInput.SetValue("")
	m.addInput.Focus()
}

func (m boardModel) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.adding = false
		m.addInput.Blur()
		return m, nil
	case "enter":
		title := strings.TrimSpace(m.addInput.Value())
		m.adding = false
		m.addInput.Blur()
		if title != "" {
			m.commitAdd(title)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.addInput, cmd = m.addInput.Update(msg)
	return m, cmd
}

// commitAdd appends a task at the end of the prompt's section and persists it.
func (m *boardModel) commitAdd(title string) {
	db := m.db()
	siblings := db.SectionTasks(m.addSection)
	orders := make([]int, 0, len(siblings))
	for _, t := range siblings {
		orders = append(orders, t.SortOrder)
	}
	now := time.Now().UTC()
	t := model.Task{
		ID:        m.store.NextID(db, "task"),
		SectionID: m.addSection,
		Title:     title,
		Status:    model.StatusTodo,
		SortOrder: store.NextSortOrder(orders),
		CreatedAt: now,
		UpdatedAt: now,
	}
	db.Tasks = append(db.Tasks, t)
	if err := m.store.Save(db); err != nil {
		m.status = "save failed: " + err.Error()
		m.reloadFromDisk()
		return
	}
	_ = m.store.AppendEvent("task.create", t.ID, map[string]any{"sectionId": t.SectionID, "title": t.Title})
	m.lastStoreMod = m.storeModTime()
	m.status = "added " + strconv.Quote(title)
	m.refreshSnapshot()
	if at := rowIndexOf(m.rows, dnd.TaskID(t.ID)); at >= 0 {
		m.cursor = at
		m.ensureVisible(at)
	}
}

// addPrompt renders the footer prompt line while the add input is open.
func (m boardModel) addPrompt() string {
	name := m.addSection
	for _, r := range m.rows {
		if r.kind == rowSectionHeader && r.section.ID == m.addSection {
			name = r.section.Title
			break
		}
	}
	return styleMuted().Render("add to "+name+": ") + m.addInput.View()
}
