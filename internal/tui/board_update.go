package tui

import (
	"os"
	"time"

	"roadmap-cli/internal/dnd"
	"roadmap-cli/internal/mutate"
	"roadmap-cli/internal/statusutil"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.blocksList.SetSize(listWidth(m.width), m.bodyHeight())
		return m, nil

	case reloadTickMsg:
		if m.storeChangedOnDisk() {
			m.reloadFromDisk()
		}
		return m, tickReload()

	case tea.KeyMsg:
		return m.updateKey(msg)

	case tea.MouseMsg:
		if m.view == viewBoard {
			m.updateMouse(msg)
			return m, nil
		}
	}

	if m.view == viewBlocks {
		var cmd tea.Cmd
		m.blocksList, cmd = m.blocksList.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m boardModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While the blocks list filter prompt is open, it owns the keyboard.
	if m.view == viewBlocks && m.blocksList.FilterState() == list.Filtering && msg.String() != "ctrl+c" {
		var cmd tea.Cmd
		m.blocksList, cmd = m.blocksList.Update(msg)
		return m, cmd
	}

	// Same for the inline add prompt on the board.
	if m.view == viewBoard && m.adding && msg.String() != "ctrl+c" {
		return m.updateAdd(msg)
	}

	_, dragActive := m.eng.Active()

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "q":
		if m.view == viewBoard && dragActive {
			m.keyboard.Cancel()
			m.status = "move cancelled"
			return m, nil
		}
		return m, tea.Quit

	case "r":
		if !dragActive {
			m.reloadFromDisk()
			m.status = "reloaded"
			return m, nil
		}

	case "esc":
		if m.view == viewBoard {
			if dragActive {
				m.keyboard.Cancel()
				m.status = "move cancelled"
				return m, nil
			}
			m.view = viewBlocks
			m.refreshBlocks()
			return m, nil
		}

	case "up", "k":
		if m.view == viewBoard {
			if dragActive {
				m.keyboard.MoveUp()
				m.followHover()
			} else if m.cursor > 0 {
				m.cursor--
				m.ensureVisible(m.cursor)
			}
			return m, nil
		}

	case "down", "j":
		if m.view == viewBoard {
			if dragActive {
				m.keyboard.MoveDown()
				m.followHover()
			} else if m.cursor < len(m.rows)-1 {
				m.cursor++
				m.ensureVisible(m.cursor)
			}
			return m, nil
		}

	case " ", "enter":
		switch m.view {
		case viewBlocks:
			if msg.String() == "enter" {
				if it, ok := m.blocksList.SelectedItem().(blockItem); ok {
					m.openBoard(it.block.ID, it.block.Title)
				}
				return m, nil
			}
		case viewBoard:
			if dragActive {
				plan := m.keyboard.Drop()
				m.finishCommit(plan)
				return m, nil
			}
			if m.cursor >= 0 && m.cursor < len(m.rows) {
				row := m.rows[m.cursor]
				if m.keyboard.Grab(row.id, rowTargets(m.rows)) {
					m.status = "moving " + rowLabel(row) + " (↑/↓ choose, enter drop, esc cancel)"
				}
			}
			return m, nil
		}

	case "a":
		if m.view == viewBoard && !dragActive {
			m.startAdd()
			return m, nil
		}

	case "d":
		if m.view == viewBoard && !dragActive {
			m.showDetail = !m.showDetail
			return m, nil
		}

	case "s":
		if m.view == viewBoard && !dragActive {
			m.cycleStatus()
			return m, nil
		}
	}

	if m.view == viewBlocks {
		var cmd tea.Cmd
		m.blocksList, cmd = m.blocksList.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *boardModel) updateMouse(msg tea.MouseMsg) {
	if m.adding {
		return
	}
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			if m.scroll > 0 {
				m.scroll--
			}
			return
		case tea.MouseButtonWheelDown:
			if m.scroll < len(m.rows)-1 {
				m.scroll++
			}
			return
		case tea.MouseButtonLeft:
			if at := m.rowAt(msg.Y); at >= 0 {
				m.pointer.Press(m.rows[at].id, msg.X, msg.Y)
			}
		}

	case tea.MouseActionMotion:
		m.pointer.Move(msg.X, msg.Y, m.itemAt(msg.Y))

	case tea.MouseActionRelease:
		plan, clicked := m.pointer.Release(m.itemAt(msg.Y))
		if clicked {
			if at := m.rowAt(msg.Y); at >= 0 {
				m.cursor = at
			}
			return
		}
		m.finishCommit(plan)
	}
}

// cycleStatus steps the selected task through todo → doing → done.
func (m *boardModel) cycleStatus() {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return
	}
	row := m.rows[m.cursor]
	if row.kind != rowTask {
		return
	}
	res, err := mutate.SetTaskStatus(m.db(), row.task.ID, statusutil.Next(row.task.Status))
	if err != nil || !res.Changed {
		return
	}
	if err := m.store.Save(m.db()); err != nil {
		m.status = "save failed: " + err.Error()
		m.reloadFromDisk()
		return
	}
	_ = m.store.AppendEvent("task.status", row.task.ID, res.EventPayload)
	m.lastStoreMod = m.storeModTime()
	m.status = "status: " + statusutil.Label(res.Task.Status)
	m.refreshSnapshot()
}

// followHover keeps the keyboard hover target on screen while stepping.
func (m *boardModel) followHover() {
	if t, ok := m.keyboard.Target(); ok {
		m.ensureVisible(rowIndexOf(m.rows, t))
	}
}

// rowAt maps a terminal y coordinate to a board row index, or -1 for the
// header and footer chrome.
func (m boardModel) rowAt(y int) int {
	if y < boardTopLines || y >= boardTopLines+m.bodyHeight() {
		return -1
	}
	at := y - boardTopLines + m.scroll
	if at < 0 || at >= len(m.rows) {
		return -1
	}
	return at
}

func (m boardModel) itemAt(y int) dnd.ItemID {
	if at := m.rowAt(y); at >= 0 {
		return m.rows[at].id
	}
	return dnd.ItemID{}
}

// finishCommit runs after every drop: persists when the appliers changed the
// document, records the event, and rebuilds snapshot + rows.
func (m *boardModel) finishCommit(plan dnd.Plan) {
	if !m.sink.dirty {
		m.status = "no change"
		m.refreshRows()
		return
	}
	m.sink.dirty = false

	if err := m.store.Save(m.db()); err != nil {
		m.status = "save failed: " + err.Error()
		// Throw away the unsaved mutation so screen and disk agree.
		m.reloadFromDisk()
		return
	}
	typ, entityID := eventForPlan(plan)
	if typ != "" {
		_ = m.store.AppendEvent(typ, entityID, nil)
	}
	m.lastStoreMod = m.storeModTime()
	m.status = "moved"
	m.refreshSnapshot()
}

func eventForPlan(p dnd.Plan) (typ, entityID string) {
	switch p := p.(type) {
	case dnd.TaskReorder:
		return "task.reorder", p.SectionID
	case dnd.TaskMove:
		return "task.move", p.TaskID
	case dnd.SectionReorder:
		return "section.reorder", p.BlockID
	}
	return "", ""
}

func fileModTime(path string) time.Time {
	st, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return st.ModTime()
}
