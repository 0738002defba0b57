package tui

import (
	"path/filepath"
	"time"

	"roadmap-cli/internal/dnd"
	"roadmap-cli/internal/model"
	"roadmap-cli/internal/store"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type view int

const (
	viewBlocks view = iota
	viewBoard
)

type reloadTickMsg struct{}

// commitSink is the mutable state shared with the engine's commit callbacks.
// The bubbletea model is a value and gets copied on every Update, so the
// callbacks write through this stable pointer instead of closing over a copy.
type commitSink struct {
	db    *store.DB
	dirty bool
}

type boardModel struct {
	store store.Store
	sink  *commitSink

	eng      *dnd.Engine
	keyboard *dnd.KeyboardSensor
	pointer  *dnd.PointerSensor

	width  int
	height int

	view       view
	blocksList list.Model
	blockID    string
	blockTitle string

	rows   []boardRow
	cursor int
	scroll int

	showDetail bool
	status     string

	adding     bool
	addSection string
	addInput   textinput.Model

	lastStoreMod time.Time
}

func newBoardModel(s store.Store, db *store.DB) boardModel {
	sink := &commitSink{db: db}

	eng := dnd.NewEngine(dnd.Callbacks{
		OnTaskMove: func(taskID, sectionID string, index int) {
			if store.ApplyTaskMove(sink.db, taskID, sectionID, index) {
				sink.dirty = true
			}
		},
		OnTaskReorder: func(sectionID string, taskIDs []string) {
			if store.ApplyTaskReorder(sink.db, sectionID, taskIDs) {
				sink.dirty = true
			}
		},
		OnSectionReorder: func(blockID string, sectionIDs []string) {
			if store.ApplySectionReorder(sink.db, blockID, sectionIDs) {
				sink.dirty = true
			}
		},
	})

	m := boardModel{
		store:    s,
		sink:     sink,
		eng:      eng,
		keyboard: dnd.NewKeyboardSensor(eng),
		pointer:  dnd.NewPointerSensor(eng, dnd.DefaultActivationDistance),
		view:     viewBlocks,
	}
	m.eng.SetSnapshot(store.Snapshot(db))

	m.addInput = newAddInput()
	m.blocksList = newList("Blocks", nil)
	m.refreshBlocks()
	m.lastStoreMod = m.storeModTime()
	return m
}

func (m boardModel) db() *store.DB { return m.sink.db }

func (m boardModel) Init() tea.Cmd { return tickReload() }

func tickReload() tea.Cmd {
	return tea.Tick(750*time.Millisecond, func(time.Time) tea.Msg { return reloadTickMsg{} })
}

type blockItem struct {
	block model.Block
	n     int // visible sections
}

func (i blockItem) Title() string       { return i.block.Title }
func (i blockItem) FilterValue() string { return i.block.Title }

func (m *boardModel) refreshBlocks() {
	curID := ""
	if it, ok := m.blocksList.SelectedItem().(blockItem); ok {
		curID = it.block.ID
	}
	var items []list.Item
	for _, b := range m.db().BlockList() {
		items = append(items, blockItem{block: b, n: len(m.db().BlockSections(b.ID))})
	}
	m.blocksList.SetItems(items)
	if curID != "" {
		for i, it := range m.blocksList.Items() {
			if bi, ok := it.(blockItem); ok && bi.block.ID == curID {
				m.blocksList.Select(i)
				break
			}
		}
	}
}

// refreshRows rebuilds the flattened board rows from the engine's snapshot and
// keeps the cursor on the same item when it still exists.
func (m *boardModel) refreshRows() {
	var keep dnd.ItemID
	if m.cursor >= 0 && m.cursor < len(m.rows) {
		keep = m.rows[m.cursor].id
	}
	m.rows = buildRows(m.eng.Snapshot(), m.blockID)
	if at := rowIndexOf(m.rows, keep); at >= 0 {
		m.cursor = at
	}
	m.clampCursor()
}

// refreshSnapshot rebuilds the engine snapshot from the document, then the
// rows from the snapshot. Must run after every commit.
func (m *boardModel) refreshSnapshot() {
	m.eng.SetSnapshot(store.Snapshot(m.db()))
	m.refreshBlocks()
	m.refreshRows()
}

func (m *boardModel) clampCursor() {
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.scroll > m.cursor {
		m.scroll = m.cursor
	}
	if m.scroll < 0 {
		m.scroll = 0
	}
}

// ensureVisible scrolls just enough to keep row idx on screen.
func (m *boardModel) ensureVisible(idx int) {
	if idx < 0 {
		return
	}
	h := m.bodyHeight()
	if idx < m.scroll {
		m.scroll = idx
	}
	if idx >= m.scroll+h {
		m.scroll = idx - h + 1
	}
}

func (m *boardModel) openBoard(blockID, title string) {
	m.view = viewBoard
	m.blockID = blockID
	m.blockTitle = title
	m.cursor = 0
	m.scroll = 0
	m.status = ""
	m.refreshRows()
}

func (m boardModel) storeModTime() time.Time {
	return fileModTime(filepath.Join(m.store.Dir, store.SQLiteFileName))
}

func (m *boardModel) storeChangedOnDisk() bool {
	return m.storeModTime().After(m.lastStoreMod)
}

func (m *boardModel) reloadFromDisk() {
	// A reload invalidates any in-flight gesture; SetSnapshot cancels it.
	db, err := m.store.Load()
	if err != nil {
		m.status = "reload failed: " + err.Error()
		return
	}
	m.sink.db = db
	m.sink.dirty = false
	m.lastStoreMod = m.storeModTime()
	m.refreshSnapshot()
}
