package tui

import (
	"fmt"
	"strconv"
	"strings"

	"roadmap-cli/internal/model"

	"github.com/charmbracelet/lipgloss"
)

const (
	boardTopLines   = 2 // header + rule
	boardFootLines  = 2 // rule + help
	minDetailWidth  = 32
	detailSplitGapW = 2
)

func (m boardModel) bodyHeight() int {
	h := m.height - boardTopLines - boardFootLines
	if h < 4 {
		h = 4
	}
	return h
}

func listWidth(w int) int {
	if w < 40 {
		return 40
	}
	return w
}

func (m boardModel) View() string {
	switch m.view {
	case viewBlocks:
		return m.viewBlocks()
	default:
		return m.viewBoard()
	}
}

func (m boardModel) viewBlocks() string {
	header := lipgloss.NewStyle().Bold(true).Render("Roadmap") +
		styleMuted().Render("  "+m.store.Dir)
	footer := styleMuted().Render("enter: open block  /: filter  q: quit")
	return strings.Join([]string{header, "", m.blocksList.View(), "", footer}, "\n")
}

func (m boardModel) viewBoard() string {
	width := m.width
	if width < 40 {
		width = 40
	}

	bodyW := width
	detailW := 0
	if m.showDetail && width >= 2*minDetailWidth+detailSplitGapW {
		detailW = width / 3
		if detailW < minDetailWidth {
			detailW = minDetailWidth
		}
		bodyW = width - detailW - detailSplitGapW
	}

	header := lipgloss.NewStyle().Bold(true).Render(m.blockTitle) +
		styleMuted().Render("  "+m.store.Dir)
	rule := styleMuted().Render(strings.Repeat(glyphHRule(), width))

	body := m.renderRows(bodyW)
	if detailW > 0 {
		detail := m.renderDetail(detailW, m.bodyHeight())
		gap := normalizePane("", detailSplitGapW, m.bodyHeight())
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, gap, detail)
	}

	help := "space/enter: grab+drop  ↑/↓: move  a: add  s: status  d: detail  esc: back  q: quit"
	if _, dragging := m.eng.Active(); dragging {
		help = "↑/↓: choose target  enter: drop  esc: cancel"
	}
	footer := styleMuted().Render(help)
	if m.status != "" {
		footer = styleMuted().Render(m.status) + "  " + footer
	}
	if m.adding {
		footer = m.addPrompt()
	}

	return strings.Join([]string{header, rule, body, rule, padLine(footer, width)}, "\n")
}

func (m boardModel) renderRows(width int) string {
	height := m.bodyHeight()
	scroll := m.scroll

	hover, hovering := m.eng.Hover()
	active, dragging := m.eng.Active()

	var b strings.Builder
	for i := scroll; i < len(m.rows) && i < scroll+height; i++ {
		if i > scroll {
			b.WriteByte('\n')
		}
		row := m.rows[i]
		b.WriteString(m.renderRow(row, width, rowRenderState{
			selected:   i == m.cursor && !dragging,
			grabbed:    dragging && row.id == active,
			dropTarget: dragging && hovering && row.id == hover && row.id != active,
		}))
	}
	out := b.String()
	if len(m.rows) == 0 {
		out = styleMuted().Render("No sections yet. Use `roadmap sections add` to create one.")
	}
	return normalizePane(out, width, height)
}

type rowRenderState struct {
	selected   bool
	grabbed    bool
	dropTarget bool
}

func (m boardModel) renderRow(row boardRow, width int, st rowRenderState) string {
	prefix := "  "
	if st.dropTarget {
		prefix = glyphDropMarker() + " "
	}

	var text string
	switch row.kind {
	case rowSectionHeader:
		n := 0
		for _, r := range m.rows {
			if r.kind == rowTask && r.section.ID == row.section.ID {
				n++
			}
		}
		text = prefix + row.section.Title + " " + fmt.Sprintf("(%d)", n)
	default:
		text = prefix + "  " + glyphCheck(row.task.Status == model.StatusDone) + " " + row.task.Title
		if row.task.Due != nil {
			text += "  " + row.task.Due.String()
		}
	}

	style := lipgloss.NewStyle()
	switch {
	case st.grabbed:
		style = style.Foreground(colorGrabbedFg).Background(colorGrabbedBg).Bold(true)
		text = glyphDragHandle() + text[len(prefix):]
	case st.selected:
		style = style.Foreground(colorSelectedFg).Background(colorSelectedBg).Bold(true)
	case st.dropTarget:
		style = style.Foreground(colorDropHint).Bold(true)
	case row.kind == rowSectionHeader:
		style = style.Foreground(colorSectionFg).Bold(true)
	case row.task.Status == model.StatusDone:
		style = faintIfDark(style.Foreground(colorDoneFg))
	}

	return style.Render(padLine(text, width))
}

func rowLabel(row boardRow) string {
	if row.kind == rowSectionHeader {
		return "section " + strconv.Quote(row.section.Title)
	}
	return strconv.Quote(row.task.Title)
}
