package tui

import (
	"strings"

	"roadmap-cli/internal/statusutil"

	"github.com/charmbracelet/lipgloss"
)

// renderDetail shows the cursor row in a side pane: task metadata plus the
// markdown description rendered with glamour.
func (m boardModel) renderDetail(width, height int) string {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return normalizePane(styleMuted().Render("Nothing selected."), width, height)
	}
	row := m.rows[m.cursor]

	var lines []string
	title := lipgloss.NewStyle().Bold(true).Render
	meta := lipgloss.NewStyle().Foreground(colorMetaFg).Render

	switch row.kind {
	case rowSectionHeader:
		lines = append(lines, title(row.section.Title))
		lines = append(lines, meta(row.section.ID))
	default:
		t := row.task
		lines = append(lines, title(t.Title))
		lines = append(lines, meta(t.ID+"  "+statusutil.Label(t.Status)))
		if t.Due != nil {
			lines = append(lines, meta("due "+t.Due.String()))
		}
		if len(t.Tags) > 0 {
			lines = append(lines, meta(strings.Join(t.Tags, " ")))
		}
		if desc := strings.TrimSpace(t.Description); desc != "" {
			lines = append(lines, styleMuted().Render(strings.Repeat(glyphHRule(), width)))
			lines = append(lines, renderMarkdown(desc, width))
		}
	}

	return normalizePane(strings.Join(lines, "\n"), width, height)
}
