package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func newList(title string, items []list.Item) list.Model {
	l := list.New(items, newCompactDelegate(), 0, 0)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = lipgloss.NewStyle().Bold(true)
	return l
}

// compactDelegate renders one line per item with no spacing, so short lists
// stay dense.
type compactDelegate struct {
	normal   lipgloss.Style
	selected lipgloss.Style
}

func newCompactDelegate() compactDelegate {
	return compactDelegate{
		normal: lipgloss.NewStyle(),
		selected: lipgloss.NewStyle().
			Foreground(colorSelectedFg).
			Background(colorSelectedBg).
			Bold(true),
	}
}

func (d compactDelegate) Height() int                             { return 1 }
func (d compactDelegate) Spacing() int                            { return 0 }
func (d compactDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d compactDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	contentW := m.Width()
	if contentW < 4 {
		return
	}

	style := d.normal
	if index == m.Index() {
		style = d.selected
	}

	txt := ""
	switch it := item.(type) {
	case blockItem:
		txt = glyphBullet() + " " + it.block.Title + "  " + fmt.Sprintf("%d sections", it.n)
	default:
		if t, ok := item.(interface{ Title() string }); ok {
			txt = t.Title()
		} else {
			txt = fmt.Sprint(item)
		}
	}

	fmt.Fprint(w, style.Render(padLine(txt, contentW)))
}
