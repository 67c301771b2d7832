package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// badged is implemented by list items that carry a small trailing label
// (open-task counts, status ids).
type badged interface {
	Badge() string
}

type compactDelegate struct {
	normal   lipgloss.Style
	selected lipgloss.Style
	badge    lipgloss.Style
}

func newCompactDelegate() compactDelegate {
	return compactDelegate{
		normal: lipgloss.NewStyle(),
		selected: lipgloss.NewStyle().
			Foreground(colorSelectedFg).
			Background(colorSelectedBg).
			Bold(true),
		badge: lipgloss.NewStyle().Foreground(colorBadgeFg),
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

	title := ""
	if t, ok := item.(interface{ Title() string }); ok {
		title = t.Title()
	} else {
		title = fmt.Sprint(item)
	}
	badge := ""
	if b, ok := item.(badged); ok {
		badge = b.Badge()
	}

	line := renderRow(title, badge, contentW, d.badge)
	fmt.Fprint(w, style.Render(line))
}

// renderRow lays out "title .... badge" in exactly width cells, truncating
// the title when it does not fit.
func renderRow(title, badge string, width int, badgeStyle lipgloss.Style) string {
	badgeW := 0
	if badge != "" {
		badgeW = xansi.StringWidth(badge) + 2
	}
	avail := width - badgeW
	if avail < 1 {
		avail = 1
	}
	line := title
	if tw := xansi.StringWidth(line); tw > avail {
		line = xansi.Cut(line, 0, avail)
	}
	pad := width - xansi.StringWidth(line) - badgeW
	if pad < 0 {
		pad = 0
	}
	out := line + strings.Repeat(" ", pad)
	if badge != "" {
		out += "  " + badgeStyle.Render(badge)
	}
	return out
}
