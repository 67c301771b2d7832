package tui

import (
	"strings"

	"crewdeck/internal/palette"

	"github.com/charmbracelet/lipgloss"
)

// viewPalette renders the command palette over the whole body area:
// breadcrumb trail, query line, then the selectable rows.
func (m appModel) viewPalette() string {
	var b strings.Builder

	b.WriteString(styleBreadcrumb().Render(strings.Join(m.pal.Breadcrumbs(), " > ")))
	b.WriteString("\n")

	prompt := "> "
	if m.pal.AIMode() {
		prompt = styleAccent().Render("ai> ")
	}
	b.WriteString(prompt + m.pal.Query() + "▌")
	b.WriteString("\n")

	if fl := m.pal.ActiveFilters(); len(fl) > 0 {
		b.WriteString(styleMuted().Render("filtros: " + filterNames(fl)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.pal.AIMode() {
		b.WriteString(styleMuted().Render("modo IA: enter envía la consulta como prompt"))
		return b.String()
	}

	if m.pal.Loading() {
		b.WriteString(styleMuted().Render("cargando…"))
		return b.String()
	}

	items := m.pal.Items()
	if len(items) == 0 {
		b.WriteString(styleMuted().Render("sin resultados"))
		return b.String()
	}

	maxRows := m.height - chromeHeight - 4
	if maxRows < 3 {
		maxRows = 3
	}
	sel := m.pal.SelectedIndex()
	start := 0
	if sel >= maxRows {
		start = sel - maxRows + 1
	}

	selStyle := lipgloss.NewStyle().Foreground(colorSelectedFg).Background(colorSelectedBg).Bold(true)
	badgeStyle := lipgloss.NewStyle().Foreground(colorBadgeFg)

	for i := start; i < len(items) && i < start+maxRows; i++ {
		it := items[i]
		title := it.Title
		if it.Subtitle != "" {
			title += "  " + styleMuted().Render(it.Subtitle)
		}
		row := renderRow(title, it.Badge, m.width-2, badgeStyle)
		if i == sel {
			b.WriteString(selStyle.Render("› " + row))
		} else {
			b.WriteString("  " + row)
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func filterNames(f palette.Filters) string {
	var names []string
	for _, k := range []palette.Kind{
		palette.KindWorkspace,
		palette.KindProject,
		palette.KindMember,
		palette.KindTeam,
		palette.KindTask,
	} {
		if f[k] {
			names = append(names, k.String())
		}
	}
	return strings.Join(names, ", ")
}
