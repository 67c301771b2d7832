package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// chromeHeight is the vertical space taken by header, status and footer.
const chromeHeight = 4

func (m appModel) View() string {
	if m.width == 0 {
		return "loading..."
	}

	var body string
	switch {
	case m.modal == modalAddTime:
		body = m.viewAddTimeModal()
	case m.pal.Visible():
		body = m.viewPalette()
	case m.view == viewTask:
		body = m.viewTaskPage()
	default:
		body = m.viewActiveList()
	}

	header := m.viewHeader()
	status := styleMuted().Render(m.statusMsg)
	footer := m.viewFooter()

	return lipgloss.JoinVertical(lipgloss.Left, header, body, status, footer)
}

func (m appModel) viewHeader() string {
	crumbs := []string{"Inicio"}
	if m.selectedWorkspaceID != "" {
		crumbs = append(crumbs, m.workspaceName(m.selectedWorkspaceID))
	}
	switch m.view {
	case viewTasks, viewTask:
		if p, ok := m.db.FindProject(m.selectedProjectID); ok {
			crumbs = append(crumbs, p.Name)
		}
		if mem, ok := m.db.FindMember(m.selectedMemberID); ok {
			crumbs = append(crumbs, mem.Name)
		}
	}
	if m.view == viewTask {
		if t, ok := m.db.FindTask(m.openTaskID); ok {
			crumbs = append(crumbs, t.Title)
		}
	}
	return styleBreadcrumb().Render(strings.Join(crumbs, " > "))
}

func (m appModel) viewActiveList() string {
	switch m.view {
	case viewWorkspaces:
		return m.workspacesList.View()
	case viewProjects:
		return m.projectsList.View()
	case viewTasks:
		return m.tasksList.View()
	}
	return ""
}

func (m appModel) viewFooter() string {
	parts := []string{
		"ctrl+k " + footerLabel("palette"),
		"enter " + footerLabel("open"),
		"esc " + footerLabel("back"),
		"/ " + footerLabel("filter"),
		"r " + footerLabel("reload"),
		"q " + footerLabel("quit"),
	}
	return styleMuted().Render(strings.Join(parts, "  "))
}

func footerLabel(s string) string { return s }

func (m appModel) viewTaskPage() string {
	t, ok := m.db.FindTask(m.openTaskID)
	if !ok {
		return styleMuted().Render("(task gone)")
	}

	var b strings.Builder
	b.WriteString(styleAccent().Render(t.Title))
	b.WriteString("\n")

	var meta []string
	if p, ok := m.db.FindProject(t.ProjectID); ok {
		meta = append(meta, "proyecto: "+p.Name)
	}
	if a, ok := m.db.FindMember(t.AssigneeID); ok {
		meta = append(meta, "asignada: "+a.Name)
	}
	if t.StatusID != "" {
		meta = append(meta, "estado: "+t.StatusID)
	}
	if t.Due != nil {
		meta = append(meta, "vence: "+*t.Due)
	}
	if len(meta) > 0 {
		b.WriteString(styleMuted().Render(strings.Join(meta, "   ")))
		b.WriteString("\n")
	}

	if t.Notes != "" {
		b.WriteString("\n")
		b.WriteString(renderMarkdown(t.Notes, m.width-2))
		b.WriteString("\n")
	}

	entries := m.db.TimeForTask(t.ID)
	if len(entries) > 0 {
		total := 0
		for _, e := range entries {
			total += e.Minutes
		}
		b.WriteString("\n")
		b.WriteString(styleMuted().Render(fmt.Sprintf("tiempo registrado: %d min en %d entradas", total, len(entries))))
	}

	return b.String()
}

func (m appModel) viewAddTimeModal() string {
	title := ""
	if t, ok := m.db.FindTask(m.modalTaskID); ok {
		title = t.Title
	}
	var b strings.Builder
	b.WriteString(styleAccent().Render("Añadir tiempo manual"))
	b.WriteString("\n")
	b.WriteString(styleMuted().Render(title))
	b.WriteString("\n\n")
	b.WriteString(m.minutesInput.View())
	b.WriteString("\n\n")
	b.WriteString(styleMuted().Render("enter guardar   esc cancelar"))
	return b.String()
}
