package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View implements tea.Model
func (m *Model) View() string {
	var sb strings.Builder

	snap := m.ctrl.Snapshot()
	grid := snap.Grid

	sb.WriteString(TitleStyle.Render(fmt.Sprintf("Map Gallery  %d maps", grid.Len())))
	sb.WriteString("\n\n")

	if grid.Len() == 0 {
		sb.WriteString(StatusStyle.Render("No map images found."))
		sb.WriteString("\n")
	} else {
		sb.WriteString(m.renderGrid())
	}

	if snap.State.PanelVisible {
		panel := []string{
			fmt.Sprintf("Columns: %d", snap.State.Columns),
			fmt.Sprintf("Image size: %dx%d", snap.State.Width, snap.State.Height),
		}
		if snap.Selected != nil {
			panel = append(panel, "Map: "+snap.Selected.Name)
		}
		sb.WriteString(PanelStyle.Render(strings.Join(panel, "\n")))
		sb.WriteString("\n")
	}

	status := snap.Status
	if m.rescanning {
		status = m.spinner.View() + " " + status
	}
	sb.WriteString(StatusStyle.Render(status))
	if m.err != nil {
		sb.WriteString("\n" + ErrorStyle.Render("Error: "+m.err.Error()))
	}
	sb.WriteString("\n" + m.help.View(m.keys))

	return App.Render(sb.String())
}

func (m *Model) renderGrid() string {
	grid := m.ctrl.Grid()
	cols := m.ctrl.State().Columns
	cellWidth := max(8, (m.width-4)/cols-1)

	rows := make([][]string, grid.Rows())
	for i, cell := range grid.Cells {
		name := cell.Entry.Name
		marker := "  "
		if cell.Entry.Liked {
			marker = LikedStyle.Render("♥ ")
		}
		name = truncate(name, cellWidth-2)
		style := CellStyle
		if i == m.cursor {
			style = SelectedStyle
		}
		rows[cell.Row] = append(rows[cell.Row], marker+style.Width(cellWidth-2).Render(name))
	}

	var sb strings.Builder
	end := min(len(rows), m.top+m.gridRows())
	for r := m.top; r < end; r++ {
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, spaced(rows[r])...))
		sb.WriteString("\n")
	}
	return sb.String()
}

func spaced(cells []string) []string {
	out := make([]string, 0, 2*len(cells))
	for i, c := range cells {
		if i > 0 {
			out = append(out, " ")
		}
		out = append(out, c)
	}
	return out
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n < 1 {
		return ""
	}
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
