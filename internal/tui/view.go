package tui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/dustin/go-humanize"

	"github.com/colonyops/regform/internal/core/registration"
	"github.com/colonyops/regform/internal/core/styles"
)

// View renders the form, the abstract status, the submit control and any
// toasts on top.
func (m Model) View() tea.View {
	if m.quitting {
		return tea.NewView("")
	}

	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

func (m Model) render() string {
	parts := []string{
		m.dialog.View(),
		m.renderFileStatus(),
		m.renderSubmit(),
	}
	if m.endpoint != "" {
		parts = append(parts, styles.TextMutedStyle.Render("→ "+m.endpoint))
	}
	if m.confirm != nil {
		parts = append(parts, "", m.confirm.View())
	}
	content := lipgloss.JoinVertical(lipgloss.Left, parts...)

	w, h := m.width, m.height
	if w == 0 {
		w = lipgloss.Width(content)
	}
	if h == 0 {
		h = lipgloss.Height(content)
	}
	if m.toastController.HasToasts() {
		content = m.toastView.Overlay(content, w, h)
	}
	return content
}

func (m Model) renderFileStatus() string {
	status := m.state.Result.File
	switch status.Style {
	case registration.FileStyleValid:
		line := styles.IconCheck + " " + status.DisplayText
		if m.state.File != nil {
			line += styles.TextMutedStyle.Render(" (" + humanize.Bytes(uint64(max(m.state.File.Size, 0))) + ")")
		}
		return styles.FileValidStyle.Render(line)
	case registration.FileStyleInvalid:
		if m.state.File != nil {
			return styles.FileInvalidStyle.Render(styles.IconCross + " " + m.state.File.Name)
		}
	}
	return ""
}

func (m Model) renderSubmit() string {
	ctl := m.state.Submit
	label := "[ " + ctl.Label + " ]"

	if !ctl.Enabled {
		return styles.ButtonDisabled.Render(label)
	}

	hint := styles.TextMutedStyle.Render("  ctrl+s")
	return strings.TrimRight(styles.ButtonFocusedStyle.Render(label)+hint, " ")
}
