package form

import (
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/regform/internal/core/styles"
)

// SubmitMsg is emitted when the user asks to submit the form, either with
// ctrl+s or by advancing past the last field.
type SubmitMsg struct{}

func submitCmd() tea.Msg { return SubmitMsg{} }

// filterer is an optional interface for fields that support list filtering.
type filterer interface {
	IsFiltering() bool
}

// Dialog is a form container that manages focus cycling, submit intents and
// cancellation across a set of form fields.
type Dialog struct {
	fields       []Field
	sections     map[string]string // field id -> heading rendered above it
	focusedField int
	cancelled    bool
	height       int
	Title        string
}

// NewDialog creates a form dialog with the given fields.
// The first field is focused automatically.
func NewDialog(title string, fields []Field) *Dialog {
	d := &Dialog{
		fields:   fields,
		sections: map[string]string{},
		Title:    title,
	}
	if len(fields) > 0 {
		fields[0].Focus()
	}
	return d
}

// Update handles key input for the dialog, managing focus cycling and submit/cancel.
func (d *Dialog) Update(msg tea.Msg) (*Dialog, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return d.updateFocusedField(msg)
	}

	if d.isFocusedFieldFiltering() {
		return d.updateFocusedField(msg)
	}

	switch keyMsg.String() {
	case "tab", "enter":
		return d.advanceFocus()
	case "shift+tab":
		return d.retreatFocus()
	case "ctrl+s":
		return d, submitCmd
	case "esc":
		d.cancelled = true
		return d, nil
	}

	return d.updateFocusedField(msg)
}

// View renders the fields that fit the configured height, keeping the
// focused field visible, followed by help text.
func (d *Dialog) View() string {
	parts := []string{styles.HeaderStyle.Render(d.Title)}

	blocks := make([]string, len(d.fields))
	for i, field := range d.fields {
		block := field.View()
		if title, ok := d.sections[field.ID()]; ok {
			block = styles.SectionTitleStyle.Render(title) + "\n" + block
		}
		blocks[i] = block
	}

	start, end := d.window(blocks)
	if start > 0 {
		parts = append(parts, styles.TextMutedStyle.Render("  ↑ more"))
	}
	parts = append(parts, blocks[start:end]...)
	if end < len(blocks) {
		parts = append(parts, styles.TextMutedStyle.Render("  ↓ more"))
	}

	help := styles.TextMutedStyle.Render("tab: next  shift+tab: prev  ctrl+s: submit  esc: quit")
	parts = append(parts, "", help)

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// window picks the range of blocks to render. The focused block is always
// included and the range grows forward first.
func (d *Dialog) window(blocks []string) (int, int) {
	if d.height <= 0 || len(blocks) == 0 {
		return 0, len(blocks)
	}

	// Title, help and the two "more" markers.
	budget := d.height - 6
	start, end := d.focusedField, d.focusedField+1
	used := lipgloss.Height(blocks[d.focusedField])

	for {
		grew := false
		if end < len(blocks) && used+lipgloss.Height(blocks[end]) <= budget {
			used += lipgloss.Height(blocks[end])
			end++
			grew = true
		}
		if start > 0 && used+lipgloss.Height(blocks[start-1]) <= budget {
			start--
			used += lipgloss.Height(blocks[start])
			grew = true
		}
		if !grew {
			return start, end
		}
	}
}

// SetHeight bounds the rendered height. Zero renders every field.
func (d *Dialog) SetHeight(h int) { d.height = h }

// SetSection renders title above the field with the given id.
func (d *Dialog) SetSection(id, title string) { d.sections[id] = title }

// SetFields replaces the field set. The focus index is kept, clamped to the
// new set, and the field at that index takes focus.
func (d *Dialog) SetFields(fields []Field) tea.Cmd {
	for _, f := range d.fields {
		f.Blur()
	}
	d.fields = fields
	d.sections = map[string]string{}
	if len(fields) == 0 {
		d.focusedField = 0
		return nil
	}
	d.focusedField = min(d.focusedField, len(fields)-1)
	return d.fields[d.focusedField].Focus()
}

// FocusID moves focus to the field with the given id.
func (d *Dialog) FocusID(id string) tea.Cmd {
	for i, f := range d.fields {
		if f.ID() == id {
			d.fields[d.focusedField].Blur()
			d.focusedField = i
			return f.Focus()
		}
	}
	return nil
}

// Fields returns the fields in display order.
func (d *Dialog) Fields() []Field { return d.fields }

// Focused returns the focused field, or nil for an empty dialog.
func (d *Dialog) Focused() Field {
	if len(d.fields) == 0 {
		return nil
	}
	return d.fields[d.focusedField]
}

// FormValues returns a map of field ids to field values.
func (d *Dialog) FormValues() map[string]string {
	result := make(map[string]string, len(d.fields))
	for _, field := range d.fields {
		result[field.ID()] = field.Value()
	}
	return result
}

// Cancelled returns whether the form was cancelled.
func (d *Dialog) Cancelled() bool { return d.cancelled }

// Resume clears a pending cancellation.
func (d *Dialog) Resume() { d.cancelled = false }

func (d *Dialog) advanceFocus() (*Dialog, tea.Cmd) {
	if len(d.fields) == 0 {
		return d, nil
	}

	next := d.focusedField + 1
	if next >= len(d.fields) {
		// Past the last field: submit
		return d, submitCmd
	}

	d.fields[d.focusedField].Blur()
	d.focusedField = next
	cmd := d.fields[d.focusedField].Focus()
	return d, cmd
}

func (d *Dialog) retreatFocus() (*Dialog, tea.Cmd) {
	if len(d.fields) == 0 || d.focusedField == 0 {
		return d, nil
	}

	d.fields[d.focusedField].Blur()
	d.focusedField--
	cmd := d.fields[d.focusedField].Focus()
	return d, cmd
}

func (d *Dialog) updateFocusedField(msg tea.Msg) (*Dialog, tea.Cmd) {
	if len(d.fields) == 0 {
		return d, nil
	}

	var cmd tea.Cmd
	d.fields[d.focusedField], cmd = d.fields[d.focusedField].Update(msg)
	return d, cmd
}

func (d *Dialog) isFocusedFieldFiltering() bool {
	if len(d.fields) == 0 {
		return false
	}
	if f, ok := d.fields[d.focusedField].(filterer); ok {
		return f.IsFiltering()
	}
	return false
}
