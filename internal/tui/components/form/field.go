package form

import (
	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/regform/internal/core/styles"
)

// Field is the interface implemented by all form field types.
type Field interface {
	Update(msg tea.Msg) (Field, tea.Cmd)
	View() string
	Focus() tea.Cmd
	Blur()
	Focused() bool
	ID() string    // identifier of the value the field edits
	Value() string
	Label() string // Display label for the field
	SetError(msg string)
	Error() string
}

// renderError appends the error line below content when msg is set.
func renderError(content, msg string) string {
	if msg == "" {
		return content
	}
	return content + "\n" + styles.FormErrorStyle.Render(msg)
}
