package form

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
)

func TestTextField(t *testing.T) {
	t.Run("creation with defaults", func(t *testing.T) {
		f := NewTextField("name0", "Name", "enter name", "")
		assert.Equal(t, "Name", f.Label())
		assert.Equal(t, "name0", f.ID())
		assert.Empty(t, f.Value())
		assert.False(t, f.Focused())
	})

	t.Run("creation with default value", func(t *testing.T) {
		f := NewTextField("name0", "Name", "enter name", "hello")
		assert.Equal(t, "hello", f.Value())
	})

	t.Run("focus and blur", func(t *testing.T) {
		f := NewTextField("name0", "Name", "", "")
		assert.False(t, f.Focused())

		f.Focus()
		assert.True(t, f.Focused())

		f.Blur()
		assert.False(t, f.Focused())
	})

	t.Run("focus returns a cmd", func(t *testing.T) {
		f := NewTextField("name0", "Name", "", "")
		cmd := f.Focus()
		assert.NotNil(t, cmd)
	})

	t.Run("update ignored when not focused", func(t *testing.T) {
		f := NewTextField("name0", "Name", "", "")
		field, cmd := f.Update(tea.KeyPressMsg(tea.Key{Code: 'a', Text: "a"}))
		assert.Nil(t, cmd)
		assert.Empty(t, field.Value())
	})

	t.Run("typing when focused", func(t *testing.T) {
		f := NewTextField("name0", "Name", "", "")
		f.Focus()
		f.Update(tea.KeyPressMsg(tea.Key{Code: 'a', Text: "a"}))
		f.Update(tea.KeyPressMsg(tea.Key{Code: 'b', Text: "b"}))
		assert.Equal(t, "ab", f.Value())
	})

	t.Run("set value", func(t *testing.T) {
		f := NewTextField("name0", "Name", "", "")
		f.SetValue("typed text")
		assert.Equal(t, "typed text", f.Value())
	})

	t.Run("view renders label", func(t *testing.T) {
		f := NewTextField("name0", "Name", "placeholder", "")
		view := f.View()
		assert.Contains(t, view, "Name")
	})

	t.Run("view renders error", func(t *testing.T) {
		f := NewTextField("name0", "Name", "", "")
		f.SetError("Name is required")
		assert.Equal(t, "Name is required", f.Error())
		assert.Contains(t, f.View(), "Name is required")

		f.SetError("")
		assert.NotContains(t, f.View(), "required")
	})

	t.Run("view changes with focus", func(t *testing.T) {
		f := NewTextField("name0", "Name", "", "")
		unfocused := f.View()

		f.Focus()
		focused := f.View()

		assert.NotEqual(t, unfocused, focused)
	})
}
