package form

import (
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tab() tea.Msg      { return tea.KeyPressMsg(tea.Key{Code: tea.KeyTab}) }
func shiftTab() tea.Msg { return tea.KeyPressMsg(tea.Key{Code: tea.KeyTab, Mod: tea.ModShift}) }

func isSubmit(t *testing.T, cmd tea.Cmd) bool {
	t.Helper()
	if cmd == nil {
		return false
	}
	_, ok := cmd().(SubmitMsg)
	return ok
}

func TestDialog(t *testing.T) {
	t.Run("creation focuses first field", func(t *testing.T) {
		f1 := NewTextField("name", "Name", "", "")
		f2 := NewTextField("email", "Email", "", "")
		d := NewDialog("Test", []Field{f1, f2})

		assert.True(t, f1.Focused())
		assert.False(t, f2.Focused())
		assert.Same(t, f1, d.Focused())
		assert.False(t, d.Cancelled())
	})

	t.Run("empty dialog", func(t *testing.T) {
		d := NewDialog("Empty", []Field{})
		assert.False(t, d.Cancelled())
		assert.Empty(t, d.FormValues())
		assert.Nil(t, d.Focused())

		_, cmd := d.Update(tab())
		assert.Nil(t, cmd)
	})

	t.Run("tab advances focus", func(t *testing.T) {
		f1 := NewTextField("a", "A", "", "")
		f2 := NewTextField("b", "B", "", "")
		f3 := NewTextField("c", "C", "", "")
		d := NewDialog("Test", []Field{f1, f2, f3})

		d.Update(tab())
		assert.False(t, f1.Focused())
		assert.True(t, f2.Focused())
		assert.False(t, f3.Focused())

		d.Update(tab())
		assert.False(t, f2.Focused())
		assert.True(t, f3.Focused())
	})

	t.Run("tab past last field submits", func(t *testing.T) {
		f1 := NewTextField("a", "A", "", "")
		d := NewDialog("Test", []Field{f1})

		_, cmd := d.Update(tab())
		assert.True(t, isSubmit(t, cmd))
		assert.True(t, f1.Focused())
	})

	t.Run("enter advances focus", func(t *testing.T) {
		f1 := NewTextField("a", "A", "", "")
		f2 := NewTextField("b", "B", "", "")
		d := NewDialog("Test", []Field{f1, f2})

		_, cmd := d.Update(tea.KeyPressMsg(tea.Key{Code: tea.KeyEnter}))
		assert.False(t, isSubmit(t, cmd))
		assert.True(t, f2.Focused())
	})

	t.Run("ctrl+s submits from any field", func(t *testing.T) {
		f1 := NewTextField("a", "A", "", "")
		f2 := NewTextField("b", "B", "", "")
		d := NewDialog("Test", []Field{f1, f2})

		_, cmd := d.Update(tea.KeyPressMsg(tea.Key{Code: 's', Mod: tea.ModCtrl}))
		assert.True(t, isSubmit(t, cmd))
		assert.True(t, f1.Focused())
	})

	t.Run("shift+tab retreats focus", func(t *testing.T) {
		f1 := NewTextField("a", "A", "", "")
		f2 := NewTextField("b", "B", "", "")
		d := NewDialog("Test", []Field{f1, f2})

		d.Update(tab())
		require.True(t, f2.Focused())

		d.Update(shiftTab())
		assert.True(t, f1.Focused())
		assert.False(t, f2.Focused())

		d.Update(shiftTab())
		assert.True(t, f1.Focused())
	})

	t.Run("escape cancels", func(t *testing.T) {
		d := NewDialog("Test", []Field{NewTextField("a", "A", "", "")})

		d.Update(tea.KeyPressMsg(tea.Key{Code: tea.KeyEscape}))
		assert.True(t, d.Cancelled())
	})

	t.Run("typing reaches the focused field", func(t *testing.T) {
		f1 := NewTextField("a", "A", "", "")
		f2 := NewTextField("b", "B", "", "")
		d := NewDialog("Test", []Field{f1, f2})

		d.Update(tab())
		d.Update(tea.KeyPressMsg(tea.Key{Code: 'x', Text: "x"}))
		assert.Equal(t, map[string]string{"a": "", "b": "x"}, d.FormValues())
	})

	t.Run("SetFields keeps focus index", func(t *testing.T) {
		d := NewDialog("Test", []Field{
			NewTextField("a", "A", "", ""),
			NewTextField("b", "B", "", ""),
			NewTextField("c", "C", "", ""),
		})
		d.Update(tab())

		replacement := []Field{NewTextField("a", "A", "", ""), NewTextField("z", "Z", "", "")}
		d.SetFields(replacement)
		assert.Equal(t, "z", d.Focused().ID())
		assert.True(t, replacement[1].Focused())

		d.SetFields(replacement[:1])
		assert.Equal(t, "a", d.Focused().ID())
	})

	t.Run("FocusID", func(t *testing.T) {
		f1 := NewTextField("a", "A", "", "")
		f2 := NewTextField("b", "B", "", "")
		d := NewDialog("Test", []Field{f1, f2})

		d.FocusID("b")
		assert.True(t, f2.Focused())
		assert.False(t, f1.Focused())

		assert.Nil(t, d.FocusID("missing"))
		assert.True(t, f2.Focused())
	})

	t.Run("view renders title sections and help", func(t *testing.T) {
		f1 := NewTextField("name", "Name", "enter name", "")
		f2 := NewSelectFormField("color", "Color", []string{"red", "blue"}, "")
		d := NewDialog("Test Form", []Field{f1, f2})
		d.SetSection("color", "Preferences")

		view := d.View()
		assert.Contains(t, view, "Test Form")
		assert.Contains(t, view, "Name")
		assert.Contains(t, view, "Preferences")
		assert.Contains(t, view, "Color")
		assert.Contains(t, view, "tab")
	})

	t.Run("view windows to height around focus", func(t *testing.T) {
		fields := make([]Field, 12)
		for i := range fields {
			fields[i] = NewTextField(fmt.Sprintf("f%d", i), fmt.Sprintf("Field %02d", i), "", "")
		}
		d := NewDialog("Tall", fields)
		d.SetHeight(16)

		view := d.View()
		assert.Contains(t, view, "Field 00")
		assert.NotContains(t, view, "Field 11")
		assert.Contains(t, view, "more")

		d.FocusID("f11")
		view = d.View()
		assert.Contains(t, view, "Field 11")
		assert.NotContains(t, view, "Field 00")
		assert.LessOrEqual(t, strings.Count(view, "\n")+1, 16+2)
	})
}
