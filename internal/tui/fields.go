package tui

import (
	"strconv"

	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/regform/internal/core/registration"
	"github.com/colonyops/regform/internal/tui/components/form"
)

// rebuildFields recreates every widget from the engine state. It runs on
// every roster generation: at startup, on team-size changes and after a
// successful reset.
func (m Model) rebuildFields() (Model, tea.Cmd) {
	var fields []form.Field

	for _, c := range registration.TeamConstraints() {
		if c.ID == registration.FieldDomain && len(m.domains) > 0 {
			fields = append(fields, form.NewSelectFormField(c.ID, c.Label, m.domains, m.state.Value(c.ID)))
			continue
		}
		fields = append(fields, form.NewTextField(c.ID, c.Label, placeholderFor(c), m.state.Value(c.ID)))
	}

	fields = append(fields, form.NewSelectFormField(
		fieldTeamSize,
		"Team Size",
		m.state.Settings.Sizes.Labels(),
		strconv.Itoa(m.state.TeamSize),
	))

	for _, g := range m.state.Roster {
		for _, c := range g.Constraints() {
			fields = append(fields, form.NewTextField(c.ID, c.Label, placeholderFor(c), m.state.Value(c.ID)))
		}
	}

	if m.state.File == nil {
		m.lastPath = ""
		m.loadSeq++
	}
	fields = append(fields, form.NewTextField(fieldAbstract, "Abstract", "enter a path, or drop a file here", m.lastPath))

	cmd := m.dialog.SetFields(fields)
	m.dialog.SetSection(registration.FieldTeamName, "Team")
	for _, g := range m.state.Roster {
		m.dialog.SetSection(g.Name.ID, g.Label)
	}
	m.dialog.SetSection(fieldAbstract, "Abstract ("+m.state.Settings.File.TypeLabel+")")

	// A select always shows an option; make the engine agree with it.
	for _, f := range fields {
		if _, ok := f.(*form.SelectFormField); !ok || f.ID() == fieldTeamSize {
			continue
		}
		if f.Value() != m.state.Value(f.ID()) {
			m.state, _ = registration.Reduce(m.state, registration.FieldChanged{ID: f.ID(), Value: f.Value()})
		}
	}

	m.syncErrors()
	return m, cmd
}

// syncErrors copies the current validation messages onto the widgets.
func (m Model) syncErrors() {
	for _, f := range m.dialog.Fields() {
		switch f.ID() {
		case fieldTeamSize:
		case fieldAbstract:
			f.SetError(m.state.Result.File.Error)
		default:
			f.SetError(m.state.Result.Error(f.ID()))
		}
	}
}

func placeholderFor(c registration.FieldConstraint) string {
	switch c.Kind {
	case registration.KindEmail:
		return "name@example.com"
	case registration.KindPhone:
		return "10 digits"
	}
	if c.MinLength > 0 {
		return "at least " + strconv.Itoa(c.MinLength) + " characters"
	}
	return ""
}
