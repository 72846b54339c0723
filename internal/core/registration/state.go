package registration

import "maps"

// Settings are the deployment-defined options of the form.
type Settings struct {
	Sizes TeamSizes
	File  FileRules
}

// DefaultSettings returns the stock team sizes and file rules.
func DefaultSettings() Settings {
	return Settings{
		Sizes: DefaultTeamSizes(),
		File:  DefaultFileRules(),
	}
}

// Phase is the submission orchestrator state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSubmitting
)

func (p Phase) String() string {
	if p == PhaseSubmitting {
		return "submitting"
	}
	return "idle"
}

// FormState is the complete state of one registration form. It is treated as
// a value: Reduce returns a new state and never mutates its input.
type FormState struct {
	Settings Settings

	TeamSize int
	Roster   []MemberGroup
	// Generation increments every time the roster is rebuilt, letting a
	// renderer know its inputs must be recreated.
	Generation int

	Values map[string]string
	File   *FileSelection

	Result ValidationResult
	Submit SubmitControl
	Phase  Phase
}

// New returns an initialised form at the default team size.
func New(settings Settings) FormState {
	s, _ := Reduce(FormState{Settings: settings}, Initialized{})
	return s
}

// Constraints returns every constraint of the current form in display order:
// team fields first, then each member group.
func (s FormState) Constraints() []FieldConstraint {
	return append(TeamConstraints(), RosterConstraints(s.Roster)...)
}

// HasField reports whether id belongs to a current input.
func (s FormState) HasField(id string) bool {
	for _, c := range s.Constraints() {
		if c.ID == id {
			return true
		}
	}
	return false
}

// Value returns the current value of a field.
func (s FormState) Value(id string) string {
	return s.Values[id]
}

// Valid reports whole-form validity.
func (s FormState) Valid() bool {
	return s.Result.Valid()
}

// withRoster replaces the roster, dropping every member value. Team-level
// values survive.
func (s FormState) withRoster(size int) FormState {
	team := make(map[string]string, len(s.Values))
	for _, c := range TeamConstraints() {
		if v, ok := s.Values[c.ID]; ok {
			team[c.ID] = v
		}
	}

	s.TeamSize = size
	s.Roster = BuildRoster(size)
	s.Values = team
	s.Generation++
	return s
}

// withValue returns a copy of s with one field value replaced.
func (s FormState) withValue(id, value string) FormState {
	values := maps.Clone(s.Values)
	if values == nil {
		values = map[string]string{}
	}
	values[id] = value
	s.Values = values
	return s
}

// reset clears every value and the file, and rebuilds the roster at the
// default size.
func (s FormState) reset() FormState {
	s.Values = map[string]string{}
	s.File = nil
	return s.withRoster(s.Settings.Sizes.Default)
}

// evaluate recomputes validity from scratch. While a submission is in flight
// the control stays disabled regardless of validity.
func (s FormState) evaluate() FormState {
	s.Result = Evaluate(s.Values, s.Constraints(), s.File, s.Settings.File)
	if s.Phase == PhaseSubmitting {
		s.Submit = SubmitControl{Enabled: false, Label: LabelSubmitting}
	} else {
		s.Submit = ControlFor(s.Result.Valid())
	}
	return s
}
