package registration

// Submit control labels.
const (
	LabelSubmit     = "Submit"
	LabelIncomplete = "Please Fill All Required Fields"
	LabelSubmitting = "Submitting..."
)

// ValidationResult maps every evaluated field identifier to its error message
// ("" when valid) and carries the file slot outcome.
type ValidationResult struct {
	Fields map[string]string
	File   FileStatus
}

// Valid reports whether every field error is empty and the file check passed.
func (r ValidationResult) Valid() bool {
	if !r.File.OK {
		return false
	}
	for _, msg := range r.Fields {
		if msg != "" {
			return false
		}
	}
	return true
}

// Error returns the message recorded for a field.
func (r ValidationResult) Error(id string) string {
	return r.Fields[id]
}

// ErrorCount returns the number of failing fields, counting the file slot.
func (r ValidationResult) ErrorCount() int {
	n := 0
	for _, msg := range r.Fields {
		if msg != "" {
			n++
		}
	}
	if !r.File.OK {
		n++
	}
	return n
}

// Evaluate runs every constraint against its current value and checks the
// file. The result is always built from scratch.
func Evaluate(values map[string]string, constraints []FieldConstraint, file *FileSelection, rules FileRules) ValidationResult {
	res := ValidationResult{
		Fields: make(map[string]string, len(constraints)),
		File:   CheckFile(file, rules),
	}
	for _, c := range constraints {
		res.Fields[c.ID] = CheckField(values[c.ID], c)
	}
	return res
}

// SubmitControl is the enabled state and label of the submit affordance.
// Both change together.
type SubmitControl struct {
	Enabled bool
	Label   string
}

// ControlFor derives the idle submit control from validity.
func ControlFor(valid bool) SubmitControl {
	if valid {
		return SubmitControl{Enabled: true, Label: LabelSubmit}
	}
	return SubmitControl{Enabled: false, Label: LabelIncomplete}
}
