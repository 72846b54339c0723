// Package registration implements the team registration form engine: field
// rules, the abstract file checker, the member roster, whole-form validity and
// the submission state machine. Everything in this package is pure; I/O is
// delegated to a Sender and a Publisher supplied by the caller.
package registration

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// FieldKind describes the input type of a field and selects its format pattern.
type FieldKind string

const (
	KindText  FieldKind = "text"
	KindEmail FieldKind = "email"
	KindPhone FieldKind = "phone"
	KindOther FieldKind = "other"
)

var (
	// EmailPattern accepts the general local@domain.tld shape.
	EmailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	// PhonePattern accepts exactly ten digits with no separators.
	PhonePattern = regexp.MustCompile(`^\d{10}$`)
)

// PatternFor returns the format pattern applied to a field kind, or nil when
// the kind has no format beyond required/min-length.
func PatternFor(kind FieldKind) *regexp.Regexp {
	switch kind {
	case KindEmail:
		return EmailPattern
	case KindPhone:
		return PhonePattern
	default:
		return nil
	}
}

// FieldConstraint holds the validation rules declared for one input. It is
// built once when the field is created and never modified afterwards.
type FieldConstraint struct {
	ID        string
	Label     string
	Kind      FieldKind
	Required  bool
	MinLength int // 0 means unset
	Pattern   *regexp.Regexp
}

// NewConstraint declares a required field of the given kind. The format
// pattern is derived from the kind.
func NewConstraint(id, label string, kind FieldKind, minLength int) FieldConstraint {
	return FieldConstraint{
		ID:        id,
		Label:     label,
		Kind:      kind,
		Required:  true,
		MinLength: minLength,
		Pattern:   PatternFor(kind),
	}
}

// CheckField validates value against c and returns the first failing rule's
// message, or "" when the value is valid.
func CheckField(value string, c FieldConstraint) string {
	if c.Required && value == "" {
		return fmt.Sprintf("%s is required", c.Label)
	}
	if c.MinLength > 0 && utf8.RuneCountInString(value) < c.MinLength {
		return fmt.Sprintf("%s must be at least %d characters", c.Label, c.MinLength)
	}
	if c.Pattern != nil && !c.Pattern.MatchString(value) {
		return "Invalid " + strings.ToLower(c.Label)
	}
	return ""
}
