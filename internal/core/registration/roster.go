package registration

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
)

// Identifiers and labels of the team-level fields.
const (
	FieldTeamName  = "teamName"
	FieldProblemID = "problemId"
	FieldDomain    = "domain"
)

// Member field prefixes. The identifier of member i's field is prefix + i.
const (
	MemberName        = "name"
	MemberEmail       = "email"
	MemberPhone       = "phone"
	MemberAffiliation = "college"
)

// ErrTeamSizeNotAllowed is returned for a team size outside the configured options.
var ErrTeamSizeNotAllowed = errors.New("team size not allowed")

// TeamSizes is the bounded set of selectable team sizes.
type TeamSizes struct {
	Options []int
	Default int
}

// DefaultTeamSizes allows teams of one to four members, defaulting to four.
func DefaultTeamSizes() TeamSizes {
	return TeamSizes{Options: []int{1, 2, 3, 4}, Default: 4}
}

// Resolve returns n when it is one of the options. Sizes outside the set are
// rejected, never clamped.
func (t TeamSizes) Resolve(n int) (int, error) {
	if !slices.Contains(t.Options, n) {
		return 0, fmt.Errorf("%w: %d (allowed: %v)", ErrTeamSizeNotAllowed, n, t.Options)
	}
	return n, nil
}

// Labels returns the options formatted for a select input.
func (t TeamSizes) Labels() []string {
	out := make([]string, len(t.Options))
	for i, n := range t.Options {
		out[i] = strconv.Itoa(n)
	}
	return out
}

// MemberGroup is the field group for one roster slot.
type MemberGroup struct {
	Index       int
	Label       string
	Name        FieldConstraint
	Email       FieldConstraint
	Phone       FieldConstraint
	Affiliation FieldConstraint
}

// Constraints returns the group's four constraints in display order.
func (g MemberGroup) Constraints() []FieldConstraint {
	return []FieldConstraint{g.Name, g.Email, g.Phone, g.Affiliation}
}

// MemberFieldID returns the identifier of a member field, e.g. "email2".
func MemberFieldID(prefix string, index int) string {
	return prefix + strconv.Itoa(index)
}

// BuildRoster returns size freshly declared member groups. Identifiers derive
// only from the slot index, so the same size always yields the same roster.
func BuildRoster(size int) []MemberGroup {
	if size < 0 {
		size = 0
	}

	roster := make([]MemberGroup, size)
	for i := range roster {
		roster[i] = MemberGroup{
			Index:       i,
			Label:       fmt.Sprintf("Member %d", i+1),
			Name:        NewConstraint(MemberFieldID(MemberName, i), "Name", KindText, 2),
			Email:       NewConstraint(MemberFieldID(MemberEmail, i), "Email", KindEmail, 0),
			Phone:       NewConstraint(MemberFieldID(MemberPhone, i), "Phone Number", KindPhone, 0),
			Affiliation: NewConstraint(MemberFieldID(MemberAffiliation, i), "College Name", KindText, 3),
		}
	}
	return roster
}

// TeamConstraints returns the team-level field constraints.
func TeamConstraints() []FieldConstraint {
	return []FieldConstraint{
		NewConstraint(FieldTeamName, "Team Name", KindText, 2),
		NewConstraint(FieldProblemID, "Problem ID", KindText, 0),
		NewConstraint(FieldDomain, "Domain", KindOther, 0),
	}
}

// RosterConstraints flattens the constraints of every group in roster order.
func RosterConstraints(roster []MemberGroup) []FieldConstraint {
	out := make([]FieldConstraint, 0, len(roster)*4)
	for _, g := range roster {
		out = append(out, g.Constraints()...)
	}
	return out
}
