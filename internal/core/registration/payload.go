package registration

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var payloadValidator = validator.New()

// MemberRecord is one team member as sent to the endpoint.
type MemberRecord struct {
	Name        string `json:"name"    validate:"required,min=2"`
	Email       string `json:"email"   validate:"required,contains=@"`
	Phone       string `json:"phone"   validate:"required,len=10,numeric"`
	Affiliation string `json:"college" validate:"required,min=3"`
}

// Payload is the JSON part of a submission.
type Payload struct {
	TeamName  string         `json:"teamName"  validate:"required"`
	TeamSize  int            `json:"teamSize"  validate:"required,min=1"`
	Members   []MemberRecord `json:"members"   validate:"required,dive"`
	ProblemID string         `json:"problemId" validate:"required"`
	Domain    string         `json:"domain"    validate:"required"`
}

// Submission is everything needed for one POST.
type Submission struct {
	Payload Payload
	File    FileSelection
}

// Receipt describes an accepted submission.
type Receipt struct {
	ID         string
	StatusCode int
	Body       []byte
}

// BuildPayload assembles the submission from the current state. It refuses
// to build anything from an invalid form.
func BuildPayload(s FormState) (Submission, error) {
	if !s.Result.Valid() || s.File == nil {
		return Submission{}, ErrNotValid
	}

	p := Payload{
		TeamName:  s.Values[FieldTeamName],
		TeamSize:  s.TeamSize,
		Members:   make([]MemberRecord, 0, len(s.Roster)),
		ProblemID: s.Values[FieldProblemID],
		Domain:    s.Values[FieldDomain],
	}
	for _, g := range s.Roster {
		p.Members = append(p.Members, MemberRecord{
			Name:        s.Values[g.Name.ID],
			Email:       s.Values[g.Email.ID],
			Phone:       s.Values[g.Phone.ID],
			Affiliation: s.Values[g.Affiliation.ID],
		})
	}

	if len(p.Members) != p.TeamSize {
		return Submission{}, fmt.Errorf("build payload: %d members for team size %d", len(p.Members), p.TeamSize)
	}
	if err := payloadValidator.Struct(p); err != nil {
		return Submission{}, fmt.Errorf("build payload: %w", err)
	}

	return Submission{Payload: p, File: *s.File}, nil
}
