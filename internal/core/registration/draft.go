package registration

// Draft is a pre-filled registration, as read by the headless submit command.
type Draft struct {
	TeamName  string         `json:"teamName"`
	TeamSize  int            `json:"teamSize"`
	ProblemID string         `json:"problemId"`
	Domain    string         `json:"domain"`
	Members   []MemberRecord `json:"members"`
	Abstract  string         `json:"abstract"` // path to the abstract file
}

// Events replays the draft as the edits a user would make: pick the team
// size, then fill every field. Members beyond the team size have no inputs
// and are dropped by Reduce. A zero team size keeps the default.
func (d Draft) Events() []Event {
	var events []Event
	if d.TeamSize != 0 {
		events = append(events, TeamSizeChanged{Size: d.TeamSize})
	}

	events = append(events,
		FieldChanged{ID: FieldTeamName, Value: d.TeamName},
		FieldChanged{ID: FieldProblemID, Value: d.ProblemID},
		FieldChanged{ID: FieldDomain, Value: d.Domain},
	)

	for i, m := range d.Members {
		events = append(events,
			FieldChanged{ID: MemberFieldID(MemberName, i), Value: m.Name},
			FieldChanged{ID: MemberFieldID(MemberEmail, i), Value: m.Email},
			FieldChanged{ID: MemberFieldID(MemberPhone, i), Value: m.Phone},
			FieldChanged{ID: MemberFieldID(MemberAffiliation, i), Value: m.Affiliation},
		)
	}

	return events
}
