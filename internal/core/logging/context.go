package logging

import "context"

type contextKey string

const (
	submissionIDKey contextKey = "submission_id"
	teamKey         contextKey = "team"
)

// WithSubmissionID adds a submission ID to the context.
func WithSubmissionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, submissionIDKey, id)
}

// WithTeam adds the submitting team's name to the context.
func WithTeam(ctx context.Context, team string) context.Context {
	return context.WithValue(ctx, teamKey, team)
}

// GetSubmissionID retrieves the submission ID from the context.
// Returns empty string if not present.
func GetSubmissionID(ctx context.Context) string {
	if id, ok := ctx.Value(submissionIDKey).(string); ok {
		return id
	}
	return ""
}

// GetTeam retrieves the team name from the context.
// Returns empty string if not present.
func GetTeam(ctx context.Context) string {
	if team, ok := ctx.Value(teamKey).(string); ok {
		return team
	}
	return ""
}
