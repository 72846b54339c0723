// Package notify defines user-facing notifications and a synchronous bus
// that fans them out to subscribers.
package notify

import "time"

// Level represents the severity of a notification.
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notification is a single message surfaced to the user.
type Notification struct {
	Level     Level
	Message   string
	CreatedAt time.Time
}
