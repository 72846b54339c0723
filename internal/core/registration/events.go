package registration

import "github.com/colonyops/regform/internal/core/notify"

// Event is a user or network action consumed by Reduce.
type Event interface {
	event()
}

// Initialized builds the roster at the default size and runs the first evaluation.
type Initialized struct{}

// TeamSizeChanged is a new team-size selection.
type TeamSizeChanged struct {
	Size int
}

// FieldChanged is an edit to one input.
type FieldChanged struct {
	ID    string
	Value string
}

// FileSelected replaces the abstract selection.
type FileSelected struct {
	File   FileSelection
	Source FileSource
}

// FileCleared removes the abstract selection.
type FileCleared struct{}

// SubmitRequested is an explicit submit intent.
type SubmitRequested struct{}

// SubmitFinished reports the outcome of the network call. Err is nil on success.
type SubmitFinished struct {
	Receipt Receipt
	Err     error
}

func (Initialized) event()     {}
func (TeamSizeChanged) event() {}
func (FieldChanged) event()    {}
func (FileSelected) event()    {}
func (FileCleared) event()     {}
func (SubmitRequested) event() {}
func (SubmitFinished) event()  {}

// Effect is work requested by a transition that Reduce cannot perform itself.
type Effect interface {
	effect()
}

// SendSubmission asks the driver to POST the submission and report back
// with SubmitFinished.
type SendSubmission struct {
	Submission Submission
}

// Notify asks the driver to surface a message to the user.
type Notify struct {
	Notification notify.Notification
}

func (SendSubmission) effect() {}
func (Notify) effect()         {}

func notifyEffect(level notify.Level, msg string) Notify {
	return Notify{Notification: notify.Notification{Level: level, Message: msg}}
}
