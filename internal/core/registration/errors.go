package registration

import (
	"errors"
	"fmt"
)

// ErrNotValid is returned when a payload is requested from an invalid form.
var ErrNotValid = errors.New("form is not valid")

// ErrNotSubmitted is returned when a submit request did not start a
// submission: the form was invalid, already in flight, or its payload could
// not be built.
var ErrNotSubmitted = errors.New("submission not started")

// RejectedError reports a non-success response from the submission endpoint.
type RejectedError struct {
	StatusCode int
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("submission rejected: status %d", e.StatusCode)
}

// TransportError reports a submission request that could not complete.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("submission transport: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// User-facing submission outcomes.
const (
	MsgSubmitted       = "Form submitted successfully!"
	MsgSubmitRejected  = "Error submitting form. Please try again later."
	MsgSubmitTransport = "Error submitting form. Please check your network connection and try again."
)

// failureMessage picks the notification text for a failed submission.
// Transport failures get the network-specific text, everything else the
// generic one.
func failureMessage(err error) string {
	var terr *TransportError
	if errors.As(err, &terr) {
		return MsgSubmitTransport
	}
	return MsgSubmitRejected
}
