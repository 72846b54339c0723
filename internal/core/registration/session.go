package registration

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/colonyops/regform/internal/core/logging"
	"github.com/colonyops/regform/internal/core/notify"
)

// Sender performs the submission network call.
type Sender interface {
	Send(ctx context.Context, sub Submission) (Receipt, error)
}

// Publisher surfaces notifications to the user.
type Publisher interface {
	Publish(n notify.Notification)
}

// Session drives a FormState synchronously: it feeds events through Reduce
// and runs the resulting effects inline. One Session serves one form and is
// not safe for concurrent use; the in-flight phase is its only guard.
type Session struct {
	state  FormState
	sender Sender
	pub    Publisher
	logger zerolog.Logger

	receipt Receipt // from the last accepted submission
}

// NewSession creates a session with an initialised form.
func NewSession(settings Settings, sender Sender, pub Publisher, logger zerolog.Logger) *Session {
	return &Session{
		state:  New(settings),
		sender: sender,
		pub:    pub,
		logger: logger,
	}
}

// State returns the current form state.
func (s *Session) State() FormState {
	return s.state
}

// LastReceipt returns the receipt of the most recent accepted submission.
func (s *Session) LastReceipt() Receipt {
	return s.receipt
}

// Dispatch applies ev and runs its effect. The returned error is the
// submission failure, if ev triggered one; validation problems are never
// returned as errors.
func (s *Session) Dispatch(ctx context.Context, ev Event) error {
	prev := s.state
	next, eff := Reduce(s.state, ev)
	s.state = next

	if next.Generation != prev.Generation {
		s.logger.Debug().
			Int("team_size", next.TeamSize).
			Int("generation", next.Generation).
			Msg("roster rebuilt")
	}
	if fs, ok := ev.(FileSelected); ok {
		s.logger.Debug().
			Str("name", fs.File.Name).
			Str("mime_type", fs.File.MimeType).
			Int64("size", fs.File.Size).
			Str("source", string(fs.Source)).
			Bool("ok", next.Result.File.OK).
			Msg("abstract selected")
	}

	return s.run(ctx, eff)
}

// Submit requests a submission and waits for it. Unlike dispatching
// SubmitRequested, a request that sends nothing is an error.
func (s *Session) Submit(ctx context.Context) (Receipt, error) {
	next, eff := Reduce(s.state, SubmitRequested{})
	s.state = next

	if _, ok := eff.(SendSubmission); !ok {
		if err := s.run(ctx, eff); err != nil {
			return Receipt{}, err
		}
		return Receipt{}, ErrNotSubmitted
	}
	if err := s.run(ctx, eff); err != nil {
		return Receipt{}, err
	}
	return s.receipt, nil
}

func (s *Session) run(ctx context.Context, eff Effect) error {
	switch eff := eff.(type) {
	case nil:
		return nil

	case Notify:
		if s.pub != nil {
			s.pub.Publish(eff.Notification)
		}
		return nil

	case SendSubmission:
		sendCtx := logging.WithTeam(ctx, eff.Submission.Payload.TeamName)
		s.logger.Info().Ctx(sendCtx).
			Int("team_size", eff.Submission.Payload.TeamSize).
			Msg("submission started")

		receipt, err := s.sender.Send(sendCtx, eff.Submission)
		if err != nil {
			s.logger.Warn().Ctx(sendCtx).Err(err).Msg("submission failed")
		} else {
			s.receipt = receipt
			s.logger.Info().Ctx(logging.WithSubmissionID(sendCtx, receipt.ID)).
				Int("status", receipt.StatusCode).
				Msg("submission finished")
		}

		if ferr := s.Dispatch(ctx, SubmitFinished{Receipt: receipt, Err: err}); ferr != nil {
			return ferr
		}
		return err
	}

	return nil
}
