package registration

import "github.com/colonyops/regform/internal/core/notify"

// Reduce is the single transition function of the form. It returns the next
// state and at most one effect for the caller to run.
func Reduce(s FormState, ev Event) (FormState, Effect) {
	switch ev := ev.(type) {
	case Initialized:
		s = s.withRoster(s.Settings.Sizes.Default)
		return s.evaluate(), nil

	case TeamSizeChanged:
		size, err := s.Settings.Sizes.Resolve(ev.Size)
		if err != nil {
			return s, notifyEffect(notify.LevelWarning, err.Error())
		}
		s = s.withRoster(size)
		return s.evaluate(), nil

	case FieldChanged:
		if !s.HasField(ev.ID) {
			return s, nil
		}
		s = s.withValue(ev.ID, ev.Value)
		return s.evaluate(), nil

	case FileSelected:
		f := ev.File
		s.File = &f
		return s.evaluate(), nil

	case FileCleared:
		s.File = nil
		return s.evaluate(), nil

	case SubmitRequested:
		return requestSubmit(s)

	case SubmitFinished:
		return finishSubmit(s, ev)
	}

	return s, nil
}

func requestSubmit(s FormState) (FormState, Effect) {
	if s.Phase == PhaseSubmitting || !s.Submit.Enabled || !s.Result.Valid() {
		return s, nil
	}

	sub, err := BuildPayload(s)
	if err != nil {
		return s, notifyEffect(notify.LevelError, MsgSubmitRejected)
	}

	s.Phase = PhaseSubmitting
	s.Submit = SubmitControl{Enabled: false, Label: LabelSubmitting}
	return s, SendSubmission{Submission: sub}
}

func finishSubmit(s FormState, ev SubmitFinished) (FormState, Effect) {
	if s.Phase != PhaseSubmitting {
		return s, nil
	}
	s.Phase = PhaseIdle

	if ev.Err != nil {
		return s.evaluate(), notifyEffect(notify.LevelError, failureMessage(ev.Err))
	}

	s = s.reset()
	return s.evaluate(), notifyEffect(notify.LevelInfo, MsgSubmitted)
}
