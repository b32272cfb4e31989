package timer

import "errors"

var (
	// ErrMissingTask rejects starting or saving a Stopwatch/Countdown run without a task label.
	ErrMissingTask = errors.New("missing task")
	// ErrZeroDuration rejects a Countdown with nothing left to count, or a zero-length session.
	ErrZeroDuration = errors.New("zero duration")
	// ErrInvalidTransition rejects a mode switch while the timer is running.
	ErrInvalidTransition = errors.New("pause the timer before changing mode")
	// ErrConfirmationRequired asks the caller to confirm resetting a running timer.
	ErrConfirmationRequired = errors.New("reset needs confirmation")
	// ErrAwaitingChoice rejects commands while a completion prompt is unanswered.
	ErrAwaitingChoice = errors.New("waiting for a completion choice")
	// ErrUnknownChoice rejects a choice the pending completion did not offer.
	ErrUnknownChoice = errors.New("choice not offered")
)

// IsValidation reports whether err is a recoverable input problem
// rather than a storage failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrMissingTask) || errors.Is(err, ErrZeroDuration)
}
