package domain

import "fmt"

// InvalidStartTimeError indicates a start time or date string that could not
// be parsed. Raised at the presentation boundary; the scheduler never sees
// a subject with an invalid start instant.
type InvalidStartTimeError struct {
	Value string
}

// Error implements the error interface.
func (e *InvalidStartTimeError) Error() string {
	return fmt.Sprintf("invalid start time %q (want HH:MM or YYYY-MM-DD HH:MM)", e.Value)
}

// InvalidDurationError indicates a subject with a nonsensical duration.
// Generating instructions from such a subject is a precondition violation.
type InvalidDurationError struct {
	Subject string
	Minutes int
}

// Error implements the error interface.
func (e *InvalidDurationError) Error() string {
	return fmt.Sprintf("subject %q has invalid duration %d minutes", e.Subject, e.Minutes)
}

// InvalidTransitionError indicates an attempt to move an instruction's
// playback status along an edge the state machine does not have.
type InvalidTransitionError struct {
	From PlaybackStatus
	To   PlaybackStatus
}

// Error implements the error interface.
func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid playback transition %s -> %s", e.From, e.To)
}
