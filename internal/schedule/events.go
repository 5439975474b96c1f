package schedule

import (
	"time"

	"github.com/proctorhq/proctor/internal/exam/domain"
)

// EventType categorizes scheduler state changes.
type EventType string

const (
	// EventTriggered indicates an instruction started playing.
	EventTriggered EventType = "announcement.triggered"

	// EventCompleted indicates a playing instruction was retired, either
	// because its elapsed time reached the queried duration, because its
	// duration was unknown and completion was presumed, or because a new
	// trigger pre-empted it.
	EventCompleted EventType = "announcement.completed"

	// EventExpired indicates an unplayed instruction aged past the grace
	// window and was skipped.
	EventExpired EventType = "announcement.expired"

	// EventFastForwarded indicates an unplayed instruction was skipped
	// because a manual play targeted a later timeline position.
	EventFastForwarded EventType = "announcement.fast_forwarded"
)

// Event describes one scheduler state change.
type Event struct {
	Type        EventType
	Instruction *domain.Instruction
	Index       int
	At          time.Time

	// Manual is set on EventTriggered when the trigger came from the
	// operator rather than the clock.
	Manual bool

	// Presumed is set on EventCompleted when the audio duration was unknown
	// and playback was optimistically presumed complete.
	Presumed bool

	// Preempted is set on EventCompleted when a new trigger retired the
	// instruction before its duration elapsed.
	Preempted bool
}

// EventCallback receives scheduler events. Callbacks run synchronously on
// the scheduler's single writer, so they must not block.
type EventCallback func(Event)
