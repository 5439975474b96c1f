package domain

import "time"

// PlaybackStatus is the lifecycle state of an Instruction.
type PlaybackStatus string

const (
	StatusUnplayed PlaybackStatus = "unplayed"
	StatusPlaying  PlaybackStatus = "playing"
	StatusPlayed   PlaybackStatus = "played"
	StatusSkipped  PlaybackStatus = "skipped"
)

// Terminal reports whether the status admits no further transitions.
func (s PlaybackStatus) Terminal() bool {
	return s == StatusPlayed || s == StatusSkipped
}

// GraceWindow is the tolerance after which an untriggered instruction is
// abandoned (skipped) rather than played late.
const GraceWindow = 60 * time.Second

// Template is one announcement rule supplied by the template source:
// a time offset relative to the subject start, a display label, and an
// opaque audio resource reference. Offsets may arrive unsorted; negative
// offsets mean before the subject start.
type Template struct {
	OffsetSeconds int    `yaml:"offset_seconds"`
	Label         string `yaml:"label"`
	Audio         string `yaml:"audio"`
}

// Instruction is one timed spoken announcement tied to a subject.
// Its status field is mutated only through the Mark* transition methods,
// so an illegal transition (e.g. resurrecting a skipped instruction) cannot
// be expressed by callers.
type Instruction struct {
	SubjectID int64
	// SubjectName is carried for display only; SubjectID is the identity.
	SubjectName string
	Label       string
	PlayAt      time.Time
	AudioRef    string

	status PlaybackStatus
}

// NewInstruction creates an unplayed instruction.
func NewInstruction(subjectID int64, subjectName, label string, playAt time.Time, audioRef string) *Instruction {
	return &Instruction{
		SubjectID:   subjectID,
		SubjectName: subjectName,
		Label:       label,
		PlayAt:      playAt,
		AudioRef:    audioRef,
		status:      StatusUnplayed,
	}
}

// Status returns the current playback status.
func (i *Instruction) Status() PlaybackStatus {
	return i.status
}

// Due reports whether the play instant has been reached at now.
func (i *Instruction) Due(now time.Time) bool {
	return !i.PlayAt.After(now)
}

// Expired reports whether now is more than the grace window past the play
// instant. Expired instructions are skipped, never played late.
func (i *Instruction) Expired(now time.Time) bool {
	return now.Sub(i.PlayAt) > GraceWindow
}

// MarkPlaying transitions unplayed to playing.
func (i *Instruction) MarkPlaying() error {
	return i.transition(StatusPlaying)
}

// MarkPlayed transitions playing to played.
func (i *Instruction) MarkPlayed() error {
	return i.transition(StatusPlayed)
}

// MarkSkipped transitions unplayed to skipped.
func (i *Instruction) MarkSkipped() error {
	return i.transition(StatusSkipped)
}

func (i *Instruction) transition(to PlaybackStatus) error {
	if !validTransition(i.status, to) {
		return &InvalidTransitionError{From: i.status, To: to}
	}
	i.status = to
	return nil
}

func validTransition(from, to PlaybackStatus) bool {
	switch from {
	case StatusUnplayed:
		return to == StatusPlaying || to == StatusSkipped
	case StatusPlaying:
		return to == StatusPlayed
	default:
		// played and skipped are terminal
		return false
	}
}
