package schedule

import (
	"time"

	"github.com/proctorhq/proctor/internal/exam/domain"
)

// Summary is the scheduler status shown to the operator: either the playing
// announcement with elapsed/remaining seconds, or the next pending one with
// a countdown.
type Summary struct {
	// Playing is true while an announcement is in flight; the Elapsed /
	// Total / Remaining fields are only meaningful then.
	Playing          bool
	Label            string
	SubjectName      string
	ElapsedSeconds   int
	TotalSeconds     int
	RemainingSeconds int

	// HasNext is true when a pending announcement exists; Until is how long
	// until its play instant (negative once due).
	HasNext     bool
	NextLabel   string
	NextSubject string
	Until       time.Duration
}

// Summary reports the current scheduler status at the clock's current time.
func (s *Scheduler) Summary() Summary {
	now := s.clock.Now()

	if s.isPlaying() {
		elapsed := int(now.Sub(s.startedAt).Seconds())
		total := int(s.sink.Duration(s.current.AudioRef))
		remaining := total - elapsed
		if remaining < 0 {
			remaining = 0
		}
		return Summary{
			Playing:          true,
			Label:            s.current.Label,
			SubjectName:      s.current.SubjectName,
			ElapsedSeconds:   elapsed,
			TotalSeconds:     total,
			RemainingSeconds: remaining,
		}
	}

	if s.next != nil && s.next.Status() == domain.StatusUnplayed {
		return Summary{
			HasNext:     true,
			NextLabel:   s.next.Label,
			NextSubject: s.next.SubjectName,
			Until:       s.next.PlayAt.Sub(now),
		}
	}

	return Summary{}
}
