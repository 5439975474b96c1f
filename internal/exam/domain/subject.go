package domain

import (
	"strings"
	"time"
)

// DefaultDurationMinutes is used when the template source has no preset for
// a subject name.
const DefaultDurationMinutes = 90

// Subject is one scheduled exam session.
type Subject struct {
	// ID is process-unique, assigned on registration, monotonically
	// increasing and never reused. It is the identity instructions key on;
	// names are not unique across template reloads.
	ID int64 `json:"id"`

	// GUID is a stable identifier for persistence.
	GUID string `json:"guid"`

	Name            string    `json:"name"`
	StartTime       time.Time `json:"start_time"`
	DurationMinutes int       `json:"duration_minutes"`

	// DoubleSession selects the alternate template set for subjects examined
	// in two back-to-back sittings. It does not affect scheduling.
	DoubleSession bool `json:"double_session"`
}

// EndTime returns the scheduled end of the session.
func (s Subject) EndTime() time.Time {
	return s.StartTime.Add(time.Duration(s.DurationMinutes) * time.Minute)
}

// ParseStartTime parses an HH:MM clock time and anchors it to the date of
// ref in ref's location. Used by the add-subject form for same-day sessions.
func ParseStartTime(value string, ref time.Time) (time.Time, error) {
	clock, err := time.Parse("15:04", strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, &InvalidStartTimeError{Value: value}
	}
	return time.Date(ref.Year(), ref.Month(), ref.Day(),
		clock.Hour(), clock.Minute(), 0, 0, ref.Location()), nil
}

// ParseStartDateTime parses a YYYY-MM-DD date and an HH:MM clock time in the
// given location.
func ParseStartDateTime(date, clock string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02 15:04",
		strings.TrimSpace(date)+" "+strings.TrimSpace(clock), loc)
	if err != nil {
		return time.Time{}, &InvalidStartTimeError{Value: date + " " + clock}
	}
	return t, nil
}
