package styles

import (
	"fmt"
	"time"
)

// FormatClock renders a wall-clock instant as HH:MM:SS.
func FormatClock(t time.Time) string {
	return t.Format("15:04:05")
}

// FormatOffset renders a signed offset from an exam start as [+M:SS] or
// [-M:SS]. Offsets at or past the hour widen to H:MM:SS.
func FormatOffset(d time.Duration) string {
	sign := "+"
	if d < 0 {
		sign = "-"
		d = -d
	}
	total := int(d / time.Second)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%s%d:%02d:%02d", sign, h, m, s)
	}
	return fmt.Sprintf("%s%d:%02d", sign, m, s)
}

// FormatCountdown renders a duration until a future instant as "in 5m 30s",
// or "now" once it arrives.
func FormatCountdown(d time.Duration) string {
	if d <= 0 {
		return "now"
	}
	total := int(d.Round(time.Second) / time.Second)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	switch {
	case h > 0:
		return fmt.Sprintf("in %dh %dm", h, m)
	case m > 0:
		return fmt.Sprintf("in %dm %ds", m, s)
	default:
		return fmt.Sprintf("in %ds", s)
	}
}

// FormatMinutes renders a whole-minute duration, e.g. "2h 30m" or "45m".
func FormatMinutes(minutes int) string {
	if minutes >= 60 {
		if minutes%60 == 0 {
			return fmt.Sprintf("%dh", minutes/60)
		}
		return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
	}
	return fmt.Sprintf("%dm", minutes)
}
