package app

import (
	"bytes"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/stretchr/testify/require"

	"github.com/proctorhq/proctor/internal/exam/domain"
)

func TestProgram_RendersAndQuits(t *testing.T) {
	clock := newFakeClock(examDay(8, 0))
	repo := newMemRepo()
	require.NoError(t, repo.Save(&domain.Subject{
		Name: "Mathematics", StartTime: examDay(9, 0), DurationMinutes: 120,
	}))

	tm := teatest.NewTestModel(t, newTestModel(t, clock, repo),
		teatest.WithInitialTermSize(110, 32))

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("Announcements")) &&
			bytes.Contains(out, []byte("Mathematics"))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	tm.WaitFinished(t, teatest.WithFinalTimeout(3*time.Second))
}
