package app

import (
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proctorhq/proctor/internal/audio"
	"github.com/proctorhq/proctor/internal/exam/domain"
	"github.com/proctorhq/proctor/internal/schedule"
	"github.com/proctorhq/proctor/internal/templates"
	"github.com/proctorhq/proctor/internal/ui/subjects"
)

// fakeClock is a manually advanced clock.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock(t time.Time) *fakeClock {
	return &fakeClock{t: t}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// memRepo is an in-memory SubjectRepository.
type memRepo struct {
	nextID   int64
	subjects map[int64]domain.Subject
}

func newMemRepo() *memRepo {
	return &memRepo{subjects: map[int64]domain.Subject{}}
}

func (r *memRepo) Save(s *domain.Subject) error {
	r.nextID++
	s.ID = r.nextID
	r.subjects[s.ID] = *s
	return nil
}

func (r *memRepo) List() ([]domain.Subject, error) {
	out := make([]domain.Subject, 0, len(r.subjects))
	for _, s := range r.subjects {
		out = append(out, s)
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].StartTime.Equal(out[b].StartTime) {
			return out[a].ID < out[b].ID
		}
		return out[a].StartTime.Before(out[b].StartTime)
	})
	return out, nil
}

func (r *memRepo) Delete(id int64) error {
	delete(r.subjects, id)
	return nil
}

func newTestModel(t *testing.T, clock *fakeClock, repo *memRepo) *Model {
	t.Helper()
	source, err := templates.Load("")
	require.NoError(t, err)

	sched := schedule.New(schedule.Config{Sink: audio.Nop{}, Clock: clock})
	m, err := New(Deps{
		Scheduler: sched,
		Repo:      repo,
		Source:    source,
		Player:    audio.Nop{},
		Clock:     clock,
	})
	require.NoError(t, err)
	m.Update(tea.WindowSizeMsg{Width: 110, Height: 32})
	return m
}

func tick(m *Model, clock *fakeClock, d time.Duration) {
	clock.Advance(d)
	m.Update(tickMsg(clock.Now()))
}

func examDay(hour, minute int) time.Time {
	return time.Date(2026, 6, 15, hour, minute, 0, 0, time.UTC)
}

func TestNew_SchedulesStoredSubjects(t *testing.T) {
	clock := newFakeClock(examDay(8, 0))
	repo := newMemRepo()
	require.NoError(t, repo.Save(&domain.Subject{
		Name: "Mathematics", StartTime: examDay(9, 0), DurationMinutes: 120,
	}))

	m := newTestModel(t, clock, repo)

	// The built-in Mathematics set has five announcements.
	assert.Equal(t, 5, m.deps.Scheduler.Timeline().Len())
	assert.Len(t, m.timeline.Rows(), 5)
}

func TestTick_TriggersAndPresumesCompletion(t *testing.T) {
	clock := newFakeClock(examDay(8, 44).Add(50 * time.Second))
	repo := newMemRepo()
	require.NoError(t, repo.Save(&domain.Subject{
		Name: "Mathematics", StartTime: examDay(9, 0), DurationMinutes: 120,
	}))
	m := newTestModel(t, clock, repo)

	// First announcement is the 15-minute call at 08:45:00.
	tick(m, clock, 10*time.Second)
	first := m.deps.Scheduler.Timeline().At(0)
	assert.Equal(t, domain.StatusPlaying, first.Status())

	// Nop durations are unknown, so the next tick presumes completion.
	tick(m, clock, time.Second)
	assert.Equal(t, domain.StatusPlayed, first.Status())
}

func TestSubmitMsg_AddsSubjectToRosterAndTimeline(t *testing.T) {
	clock := newFakeClock(examDay(8, 0))
	repo := newMemRepo()
	m := newTestModel(t, clock, repo)

	m.Update(subjects.SubmitMsg{Subject: domain.Subject{
		Name: "English", StartTime: examDay(10, 0), DurationMinutes: 120,
	}})

	require.Len(t, m.roster, 1)
	assert.NotZero(t, m.roster[0].ID)
	assert.Equal(t, 5, m.deps.Scheduler.Timeline().Len())
}

func TestSubmit_UnknownSubjectLeavesNotice(t *testing.T) {
	clock := newFakeClock(examDay(8, 0))
	repo := newMemRepo()
	m := newTestModel(t, clock, repo)

	m.Update(subjects.SubmitMsg{Subject: domain.Subject{
		Name: "Underwater Basket Weaving", StartTime: examDay(10, 0), DurationMinutes: 60,
	}})

	assert.Len(t, m.roster, 1)
	assert.Zero(t, m.deps.Scheduler.Timeline().Len())
	assert.Contains(t, m.notice, "no announcement templates")
}

func TestView_OverlongNoticeStaysWithinWindow(t *testing.T) {
	clock := newFakeClock(examDay(8, 0))
	m := newTestModel(t, clock, newMemRepo())

	m.Update(subjects.SubmitMsg{Subject: domain.Subject{
		Name:            strings.Repeat("Interdisciplinary Studies ", 10),
		StartTime:       examDay(10, 0),
		DurationMinutes: 60,
	}})

	var noticeLine string
	for _, line := range strings.Split(m.View(), "\n") {
		if strings.Contains(line, "no announcement templates") {
			noticeLine = line
			break
		}
	}
	require.NotEmpty(t, noticeLine)
	assert.LessOrEqual(t, lipgloss.Width(noticeLine), 110)
	assert.Contains(t, noticeLine, "…")
}

func TestDeleteFlow_PurgesSubject(t *testing.T) {
	clock := newFakeClock(examDay(8, 0))
	repo := newMemRepo()
	require.NoError(t, repo.Save(&domain.Subject{
		Name: "Mathematics", StartTime: examDay(9, 0), DurationMinutes: 120,
	}))
	m := newTestModel(t, clock, repo)

	// Switch focus to the roster, request delete, confirm.
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	require.NotNil(t, m.confirmDelete)
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})

	assert.Empty(t, m.roster)
	assert.Zero(t, m.deps.Scheduler.Timeline().Len())
}

func TestDeleteFlow_DeclinedKeepsSubject(t *testing.T) {
	clock := newFakeClock(examDay(8, 0))
	repo := newMemRepo()
	require.NoError(t, repo.Save(&domain.Subject{
		Name: "Mathematics", StartTime: examDay(9, 0), DurationMinutes: 120,
	}))
	m := newTestModel(t, clock, repo)

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})

	assert.Nil(t, m.confirmDelete)
	assert.Len(t, m.roster, 1)
	assert.Equal(t, 5, m.deps.Scheduler.Timeline().Len())
}

func TestReloadTemplates_RebuildsTimeline(t *testing.T) {
	clock := newFakeClock(examDay(8, 44).Add(55 * time.Second))
	repo := newMemRepo()
	require.NoError(t, repo.Save(&domain.Subject{
		Name: "Mathematics", StartTime: examDay(9, 0), DurationMinutes: 120,
	}))
	m := newTestModel(t, clock, repo)

	// Let the first announcement trigger, then reload.
	tick(m, clock, 5*time.Second)
	require.Equal(t, domain.StatusPlaying, m.deps.Scheduler.Timeline().At(0).Status())

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})

	// A rebuilt timeline starts over with fresh unplayed instructions.
	assert.Equal(t, 5, m.deps.Scheduler.Timeline().Len())
	assert.Equal(t, domain.StatusUnplayed, m.deps.Scheduler.Timeline().At(0).Status())
	assert.Equal(t, -1, m.deps.Scheduler.CurrentIndex())
}

func TestManualPlay_FastForwardsEarlierAnnouncements(t *testing.T) {
	clock := newFakeClock(examDay(8, 0))
	repo := newMemRepo()
	require.NoError(t, repo.Save(&domain.Subject{
		Name: "Mathematics", StartTime: examDay(9, 0), DurationMinutes: 120,
	}))
	m := newTestModel(t, clock, repo)

	// Move the timeline cursor to the third announcement and play it.
	m.timeline.CursorDown()
	m.timeline.CursorDown()
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")})

	tl := m.deps.Scheduler.Timeline()
	assert.Equal(t, domain.StatusSkipped, tl.At(0).Status())
	assert.Equal(t, domain.StatusSkipped, tl.At(1).Status())
	assert.Equal(t, domain.StatusPlaying, tl.At(2).Status())
}

func TestQuitKey(t *testing.T) {
	clock := newFakeClock(examDay(8, 0))
	m := newTestModel(t, clock, newMemRepo())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestView_RendersAllPanels(t *testing.T) {
	clock := newFakeClock(examDay(8, 0))
	repo := newMemRepo()
	require.NoError(t, repo.Save(&domain.Subject{
		Name: "Mathematics", StartTime: examDay(9, 0), DurationMinutes: 120,
	}))
	m := newTestModel(t, clock, repo)
	m.refresh()

	out := m.View()

	assert.Contains(t, out, "Announcements")
	assert.Contains(t, out, "Roster")
	assert.Contains(t, out, "Now Playing")
	assert.Contains(t, out, "Mathematics")
}

func TestAddKey_OpensForm(t *testing.T) {
	clock := newFakeClock(examDay(8, 0))
	m := newTestModel(t, clock, newMemRepo())

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})

	require.NotNil(t, m.form)
	assert.Contains(t, m.View(), "Add Subject")
}
