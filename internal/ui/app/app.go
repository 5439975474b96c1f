// Package app wires the scheduler, roster, templates, and audio sink into
// the top-level Bubble Tea program. The update loop is the single writer for
// all scheduler state: the 1-second tick and every operator command are
// serialized through it.
package app

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/proctorhq/proctor/internal/exam"
	"github.com/proctorhq/proctor/internal/exam/domain"
	"github.com/proctorhq/proctor/internal/log"
	"github.com/proctorhq/proctor/internal/schedule"
	"github.com/proctorhq/proctor/internal/templates"
	"github.com/proctorhq/proctor/internal/ui/statusbar"
	"github.com/proctorhq/proctor/internal/ui/statuspanel"
	"github.com/proctorhq/proctor/internal/ui/styles"
	"github.com/proctorhq/proctor/internal/ui/subjects"
	"github.com/proctorhq/proctor/internal/ui/timeline"
)

// AudioPlayer is the audio collaborator the UI needs: the scheduler's sink
// plus file presence and backend identification for the status bar.
type AudioPlayer interface {
	schedule.Sink
	Exists(audioRef string) bool
	Backend() string
}

// Deps carries everything the app model needs.
type Deps struct {
	Scheduler *schedule.Scheduler
	Repo      domain.SubjectRepository
	Source    *templates.Source
	Player    AudioPlayer
	Clock     schedule.Clock

	// TemplateEvents delivers template file change notifications. Optional.
	TemplateEvents <-chan struct{}

	// HideStatusBar and HideHelp drop the corresponding footer lines.
	HideStatusBar bool
	HideHelp      bool
}

// tickMsg drives the 1-second scheduling pass.
type tickMsg time.Time

// templatesChangedMsg reports that the template file changed on disk.
type templatesChangedMsg struct{}

type focusArea int

const (
	focusTimeline focusArea = iota
	focusRoster
)

// Model is the top-level TUI model.
type Model struct {
	deps   Deps
	roster []domain.Subject

	timeline  timeline.Model
	subjects  subjects.Model
	summary   statuspanel.Model
	statusbar statusbar.Model
	help      help.Model
	keys      keyMap

	form          *subjects.Form
	confirmDelete *domain.Subject

	focus  focusArea
	width  int
	height int
	now    time.Time
	counts statuspanel.Counts
	notice string
}

// New builds the app model, loads the roster, and schedules every
// registered subject's announcements.
func New(deps Deps) (*Model, error) {
	m := &Model{
		deps:      deps,
		timeline:  timeline.New(),
		subjects:  subjects.New(),
		summary:   statuspanel.New(),
		statusbar: statusbar.New(describeBackend(deps.Player), deps.Source.Path()),
		help:      help.New(),
		keys:      defaultKeyMap(),
		now:       deps.Clock.Now(),
	}

	roster, err := deps.Repo.List()
	if err != nil {
		return nil, fmt.Errorf("loading subject roster: %w", err)
	}
	m.roster = roster

	for _, s := range roster {
		instrs, err := exam.Generate(s, deps.Source.TemplatesFor(s))
		if err != nil {
			log.ErrorErr(log.CatUI, "skipping stored subject", err, "name", s.Name)
			continue
		}
		deps.Scheduler.AddInstructions(instrs)
	}

	m.refresh()
	return m, nil
}

func describeBackend(p AudioPlayer) string {
	if b := p.Backend(); b != "" {
		return b
	}
	return "none"
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.tickCmd(), m.waitForTemplateChange())
}

func (m *Model) tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) waitForTemplateChange() tea.Cmd {
	ch := m.deps.TemplateEvents
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return templatesChangedMsg{}
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case tickMsg:
		m.deps.Scheduler.Tick()
		m.refresh()
		return m, m.tickCmd()

	case templatesChangedMsg:
		m.reloadTemplates()
		return m, m.waitForTemplateChange()

	case subjects.SubmitMsg:
		m.form = nil
		m.addSubject(msg.Subject)
		return m, nil

	case subjects.CancelMsg:
		m.form = nil
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.form != nil {
		form, cmd := m.form.Update(msg)
		m.form = &form
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// ctrl+c always quits, even with a modal open.
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.form != nil {
		form, cmd := m.form.Update(msg)
		m.form = &form
		return m, cmd
	}

	if m.confirmDelete != nil {
		switch msg.String() {
		case "y", "Y":
			m.deleteSubject(*m.confirmDelete)
		}
		m.confirmDelete = nil
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.focus == focusTimeline {
			m.timeline.CursorUp()
		} else {
			m.subjects.CursorUp()
		}

	case key.Matches(msg, m.keys.Down):
		if m.focus == focusTimeline {
			m.timeline.CursorDown()
		} else {
			m.subjects.CursorDown()
		}

	case key.Matches(msg, m.keys.Switch):
		if m.focus == focusTimeline {
			m.focus = focusRoster
		} else {
			m.focus = focusTimeline
		}

	case key.Matches(msg, m.keys.Play):
		if m.focus == focusTimeline {
			if i := m.timeline.Cursor(); i >= 0 {
				m.deps.Scheduler.Play(i, true)
				m.refresh()
			}
		}

	case key.Matches(msg, m.keys.Add):
		form := subjects.NewForm(m.deps.Source, m.deps.Clock.Now)
		m.form = &form

	case key.Matches(msg, m.keys.Delete):
		if m.focus == focusRoster {
			if s := m.subjects.Selected(); s != nil {
				selected := *s
				m.confirmDelete = &selected
			}
		}

	case key.Matches(msg, m.keys.Follow):
		m.timeline.ToggleFollow()
		m.refresh()

	case key.Matches(msg, m.keys.Reload):
		m.reloadTemplates()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
	}
	return m, nil
}

// addSubject registers a subject and schedules its announcements.
func (m *Model) addSubject(subject domain.Subject) {
	if err := m.deps.Repo.Save(&subject); err != nil {
		log.ErrorErr(log.CatUI, "saving subject", err, "name", subject.Name)
		m.notice = "could not save subject: " + err.Error()
		return
	}

	instrs, err := exam.Generate(subject, m.deps.Source.TemplatesFor(subject))
	if err != nil {
		log.ErrorErr(log.CatUI, "generating instructions", err, "name", subject.Name)
		m.notice = "could not schedule subject: " + err.Error()
		return
	}
	m.deps.Scheduler.AddInstructions(instrs)
	if len(instrs) == 0 {
		m.notice = fmt.Sprintf("no announcement templates for %q", subject.Name)
	} else {
		m.notice = ""
	}

	m.reloadRoster()
	m.refresh()
}

// deleteSubject removes a subject and purges its announcements.
func (m *Model) deleteSubject(subject domain.Subject) {
	if err := m.deps.Repo.Delete(subject.ID); err != nil {
		log.ErrorErr(log.CatUI, "deleting subject", err, "name", subject.Name)
		m.notice = "could not delete subject: " + err.Error()
		return
	}
	removed := m.deps.Scheduler.RemoveSubject(subject.ID)
	log.Info(log.CatUI, "subject deleted", "name", subject.Name, "instructions", removed)

	m.reloadRoster()
	m.refresh()
}

// reloadTemplates re-reads the template source and rebuilds the timeline
// from scratch. Prior playback statuses are discarded; past announcements
// expire to skipped on the next tick rather than replaying.
func (m *Model) reloadTemplates() {
	if err := m.deps.Source.Reload(); err != nil {
		log.ErrorErr(log.CatTemplates, "template reload failed, keeping previous set", err)
		m.notice = "template reload failed: " + err.Error()
		return
	}

	var all []*domain.Instruction
	for _, s := range m.roster {
		instrs, err := exam.Generate(s, m.deps.Source.TemplatesFor(s))
		if err != nil {
			log.ErrorErr(log.CatUI, "skipping subject on rebuild", err, "name", s.Name)
			continue
		}
		all = append(all, instrs...)
	}
	m.deps.Scheduler.Rebuild(all)
	m.notice = "templates reloaded"
	m.refresh()
}

func (m *Model) reloadRoster() {
	roster, err := m.deps.Repo.List()
	if err != nil {
		log.ErrorErr(log.CatUI, "reloading roster", err)
		return
	}
	m.roster = roster
}

// refresh re-derives every panel's view state from the scheduler.
func (m *Model) refresh() {
	m.now = m.deps.Clock.Now()

	starts := make(map[int64]time.Time, len(m.roster))
	for _, s := range m.roster {
		starts[s.ID] = s.StartTime
	}

	items := m.deps.Scheduler.Timeline().Items()
	currentIdx := m.deps.Scheduler.CurrentIndex()
	nextIdx := m.deps.Scheduler.NextIndex()

	rows := make([]timeline.Row, len(items))
	missing := map[string]struct{}{}
	var counts statuspanel.Counts

	for i, instr := range items {
		audioMissing := instr.AudioRef != "" && !m.deps.Player.Exists(instr.AudioRef)
		if audioMissing {
			missing[instr.AudioRef] = struct{}{}
		}
		rows[i] = timeline.Row{
			PlayAt:       instr.PlayAt,
			Offset:       instr.PlayAt.Sub(starts[instr.SubjectID]),
			SubjectName:  instr.SubjectName,
			Label:        instr.Label,
			Audio:        instr.AudioRef,
			AudioMissing: audioMissing,
			Status:       instr.Status(),
			Current:      i == currentIdx,
			Next:         i == nextIdx,
		}

		switch instr.Status() {
		case domain.StatusUnplayed:
			counts.Unplayed++
		case domain.StatusPlaying:
			counts.Playing++
		case domain.StatusPlayed:
			counts.Played++
		case domain.StatusSkipped:
			counts.Skipped++
		}
	}

	m.timeline.SetRows(rows)
	m.subjects.SetSubjects(m.roster)
	m.statusbar.SetMissingAudio(len(missing))
	m.counts = counts
}

// layout recomputes panel sizes from the window dimensions.
func (m *Model) layout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}

	helpHeight := 1
	if m.deps.HideHelp {
		helpHeight = 0
	} else if m.help.ShowAll {
		helpHeight = 3
	}
	statusHeight := 1
	if m.deps.HideStatusBar {
		statusHeight = 0
	}
	bottomHeight := 9
	timelineHeight := max(m.height-bottomHeight-helpHeight-statusHeight, 5)

	m.timeline.SetSize(m.width, timelineHeight)
	rosterWidth := m.width * 3 / 5
	m.subjects.SetSize(rosterWidth, bottomHeight)
	m.summary.SetSize(m.width-rosterWidth, bottomHeight)
	m.statusbar.SetWidth(m.width)
	m.help.Width = m.width
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return "loading..."
	}

	timelineView := m.timeline.View(m.focus == focusTimeline, styles.FormatClock(m.now))
	bottom := lipgloss.JoinHorizontal(lipgloss.Top,
		m.subjects.View(m.focus == focusRoster),
		m.summary.View(m.deps.Scheduler.Summary(), m.counts),
	)

	sections := []string{timelineView, bottom}
	if m.notice != "" {
		notice := styles.WarningStyle.Render(" " + m.notice)
		sections = append(sections, truncate.StringWithTail(notice, uint(max(m.width, 8)), "…"))
	}
	if !m.deps.HideHelp {
		sections = append(sections, m.help.View(m.keys))
	}
	if !m.deps.HideStatusBar {
		sections = append(sections, m.statusbar.View(m.now))
	}
	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	if m.form != nil {
		formWidth := min(64, m.width-4)
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.form.View(formWidth))
	}
	if m.confirmDelete != nil {
		prompt := fmt.Sprintf("Delete %q and all of its announcements? (y/n)", m.confirmDelete.Name)
		box := styles.RenderWithTitleBorder(styles.ErrorStyle.Render(prompt),
			"Confirm", "", min(len(prompt)+6, m.width-4), 3, true)
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return content
}
