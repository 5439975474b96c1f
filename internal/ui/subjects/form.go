package subjects

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/proctorhq/proctor/internal/exam/domain"
	"github.com/proctorhq/proctor/internal/templates"
	"github.com/proctorhq/proctor/internal/ui/styles"
)

// SubmitMsg is sent when the add-subject form is submitted with valid input.
type SubmitMsg struct {
	Subject domain.Subject
}

// CancelMsg is sent when the form is dismissed.
type CancelMsg struct{}

// Form field indexes. The double-session toggle sits after the text inputs.
const (
	fieldName = iota
	fieldDate
	fieldStart
	fieldDuration
	fieldDouble
	fieldCount
)

// Form collects a new subject from the operator. Subject names known to the
// template source prefill duration and session count.
type Form struct {
	inputs  [4]textinput.Model
	focus   int
	double  bool
	errText string

	source *templates.Source
	now    func() time.Time

	// durationTouched stops preset application from clobbering an operator
	// supplied duration.
	durationTouched bool
}

// NewForm builds the add-subject form. now supplies the default exam date.
func NewForm(source *templates.Source, now func() time.Time) Form {
	f := Form{source: source, now: now}

	name := textinput.New()
	name.Placeholder = "Mathematics"
	name.CharLimit = 80
	name.ShowSuggestions = true
	if source != nil {
		name.SetSuggestions(source.SubjectNames())
	}
	f.inputs[fieldName] = name

	date := textinput.New()
	date.Placeholder = "YYYY-MM-DD"
	date.CharLimit = 10
	date.SetValue(now().Format("2006-01-02"))
	f.inputs[fieldDate] = date

	start := textinput.New()
	start.Placeholder = "HH:MM"
	start.CharLimit = 5
	f.inputs[fieldStart] = start

	duration := textinput.New()
	duration.Placeholder = strconv.Itoa(domain.DefaultDurationMinutes)
	duration.CharLimit = 4
	f.inputs[fieldDuration] = duration

	f.inputs[fieldName].Focus()
	return f
}

// Update handles key input. Enter on the last field submits; esc cancels.
func (f Form) Update(msg tea.Msg) (Form, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return f.updateFocused(msg)
	}

	switch keyMsg.String() {
	case "esc":
		return f, func() tea.Msg { return CancelMsg{} }

	case "enter":
		if f.focus == fieldDouble {
			return f.submit()
		}
		f.moveFocus(1)
		return f, nil

	case "up", "shift+tab":
		f.moveFocus(-1)
		return f, nil

	case "down":
		f.moveFocus(1)
		return f, nil

	case "tab":
		// Tab completes a suggestion in the name field, otherwise advances.
		if f.focus == fieldName && f.inputs[fieldName].CurrentSuggestion() != "" {
			return f.updateFocused(msg)
		}
		f.moveFocus(1)
		return f, nil

	case " ", "left", "right":
		if f.focus == fieldDouble {
			f.double = !f.double
			return f, nil
		}
	}

	if f.focus == fieldDuration {
		f.durationTouched = true
	}
	return f.updateFocused(msg)
}

func (f Form) updateFocused(msg tea.Msg) (Form, tea.Cmd) {
	if f.focus >= len(f.inputs) {
		return f, nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f *Form) moveFocus(delta int) {
	if f.focus == fieldName {
		f.applyPreset()
	}
	if f.focus < len(f.inputs) {
		f.inputs[f.focus].Blur()
	}
	f.focus = (f.focus + delta + fieldCount) % fieldCount
	if f.focus < len(f.inputs) {
		f.inputs[f.focus].Focus()
	}
}

// applyPreset fills duration and session count from the template source when
// the entered name matches a declared subject.
func (f *Form) applyPreset() {
	if f.source == nil {
		return
	}
	preset, ok := f.source.Preset(strings.TrimSpace(f.inputs[fieldName].Value()))
	if !ok {
		return
	}
	if !f.durationTouched {
		f.inputs[fieldDuration].SetValue(strconv.Itoa(preset.DurationMinutes))
	}
	f.double = preset.DoubleSession
}

func (f Form) submit() (Form, tea.Cmd) {
	name := strings.TrimSpace(f.inputs[fieldName].Value())
	if name == "" {
		f.errText = "subject name is required"
		return f, nil
	}

	start, err := domain.ParseStartDateTime(
		f.inputs[fieldDate].Value(), f.inputs[fieldStart].Value(), f.now().Location())
	if err != nil {
		f.errText = "start must be a valid YYYY-MM-DD date and HH:MM time"
		return f, nil
	}

	durText := strings.TrimSpace(f.inputs[fieldDuration].Value())
	if durText == "" {
		durText = strconv.Itoa(domain.DefaultDurationMinutes)
	}
	duration, err := strconv.Atoi(durText)
	if err != nil || duration <= 0 {
		f.errText = "duration must be a positive number of minutes"
		return f, nil
	}

	subject := domain.Subject{
		Name:            name,
		StartTime:       start,
		DurationMinutes: duration,
		DoubleSession:   f.double,
	}
	return f, func() tea.Msg { return SubmitMsg{Subject: subject} }
}

// Err returns the current validation error, if any.
func (f Form) Err() string {
	return f.errText
}

// View renders the form inside a focused border.
func (f Form) View(width int) string {
	labels := [...]string{"Name", "Date", "Start", "Length (min)"}

	var b strings.Builder
	for i, input := range f.inputs {
		label := fmt.Sprintf("%-13s", labels[i])
		if i == f.focus {
			b.WriteString(styles.TitleStyle.Render(label))
		} else {
			b.WriteString(styles.MutedStyle.Render(label))
		}
		b.WriteString(input.View())
		b.WriteString("\n")
	}

	toggle := "[ ] double session"
	if f.double {
		toggle = "[x] double session"
	}
	if f.focus == fieldDouble {
		b.WriteString(styles.TitleStyle.Render(toggle))
	} else {
		b.WriteString(styles.MutedStyle.Render(toggle))
	}
	b.WriteString("\n")

	if f.errText != "" {
		b.WriteString(styles.ErrorStyle.Render(f.errText))
		b.WriteString("\n")
	}
	b.WriteString(styles.MutedStyle.Render("enter: next/submit • esc: cancel"))

	return styles.RenderWithTitleBorder(b.String(), "Add Subject", "", width, fieldCount+4, true)
}
