package eventwizard

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/matchday-app/matchday/internal/backend"
	"github.com/matchday-app/matchday/internal/draft"
	"github.com/matchday-app/matchday/internal/tui/theme"
	"github.com/matchday-app/matchday/internal/tui/wizard"
)

// Focus order for the schedule step. The recurrence rows only take part in
// create mode; edit mode stops after the end time.
const (
	schedInputStart = iota
	schedInputEnd
	schedInputRecurring
	schedInputPattern
	schedInputSeriesEnd
)

// ScheduleStep collects the start/end times and, in create mode, the
// recurrence settings. An existing event's series membership is shown
// read-only; changing it is not something the edit flow offers.
type ScheduleStep struct {
	machine   *draft.Machine
	start     textinput.Model
	end       textinput.Model
	seriesEnd textinput.Model
	focused   int
	width     int
	height    int
}

func NewScheduleStep(machine *draft.Machine) *ScheduleStep {
	form := machine.Form()

	start := textinput.New()
	start.Placeholder = "YYYY-MM-DD HH:MM"
	start.CharLimit = 16
	start.SetWidth(20)
	start.SetValue(form.StartText)

	end := textinput.New()
	end.Placeholder = "YYYY-MM-DD HH:MM (optional)"
	end.CharLimit = 16
	end.SetWidth(30)
	end.SetValue(form.EndText)

	seriesEnd := textinput.New()
	seriesEnd.Placeholder = "YYYY-MM-DD (optional)"
	seriesEnd.CharLimit = 10
	seriesEnd.SetWidth(24)
	seriesEnd.SetValue(form.SeriesEnd)

	start.Focus()

	return &ScheduleStep{
		machine:   machine,
		start:     start,
		end:       end,
		seriesEnd: seriesEnd,
		focused:   schedInputStart,
	}
}

func (s *ScheduleStep) Init() tea.Cmd {
	return textinput.Blink
}

// lastInput is the final focusable row, which depends on mode and on whether
// the recurrence rows are expanded.
func (s *ScheduleStep) lastInput() int {
	if s.machine.Mode() == draft.ModeEdit {
		return schedInputEnd
	}
	if s.machine.Form().IsRecurring {
		return schedInputSeriesEnd
	}
	return schedInputRecurring
}

func (s *ScheduleStep) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyPressMsg); ok {
		switch msg.String() {
		case "tab":
			if s.focused == s.lastInput() {
				return func() tea.Msg {
					return wizard.TabExitForwardMsg{}
				}
			}
			s.setFocus(s.focused + 1)
			return nil
		case "shift+tab":
			if s.focused == schedInputStart {
				return func() tea.Msg {
					return wizard.TabExitBackwardMsg{}
				}
			}
			s.setFocus(s.focused - 1)
			return nil
		}

		switch s.focused {
		case schedInputRecurring:
			if msg.String() == " " || msg.String() == "space" || msg.String() == "enter" {
				s.machine.SetRecurring(!s.machine.Form().IsRecurring)
			}
			return nil
		case schedInputPattern:
			switch msg.String() {
			case " ", "space", "enter", "left", "right", "h", "l":
				s.togglePattern()
			}
			return nil
		}
	}

	var cmd tea.Cmd
	switch s.focused {
	case schedInputStart:
		s.start, cmd = s.start.Update(msg)
		s.machine.SetField(draft.FieldStartTime, s.start.Value())
	case schedInputEnd:
		s.end, cmd = s.end.Update(msg)
		s.machine.SetField(draft.FieldEndTime, s.end.Value())
	case schedInputSeriesEnd:
		s.seriesEnd, cmd = s.seriesEnd.Update(msg)
		s.machine.SetField(draft.FieldSeriesEndDate, s.seriesEnd.Value())
	}
	return cmd
}

// togglePattern flips between the two recurrence patterns.
func (s *ScheduleStep) togglePattern() {
	next := backend.RecurrenceWeekly
	if s.machine.Form().Pattern == backend.RecurrenceWeekly {
		next = backend.RecurrenceMonthly
	}
	s.machine.SetField(draft.FieldRecurrencePattern, next)
}

func (s *ScheduleStep) View() string {
	th := theme.Current()
	form := s.machine.Form()

	instruction := lipgloss.NewStyle().
		Foreground(lipgloss.Color(th.FgBase)).
		MarginBottom(1).
		Render("When does the event happen?")

	parts := []string{
		instruction,
		renderLabel("Start time", s.focused == schedInputStart),
		s.start.View(),
	}
	if errMsg := renderFieldError(s.machine.Error(draft.FieldStartTime)); errMsg != "" {
		parts = append(parts, errMsg)
	}

	parts = append(parts, "",
		renderLabel("End time (optional)", s.focused == schedInputEnd),
		s.end.View(),
	)
	if errMsg := renderFieldError(s.machine.Error(draft.FieldEndTime)); errMsg != "" {
		parts = append(parts, errMsg)
	}

	parts = append(parts, "", s.renderRecurrence(th, form))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderRecurrence renders the recurrence rows: interactive in create mode,
// a read-only series summary in edit mode.
func (s *ScheduleStep) renderRecurrence(th *theme.Theme, form *draft.EventFormData) string {
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(th.FgMuted))

	if s.machine.Mode() == draft.ModeEdit {
		if !form.IsRecurring {
			return mutedStyle.Render("One-off event")
		}
		summary := "Part of a " + form.Pattern + " series"
		if form.SeriesEnd != "" {
			summary += " until " + form.SeriesEnd
		}
		return mutedStyle.Render(summary + " (series settings cannot be changed here)")
	}

	check := "[ ]"
	if form.IsRecurring {
		check = lipgloss.NewStyle().Foreground(lipgloss.Color(th.Success)).Render("[x]")
	}
	recurringRow := renderLabel(check+" Repeats", s.focused == schedInputRecurring)

	if !form.IsRecurring {
		return recurringRow
	}

	pattern := form.Pattern
	if pattern != backend.RecurrenceWeekly && pattern != backend.RecurrenceMonthly {
		pattern = "choose..."
	}
	patternRow := lipgloss.JoinHorizontal(lipgloss.Top,
		renderLabel("Pattern: ", s.focused == schedInputPattern),
		mutedStyle.Render("< "+pattern+" >"),
	)

	parts := []string{recurringRow, patternRow}
	if errMsg := renderFieldError(s.machine.Error(draft.FieldRecurrencePattern)); errMsg != "" {
		parts = append(parts, errMsg)
	}

	parts = append(parts,
		renderLabel("Series ends", s.focused == schedInputSeriesEnd),
		s.seriesEnd.View(),
	)
	if errMsg := renderFieldError(s.machine.Error(draft.FieldSeriesEndDate)); errMsg != "" {
		parts = append(parts, errMsg)
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (s *ScheduleStep) SetSize(width, height int) {
	s.width = width
	s.height = height
}

func (s *ScheduleStep) setFocus(idx int) {
	// Skip the pattern/series rows when recurrence is collapsed.
	if !s.machine.Form().IsRecurring || s.machine.Mode() == draft.ModeEdit {
		if idx == schedInputPattern || idx == schedInputSeriesEnd {
			if idx > s.focused {
				idx = s.lastInput()
			} else {
				idx = schedInputEnd
			}
		}
	}
	if idx > s.lastInput() {
		idx = s.lastInput()
	}
	if idx < schedInputStart {
		idx = schedInputStart
	}

	s.start.Blur()
	s.end.Blur()
	s.seriesEnd.Blur()

	s.focused = idx
	switch idx {
	case schedInputStart:
		s.start.Focus()
	case schedInputEnd:
		s.end.Focus()
	case schedInputSeriesEnd:
		s.seriesEnd.Focus()
	}
}

func (s *ScheduleStep) Focus() {
	s.setFocus(schedInputStart)
}

func (s *ScheduleStep) FocusLast() {
	s.setFocus(s.lastInput())
}

func (s *ScheduleStep) Blur() {
	s.start.Blur()
	s.end.Blur()
	s.seriesEnd.Blur()
	s.focused = -1
}
