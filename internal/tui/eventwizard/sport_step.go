package eventwizard

import (
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/matchday-app/matchday/internal/backend"
	"github.com/matchday-app/matchday/internal/draft"
	"github.com/matchday-app/matchday/internal/tui/theme"
	"github.com/matchday-app/matchday/internal/tui/wizard"
)

// SportStep is the sport-type checklist. The catalog arrives asynchronously;
// until then a spinner is shown, and a fetch failure shows a retry banner.
type SportStep struct {
	machine *draft.Machine
	sports  []backend.SportType
	cursor  int
	loading bool
	loadErr string
	spinner spinner.Model
	width   int
	height  int
}

// NewSportStep creates the step in its loading state. The wizard dispatches
// the catalog fetch and forwards the result.
func NewSportStep(machine *draft.Machine) *SportStep {
	s := spinner.New()
	s.Spinner = spinner.Dot

	return &SportStep{
		machine: machine,
		loading: true,
		spinner: s,
	}
}

func (s *SportStep) Init() tea.Cmd {
	return s.spinner.Tick
}

// SetCatalog installs an already-fetched catalog, so re-entering the step
// after navigation does not refetch.
func (s *SportStep) SetCatalog(sports []backend.SportType) {
	s.sports = sports
	s.loading = false
	s.loadErr = ""
	if s.cursor >= len(sports) {
		s.cursor = 0
	}
}

func (s *SportStep) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case CatalogLoadedMsg:
		s.SetCatalog(msg.Sports)
		return nil

	case CatalogErrorMsg:
		s.loading = false
		s.loadErr = msg.Err.Error()
		return nil

	case spinner.TickMsg:
		if !s.loading {
			return nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return cmd

	case tea.KeyPressMsg:
		if s.loadErr != "" {
			if msg.String() == "r" {
				s.loading = true
				s.loadErr = ""
				return tea.Batch(s.spinner.Tick, func() tea.Msg {
					return RetryCatalogMsg{}
				})
			}
			return nil
		}
		if s.loading {
			return nil
		}

		switch msg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(s.sports)-1 {
				s.cursor++
			}
		case " ", "space", "enter":
			if len(s.sports) > 0 {
				s.machine.ToggleSport(s.sports[s.cursor].ID)
			}
		case "tab":
			return func() tea.Msg {
				return wizard.TabExitForwardMsg{}
			}
		case "shift+tab":
			return func() tea.Msg {
				return wizard.TabExitBackwardMsg{}
			}
		}
	}
	return nil
}

func (s *SportStep) View() string {
	th := theme.Current()

	instruction := lipgloss.NewStyle().
		Foreground(lipgloss.Color(th.FgBase)).
		MarginBottom(1).
		Render("Which sports is this event for?")

	if s.loading {
		loading := lipgloss.NewStyle().
			Foreground(lipgloss.Color(th.FgMuted)).
			Render(s.spinner.View() + " Loading sport types...")
		return lipgloss.JoinVertical(lipgloss.Left, instruction, loading)
	}

	if s.loadErr != "" {
		errText := lipgloss.NewStyle().
			Foreground(lipgloss.Color(th.Error)).
			Bold(true).
			Render("✗ Could not load sport types: " + s.loadErr)
		hint := renderHintBar("r", "retry", "esc", "cancel")
		return lipgloss.JoinVertical(lipgloss.Left, instruction, errText, "", hint)
	}

	selectedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(th.Success))
	cursorStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(th.BorderFocus)).
		Bold(true)
	itemStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(th.FgBase))

	form := s.machine.Form()
	var rows []string
	for i, sport := range s.sports {
		check := "[ ]"
		if _, ok := form.SportTypeIDs[sport.ID]; ok {
			check = selectedStyle.Render("[x]")
		}
		line := check + " " + sport.Name
		if i == s.cursor {
			line = cursorStyle.Render("> ") + itemStyle.Render(line)
		} else {
			line = "  " + itemStyle.Render(line)
		}
		rows = append(rows, line)
	}

	parts := []string{instruction, strings.Join(rows, "\n")}
	if errMsg := renderFieldError(s.machine.Error(draft.FieldSportTypes)); errMsg != "" {
		parts = append(parts, "", errMsg)
	}
	parts = append(parts, "", renderHintBar("↑↓", "navigate", "space", "toggle"))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (s *SportStep) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// Focus and Blur exist for wizard focus bookkeeping; the checklist has no
// blinking input to manage.
func (s *SportStep) Focus() {}
func (s *SportStep) Blur()  {}
