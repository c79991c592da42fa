package eventwizard

import (
	"os"

	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/editor"

	"github.com/matchday-app/matchday/internal/backend"
	"github.com/matchday-app/matchday/internal/draft"
	"github.com/matchday-app/matchday/internal/tui/theme"
	"github.com/matchday-app/matchday/internal/tui/wizard"
)

// Focus order for the details step.
const (
	detailInputName = iota
	detailInputDescription
	detailInputMax
	detailInputDistance
	detailInputPaceMin
	detailInputPaceSec
	detailInputPrivacy
	detailInputCover
	detailInputCount
)

var privacyCycle = []string{
	backend.PrivacyPublic,
	backend.PrivacyPrivate,
	backend.PrivacyControlled,
}

// DetailsStep is the overview step: name, description, optional numeric
// attributes, privacy, and cover image. The description supports a rendered
// markdown preview and an external $EDITOR round trip.
type DetailsStep struct {
	machine     *draft.Machine
	name        textinput.Model
	description textarea.Model
	maxPart     textinput.Model
	distance    textinput.Model
	paceMin     textinput.Model
	paceSec     textinput.Model
	cover       textinput.Model
	focused     int
	showPreview bool
	width       int
	height      int
}

func NewDetailsStep(machine *draft.Machine) *DetailsStep {
	form := machine.Form()

	name := textinput.New()
	name.Placeholder = "e.g. 'Sunday Long Run'"
	name.CharLimit = 150
	name.SetWidth(50)
	name.SetValue(form.Name)

	description := textarea.New()
	description.Placeholder = "What should participants know? Markdown is supported."
	description.CharLimit = 2000
	description.SetHeight(5)
	description.SetWidth(50)
	description.SetValue(form.Description)

	maxPart := textinput.New()
	maxPart.Placeholder = "no limit"
	maxPart.CharLimit = 6
	maxPart.SetWidth(10)
	maxPart.SetValue(form.MaxText)

	distance := textinput.New()
	distance.Placeholder = "km"
	distance.CharLimit = 8
	distance.SetWidth(10)
	distance.SetValue(form.DistanceText)

	paceMin := textinput.New()
	paceMin.Placeholder = "mm"
	paceMin.CharLimit = 2
	paceMin.SetWidth(5)
	paceMin.SetValue(form.PaceMinText)

	paceSec := textinput.New()
	paceSec.Placeholder = "ss"
	paceSec.CharLimit = 2
	paceSec.SetWidth(5)
	paceSec.SetValue(form.PaceSecText)

	cover := textinput.New()
	cover.Placeholder = "https://..."
	cover.CharLimit = 500
	cover.SetWidth(50)
	cover.SetValue(form.CoverImageURL)

	name.Focus()

	return &DetailsStep{
		machine:     machine,
		name:        name,
		description: description,
		maxPart:     maxPart,
		distance:    distance,
		paceMin:     paceMin,
		paceSec:     paceSec,
		cover:       cover,
		focused:     detailInputName,
	}
}

func (d *DetailsStep) Init() tea.Cmd {
	return textinput.Blink
}

func (d *DetailsStep) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case DescriptionEditedMsg:
		d.description.SetValue(msg.Content)
		d.machine.SetField(draft.FieldDescription, msg.Content)
		return nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "tab":
			if d.focused == detailInputCover {
				return func() tea.Msg {
					return wizard.TabExitForwardMsg{}
				}
			}
			d.setFocus(d.focused + 1)
			return nil
		case "shift+tab":
			if d.focused == detailInputName {
				return func() tea.Msg {
					return wizard.TabExitBackwardMsg{}
				}
			}
			d.setFocus(d.focused - 1)
			return nil
		case "ctrl+p":
			if d.focused == detailInputDescription {
				d.showPreview = !d.showPreview
				return nil
			}
		case "ctrl+e":
			if d.focused == detailInputDescription {
				return d.openEditor()
			}
		}

		if d.focused == detailInputPrivacy {
			switch msg.String() {
			case " ", "space", "enter", "left", "right", "h", "l":
				d.cyclePrivacy(msg.String() != "left" && msg.String() != "h")
			}
			return nil
		}
	}

	var cmd tea.Cmd
	switch d.focused {
	case detailInputName:
		d.name, cmd = d.name.Update(msg)
		d.machine.SetField(draft.FieldEventName, d.name.Value())
	case detailInputDescription:
		d.description, cmd = d.description.Update(msg)
		d.machine.SetField(draft.FieldDescription, d.description.Value())
	case detailInputMax:
		d.maxPart, cmd = d.maxPart.Update(msg)
		d.machine.SetField(draft.FieldMaxParticipants, d.maxPart.Value())
	case detailInputDistance:
		d.distance, cmd = d.distance.Update(msg)
		d.machine.SetField(draft.FieldDistanceKm, d.distance.Value())
	case detailInputPaceMin:
		d.paceMin, cmd = d.paceMin.Update(msg)
		d.machine.SetField(draft.FieldPaceMinutes, d.paceMin.Value())
	case detailInputPaceSec:
		d.paceSec, cmd = d.paceSec.Update(msg)
		d.machine.SetField(draft.FieldPaceSeconds, d.paceSec.Value())
	case detailInputCover:
		d.cover, cmd = d.cover.Update(msg)
		d.machine.SetField(draft.FieldCoverImageURL, d.cover.Value())
	}
	return cmd
}

// cyclePrivacy steps through public → private → controlled.
func (d *DetailsStep) cyclePrivacy(forward bool) {
	current := d.machine.Form().Privacy
	idx := 0
	for i, p := range privacyCycle {
		if p == current {
			idx = i
			break
		}
	}
	if forward {
		idx = (idx + 1) % len(privacyCycle)
	} else {
		idx = (idx + len(privacyCycle) - 1) % len(privacyCycle)
	}
	d.machine.SetField(draft.FieldPrivacy, privacyCycle[idx])
}

// openEditor launches $EDITOR with the current description and reads the
// result back when it exits.
func (d *DetailsStep) openEditor() tea.Cmd {
	tmpfile, err := os.CreateTemp("", "matchday_description_*.md")
	if err != nil {
		return nil
	}
	if _, err := tmpfile.WriteString(d.description.Value()); err != nil {
		_ = tmpfile.Close()
		_ = os.Remove(tmpfile.Name())
		return nil
	}
	_ = tmpfile.Close()

	cmd, err := editor.Command("matchday", tmpfile.Name())
	if err != nil {
		_ = os.Remove(tmpfile.Name())
		return nil
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		defer func() { _ = os.Remove(tmpfile.Name()) }()
		if err != nil {
			return nil
		}
		content, err := os.ReadFile(tmpfile.Name())
		if err != nil {
			return nil
		}
		return DescriptionEditedMsg{Content: string(content)}
	})
}

func (d *DetailsStep) View() string {
	th := theme.Current()
	form := d.machine.Form()

	parts := []string{
		renderLabel("Event name", d.focused == detailInputName),
		d.name.View(),
	}
	if errMsg := renderFieldError(d.machine.Error(draft.FieldEventName)); errMsg != "" {
		parts = append(parts, errMsg)
	}

	parts = append(parts, "", renderLabel("Description", d.focused == detailInputDescription))
	if d.showPreview {
		previewStyle := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(th.BorderDefault)).
			Padding(0, 1).
			Width(52)
		parts = append(parts, previewStyle.Render(renderMarkdown(form.Description, 50)))
	} else {
		parts = append(parts, d.description.View())
	}
	if d.focused == detailInputDescription {
		parts = append(parts, renderHintBar("ctrl+p", "preview", "ctrl+e", "open in editor"))
	}
	if errMsg := renderFieldError(d.machine.Error(draft.FieldDescription)); errMsg != "" {
		parts = append(parts, errMsg)
	}

	numbers := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.JoinVertical(lipgloss.Left,
			renderLabel("Max participants", d.focused == detailInputMax),
			d.maxPart.View(),
		),
		"   ",
		lipgloss.JoinVertical(lipgloss.Left,
			renderLabel("Distance (km)", d.focused == detailInputDistance),
			d.distance.View(),
		),
		"   ",
		lipgloss.JoinVertical(lipgloss.Left,
			renderLabel("Pace (min:sec / km)", d.focused == detailInputPaceMin || d.focused == detailInputPaceSec),
			lipgloss.JoinHorizontal(lipgloss.Top, d.paceMin.View(), " : ", d.paceSec.View()),
		),
	)
	parts = append(parts, "", numbers)
	for _, field := range []string{
		draft.FieldMaxParticipants, draft.FieldDistanceKm,
		draft.FieldPaceMinutes, draft.FieldPaceSeconds,
	} {
		if errMsg := renderFieldError(d.machine.Error(field)); errMsg != "" {
			parts = append(parts, errMsg)
		}
	}

	privacyRow := lipgloss.JoinHorizontal(lipgloss.Top,
		renderLabel("Privacy: ", d.focused == detailInputPrivacy),
		lipgloss.NewStyle().Foreground(lipgloss.Color(th.FgMuted)).Render("< "+form.Privacy+" >"),
	)
	parts = append(parts, "", privacyRow)
	if errMsg := renderFieldError(d.machine.Error(draft.FieldPrivacy)); errMsg != "" {
		parts = append(parts, errMsg)
	}

	parts = append(parts, "",
		renderLabel("Cover image URL (optional)", d.focused == detailInputCover),
		d.cover.View(),
	)
	if errMsg := renderFieldError(d.machine.Error(draft.FieldCoverImageURL)); errMsg != "" {
		parts = append(parts, errMsg)
	}

	if d.machine.Mode() == draft.ModeCreate {
		parts = append(parts, "", renderHintBar("alt+1", "sports", "alt+2", "location", "alt+3", "schedule"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (d *DetailsStep) SetSize(width, height int) {
	d.width = width
	d.height = height
}

func (d *DetailsStep) setFocus(idx int) {
	if idx < detailInputName {
		idx = detailInputName
	}
	if idx >= detailInputCount {
		idx = detailInputCover
	}

	d.Blur()
	d.focused = idx
	switch idx {
	case detailInputName:
		d.name.Focus()
	case detailInputDescription:
		d.description.Focus()
	case detailInputMax:
		d.maxPart.Focus()
	case detailInputDistance:
		d.distance.Focus()
	case detailInputPaceMin:
		d.paceMin.Focus()
	case detailInputPaceSec:
		d.paceSec.Focus()
	case detailInputCover:
		d.cover.Focus()
	}
}

func (d *DetailsStep) Focus() {
	d.setFocus(detailInputName)
}

func (d *DetailsStep) FocusLast() {
	d.setFocus(detailInputCover)
}

func (d *DetailsStep) Blur() {
	d.name.Blur()
	d.description.Blur()
	d.maxPart.Blur()
	d.distance.Blur()
	d.paceMin.Blur()
	d.paceSec.Blur()
	d.cover.Blur()
}
