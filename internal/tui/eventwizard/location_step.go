package eventwizard

import (
	"strconv"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/matchday-app/matchday/internal/draft"
	"github.com/matchday-app/matchday/internal/tui/theme"
	"github.com/matchday-app/matchday/internal/tui/wizard"
)

// Input indexes for the location step's focus order.
const (
	locInputLat = iota
	locInputLng
	locInputLandmark
	locInputCount
)

// LocationStep collects coordinates and an optional free-text landmark. The
// terminal stands in for a map widget with two coordinate inputs; whenever
// both parse to in-range values the wizard reverse-geocodes them and shows
// the resulting address under the inputs.
type LocationStep struct {
	machine   *draft.Machine
	lat       textinput.Model
	lng       textinput.Model
	landmark  textinput.Model
	focused   int
	resolving bool // A geocode lookup is in flight
	geoFailed bool // The last lookup failed; coordinates still stand
	width     int
	height    int
}

// NewLocationStep seeds the inputs from the draft, so re-entering the step
// shows what was selected before.
func NewLocationStep(machine *draft.Machine) *LocationStep {
	form := machine.Form()

	lat := textinput.New()
	lat.Placeholder = "e.g. 52.5200"
	lat.CharLimit = 20
	lat.SetWidth(20)
	if form.Latitude != nil {
		lat.SetValue(strconv.FormatFloat(*form.Latitude, 'f', -1, 64))
	}

	lng := textinput.New()
	lng.Placeholder = "e.g. 13.4050"
	lng.CharLimit = 20
	lng.SetWidth(20)
	if form.Longitude != nil {
		lng.SetValue(strconv.FormatFloat(*form.Longitude, 'f', -1, 64))
	}

	landmark := textinput.New()
	landmark.Placeholder = "e.g. 'meet by the north entrance'"
	landmark.CharLimit = 255
	landmark.SetWidth(50)
	landmark.SetValue(form.LocationText)

	lat.Focus()

	return &LocationStep{
		machine:  machine,
		lat:      lat,
		lng:      lng,
		landmark: landmark,
		focused:  locInputLat,
	}
}

func (l *LocationStep) Init() tea.Cmd {
	return textinput.Blink
}

func (l *LocationStep) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case AddressResolvedMsg:
		l.resolving = false
		l.geoFailed = false
		return nil

	case AddressErrorMsg:
		l.resolving = false
		l.geoFailed = true
		return nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "tab":
			if l.focused == locInputLandmark {
				return func() tea.Msg {
					return wizard.TabExitForwardMsg{}
				}
			}
			l.setFocus(l.focused + 1)
			return nil
		case "shift+tab":
			if l.focused == locInputLat {
				return func() tea.Msg {
					return wizard.TabExitBackwardMsg{}
				}
			}
			l.setFocus(l.focused - 1)
			return nil
		}
	}

	var cmd tea.Cmd
	switch l.focused {
	case locInputLat:
		l.lat, cmd = l.lat.Update(msg)
	case locInputLng:
		l.lng, cmd = l.lng.Update(msg)
	case locInputLandmark:
		l.landmark, cmd = l.landmark.Update(msg)
	}

	l.machine.SetField(draft.FieldLocationText, l.landmark.Value())
	return tea.Batch(cmd, l.syncCoordinates())
}

// syncCoordinates pushes parsed inputs into the draft. A valid pair clears
// the stale address and kicks off a fresh reverse-geocode lookup; anything
// unparsable clears the coordinates entirely.
func (l *LocationStep) syncCoordinates() tea.Cmd {
	form := l.machine.Form()
	lat, latErr := strconv.ParseFloat(strings.TrimSpace(l.lat.Value()), 64)
	lng, lngErr := strconv.ParseFloat(strings.TrimSpace(l.lng.Value()), 64)

	if latErr != nil || lngErr != nil {
		if form.Latitude != nil || form.Longitude != nil {
			l.machine.ClearLocation()
			l.geoFailed = false
		}
		return nil
	}

	unchanged := form.Latitude != nil && *form.Latitude == lat &&
		form.Longitude != nil && *form.Longitude == lng
	if unchanged {
		return nil
	}

	l.machine.SetLocation(lat, lng)
	l.machine.SetField(draft.FieldMapAddress, "")

	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return nil
	}

	l.resolving = true
	l.geoFailed = false
	return func() tea.Msg {
		return GeocodeRequestMsg{Lat: lat, Lng: lng}
	}
}

func (l *LocationStep) View() string {
	th := theme.Current()
	form := l.machine.Form()

	instruction := lipgloss.NewStyle().
		Foreground(lipgloss.Color(th.FgBase)).
		MarginBottom(1).
		Render("Where does the event take place?")

	coords := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.JoinVertical(lipgloss.Left,
			renderLabel("Latitude", l.focused == locInputLat),
			l.lat.View(),
		),
		"   ",
		lipgloss.JoinVertical(lipgloss.Left,
			renderLabel("Longitude", l.focused == locInputLng),
			l.lng.View(),
		),
	)

	addressStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(th.FgMuted))
	var address string
	switch {
	case l.resolving:
		address = addressStyle.Render("Looking up address...")
	case l.geoFailed:
		address = addressStyle.Render("could not fetch address")
	case form.MapAddress != "":
		address = addressStyle.Render("📍 " + form.MapAddress)
	}

	landmark := lipgloss.JoinVertical(lipgloss.Left,
		renderLabel("Landmark note (optional)", l.focused == locInputLandmark),
		l.landmark.View(),
	)

	parts := []string{instruction, coords}
	if address != "" {
		parts = append(parts, address)
	}
	parts = append(parts, "", landmark)

	if errMsg := renderFieldError(l.machine.Error(draft.FieldLocation)); errMsg != "" {
		parts = append(parts, "", errMsg)
	}
	if errMsg := renderFieldError(l.machine.Error(draft.FieldLocationText)); errMsg != "" {
		parts = append(parts, "", errMsg)
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (l *LocationStep) SetSize(width, height int) {
	l.width = width
	l.height = height
}

func (l *LocationStep) setFocus(idx int) {
	l.lat.Blur()
	l.lng.Blur()
	l.landmark.Blur()

	l.focused = idx
	switch idx {
	case locInputLat:
		l.lat.Focus()
	case locInputLng:
		l.lng.Focus()
	case locInputLandmark:
		l.landmark.Focus()
	}
}

// Focus restores focus to the first input.
func (l *LocationStep) Focus() {
	l.setFocus(locInputLat)
}

// FocusLast restores focus to the last input, for shift+tab from the buttons.
func (l *LocationStep) FocusLast() {
	l.setFocus(locInputLandmark)
}

func (l *LocationStep) Blur() {
	l.lat.Blur()
	l.lng.Blur()
	l.landmark.Blur()
}
