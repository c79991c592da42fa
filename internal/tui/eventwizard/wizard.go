// Package eventwizard is the multi-step event authoring flow: sport
// selection, location, schedule, and overview, backed by the draft state
// machine and submitted through the backend client.
package eventwizard

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/matchday-app/matchday/internal/backend"
	"github.com/matchday-app/matchday/internal/draft"
	"github.com/matchday-app/matchday/internal/logger"
	"github.com/matchday-app/matchday/internal/tui/theme"
	"github.com/matchday-app/matchday/internal/tui/wizard"
)

// Modal layout constants
const (
	modalWidth        = 72
	modalPadding      = 2
	modalBorderWidth  = 1
	modalContentWidth = modalWidth - (modalPadding * 2) - (modalBorderWidth * 2)
)

// Result reports how the wizard ended.
type Result struct {
	Submitted bool   // False when the user abandoned the draft
	EventID   string // The created or edited event id when Submitted
}

// WizardModel is the Bubbletea model driving the event wizard. All state
// transitions go through the draft machine; this model owns only UI concerns
// (focus, async boundaries, the modal chrome).
type WizardModel struct {
	machine *draft.Machine
	svc     backend.Service
	ctx     context.Context
	clubID  string
	eventID string // Set in edit mode

	result    Result
	cancelled bool
	width     int
	height    int

	// Step components, recreated on navigation; the draft carries the data.
	sportStep    *SportStep
	locationStep *LocationStep
	scheduleStep *ScheduleStep
	detailsStep  *DetailsStep

	// Sport catalog, fetched once and reused across navigation.
	catalog []backend.SportType

	// Button bar with focus tracking, cached per step.
	buttonBar     *wizard.ButtonBar
	buttonFocused bool
	stepBars      map[int]*wizard.ButtonBar

	// Submission state. While submitting, all actions are disabled.
	submitting bool
	submitErr  string

	// Discard confirmation modal (edit mode ESC).
	showDiscardConfirm bool
}

// Options configures a wizard run.
type Options struct {
	Service  backend.Service
	Mode     draft.Mode
	ClubID   string         // Required in create mode
	Existing *backend.Event // Required in edit mode
	Form     *draft.EventFormData
}

// New builds the wizard model without running it, for tests.
func New(opts Options) *WizardModel {
	eventID := ""
	if opts.Existing != nil {
		eventID = opts.Existing.ID
	}
	return &WizardModel{
		machine:  draft.NewMachine(opts.Mode, opts.Form),
		svc:      opts.Service,
		ctx:      context.Background(),
		clubID:   opts.ClubID,
		eventID:  eventID,
		stepBars: make(map[int]*wizard.ButtonBar),
	}
}

// Run starts the wizard program and blocks until it finishes.
func Run(opts Options) (Result, error) {
	m := New(opts)

	p := tea.NewProgram(m)
	finalModel, err := p.Run()
	if err != nil {
		return Result{}, fmt.Errorf("event wizard failed: %w", err)
	}

	wm, ok := finalModel.(*WizardModel)
	if !ok {
		return Result{}, fmt.Errorf("unexpected model type")
	}
	if wm.cancelled {
		return Result{}, nil
	}
	return wm.result, nil
}

// Init initializes the first step and kicks off the catalog fetch.
func (m *WizardModel) Init() tea.Cmd {
	initCmd := m.initCurrentStep()
	return tea.Batch(initCmd, m.fetchCatalog())
}

// Update handles messages for the wizard.
func (m *WizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		// Discard confirmation takes over all input while visible.
		if m.showDiscardConfirm {
			switch msg.String() {
			case "y", "Y":
				m.cancelled = true
				return m, tea.Quit
			case "n", "N", "esc":
				m.showDiscardConfirm = false
				return m, nil
			}
			return m, nil
		}

		// No input while a submission is in flight.
		if m.submitting {
			if msg.String() == "ctrl+c" {
				m.cancelled = true
				return m, tea.Quit
			}
			return m, nil
		}

		if m.buttonFocused && m.buttonBar != nil {
			switch msg.String() {
			case "tab", "right":
				if !m.buttonBar.FocusNext() {
					m.buttonFocused = false
					m.buttonBar.Blur()
					m.focusStepContentFirst()
					return m, nil
				}
				return m, nil
			case "shift+tab", "left":
				if !m.buttonBar.FocusPrev() {
					m.buttonFocused = false
					m.buttonBar.Blur()
					m.focusStepContentLast()
					return m, nil
				}
				return m, nil
			case "enter", " ":
				return m.activateButton(m.buttonBar.FocusedButton())
			}
		}

		switch msg.String() {
		case "ctrl+c":
			m.cancelled = true
			return m, tea.Quit
		case "esc":
			return m.handleEscape()
		case "alt+1", "alt+2", "alt+3":
			// Jump shortcuts from the overview back to an earlier step.
			if m.machine.Step() == draft.StepDetails {
				target := int(msg.String()[4] - '0')
				return m, m.jumpTo(target)
			}
		}
		// Tab handling lives in the steps: they cycle their own inputs and
		// emit TabExit messages when focus should move to the buttons.

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateCurrentStepSize()
		return m, nil

	case CatalogLoadedMsg:
		m.catalog = msg.Sports
		// Forward so a visible sport step leaves its loading state.

	case RetryCatalogMsg:
		return m, m.fetchCatalog()

	case GeocodeRequestMsg:
		return m, m.resolveAddress(msg.Lat, msg.Lng)

	case AddressResolvedMsg:
		// Drop the result if the pin moved while the lookup was in flight.
		form := m.machine.Form()
		if form.Latitude == nil || form.Longitude == nil ||
			*form.Latitude != msg.Lat || *form.Longitude != msg.Lng {
			return m, nil
		}
		m.machine.SetField(draft.FieldMapAddress, msg.Address)
		// Forward so the step clears its resolving indicator.

	case JumpToStepMsg:
		return m, m.jumpTo(msg.Step)

	case wizard.TabExitForwardMsg:
		m.focusButtons(true)
		return m, nil

	case wizard.TabExitBackwardMsg:
		m.focusButtons(false)
		return m, nil

	case SubmitRequestMsg:
		return m.submit()

	case SubmittedMsg:
		m.submitting = false
		m.result = Result{Submitted: true, EventID: msg.EventID}
		return m, tea.Quit

	case SubmitErrorMsg:
		// The draft survives; the user can fix the input or retry as-is.
		m.submitting = false
		m.submitErr = msg.Err.Error()
		return m, nil
	}

	return m.updateCurrentStep(msg)
}

// handleEscape backs out one level: modal, step, or the whole wizard.
func (m *WizardModel) handleEscape() (tea.Model, tea.Cmd) {
	if m.machine.Mode() == draft.ModeEdit {
		// Edits are all-or-nothing; leaving means dropping them.
		m.showDiscardConfirm = true
		return m, nil
	}
	if m.machine.Step() == draft.StepSports {
		m.cancelled = true
		return m, tea.Quit
	}
	m.machine.Retreat()
	return m, m.initCurrentStep()
}

// jumpTo moves to a step without validating.
func (m *WizardModel) jumpTo(step int) tea.Cmd {
	if !m.machine.JumpTo(step) {
		return nil
	}
	return m.initCurrentStep()
}

// focusButtons moves keyboard focus onto the button bar.
func (m *WizardModel) focusButtons(fromStart bool) {
	m.buttonFocused = true
	m.blurStepContent()
	m.ensureButtonBar()
	if fromStart {
		m.buttonBar.FocusFirst()
	} else {
		m.buttonBar.FocusLast()
	}
}

// activateButton handles a button press.
func (m *WizardModel) activateButton(btnID wizard.ButtonID) (tea.Model, tea.Cmd) {
	switch btnID {
	case wizard.ButtonBack:
		m.machine.Retreat()
		return m, m.initCurrentStep()
	case wizard.ButtonNext:
		if m.machine.Step() == draft.StepDetails {
			return m, func() tea.Msg { return SubmitRequestMsg{} }
		}
		if m.machine.Advance() {
			return m, m.initCurrentStep()
		}
		// Validation failed: stay put, errors now render in the step.
		return m, nil
	}
	return m, nil
}

// submit assembles the payload and dispatches the backend call. A full-form
// validation failure jumps to the earliest failing step instead.
func (m *WizardModel) submit() (tea.Model, tea.Cmd) {
	payload, fail := draft.Assemble(m.machine.Mode(), m.clubID, m.eventID, m.machine.Form())
	if fail != nil {
		logger.Debug("Submit blocked: %v", fail)
		m.machine.PublishErrors(fail.Errors)
		m.machine.JumpTo(fail.Step)
		return m, m.initCurrentStep()
	}

	m.submitting = true
	m.submitErr = ""
	svc := m.svc
	ctx := m.ctx

	return m, func() tea.Msg {
		if payload.Update != nil {
			if err := svc.UpdateEvent(ctx, *payload.Update); err != nil {
				return SubmitErrorMsg{Err: err}
			}
			return SubmittedMsg{EventID: payload.Update.EventID}
		}
		id, err := svc.CreateEvent(ctx, *payload.Create)
		if err != nil {
			return SubmitErrorMsg{Err: err}
		}
		return SubmittedMsg{EventID: id}
	}
}

// fetchCatalog loads the sport-type catalog in the background.
func (m *WizardModel) fetchCatalog() tea.Cmd {
	svc := m.svc
	ctx := m.ctx
	return func() tea.Msg {
		sports, err := svc.SportTypes(ctx)
		if err != nil {
			logger.Warn("Sport catalog fetch failed: %v", err)
			return CatalogErrorMsg{Err: err}
		}
		return CatalogLoadedMsg{Sports: sports}
	}
}

// resolveAddress reverse-geocodes coordinates in the background.
func (m *WizardModel) resolveAddress(lat, lng float64) tea.Cmd {
	svc := m.svc
	ctx := m.ctx
	return func() tea.Msg {
		address, err := svc.ReverseGeocode(ctx, lat, lng)
		if err != nil {
			logger.Warn("Reverse geocode failed for %.4f,%.4f: %v", lat, lng, err)
			return AddressErrorMsg{Lat: lat, Lng: lng}
		}
		return AddressResolvedMsg{Lat: lat, Lng: lng, Address: address}
	}
}

// initCurrentStep creates the component for the machine's current step.
func (m *WizardModel) initCurrentStep() tea.Cmd {
	m.buttonFocused = false
	m.buttonBar = nil

	var cmd tea.Cmd
	switch m.machine.Step() {
	case draft.StepSports:
		m.sportStep = NewSportStep(m.machine)
		if m.catalog != nil {
			m.sportStep.SetCatalog(m.catalog)
		}
		cmd = m.sportStep.Init()
	case draft.StepLocation:
		m.locationStep = NewLocationStep(m.machine)
		cmd = m.locationStep.Init()
	case draft.StepSchedule:
		m.scheduleStep = NewScheduleStep(m.machine)
		cmd = m.scheduleStep.Init()
	case draft.StepDetails:
		m.detailsStep = NewDetailsStep(m.machine)
		cmd = m.detailsStep.Init()
	}
	m.updateCurrentStepSize()
	return cmd
}

// updateCurrentStep forwards a message to the current step component.
func (m *WizardModel) updateCurrentStep(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.machine.Step() {
	case draft.StepSports:
		if m.sportStep != nil {
			cmd = m.sportStep.Update(msg)
		}
	case draft.StepLocation:
		if m.locationStep != nil {
			cmd = m.locationStep.Update(msg)
		}
	case draft.StepSchedule:
		if m.scheduleStep != nil {
			cmd = m.scheduleStep.Update(msg)
		}
	case draft.StepDetails:
		if m.detailsStep != nil {
			cmd = m.detailsStep.Update(msg)
		}
	}
	return m, cmd
}

// getModalContentSize returns the internal content dimensions for the modal.
func (m *WizardModel) getModalContentSize() (width, height int) {
	width = modalContentWidth

	height = m.height - 4
	if height < 20 {
		height = 20
	}
	if height > 44 {
		height = 44
	}
	height = height - 10
	if height < 10 {
		height = 10
	}
	return width, height
}

// updateCurrentStepSize resizes the current step component.
func (m *WizardModel) updateCurrentStepSize() {
	contentWidth, contentHeight := m.getModalContentSize()

	switch m.machine.Step() {
	case draft.StepSports:
		if m.sportStep != nil {
			m.sportStep.SetSize(contentWidth, contentHeight)
		}
	case draft.StepLocation:
		if m.locationStep != nil {
			m.locationStep.SetSize(contentWidth, contentHeight)
		}
	case draft.StepSchedule:
		if m.scheduleStep != nil {
			m.scheduleStep.SetSize(contentWidth, contentHeight)
		}
	case draft.StepDetails:
		if m.detailsStep != nil {
			m.detailsStep.SetSize(contentWidth, contentHeight)
		}
	}
}

// ensureButtonBar creates (or restores) the button bar for the current step.
func (m *WizardModel) ensureButtonBar() {
	step := m.machine.Step()
	if cached, ok := m.stepBars[step]; ok {
		m.buttonBar = cached
		return
	}

	var buttons []wizard.Button
	backState := wizard.ButtonNormal
	if step == draft.StepSports {
		backState = wizard.ButtonDisabled
	}
	buttons = append(buttons, wizard.Button{
		ID:    wizard.ButtonBack,
		Label: "← Back",
		State: backState,
	})

	buttons = append(buttons, wizard.Button{
		ID:    wizard.ButtonNext,
		Label: m.nextLabel(),
		State: wizard.ButtonNormal,
	})

	bar := wizard.NewButtonBar(buttons)
	bar.SetWidth(modalContentWidth)
	m.stepBars[step] = bar
	m.buttonBar = bar
}

// nextLabel is the forward button's label for the current step.
func (m *WizardModel) nextLabel() string {
	if m.machine.Step() != draft.StepDetails {
		return "Next →"
	}
	if m.machine.Mode() == draft.ModeEdit {
		return "Save Changes"
	}
	return "Create Event"
}

// View renders the wizard.
func (m *WizardModel) View() tea.View {
	var view tea.View
	view.AltScreen = true

	if m.width == 0 || m.height == 0 {
		view.Content = lipgloss.NewLayer("")
		return view
	}

	content := m.renderModal()

	centered := lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		content,
	)

	canvas := uv.NewScreenBuffer(m.width, m.height)
	uv.NewStyledString(centered).Draw(canvas, uv.Rectangle{
		Min: uv.Position{X: 0, Y: 0},
		Max: uv.Position{X: m.width, Y: m.height},
	})

	view.Content = lipgloss.NewLayer(canvas.Render())
	return view
}

// renderModal renders the wizard chrome around the current step.
func (m *WizardModel) renderModal() string {
	th := theme.Current()

	if m.showDiscardConfirm {
		return m.renderDiscardModal()
	}

	verb := "Create Event"
	if m.machine.Mode() == draft.ModeEdit {
		verb = "Edit Event"
	}
	var stepName string
	switch m.machine.Step() {
	case draft.StepSports:
		stepName = "Sports"
	case draft.StepLocation:
		stepName = "Location"
	case draft.StepSchedule:
		stepName = "Schedule"
	case draft.StepDetails:
		stepName = "Overview"
	}
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(th.Primary)).
		MarginBottom(1).
		Render(fmt.Sprintf("%s - Step %d of 4: %s", verb, m.machine.Step(), stepName))

	var stepContent string
	switch m.machine.Step() {
	case draft.StepSports:
		if m.sportStep != nil {
			stepContent = m.sportStep.View()
		}
	case draft.StepLocation:
		if m.locationStep != nil {
			stepContent = m.locationStep.View()
		}
	case draft.StepSchedule:
		if m.scheduleStep != nil {
			stepContent = m.scheduleStep.View()
		}
	case draft.StepDetails:
		if m.detailsStep != nil {
			stepContent = m.detailsStep.View()
		}
	}

	parts := []string{title, stepContent}

	if m.submitErr != "" {
		banner := lipgloss.NewStyle().
			Foreground(lipgloss.Color(th.Error)).
			Bold(true).
			Render("✗ Submission failed: " + m.submitErr)
		parts = append(parts, "", banner)
	}

	if m.submitting {
		working := lipgloss.NewStyle().
			Foreground(lipgloss.Color(th.FgMuted)).
			Render("Submitting...")
		parts = append(parts, "", working)
	} else {
		m.ensureButtonBar()
		parts = append(parts, "", m.buttonBar.Render())
	}

	hint := renderHintBar("tab", "navigate", "esc", "back")
	if m.machine.Mode() == draft.ModeEdit {
		hint = renderHintBar("tab", "navigate", "esc", "discard")
	}
	parts = append(parts, "", hint)

	modalStyle := lipgloss.NewStyle().
		Width(modalWidth).
		Padding(2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(th.BorderDefault))

	return modalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// renderDiscardModal renders the edit-mode discard confirmation.
func (m *WizardModel) renderDiscardModal() string {
	th := theme.Current()

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(th.Warning)).
		MarginBottom(1).
		Render("⚠ Discard changes?")

	message := lipgloss.NewStyle().
		Foreground(lipgloss.Color(th.FgBase)).
		MarginBottom(1).
		Render("The event will keep its current values. Nothing has been sent.")

	buttons := lipgloss.NewStyle().
		Foreground(lipgloss.Color(th.FgMuted)).
		Render("Press Y to discard, N or ESC to keep editing")

	content := lipgloss.JoinVertical(lipgloss.Left, title, message, "", buttons)

	return lipgloss.NewStyle().
		Width(60).
		Padding(2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(th.Warning)).
		Render(content)
}

// focusStepContentFirst focuses the first element in step content.
func (m *WizardModel) focusStepContentFirst() {
	switch m.machine.Step() {
	case draft.StepSports:
		if m.sportStep != nil {
			m.sportStep.Focus()
		}
	case draft.StepLocation:
		if m.locationStep != nil {
			m.locationStep.Focus()
		}
	case draft.StepSchedule:
		if m.scheduleStep != nil {
			m.scheduleStep.Focus()
		}
	case draft.StepDetails:
		if m.detailsStep != nil {
			m.detailsStep.Focus()
		}
	}
}

// focusStepContentLast focuses the last element in step content.
func (m *WizardModel) focusStepContentLast() {
	switch m.machine.Step() {
	case draft.StepSports:
		if m.sportStep != nil {
			m.sportStep.Focus()
		}
	case draft.StepLocation:
		if m.locationStep != nil {
			m.locationStep.FocusLast()
		}
	case draft.StepSchedule:
		if m.scheduleStep != nil {
			m.scheduleStep.FocusLast()
		}
	case draft.StepDetails:
		if m.detailsStep != nil {
			m.detailsStep.FocusLast()
		}
	}
}

// blurStepContent blurs all step content.
func (m *WizardModel) blurStepContent() {
	switch m.machine.Step() {
	case draft.StepSports:
		if m.sportStep != nil {
			m.sportStep.Blur()
		}
	case draft.StepLocation:
		if m.locationStep != nil {
			m.locationStep.Blur()
		}
	case draft.StepSchedule:
		if m.scheduleStep != nil {
			m.scheduleStep.Blur()
		}
	case draft.StepDetails:
		if m.detailsStep != nil {
			m.detailsStep.Blur()
		}
	}
}

// Machine exposes the underlying state machine for tests.
func (m *WizardModel) Machine() *draft.Machine {
	return m.machine
}
