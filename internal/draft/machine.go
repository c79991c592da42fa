package draft

// Mode selects between the create and edit flows. Edit mode starts on the
// final step and produces update-shaped payloads.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

// Machine owns the current step, the draft, and the accumulated error map.
// It is driven synchronously from the UI loop; there is no concurrency.
type Machine struct {
	mode Mode
	step int
	form *EventFormData
	errs FieldErrors
}

// NewMachine creates a machine at step 1 (create) or the final step (edit).
func NewMachine(mode Mode, form *EventFormData) *Machine {
	step := firstStep
	if mode == ModeEdit {
		step = lastStep
	}
	return &Machine{
		mode: mode,
		step: step,
		form: form,
		errs: FieldErrors{},
	}
}

// Mode returns the wizard mode.
func (m *Machine) Mode() Mode { return m.mode }

// Step returns the current step (1-4).
func (m *Machine) Step() int { return m.step }

// Form returns the mutable draft.
func (m *Machine) Form() *EventFormData { return m.form }

// Errors returns the accumulated field error map.
func (m *Machine) Errors() FieldErrors { return m.errs }

// Error returns the message for one field, or "".
func (m *Machine) Error(field string) string { return m.errs[field] }

// Advance validates the current step. On success it clears the step's errors
// and moves forward (no-op past the last step); on failure it stays put and
// publishes the field errors. Returns whether the step validated.
func (m *Machine) Advance() bool {
	errs := Validate(m.mode, m.step, m.form)
	if len(errs) > 0 {
		for field, msg := range errs {
			m.errs[field] = msg
		}
		return false
	}

	for _, field := range stepFields(m.step) {
		delete(m.errs, field)
	}
	if m.step < lastStep {
		m.step++
	}
	return true
}

// Retreat moves back one step unconditionally, floored at the first step.
func (m *Machine) Retreat() {
	if m.step > firstStep {
		m.step--
	}
}

// JumpTo moves directly to a step without validating, for the overview
// step's per-section edit affordance. Out-of-range targets are rejected.
func (m *Machine) JumpTo(step int) bool {
	if step < firstStep || step > lastStep {
		return false
	}
	m.step = step
	return true
}

// SetField merges one text field's new value into the draft and clears that
// field's error, if any.
func (m *Machine) SetField(field, value string) {
	switch field {
	case FieldLocationText:
		m.form.LocationText = value
	case FieldMapAddress:
		m.form.MapAddress = value
	case FieldStartTime:
		m.form.StartText = value
	case FieldEndTime:
		m.form.EndText = value
	case FieldRecurrencePattern:
		m.form.Pattern = value
	case FieldSeriesEndDate:
		m.form.SeriesEnd = value
	case FieldEventName:
		m.form.Name = value
	case FieldDescription:
		m.form.Description = value
	case FieldMaxParticipants:
		m.form.MaxText = value
	case FieldDistanceKm:
		m.form.DistanceText = value
	case FieldPaceMinutes:
		m.form.PaceMinText = value
	case FieldPaceSeconds:
		m.form.PaceSecText = value
	case FieldPrivacy:
		m.form.Privacy = value
	case FieldCoverImageURL:
		m.form.CoverImageURL = value
	default:
		return
	}
	delete(m.errs, field)
}

// SetRecurring toggles the recurrence flag. The recurrence-owned errors are
// cleared because the applicable rules just changed.
func (m *Machine) SetRecurring(on bool) {
	m.form.IsRecurring = on
	delete(m.errs, FieldRecurrencePattern)
	delete(m.errs, FieldSeriesEndDate)
}

// SetLocation records map-derived coordinates and clears the location error.
func (m *Machine) SetLocation(lat, lng float64) {
	m.form.Latitude = &lat
	m.form.Longitude = &lng
	delete(m.errs, FieldLocation)
}

// ClearLocation removes the coordinates (and any stale derived address).
func (m *Machine) ClearLocation() {
	m.form.Latitude = nil
	m.form.Longitude = nil
	m.form.MapAddress = ""
}

// ToggleSport applies a symmetric-difference update to the sport selection
// and clears the selection error once the set is non-empty.
func (m *Machine) ToggleSport(id string) {
	if _, ok := m.form.SportTypeIDs[id]; ok {
		delete(m.form.SportTypeIDs, id)
	} else {
		m.form.SportTypeIDs[id] = struct{}{}
	}
	if len(m.form.SportTypeIDs) > 0 {
		delete(m.errs, FieldSportTypes)
	}
}

// PublishErrors merges externally produced errors (the assembler's
// re-validation pass) into the machine's error map.
func (m *Machine) PublishErrors(errs FieldErrors) {
	for field, msg := range errs {
		m.errs[field] = msg
	}
}

// stepFields returns the fields owned by a step's validator.
func stepFields(step int) []string {
	switch step {
	case StepSports:
		return []string{FieldSportTypes}
	case StepLocation:
		return []string{FieldLocation, FieldLocationText}
	case StepSchedule:
		return []string{FieldStartTime, FieldEndTime, FieldRecurrencePattern, FieldSeriesEndDate}
	case StepDetails:
		return []string{
			FieldEventName, FieldDescription, FieldMaxParticipants, FieldDistanceKm,
			FieldPaceMinutes, FieldPaceSeconds, FieldPrivacy, FieldCoverImageURL,
		}
	}
	return nil
}
