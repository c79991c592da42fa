package draft

import (
	"fmt"

	"github.com/matchday-app/matchday/internal/backend"
)

// ValidationFailure reports a failed full-form re-validation: the first
// failing step (for the wizard to jump to) and the merged field errors.
type ValidationFailure struct {
	Step   int
	Errors FieldErrors
}

func (v *ValidationFailure) Error() string {
	return fmt.Sprintf("validation failed at step %d (%d field errors)", v.Step, len(v.Errors))
}

// Payload is the assembled remote-procedure argument set. Exactly one of
// Create/Update is set, matching the wizard mode.
type Payload struct {
	Create *backend.CreateEventArgs
	Update *backend.UpdateEventArgs
}

// Assemble re-runs all four validators against the complete draft (earlier
// per-step results are not trusted, since edit mode enters at the final
// step) and builds the backend call arguments. Deterministic: an unchanged
// draft assembles to identical arguments every time.
func Assemble(mode Mode, clubID, eventID string, f *EventFormData) (*Payload, *ValidationFailure) {
	sports, sportErrs := ValidateSports(f)
	location, locErrs := ValidateLocation(f)
	schedule, schedErrs := ValidateSchedule(mode, f)
	details, detailErrs := ValidateDetails(f)

	failStep := 0
	merged := FieldErrors{}
	for step, errs := range map[int]FieldErrors{
		StepSports:   sportErrs,
		StepLocation: locErrs,
		StepSchedule: schedErrs,
		StepDetails:  detailErrs,
	} {
		if len(errs) == 0 {
			continue
		}
		if failStep == 0 || step < failStep {
			failStep = step
		}
		for field, msg := range errs {
			merged[field] = msg
		}
	}
	if failStep != 0 {
		return nil, &ValidationFailure{Step: failStep, Errors: merged}
	}

	attrs := sportAttributes(details)

	if mode == ModeEdit {
		return &Payload{Update: &backend.UpdateEventArgs{
			EventID:         eventID,
			Name:            details.Name,
			Description:     optionalString(details.Description),
			SportTypeIDs:    sports.SportTypeIDs,
			StartTime:       schedule.Start,
			EndTime:         schedule.End,
			Latitude:        location.Latitude,
			Longitude:       location.Longitude,
			Address:         optionalString(location.Address),
			LocationText:    optionalString(location.LocationText),
			MaxParticipants: details.MaxParticipants,
			Privacy:         details.Privacy,
			CoverImageURL:   optionalString(details.CoverImageURL),
			Attributes:      attrs,
		}}, nil
	}

	create := &backend.CreateEventArgs{
		ClubID:          clubID,
		Name:            details.Name,
		Description:     optionalString(details.Description),
		SportTypeIDs:    sports.SportTypeIDs,
		StartTime:       schedule.Start,
		EndTime:         schedule.End,
		Latitude:        location.Latitude,
		Longitude:       location.Longitude,
		Address:         optionalString(location.Address),
		LocationText:    optionalString(location.LocationText),
		MaxParticipants: details.MaxParticipants,
		Privacy:         details.Privacy,
		CoverImageURL:   optionalString(details.CoverImageURL),
		Attributes:      attrs,
	}

	// The recurrence directive exists only on create, and only when the
	// draft actually recurs; leftover pattern state from a toggled-off
	// checkbox must never leak onto the wire.
	if schedule.Recurring && schedule.Pattern != backend.RecurrenceNone {
		pattern := schedule.Pattern
		create.RecurrencePattern = &pattern
		if schedule.SeriesEnd != nil {
			end := schedule.SeriesEnd.Format(DateLayout)
			create.SeriesEndDate = &end
		}
	}

	return &Payload{Create: create}, nil
}

// sportAttributes bundles distance and pace into the optional attribute map.
// An empty set is absent, not an empty map. Pace is included only when
// minutes or seconds were provided and the total is non-zero.
func sportAttributes(d DetailsValues) map[string]float64 {
	attrs := map[string]float64{}

	if d.DistanceKm != nil {
		attrs[backend.AttrDistanceKm] = *d.DistanceKm
	}
	if d.PaceMinutes != nil || d.PaceSeconds != nil {
		total := 0
		if d.PaceMinutes != nil {
			total += *d.PaceMinutes * 60
		}
		if d.PaceSeconds != nil {
			total += *d.PaceSeconds
		}
		if total > 0 {
			attrs[backend.AttrPaceSecondsPerKm] = float64(total)
		}
	}

	if len(attrs) == 0 {
		return nil
	}
	return attrs
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
