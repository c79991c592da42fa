package draft

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/matchday-app/matchday/internal/backend"
)

// FieldErrors maps a field key to a user-facing message.
type FieldErrors map[string]string

// Wizard steps. Each step's validator owns a disjoint set of fields.
const (
	StepSports   = 1
	StepLocation = 2
	StepSchedule = 3
	StepDetails  = 4

	firstStep = StepSports
	lastStep  = StepDetails
)

var sportIDPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

// SportsValues is the normalized output of the sport-selection step.
type SportsValues struct {
	SportTypeIDs []string
}

// ValidateSports requires at least one syntactically valid sport-type id.
func ValidateSports(f *EventFormData) (SportsValues, FieldErrors) {
	errs := FieldErrors{}

	if len(f.SportTypeIDs) == 0 {
		errs[FieldSportTypes] = "select at least one sport type"
		return SportsValues{}, errs
	}
	for id := range f.SportTypeIDs {
		if !sportIDPattern.MatchString(id) {
			errs[FieldSportTypes] = "invalid sport type id"
			return SportsValues{}, errs
		}
	}

	return SportsValues{SportTypeIDs: f.SortedSportIDs()}, nil
}

// LocationValues is the normalized output of the location step.
type LocationValues struct {
	Latitude     float64
	Longitude    float64
	Address      string
	LocationText string
}

// ValidateLocation requires coordinates within geographic bounds. The
// free-text landmark is optional and capped at 255 characters.
func ValidateLocation(f *EventFormData) (LocationValues, FieldErrors) {
	errs := FieldErrors{}

	text := strings.TrimSpace(f.LocationText)
	if utf8.RuneCountInString(text) > 255 {
		errs[FieldLocationText] = "keep it under 255 characters"
	}

	// Absence is checked before bounds.
	if f.Latitude == nil || f.Longitude == nil {
		errs[FieldLocation] = "select a location on the map"
		return LocationValues{}, errs
	}
	if *f.Latitude < -90 || *f.Latitude > 90 || *f.Longitude < -180 || *f.Longitude > 180 {
		errs[FieldLocation] = "coordinates are out of range"
	}

	if len(errs) > 0 {
		return LocationValues{}, errs
	}
	return LocationValues{
		Latitude:     *f.Latitude,
		Longitude:    *f.Longitude,
		Address:      strings.TrimSpace(f.MapAddress),
		LocationText: text,
	}, nil
}

// ScheduleValues is the normalized output of the schedule step. Pattern is
// forced to none when Recurring is false, regardless of leftover form state.
type ScheduleValues struct {
	Start     time.Time
	End       *time.Time
	Recurring bool
	Pattern   string
	SeriesEnd *time.Time
}

// ValidateSchedule requires a start time, an end strictly after it when
// present, and consistent recurrence fields. Recurrence rules apply only on
// create: in edit mode the fields are hydrated from the existing series,
// shown read-only, and never transmitted, so they cannot block submission.
func ValidateSchedule(mode Mode, f *EventFormData) (ScheduleValues, FieldErrors) {
	errs := FieldErrors{}
	loc := f.Loc
	if loc == nil {
		loc = time.Local
	}

	var start time.Time
	startOK := false
	if raw := strings.TrimSpace(f.StartText); raw == "" {
		errs[FieldStartTime] = "start time is required"
	} else if t, err := time.ParseInLocation(TimeLayout, raw, loc); err != nil {
		errs[FieldStartTime] = "use the format YYYY-MM-DD HH:MM"
	} else {
		start = t
		startOK = true
	}

	var end *time.Time
	if raw := strings.TrimSpace(f.EndText); raw != "" {
		if t, err := time.ParseInLocation(TimeLayout, raw, loc); err != nil {
			errs[FieldEndTime] = "use the format YYYY-MM-DD HH:MM"
		} else if startOK && !t.After(start) {
			errs[FieldEndTime] = "end time must be after start time"
		} else {
			end = &t
		}
	}

	var seriesEnd *time.Time
	recurring := f.IsRecurring && mode == ModeCreate
	if mode == ModeEdit {
		// display-only; nothing to validate
	} else if f.IsRecurring {
		if f.Pattern != backend.RecurrenceWeekly && f.Pattern != backend.RecurrenceMonthly {
			errs[FieldRecurrencePattern] = "choose weekly or monthly"
		}
		if raw := strings.TrimSpace(f.SeriesEnd); raw != "" {
			if d, err := time.ParseInLocation(DateLayout, raw, loc); err != nil {
				errs[FieldSeriesEndDate] = "use the format YYYY-MM-DD"
			} else if startOK && d.Before(dateOf(start)) {
				errs[FieldSeriesEndDate] = "series end must not be before the first occurrence"
			} else {
				seriesEnd = &d
			}
		}
	} else if strings.TrimSpace(f.SeriesEnd) != "" {
		errs[FieldSeriesEndDate] = "series end only applies to recurring events"
	}

	if len(errs) > 0 {
		return ScheduleValues{}, errs
	}

	pattern := backend.RecurrenceNone
	if recurring {
		pattern = f.Pattern
	}
	return ScheduleValues{
		Start:     start,
		End:       end,
		Recurring: recurring,
		Pattern:   pattern,
		SeriesEnd: seriesEnd,
	}, nil
}

// DetailsValues is the normalized output of the overview/details step.
// Absent numeric fields are nil, never zero.
type DetailsValues struct {
	Name            string
	Description     string
	MaxParticipants *int
	DistanceKm      *float64
	PaceMinutes     *int
	PaceSeconds     *int
	Privacy         string
	CoverImageURL   string
}

// ValidateDetails requires a name and privacy level; numeric text fields are
// converted here, with empty text meaning absent.
func ValidateDetails(f *EventFormData) (DetailsValues, FieldErrors) {
	errs := FieldErrors{}
	var v DetailsValues

	v.Name = strings.TrimSpace(f.Name)
	if v.Name == "" {
		errs[FieldEventName] = "event name is required"
	} else if utf8.RuneCountInString(v.Name) > 150 {
		errs[FieldEventName] = "keep it under 150 characters"
	}

	v.Description = strings.TrimSpace(f.Description)
	if utf8.RuneCountInString(v.Description) > 2000 {
		errs[FieldDescription] = "keep it under 2000 characters"
	}

	if n, err := optionalInt(f.MaxText); err != nil {
		errs[FieldMaxParticipants] = "enter a whole number"
	} else if n != nil && *n <= 0 {
		errs[FieldMaxParticipants] = "must be greater than zero"
	} else {
		v.MaxParticipants = n
	}

	if d, err := optionalFloat(f.DistanceText); err != nil {
		errs[FieldDistanceKm] = "enter a number"
	} else if d != nil && *d <= 0 {
		errs[FieldDistanceKm] = "must be greater than zero"
	} else {
		v.DistanceKm = d
	}

	if n, err := optionalInt(f.PaceMinText); err != nil || (n != nil && (*n < 0 || *n > 59)) {
		errs[FieldPaceMinutes] = "enter a value between 0 and 59"
	} else {
		v.PaceMinutes = n
	}
	if n, err := optionalInt(f.PaceSecText); err != nil || (n != nil && (*n < 0 || *n > 59)) {
		errs[FieldPaceSeconds] = "enter a value between 0 and 59"
	} else {
		v.PaceSeconds = n
	}

	switch f.Privacy {
	case "":
		errs[FieldPrivacy] = "choose a privacy level"
	case backend.PrivacyPublic, backend.PrivacyPrivate, backend.PrivacyControlled:
		v.Privacy = f.Privacy
	default:
		errs[FieldPrivacy] = "choose public, private, or controlled"
	}

	if raw := strings.TrimSpace(f.CoverImageURL); raw != "" {
		if u, err := url.Parse(raw); err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			errs[FieldCoverImageURL] = "enter a valid URL"
		} else {
			v.CoverImageURL = raw
		}
	}

	if len(errs) > 0 {
		return DetailsValues{}, errs
	}
	return v, nil
}

// Validate runs the validator owning the given step and returns its errors.
func Validate(mode Mode, step int, f *EventFormData) FieldErrors {
	switch step {
	case StepSports:
		_, errs := ValidateSports(f)
		return errs
	case StepLocation:
		_, errs := ValidateLocation(f)
		return errs
	case StepSchedule:
		_, errs := ValidateSchedule(mode, f)
		return errs
	case StepDetails:
		_, errs := ValidateDetails(f)
		return errs
	}
	return nil
}

// optionalInt converts numeric text to an int. Empty or whitespace-only text
// is absent, not zero and not an error.
func optionalInt(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// optionalFloat converts numeric text to a float64, with the same
// empty-means-absent rule as optionalInt.
func optionalFloat(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	d, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// dateOf truncates a time to midnight in its own location.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
