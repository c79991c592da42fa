// Package draft is the wizard's domain core: the mutable event draft, the
// step state machine, per-step validators, and the payload assembler. It is
// pure and UI-free; the TUI layer drives it and renders its error map.
package draft

import (
	"sort"
	"strconv"
	"time"

	"github.com/matchday-app/matchday/internal/backend"
)

// Text layouts for the date/time form fields.
const (
	TimeLayout = "2006-01-02 15:04"
	DateLayout = "2006-01-02"
)

// Field keys. One validator owns each key; the same keys index the error map.
const (
	FieldSportTypes        = "sportTypeIds"
	FieldLocation          = "location"
	FieldLocationText      = "locationText"
	FieldMapAddress        = "mapAddress"
	FieldStartTime         = "startTime"
	FieldEndTime           = "endTime"
	FieldRecurrencePattern = "recurrencePattern"
	FieldSeriesEndDate     = "seriesEndDate"
	FieldEventName         = "eventName"
	FieldDescription       = "description"
	FieldMaxParticipants   = "maxParticipants"
	FieldDistanceKm        = "distanceKm"
	FieldPaceMinutes       = "paceMinutes"
	FieldPaceSeconds       = "paceSeconds"
	FieldPrivacy           = "privacy"
	FieldCoverImageURL     = "coverImageUrl"
)

// EventFormData is the single mutable draft the wizard operates on. Numeric
// form fields stay raw text until validation so the user can type freely;
// empty text means "absent", never zero. Coordinates are map-derived, not
// typed, so they are held as parsed values.
type EventFormData struct {
	// Step 1: sport selection
	SportTypeIDs map[string]struct{}

	// Step 2: location
	Latitude     *float64
	Longitude    *float64
	MapAddress   string // system-populated by reverse geocoding
	LocationText string

	// Step 3: schedule
	StartText   string // TimeLayout
	EndText     string // TimeLayout, optional
	IsRecurring bool
	Pattern     string // backend.RecurrenceNone/Weekly/Monthly
	SeriesEnd   string // DateLayout, optional, create mode only

	// Step 4: details
	Name          string
	Description   string
	MaxText       string
	DistanceText  string
	PaceMinText   string
	PaceSecText   string
	Privacy       string
	CoverImageURL string

	// Loc is the timezone all date/time text is interpreted in.
	Loc *time.Location
}

// NewForm creates a fresh draft for create mode. The start time defaults to
// an hour from now, rounded down to the hour.
func NewForm(now time.Time) *EventFormData {
	start := now.Add(time.Hour)
	start = time.Date(start.Year(), start.Month(), start.Day(), start.Hour(), 0, 0, 0, start.Location())

	return &EventFormData{
		SportTypeIDs: make(map[string]struct{}),
		StartText:    start.Format(TimeLayout),
		Pattern:      backend.RecurrenceNone,
		Privacy:      backend.PrivacyPublic,
		Loc:          now.Location(),
	}
}

// FromEvent hydrates a draft from an existing event for edit mode. Series
// membership is carried over for display only; the assembler never sends
// recurrence fields on update.
func FromEvent(ev *backend.Event, loc *time.Location) *EventFormData {
	f := &EventFormData{
		SportTypeIDs:  make(map[string]struct{}, len(ev.SportTypeIDs)),
		MapAddress:    ev.Address,
		LocationText:  ev.LocationText,
		StartText:     ev.StartTime.In(loc).Format(TimeLayout),
		Name:          ev.Name,
		Description:   ev.Description,
		Privacy:       ev.Privacy,
		CoverImageURL: ev.CoverImageURL,
		Pattern:       backend.RecurrenceNone,
		Loc:           loc,
	}

	for _, id := range ev.SportTypeIDs {
		f.SportTypeIDs[id] = struct{}{}
	}

	lat, lng := ev.Latitude, ev.Longitude
	f.Latitude = &lat
	f.Longitude = &lng

	if ev.EndTime != nil {
		f.EndText = ev.EndTime.In(loc).Format(TimeLayout)
	}
	if ev.MaxParticipants != nil {
		f.MaxText = strconv.Itoa(*ev.MaxParticipants)
	}
	if d, ok := ev.Attributes[backend.AttrDistanceKm]; ok {
		f.DistanceText = strconv.FormatFloat(d, 'f', -1, 64)
	}
	if p, ok := ev.Attributes[backend.AttrPaceSecondsPerKm]; ok {
		total := int(p)
		f.PaceMinText = strconv.Itoa(total / 60)
		f.PaceSecText = strconv.Itoa(total % 60)
	}

	if ev.Recurring() {
		f.IsRecurring = true
		f.Pattern = ev.RecurrencePattern
		f.SeriesEnd = ev.SeriesEndDate
	}

	return f
}

// SortedSportIDs returns the selected sport-type ids in stable order.
func (f *EventFormData) SortedSportIDs() []string {
	ids := make([]string, 0, len(f.SportTypeIDs))
	for id := range f.SportTypeIDs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
