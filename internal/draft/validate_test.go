package draft

import (
	"strings"
	"testing"
	"time"

	"github.com/matchday-app/matchday/internal/backend"
)

func validForm() *EventFormData {
	lat, lng := 52.52, 13.405
	return &EventFormData{
		SportTypeIDs: map[string]struct{}{"running": {}},
		Latitude:     &lat,
		Longitude:    &lng,
		MapAddress:   "Alexanderplatz, Berlin",
		StartText:    "2025-06-01 10:00",
		Pattern:      backend.RecurrenceNone,
		Name:         "Morning Run",
		Privacy:      backend.PrivacyPublic,
		Loc:          time.UTC,
	}
}

func TestValidateSports(t *testing.T) {
	tests := []struct {
		name    string
		ids     []string
		wantErr string
	}{
		{
			name:    "empty selection",
			ids:     nil,
			wantErr: "select at least one sport type",
		},
		{
			name: "single valid id",
			ids:  []string{"running"},
		},
		{
			name: "multiple valid ids",
			ids:  []string{"running", "trail-running", "cycling_road"},
		},
		{
			name:    "malformed id",
			ids:     []string{"running", "not a valid id"},
			wantErr: "invalid sport type id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validForm()
			f.SportTypeIDs = map[string]struct{}{}
			for _, id := range tt.ids {
				f.SportTypeIDs[id] = struct{}{}
			}

			values, errs := ValidateSports(f)
			if tt.wantErr != "" {
				if errs[FieldSportTypes] != tt.wantErr {
					t.Errorf("error = %q, want %q", errs[FieldSportTypes], tt.wantErr)
				}
				return
			}
			if len(errs) != 0 {
				t.Fatalf("unexpected errors: %v", errs)
			}
			if len(values.SportTypeIDs) != len(tt.ids) {
				t.Errorf("normalized ids = %v, want %d entries", values.SportTypeIDs, len(tt.ids))
			}
		})
	}
}

func TestValidateSportsOrderStable(t *testing.T) {
	f := validForm()
	f.SportTypeIDs = map[string]struct{}{"tennis": {}, "cycling": {}, "running": {}}

	values, errs := ValidateSports(f)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	want := []string{"cycling", "running", "tennis"}
	for i, id := range want {
		if values.SportTypeIDs[i] != id {
			t.Fatalf("SportTypeIDs = %v, want %v", values.SportTypeIDs, want)
		}
	}
}

func TestValidateLocation(t *testing.T) {
	f64 := func(v float64) *float64 { return &v }

	tests := []struct {
		name      string
		lat, lng  *float64
		text      string
		wantField string
		wantErr   string
	}{
		{
			name: "valid coordinates",
			lat:  f64(52.52), lng: f64(13.405),
		},
		{
			name:      "missing both",
			wantField: FieldLocation,
			wantErr:   "select a location on the map",
		},
		{
			name:      "missing longitude",
			lat:       f64(52.52),
			wantField: FieldLocation,
			wantErr:   "select a location on the map",
		},
		{
			name: "latitude out of range",
			lat:  f64(91), lng: f64(13.405),
			wantField: FieldLocation,
			wantErr:   "coordinates are out of range",
		},
		{
			name: "longitude out of range",
			lat:  f64(52.52), lng: f64(-181),
			wantField: FieldLocation,
			wantErr:   "coordinates are out of range",
		},
		{
			name: "location text too long",
			lat:  f64(52.52), lng: f64(13.405),
			text:      strings.Repeat("x", 256),
			wantField: FieldLocationText,
			wantErr:   "keep it under 255 characters",
		},
		{
			name: "location text at limit",
			lat:  f64(52.52), lng: f64(13.405),
			text: strings.Repeat("x", 255),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validForm()
			f.Latitude = tt.lat
			f.Longitude = tt.lng
			f.LocationText = tt.text

			values, errs := ValidateLocation(f)
			if tt.wantErr != "" {
				if errs[tt.wantField] != tt.wantErr {
					t.Errorf("errs[%s] = %q, want %q", tt.wantField, errs[tt.wantField], tt.wantErr)
				}
				return
			}
			if len(errs) != 0 {
				t.Fatalf("unexpected errors: %v", errs)
			}
			if values.Latitude != *tt.lat || values.Longitude != *tt.lng {
				t.Errorf("coordinates = %v,%v", values.Latitude, values.Longitude)
			}
		})
	}
}

func TestValidateSchedule(t *testing.T) {
	tests := []struct {
		name      string
		start     string
		end       string
		recurring bool
		pattern   string
		seriesEnd string
		wantField string
		wantErr   string
	}{
		{
			name:  "start only",
			start: "2025-06-01 10:00",
		},
		{
			name:      "missing start",
			start:     "",
			wantField: FieldStartTime,
			wantErr:   "start time is required",
		},
		{
			name:      "whitespace start is absent",
			start:     "   ",
			wantField: FieldStartTime,
			wantErr:   "start time is required",
		},
		{
			name:      "unparseable start",
			start:     "next tuesday",
			wantField: FieldStartTime,
			wantErr:   "use the format YYYY-MM-DD HH:MM",
		},
		{
			name:  "end after start",
			start: "2025-06-01 10:00",
			end:   "2025-06-01 11:30",
		},
		{
			name:      "end before start",
			start:     "2025-06-01 10:00",
			end:       "2025-06-01 09:00",
			wantField: FieldEndTime,
			wantErr:   "end time must be after start time",
		},
		{
			name:      "end equal to start",
			start:     "2025-06-01 10:00",
			end:       "2025-06-01 10:00",
			wantField: FieldEndTime,
			wantErr:   "end time must be after start time",
		},
		{
			name:      "recurring without pattern",
			start:     "2025-06-01 10:00",
			recurring: true,
			pattern:   backend.RecurrenceNone,
			wantField: FieldRecurrencePattern,
			wantErr:   "choose weekly or monthly",
		},
		{
			name:      "recurring weekly",
			start:     "2025-06-01 10:00",
			recurring: true,
			pattern:   backend.RecurrenceWeekly,
		},
		{
			name:      "series end before start",
			start:     "2025-07-01 10:00",
			recurring: true,
			pattern:   backend.RecurrenceWeekly,
			seriesEnd: "2025-06-01",
			wantField: FieldSeriesEndDate,
			wantErr:   "series end must not be before the first occurrence",
		},
		{
			name:      "series end on start date",
			start:     "2025-07-01 10:00",
			recurring: true,
			pattern:   backend.RecurrenceMonthly,
			seriesEnd: "2025-07-01",
		},
		{
			name:      "series end without recurrence",
			start:     "2025-06-01 10:00",
			seriesEnd: "2025-08-01",
			wantField: FieldSeriesEndDate,
			wantErr:   "series end only applies to recurring events",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validForm()
			f.StartText = tt.start
			f.EndText = tt.end
			f.IsRecurring = tt.recurring
			if tt.pattern != "" {
				f.Pattern = tt.pattern
			}
			f.SeriesEnd = tt.seriesEnd

			values, errs := ValidateSchedule(ModeCreate, f)
			if tt.wantErr != "" {
				if errs[tt.wantField] != tt.wantErr {
					t.Errorf("errs[%s] = %q, want %q (all: %v)", tt.wantField, errs[tt.wantField], tt.wantErr, errs)
				}
				return
			}
			if len(errs) != 0 {
				t.Fatalf("unexpected errors: %v", errs)
			}
			if values.Start.IsZero() {
				t.Error("normalized start is zero")
			}
			if !tt.recurring && values.Pattern != backend.RecurrenceNone {
				t.Errorf("pattern = %q for non-recurring draft", values.Pattern)
			}
		})
	}
}

func TestValidateDetails(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*EventFormData)
		wantField string
		wantErr   string
	}{
		{
			name:   "minimal valid",
			mutate: func(f *EventFormData) {},
		},
		{
			name:      "missing name",
			mutate:    func(f *EventFormData) { f.Name = "  " },
			wantField: FieldEventName,
			wantErr:   "event name is required",
		},
		{
			name:      "name too long",
			mutate:    func(f *EventFormData) { f.Name = strings.Repeat("a", 151) },
			wantField: FieldEventName,
			wantErr:   "keep it under 150 characters",
		},
		{
			name:      "description too long",
			mutate:    func(f *EventFormData) { f.Description = strings.Repeat("a", 2001) },
			wantField: FieldDescription,
			wantErr:   "keep it under 2000 characters",
		},
		{
			name:      "max participants not a number",
			mutate:    func(f *EventFormData) { f.MaxText = "ten" },
			wantField: FieldMaxParticipants,
			wantErr:   "enter a whole number",
		},
		{
			name:      "max participants zero",
			mutate:    func(f *EventFormData) { f.MaxText = "0" },
			wantField: FieldMaxParticipants,
			wantErr:   "must be greater than zero",
		},
		{
			name:      "distance negative",
			mutate:    func(f *EventFormData) { f.DistanceText = "-5" },
			wantField: FieldDistanceKm,
			wantErr:   "must be greater than zero",
		},
		{
			name:      "pace minutes above range",
			mutate:    func(f *EventFormData) { f.PaceMinText = "60" },
			wantField: FieldPaceMinutes,
			wantErr:   "enter a value between 0 and 59",
		},
		{
			name:      "pace seconds not numeric",
			mutate:    func(f *EventFormData) { f.PaceSecText = "abc" },
			wantField: FieldPaceSeconds,
			wantErr:   "enter a value between 0 and 59",
		},
		{
			name:      "missing privacy",
			mutate:    func(f *EventFormData) { f.Privacy = "" },
			wantField: FieldPrivacy,
			wantErr:   "choose a privacy level",
		},
		{
			name:      "unknown privacy",
			mutate:    func(f *EventFormData) { f.Privacy = "secret" },
			wantField: FieldPrivacy,
			wantErr:   "choose public, private, or controlled",
		},
		{
			name:      "cover url without scheme",
			mutate:    func(f *EventFormData) { f.CoverImageURL = "example.com/img.png" },
			wantField: FieldCoverImageURL,
			wantErr:   "enter a valid URL",
		},
		{
			name:   "cover url valid",
			mutate: func(f *EventFormData) { f.CoverImageURL = "https://example.com/img.png" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validForm()
			tt.mutate(f)

			_, errs := ValidateDetails(f)
			if tt.wantErr != "" {
				if errs[tt.wantField] != tt.wantErr {
					t.Errorf("errs[%s] = %q, want %q", tt.wantField, errs[tt.wantField], tt.wantErr)
				}
				return
			}
			if len(errs) != 0 {
				t.Fatalf("unexpected errors: %v", errs)
			}
		})
	}
}

// Empty or whitespace numeric text must normalize to absent, never to zero
// and never to an error.
func TestNumericTextAbsence(t *testing.T) {
	for _, input := range []string{"", " ", "\t", "   "} {
		f := validForm()
		f.MaxText = input
		f.DistanceText = input
		f.PaceMinText = input
		f.PaceSecText = input

		values, errs := ValidateDetails(f)
		if len(errs) != 0 {
			t.Fatalf("input %q: unexpected errors: %v", input, errs)
		}
		if values.MaxParticipants != nil {
			t.Errorf("input %q: MaxParticipants = %v, want nil", input, *values.MaxParticipants)
		}
		if values.DistanceKm != nil {
			t.Errorf("input %q: DistanceKm = %v, want nil", input, *values.DistanceKm)
		}
		if values.PaceMinutes != nil || values.PaceSeconds != nil {
			t.Errorf("input %q: pace values should be nil", input)
		}
	}
}

func TestValidateScheduleEditIgnoresRecurrence(t *testing.T) {
	f := validForm()
	f.IsRecurring = true
	f.Pattern = backend.RecurrenceWeekly
	f.SeriesEnd = "2025-05-01"
	f.StartText = "2025-07-02 18:00"

	values, errs := ValidateSchedule(ModeEdit, f)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if values.Recurring {
		t.Error("edit-mode schedule normalized as recurring")
	}
	if values.Pattern != backend.RecurrenceNone {
		t.Errorf("pattern = %q, want %q", values.Pattern, backend.RecurrenceNone)
	}
	if values.SeriesEnd != nil {
		t.Errorf("series end = %v, want nil", values.SeriesEnd)
	}
}

func TestValidateLengthLimitsCountRunes(t *testing.T) {
	f := validForm()
	f.Name = strings.Repeat("ü", 150)
	f.Description = strings.Repeat("ä", 2000)
	f.LocationText = strings.Repeat("é", 255)

	if _, errs := ValidateLocation(f); len(errs) != 0 {
		t.Errorf("255-rune landmark rejected: %v", errs)
	}
	if _, errs := ValidateDetails(f); len(errs) != 0 {
		t.Errorf("150-rune name / 2000-rune description rejected: %v", errs)
	}

	f.Name = strings.Repeat("ü", 151)
	if _, errs := ValidateDetails(f); errs[FieldEventName] == "" {
		t.Error("151-rune name accepted")
	}
}
