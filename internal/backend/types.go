package backend

import "time"

// Privacy levels accepted by the backend.
const (
	PrivacyPublic     = "public"
	PrivacyPrivate    = "private"
	PrivacyControlled = "controlled"
)

// Recurrence patterns accepted by the backend.
const (
	RecurrenceNone    = "none"
	RecurrenceWeekly  = "weekly"
	RecurrenceMonthly = "monthly"
)

// Sport-specific attribute keys.
const (
	AttrDistanceKm       = "distance_km"
	AttrPaceSecondsPerKm = "pace_seconds_per_km"
)

// SportType is one entry of the selectable sport catalog.
// Immutable reference data, fetched once per wizard session.
type SportType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Event is the full event record as stored by the backend.
// Used to hydrate the wizard in edit mode.
type Event struct {
	ID              string             `json:"id"`
	ClubID          string             `json:"club_id"`
	Name            string             `json:"name"`
	Description     string             `json:"description,omitempty"`
	SportTypeIDs    []string           `json:"sport_type_ids"`
	StartTime       time.Time          `json:"start_time"`
	EndTime         *time.Time         `json:"end_time,omitempty"`
	Latitude        float64            `json:"latitude"`
	Longitude       float64            `json:"longitude"`
	Address         string             `json:"address,omitempty"`
	LocationText    string             `json:"location_text,omitempty"`
	MaxParticipants *int               `json:"max_participants,omitempty"`
	Privacy         string             `json:"privacy"`
	CoverImageURL   string             `json:"cover_image_url,omitempty"`
	Attributes      map[string]float64 `json:"attributes,omitempty"`

	// Series membership. Pattern is empty for one-off events.
	SeriesID          string `json:"series_id,omitempty"`
	RecurrencePattern string `json:"recurrence_pattern,omitempty"`
	SeriesEndDate     string `json:"series_end_date,omitempty"` // date-only, 2006-01-02
}

// Recurring reports whether the event belongs to a recurring series.
func (e *Event) Recurring() bool {
	return e.RecurrencePattern != "" && e.RecurrencePattern != RecurrenceNone
}

// CreateEventArgs is the argument set for the create-event remote procedure.
// Recurrence fields are only present in create mode.
type CreateEventArgs struct {
	ClubID          string             `json:"club_id"`
	Name            string             `json:"name"`
	Description     *string            `json:"description,omitempty"`
	SportTypeIDs    []string           `json:"sport_type_ids"`
	StartTime       time.Time          `json:"start_time"`
	EndTime         *time.Time         `json:"end_time,omitempty"`
	Latitude        float64            `json:"latitude"`
	Longitude       float64            `json:"longitude"`
	Address         *string            `json:"address,omitempty"`
	LocationText    *string            `json:"location_text,omitempty"`
	MaxParticipants *int               `json:"max_participants,omitempty"`
	Privacy         string             `json:"privacy"`
	CoverImageURL   *string            `json:"cover_image_url,omitempty"`
	Attributes      map[string]float64 `json:"attributes,omitempty"`

	RecurrencePattern *string `json:"recurrence_pattern,omitempty"`
	SeriesEndDate     *string `json:"series_end_date,omitempty"` // date-only, 2006-01-02
}

// UpdateEventArgs is the argument set for the update-event remote procedure.
// It targets one existing instance; recurrence is never part of an update.
type UpdateEventArgs struct {
	EventID         string             `json:"event_id"`
	Name            string             `json:"name"`
	Description     *string            `json:"description,omitempty"`
	SportTypeIDs    []string           `json:"sport_type_ids"`
	StartTime       time.Time          `json:"start_time"`
	EndTime         *time.Time         `json:"end_time,omitempty"`
	Latitude        float64            `json:"latitude"`
	Longitude       float64            `json:"longitude"`
	Address         *string            `json:"address,omitempty"`
	LocationText    *string            `json:"location_text,omitempty"`
	MaxParticipants *int               `json:"max_participants,omitempty"`
	Privacy         string             `json:"privacy"`
	CoverImageURL   *string            `json:"cover_image_url,omitempty"`
	Attributes      map[string]float64 `json:"attributes,omitempty"`
}
