package eventwizard

import "github.com/matchday-app/matchday/internal/backend"

// CatalogLoadedMsg carries the sport-type catalog once fetched.
type CatalogLoadedMsg struct {
	Sports []backend.SportType
}

// CatalogErrorMsg is sent when the catalog fetch fails. The step shows a
// retry banner; the selection UI stays empty until a retry succeeds.
type CatalogErrorMsg struct {
	Err error
}

// RetryCatalogMsg is sent when the user asks to retry a failed catalog fetch.
type RetryCatalogMsg struct{}

// GeocodeRequestMsg asks the wizard to reverse-geocode the given coordinates.
type GeocodeRequestMsg struct {
	Lat float64
	Lng float64
}

// AddressResolvedMsg carries a reverse-geocoded address. The coordinates are
// echoed back so stale lookups can be discarded after the pin moved.
type AddressResolvedMsg struct {
	Lat     float64
	Lng     float64
	Address string
}

// AddressErrorMsg is sent when reverse geocoding fails. The location keeps
// its coordinates; only the display address is affected.
type AddressErrorMsg struct {
	Lat float64
	Lng float64
}

// JumpToStepMsg asks the wizard to jump directly to a step without
// validating, for the overview step's edit shortcuts.
type JumpToStepMsg struct {
	Step int
}

// DescriptionEditedMsg carries the description text back from the external
// editor round trip.
type DescriptionEditedMsg struct {
	Content string
}

// SubmitRequestMsg is sent when the user activates the final submit action.
type SubmitRequestMsg struct{}

// SubmittedMsg is sent when the backend accepted the event.
type SubmittedMsg struct {
	EventID string
}

// SubmitErrorMsg is sent when submission failed. The draft is untouched so
// the user can adjust and resubmit.
type SubmitErrorMsg struct {
	Err error
}
