package eventwizard

import (
	"errors"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/colorprofile"
	"github.com/stretchr/testify/require"

	"github.com/matchday-app/matchday/internal/backend"
	"github.com/matchday-app/matchday/internal/draft"
)

func init() {
	// Ascii profile disables color output so rendered views are stable
	// across terminals and CI
	lipgloss.Writer.Profile = colorprofile.Ascii
}

func TestViewShowsStepTitleAndCatalog(t *testing.T) {
	t.Parallel()

	m := newTestWizard(t, defaultFake())

	out := m.renderModal()
	require.Contains(t, out, "Create Event - Step 1 of 4: Sports")
	require.Contains(t, out, "Running")
	require.Contains(t, out, "Cycling")
	require.Contains(t, out, "Next")
}

func TestViewShowsValidationError(t *testing.T) {
	t.Parallel()

	m := newTestWizard(t, defaultFake())
	advance(t, m)

	out := m.renderModal()
	require.Contains(t, out, "select at least one sport type")
}

func TestViewShowsSubmitErrorBanner(t *testing.T) {
	t.Parallel()

	m := newTestWizard(t, defaultFake())
	_, cmd := m.Update(SubmitErrorMsg{Err: errors.New("club is read-only")})
	drain(t, m, cmd)

	out := m.renderModal()
	require.Contains(t, out, "Submission failed: club is read-only")
}

func TestViewDiscardModalInEditMode(t *testing.T) {
	t.Parallel()

	svc := defaultFake()
	ev := &backend.Event{
		ID:           "evt-9",
		ClubID:       "club-1",
		Name:         "Weekly Ride",
		SportTypeIDs: []string{"cycling"},
		StartTime:    time.Date(2025, 6, 4, 18, 0, 0, 0, time.UTC),
		Latitude:     51.5,
		Longitude:    -0.12,
		Privacy:      backend.PrivacyPublic,
	}
	m := New(Options{
		Service:  svc,
		Mode:     draft.ModeEdit,
		Existing: ev,
		Form:     draft.FromEvent(ev, time.UTC),
	})
	drain(t, m, m.Init())
	_, cmd := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	drain(t, m, cmd)

	require.Contains(t, m.renderModal(), "Edit Event - Step 4 of 4: Overview")
	require.Contains(t, m.renderModal(), "Save Changes")

	press(t, m, "esc")
	out := m.renderModal()
	require.Contains(t, out, "Discard changes?")
	require.Contains(t, out, "Press Y to discard")
}
