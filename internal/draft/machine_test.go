package draft

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newCreateMachine(t *testing.T) *Machine {
	t.Helper()
	now := time.Date(2025, 5, 1, 9, 30, 0, 0, time.UTC)
	return NewMachine(ModeCreate, NewForm(now))
}

func TestMachineStartsOnFirstStepInCreateMode(t *testing.T) {
	t.Parallel()

	m := newCreateMachine(t)
	require.Equal(t, StepSports, m.Step())
}

func TestMachineStartsOnLastStepInEditMode(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 5, 1, 9, 30, 0, 0, time.UTC)
	m := NewMachine(ModeEdit, NewForm(now))
	require.Equal(t, StepDetails, m.Step())
}

func TestAdvanceBlockedByInvalidStep(t *testing.T) {
	t.Parallel()

	m := newCreateMachine(t)
	ok := m.Advance()

	require.False(t, ok)
	require.Equal(t, StepSports, m.Step(), "step must not change when validation fails")
	require.Equal(t, "select at least one sport type", m.Error(FieldSportTypes))
}

func TestAdvanceMovesForwardAndClearsStepErrors(t *testing.T) {
	t.Parallel()

	m := newCreateMachine(t)
	require.False(t, m.Advance())
	require.NotEmpty(t, m.Error(FieldSportTypes))

	m.ToggleSport("running")
	require.True(t, m.Advance())
	require.Equal(t, StepLocation, m.Step())
	require.Empty(t, m.Error(FieldSportTypes))
}

func TestAdvanceIsNoOpPastLastStep(t *testing.T) {
	t.Parallel()

	m := newCreateMachine(t)
	m.ToggleSport("running")
	m.SetLocation(52.52, 13.405)
	m.SetField(FieldEventName, "Morning Run")

	for range 4 {
		require.True(t, m.Advance())
	}
	require.Equal(t, StepDetails, m.Step())
}

func TestRetreatFlooredAtFirstStep(t *testing.T) {
	t.Parallel()

	m := newCreateMachine(t)
	m.Retreat()
	require.Equal(t, StepSports, m.Step())

	m.ToggleSport("running")
	require.True(t, m.Advance())
	m.Retreat()
	require.Equal(t, StepSports, m.Step())
}

func TestRetreatSkipsValidation(t *testing.T) {
	t.Parallel()

	m := newCreateMachine(t)
	m.ToggleSport("running")
	require.True(t, m.Advance())

	// Leave the location step in an invalid state and go back anyway.
	m.Retreat()
	require.Equal(t, StepSports, m.Step())
	require.Empty(t, m.Error(FieldLocation))
}

func TestJumpToRejectsOutOfRange(t *testing.T) {
	t.Parallel()

	m := newCreateMachine(t)
	require.False(t, m.JumpTo(0))
	require.False(t, m.JumpTo(5))
	require.Equal(t, StepSports, m.Step())

	require.True(t, m.JumpTo(StepSchedule))
	require.Equal(t, StepSchedule, m.Step())
}

func TestSetFieldClearsFieldError(t *testing.T) {
	t.Parallel()

	m := newCreateMachine(t)
	m.JumpTo(StepDetails)
	m.SetField(FieldEventName, "")
	require.False(t, m.Advance())
	require.Equal(t, "event name is required", m.Error(FieldEventName))

	m.SetField(FieldEventName, "Club Ride")
	require.Empty(t, m.Error(FieldEventName), "typing into a field clears its error")
}

func TestSetRecurringClearsRecurrenceErrors(t *testing.T) {
	t.Parallel()

	m := newCreateMachine(t)
	m.JumpTo(StepSchedule)
	m.SetRecurring(true)
	require.False(t, m.Advance(), "recurring without a pattern must not validate")
	require.Equal(t, "choose weekly or monthly", m.Error(FieldRecurrencePattern))

	m.SetRecurring(false)
	require.Empty(t, m.Error(FieldRecurrencePattern))
	require.Empty(t, m.Error(FieldSeriesEndDate))
}

func TestToggleSportSymmetricDifference(t *testing.T) {
	t.Parallel()

	m := newCreateMachine(t)
	m.ToggleSport("running")
	m.ToggleSport("cycling")
	m.ToggleSport("running")

	require.Equal(t, []string{"cycling"}, m.Form().SortedSportIDs())
}

func TestClearLocationDropsDerivedAddress(t *testing.T) {
	t.Parallel()

	m := newCreateMachine(t)
	m.SetLocation(52.52, 13.405)
	m.SetField(FieldMapAddress, "Alexanderplatz, Berlin")

	m.ClearLocation()
	require.Nil(t, m.Form().Latitude)
	require.Nil(t, m.Form().Longitude)
	require.Empty(t, m.Form().MapAddress)
}

func TestErrorsPersistAcrossNavigation(t *testing.T) {
	t.Parallel()

	m := newCreateMachine(t)
	require.False(t, m.Advance())
	require.NotEmpty(t, m.Error(FieldSportTypes))

	m.JumpTo(StepDetails)
	m.JumpTo(StepSports)
	require.Equal(t, "select at least one sport type", m.Error(FieldSportTypes),
		"errors survive navigation until the field is edited or revalidated")
}

func TestPublishErrorsMerges(t *testing.T) {
	t.Parallel()

	m := newCreateMachine(t)
	m.PublishErrors(FieldErrors{FieldEventName: "event name is required"})
	m.PublishErrors(FieldErrors{FieldPrivacy: "choose a privacy level"})

	require.Equal(t, "event name is required", m.Error(FieldEventName))
	require.Equal(t, "choose a privacy level", m.Error(FieldPrivacy))
}
