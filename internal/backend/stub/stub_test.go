package stub_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/matchday-app/matchday/internal/backend"
	"github.com/matchday-app/matchday/internal/backend/stub"
	mnats "github.com/matchday-app/matchday/internal/nats"
)

// startBackend wires an embedded NATS server, the stub, and a client to it,
// tearing everything down when the test ends.
func startBackend(t *testing.T) (*backend.Client, *stub.Server) {
	t.Helper()

	ns, err := mnats.StartEmbedded()
	require.NoError(t, err)

	nc, err := mnats.ConnectInProcess(ns)
	require.NoError(t, err)

	srv, err := stub.Start(nc)
	require.NoError(t, err)

	t.Cleanup(func() {
		srv.Stop()
		_ = mnats.Shutdown(nc, ns)
	})

	return backend.NewClient(nc), srv
}

func TestSportCatalog(t *testing.T) {
	client, _ := startBackend(t)

	sports, err := client.SportTypes(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, sports)

	ids := make(map[string]bool, len(sports))
	for _, s := range sports {
		require.NotEmpty(t, s.ID)
		require.NotEmpty(t, s.Name)
		ids[s.ID] = true
	}
	require.True(t, ids["running"])
}

func TestReverseGeocode(t *testing.T) {
	client, _ := startBackend(t)
	ctx := context.Background()

	addr, err := client.ReverseGeocode(ctx, 52.52, 13.405)
	require.NoError(t, err)
	require.Equal(t, "Alexanderplatz, Berlin", addr)

	addr, err = client.ReverseGeocode(ctx, -33.8688, 151.2093)
	require.NoError(t, err)
	require.Contains(t, addr, "Near ")
}

func TestCreateGetUpdateRoundTrip(t *testing.T) {
	client, srv := startBackend(t)
	ctx := context.Background()

	desc := "Easy pace."
	maxP := 12
	args := backend.CreateEventArgs{
		ClubID:          stub.DemoClubID,
		Name:            "Sunday Long Run",
		Description:     &desc,
		SportTypeIDs:    []string{"running"},
		StartTime:       time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		Latitude:        52.52,
		Longitude:       13.405,
		MaxParticipants: &maxP,
		Privacy:         backend.PrivacyPublic,
		Attributes:      map[string]float64{backend.AttrDistanceKm: 15},
	}

	id, err := client.CreateEvent(ctx, args)
	require.NoError(t, err)
	require.Contains(t, id, "sunday-long-run-")

	ev, err := client.GetEvent(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "Sunday Long Run", ev.Name)
	require.Equal(t, "Easy pace.", ev.Description)
	require.Equal(t, []string{"running"}, ev.SportTypeIDs)
	require.NotNil(t, ev.MaxParticipants)
	require.Equal(t, 12, *ev.MaxParticipants)
	require.False(t, ev.Recurring())

	ev.Name = "Sunday Recovery Run"
	update := backend.UpdateEventArgs{
		EventID:      id,
		Name:         ev.Name,
		SportTypeIDs: ev.SportTypeIDs,
		StartTime:    ev.StartTime,
		Latitude:     ev.Latitude,
		Longitude:    ev.Longitude,
		Privacy:      backend.PrivacyPrivate,
	}
	require.NoError(t, client.UpdateEvent(ctx, update))

	stored, ok := srv.Get(id)
	require.True(t, ok)
	require.Equal(t, "Sunday Recovery Run", stored.Name)
	require.Equal(t, backend.PrivacyPrivate, stored.Privacy)
}

func TestCreateRecurringAssignsSeries(t *testing.T) {
	client, srv := startBackend(t)

	pattern := backend.RecurrenceWeekly
	seriesEnd := "2025-09-01"
	id, err := client.CreateEvent(context.Background(), backend.CreateEventArgs{
		ClubID:            stub.DemoClubID,
		Name:              "Track Night",
		SportTypeIDs:      []string{"running"},
		StartTime:         time.Date(2025, 6, 3, 19, 0, 0, 0, time.UTC),
		Latitude:          52.52,
		Longitude:         13.405,
		Privacy:           backend.PrivacyPublic,
		RecurrencePattern: &pattern,
		SeriesEndDate:     &seriesEnd,
	})
	require.NoError(t, err)

	ev, ok := srv.Get(id)
	require.True(t, ok)
	require.True(t, ev.Recurring())
	require.NotEmpty(t, ev.SeriesID)
	require.Equal(t, backend.RecurrenceWeekly, ev.RecurrencePattern)
	require.Equal(t, seriesEnd, ev.SeriesEndDate)
}

func TestUpdateKeepsSeriesMembership(t *testing.T) {
	client, srv := startBackend(t)
	ctx := context.Background()

	srv.Seed(backend.Event{
		ID:                "evt-series",
		ClubID:            stub.DemoClubID,
		Name:              "Weekly Ride",
		SportTypeIDs:      []string{"cycling"},
		StartTime:         time.Date(2025, 6, 4, 18, 0, 0, 0, time.UTC),
		Latitude:          51.5,
		Longitude:         -0.12,
		Privacy:           backend.PrivacyPublic,
		SeriesID:          "series-1",
		RecurrencePattern: backend.RecurrenceWeekly,
	})

	require.NoError(t, client.UpdateEvent(ctx, backend.UpdateEventArgs{
		EventID:      "evt-series",
		Name:         "Weekly Ride (new route)",
		SportTypeIDs: []string{"cycling"},
		StartTime:    time.Date(2025, 6, 4, 18, 30, 0, 0, time.UTC),
		Latitude:     51.5,
		Longitude:    -0.12,
		Privacy:      backend.PrivacyPublic,
	}))

	ev, ok := srv.Get("evt-series")
	require.True(t, ok)
	require.Equal(t, "Weekly Ride (new route)", ev.Name)
	require.Equal(t, "series-1", ev.SeriesID, "editing one occurrence never rewrites the series")
	require.Equal(t, backend.RecurrenceWeekly, ev.RecurrencePattern)
}

func TestCreateRejectedForForeignClub(t *testing.T) {
	client, _ := startBackend(t)

	_, err := client.CreateEvent(context.Background(), backend.CreateEventArgs{
		ClubID:       "someone-elses-club",
		Name:         "Crash The Party",
		SportTypeIDs: []string{"running"},
		StartTime:    time.Now(),
		Privacy:      backend.PrivacyPublic,
	})

	var rpcErr *backend.RemoteProcedureError
	require.ErrorAs(t, err, &rpcErr)
	require.Equal(t, backend.SubjectEventCreate, rpcErr.Procedure)
	require.Contains(t, rpcErr.Message, "not authorized")
}

func TestGetUnknownEvent(t *testing.T) {
	client, _ := startBackend(t)

	_, err := client.GetEvent(context.Background(), "no-such-event")
	var rpcErr *backend.RemoteProcedureError
	require.ErrorAs(t, err, &rpcErr)
	require.Contains(t, rpcErr.Message, "event not found")
}

func TestRequestTimesOutWithoutResponder(t *testing.T) {
	ns, err := mnats.StartEmbedded()
	require.NoError(t, err)
	nc, err := mnats.ConnectInProcess(ns)
	require.NoError(t, err)
	t.Cleanup(func() { _ = mnats.Shutdown(nc, ns) })

	client := backend.NewClient(nc)
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	_, err = client.SportTypes(ctx)
	require.Error(t, err)
	require.False(t, errors.As(err, new(*backend.RemoteProcedureError)),
		"transport failures are not remote rejections")
}
