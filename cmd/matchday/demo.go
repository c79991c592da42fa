package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matchday-app/matchday/internal/backend"
	"github.com/matchday-app/matchday/internal/backend/stub"
	"github.com/matchday-app/matchday/internal/draft"
	"github.com/matchday-app/matchday/internal/logger"
	mnats "github.com/matchday-app/matchday/internal/nats"
	"github.com/matchday-app/matchday/internal/tui/eventwizard"
)

var demoFlags struct {
	edit bool
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the event wizard against an in-process demo backend",
	Long: `Run the event wizard without a real backend. An embedded NATS server
and a stub backend answer all calls in-process, so the full flow can be
tried offline.`,
	RunE: runDemo,
}

func init() {
	demoCmd.Flags().BoolVar(&demoFlags.edit, "edit", false, "Open a seeded event in edit mode instead of creating")
}

func runDemo(cmd *cobra.Command, args []string) error {
	ns, err := mnats.StartEmbedded()
	if err != nil {
		return fmt.Errorf("starting embedded NATS: %w", err)
	}

	nc, err := mnats.ConnectInProcess(ns)
	if err != nil {
		ns.Shutdown()
		return fmt.Errorf("connecting in-process: %w", err)
	}
	defer func() {
		if err := mnats.Shutdown(nc, ns); err != nil {
			logger.Warn("Demo shutdown: %v", err)
		}
	}()

	srv, err := stub.Start(nc)
	if err != nil {
		return fmt.Errorf("starting stub backend: %w", err)
	}
	defer srv.Stop()

	client := backend.NewClient(nc)

	opts := eventwizard.Options{
		Service: client,
		Mode:    draft.ModeCreate,
		ClubID:  stub.DemoClubID,
		Form:    draft.NewForm(time.Now()),
	}

	if demoFlags.edit {
		ev := seedDemoEvent(srv)
		opts.Mode = draft.ModeEdit
		opts.Existing = &ev
		opts.Form = draft.FromEvent(&ev, time.Local)
		opts.ClubID = ev.ClubID
	}

	result, err := eventwizard.Run(opts)
	if err != nil {
		return err
	}

	if !result.Submitted {
		fmt.Println("Demo finished without submitting.")
		return nil
	}

	ev, _ := srv.Get(result.EventID)
	fmt.Printf("Stub backend stored event %s (%s)\n", ev.ID, ev.Name)
	return nil
}

// seedDemoEvent stores a sample event for --edit runs.
func seedDemoEvent(srv *stub.Server) backend.Event {
	start := time.Now().Add(48 * time.Hour).Truncate(time.Hour)
	maxP := 16
	ev := backend.Event{
		ID:              "demo-sunday-run",
		ClubID:          stub.DemoClubID,
		Name:            "Sunday Long Run",
		Description:     "Easy pace, coffee after.",
		SportTypeIDs:    []string{"running"},
		StartTime:       start,
		Latitude:        52.52,
		Longitude:       13.405,
		Address:         "Alexanderplatz, Berlin",
		Privacy:         backend.PrivacyPublic,
		MaxParticipants: &maxP,
		Attributes: map[string]float64{
			backend.AttrDistanceKm: 15,
		},
	}
	srv.Seed(ev)
	return ev
}
