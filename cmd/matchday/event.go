package main

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"

	"github.com/matchday-app/matchday/internal/backend"
	"github.com/matchday-app/matchday/internal/config"
	"github.com/matchday-app/matchday/internal/draft"
	"github.com/matchday-app/matchday/internal/logger"
	"github.com/matchday-app/matchday/internal/tui/eventwizard"
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Create and edit club events",
}

var createFlags struct {
	club string
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new event with the interactive wizard",
	RunE:  runCreate,
}

var editCmd = &cobra.Command{
	Use:   "edit <event-id>",
	Short: "Edit an existing event",
	Args:  cobra.ExactArgs(1),
	RunE:  runEdit,
}

func init() {
	createCmd.Flags().StringVarP(&createFlags.club, "club", "c", "", "Club to create the event in (default: configured club)")
	eventCmd.AddCommand(createCmd)
	eventCmd.AddCommand(editCmd)
}

// setup loads config, applies logging, resolves the timezone, and connects
// to the backend. Callers must close the returned connection.
func setup() (*config.Config, *nats.Conn, *time.Location, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading config: %w", err)
	}
	applyLogging(cfg)

	loc := time.Local
	if cfg.Timezone != "" {
		loc, err = time.LoadLocation(cfg.Timezone)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
		}
	}

	logger.Debug("Connecting to backend at %s", cfg.BackendURL)
	nc, err := nats.Connect(cfg.BackendURL)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("connecting to %s: %w", cfg.BackendURL, err)
	}

	return cfg, nc, loc, nil
}

// applyLogging pushes config-level logging settings onto the default logger.
// Environment variables already applied by the logger win over config.
func applyLogging(cfg *config.Config) {
	if cfg.LogLevel != "" {
		if level, err := logger.ParseLevel(cfg.LogLevel); err == nil {
			logger.Default.SetLevel(level)
		}
	}
	if cfg.LogFile != "" {
		_ = logger.Default.SetFile(cfg.LogFile)
	}
}

func runCreate(cmd *cobra.Command, args []string) error {
	cfg, nc, loc, err := setup()
	if err != nil {
		return err
	}
	defer nc.Close()

	clubID := createFlags.club
	if clubID == "" {
		clubID = cfg.ClubID
	}
	if clubID == "" {
		return fmt.Errorf("no club specified: use --club or set club_id in %s", config.GlobalPath())
	}

	result, err := eventwizard.Run(eventwizard.Options{
		Service: backend.NewClient(nc),
		Mode:    draft.ModeCreate,
		ClubID:  clubID,
		Form:    draft.NewForm(time.Now().In(loc)),
	})
	if err != nil {
		return err
	}

	if !result.Submitted {
		fmt.Println("No event created.")
		return nil
	}
	fmt.Printf("Created event %s\n", result.EventID)
	return nil
}

func runEdit(cmd *cobra.Command, args []string) error {
	_, nc, loc, err := setup()
	if err != nil {
		return err
	}
	defer nc.Close()

	client := backend.NewClient(nc)
	ev, err := client.GetEvent(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("fetching event %s: %w", args[0], err)
	}

	result, err := eventwizard.Run(eventwizard.Options{
		Service:  client,
		Mode:     draft.ModeEdit,
		Existing: ev,
		Form:     draft.FromEvent(ev, loc),
	})
	if err != nil {
		return err
	}

	if !result.Submitted {
		fmt.Println("No changes saved.")
		return nil
	}
	fmt.Printf("Updated event %s\n", result.EventID)
	return nil
}
