package main

import (
	"context"
	"os"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/matchday-app/matchday/internal/logger"
	"github.com/matchday-app/matchday/internal/tui/theme"
)

const (
	logoText1 = "█▀▄▀█ ▄▀█ ▀█▀ █▀▀ █░█ █▀▄ ▄▀█ █▄█"
	logoText2 = "█░▀░█ █▀█ ░█░ █▄▄ █▀█ █▄▀ █▀█ ░█░"
)

// Version set via ldflags during build
var version = "dev"

func main() {
	// Ensure logger is closed on exit
	defer func() { _ = logger.Close() }()

	if err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(version)); err != nil {
		logger.Error("Command execution failed: %v", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "matchday",
	Short: "Terminal client for the club event platform",
}

// renderLogo creates the logo with gradient colors
func renderLogo() string {
	t := theme.NewCatppuccinMocha()
	line1 := theme.ApplyGradient(logoText1, t.Primary, t.Secondary)
	line2 := theme.ApplyGradient(logoText2, t.Primary, t.Secondary)
	return strings.Join([]string{line1, line2}, "\n")
}

func init() {
	rootCmd.Long = renderLogo() + `

matchday creates and edits club events from the terminal. The event wizard
walks through sport selection, location, schedule, and details, then submits
the event to the club platform over NATS.`

	rootCmd.AddCommand(eventCmd)
	rootCmd.AddCommand(demoCmd)
}
