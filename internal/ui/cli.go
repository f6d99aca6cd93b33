// Package ui provides the cobra command-line shell around the TUI.
package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/newbeginning12/flashcal/internal/config"
	"github.com/newbeginning12/flashcal/internal/interval"
	"github.com/newbeginning12/flashcal/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	repo   interval.Repository
	config *config.Config
	root   *cobra.Command
	debug  bool
}

// NewApp creates a new CLI application with the given repository and config.
// A nil repository is opened lazily from the configured database path.
func NewApp(repo interval.Repository, cfg *config.Config) *App {
	a := &App{repo: repo, config: cfg}

	a.root = &cobra.Command{
		Use:   "flashcal",
		Short: "A mouse-driven terminal week calendar",
		Long: `Flashcal is a terminal week calendar.

Drag intervals around a seven-day grid with the mouse, zoom the time
axis, and plan your week from natural language.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return tui.RunWithDebug(a.repo, a.config, a.debug)
		},
	}

	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (logs to flashcal-debug.log)")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.addCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.summaryCmd())
	a.root.AddCommand(a.planCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("flashcal %s (commit: %s)\n", Version, Commit)
		},
	}
}

// ensureRepo opens the repository on first use by a non-TUI command.
func (a *App) ensureRepo() error {
	if a.repo != nil {
		return nil
	}
	repo, err := tui.EnsureStorage(a.config)
	if err != nil {
		return err
	}
	a.repo = repo
	return nil
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases the repository if the app opened it.
func (a *App) Close() error {
	if a.repo != nil {
		return a.repo.Close()
	}
	return nil
}
