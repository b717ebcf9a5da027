package ui

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/saimali7/Tour-CRM-sub000/internal/config"
	"github.com/saimali7/Tour-CRM-sub000/internal/store"
	"github.com/saimali7/Tour-CRM-sub000/internal/timeline"
	"github.com/saimali7/Tour-CRM-sub000/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	store   *store.Store
	config  *config.Config
	root    *cobra.Command
	debug   bool // Enable debug logging
	noColor bool
	date    string // --date flag, "YYYY-MM-DD"
}

// NewApp creates a new CLI application with the given config. The store is
// opened lazily so commands like version and config need no database.
func NewApp(cfg *config.Config) *App {
	a := &App{config: cfg}

	a.root = &cobra.Command{
		Use:   "tourboard",
		Short: "A dispatch board for tour operators",
		Long: `Tourboard is a drag-and-drop dispatch board for day-tour operators.

It shows one operating day as a grid of guide lanes, lets you assign
incoming bookings to guides, merge compatible departures into shared
tour runs, and undo any reassignment.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if a.noColor {
				DisableColor()
			}
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}
			date, err := timeline.ParseDate(a.date)
			if err != nil {
				return err
			}
			return tui.RunWithDebug(a.store, a.config, date, a.debug)
		},
	}

	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (logs to temp file)")
	a.root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable colored output")
	a.root.PersistentFlags().StringVar(&a.date, "date", "", "Operating day (YYYY-MM-DD, default: today)")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.assignCmd())
	a.root.AddCommand(a.unassignCmd())
	a.root.AddCommand(a.outsourceCmd())
	a.root.AddCommand(a.importCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("tourboard %s (commit: %s)\n", Version, Commit)
		},
	}
}

// ensureStore opens the SQLite store behind the configured path.
func (a *App) ensureStore() error {
	if a.store != nil {
		return nil
	}
	s, err := store.New(a.config.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	a.store = s
	return nil
}

// day resolves the --date flag to a concrete operating day.
func (a *App) day() (time.Time, error) {
	return timeline.ParseDate(a.date)
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases the store, if one was opened.
func (a *App) Close() error {
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}
