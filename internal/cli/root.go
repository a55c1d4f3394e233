// Package cli implements the dayplan command-line surface. Each command
// loads what it needs from disk, mutates through the state store, and
// returns errors for main to turn into a non-zero exit.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"dayplan/internal/schedule"
	"dayplan/internal/state"
)

// Version is set via ldflags at build time.
var Version = "dev"

// RootOptions holds global flags shared by all commands.
type RootOptions struct {
	// Dir overrides the root data directory (default ~/.dayplan).
	// Explicit so tests can run against an isolated directory.
	Dir     string
	Verbose bool

	Logger *log.Logger
}

var (
	okStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	headStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
)

// NewRootCommand creates the root command with all subcommands wired.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{
		Logger: log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false}),
	}

	cmd := &cobra.Command{
		Use:     "dayplan",
		Short:   "Daily schedule viewer and completion tracker",
		Long:    "dayplan loads a JSON daily schedule, tracks task completion and notes\nacross invocations, and produces end-of-day productivity reports.",
		Version: Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.Verbose {
				opts.Logger.SetLevel(log.DebugLevel)
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.Dir, "dir", "", "data directory (default ~/.dayplan)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(newLoadCommand(opts))
	cmd.AddCommand(newInfoCommand(opts))
	cmd.AddCommand(newCompleteCommand(opts))
	cmd.AddCommand(newClearCommand(opts))
	cmd.AddCommand(newStatusCommand(opts))
	cmd.AddCommand(newViewCommand(opts))
	cmd.AddCommand(newReportCommand(opts))
	cmd.AddCommand(newReportsCommand(opts))
	cmd.AddCommand(newStatsCommand(opts))
	cmd.AddCommand(newValidateCommand(opts))
	cmd.AddCommand(newNoteCommand(opts))
	cmd.AddCommand(newExportCommand(opts))
	cmd.AddCommand(newConfigCommand(opts))

	return cmd
}

// Execute runs the CLI and reports the exit code.
func Execute() int {
	cmd := NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "✗ %v\n", err)
		return 1
	}
	return 0
}

// store opens the state store for the configured root directory.
func (o *RootOptions) store() (*state.Store, error) {
	return state.NewStore(o.Dir)
}

// errNoSchedule is returned by commands that need a loaded schedule
// when no state exists yet.
var errNoSchedule = errors.New("no schedule loaded, run: dayplan load <schedule-file>")

// currentSchedule resolves the state file and the schedule it points
// at. Each invocation reads both fresh from disk.
func (o *RootOptions) currentSchedule() (*schedule.Schedule, *state.AppState, *state.Store, error) {
	store, err := o.store()
	if err != nil {
		return nil, nil, nil, err
	}
	st, err := store.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	if st == nil {
		return nil, nil, nil, errNoSchedule
	}
	o.Logger.Debug("state loaded", "path", store.StatePath(), "schedule", st.ScheduleFile)
	s, err := schedule.Load(st.ScheduleFile)
	if err != nil {
		return nil, nil, nil, err
	}
	return s, st, store, nil
}
