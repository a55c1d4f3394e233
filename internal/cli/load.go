package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"dayplan/internal/config"
	"dayplan/internal/schedule"
	"dayplan/internal/state"
)

func newLoadCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "load <schedule-file>",
		Short: "Load a schedule file and start tracking it",
		Long:  "Parses and validates the schedule, then records it as the active\nschedule. Any completion state from a previously loaded schedule is\nreplaced.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.store()
			if err != nil {
				return err
			}
			cfg := config.Load(store.Root())

			// The state file stores an absolute path so later
			// invocations resolve it from any working directory.
			path, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}

			s, err := schedule.Load(path)
			if err != nil {
				return err
			}
			opts.Logger.Debug("schedule parsed", "path", path, "tasks", len(s.Tasks))

			if cfg.Validation.ValidateOnLoad {
				warnings := schedule.Validate(s, schedule.Options{
					WarnOverlapping: cfg.Validation.WarnOverlapping,
					WarnGaps:        cfg.Validation.WarnGaps,
					MinGapMinutes:   cfg.Validation.MinGapMinutes,
					MaxGapMinutes:   cfg.Validation.MaxGapMinutes,
				})
				for _, w := range warnings {
					fmt.Fprintln(cmd.OutOrStdout(), warnStyle.Render("  ⚠ "+w.String()))
				}
			}

			if err := store.Save(state.New(path, s.Date)); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, okStyle.Render(fmt.Sprintf("✓ Loaded schedule for %s", s.DateString())))
			fmt.Fprintf(out, "  %d task(s), %s scheduled\n", len(s.Tasks), schedule.FormatMinutes(s.TotalMinutes()))
			for i := range s.Tasks {
				if i == 3 {
					fmt.Fprintf(out, "  ... and %d more\n", len(s.Tasks)-3)
					break
				}
				t := &s.Tasks[i]
				fmt.Fprintf(out, "  %s  %s\n", t.TimeRange(), t.Title)
			}
			return nil
		},
	}
}
