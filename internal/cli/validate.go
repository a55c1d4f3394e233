package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"dayplan/internal/config"
	"dayplan/internal/schedule"
)

func newValidateCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [schedule-file]",
		Short: "Check a schedule for overlaps, gaps, and odd durations",
		Long:  "Validates the given schedule file, or the loaded one when no file is\ngiven. Exits non-zero when any issue is found, so it can gate scripts.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.store()
			if err != nil {
				return err
			}
			cfg := config.Load(store.Root())

			var s *schedule.Schedule
			if len(args) == 1 {
				s, err = schedule.Load(args[0])
			} else {
				s, _, _, err = opts.currentSchedule()
			}
			if err != nil {
				return err
			}

			warnings := schedule.Validate(s, schedule.Options{
				WarnOverlapping: cfg.Validation.WarnOverlapping,
				WarnGaps:        cfg.Validation.WarnGaps,
				MinGapMinutes:   cfg.Validation.MinGapMinutes,
				MaxGapMinutes:   cfg.Validation.MaxGapMinutes,
			})
			fmt.Fprintln(cmd.OutOrStdout(), schedule.FormatWarnings(warnings))
			if len(warnings) > 0 {
				return fmt.Errorf("%d validation issue(s) found", len(warnings))
			}
			return nil
		},
	}
}
