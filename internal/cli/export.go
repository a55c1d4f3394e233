package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"dayplan/internal/export"
	"dayplan/internal/schedule"
	"dayplan/internal/state"
)

func newExportCommand(opts *RootOptions) *cobra.Command {
	var (
		format  string
		output  string
		noState bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the schedule as iCalendar, CSV, or JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, st, _, err := opts.currentSchedule()
			if err != nil {
				return err
			}
			if noState {
				st = nil
			}

			ext, write, err := exporter(format)
			if err != nil {
				return err
			}
			path := output
			if path == "" {
				path = fmt.Sprintf("schedule-%s.%s", s.DateString(), ext)
			}
			if err := write(s, st, path); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render(fmt.Sprintf("✓ Exported %d task(s) to %s", len(s.Tasks), path)))
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "export format: ical, csv, or json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path (default schedule-<date>.<ext>)")
	cmd.Flags().BoolVar(&noState, "no-state", false, "omit completion state and notes from the export")
	return cmd
}

type exportFunc func(s *schedule.Schedule, st *state.AppState, path string) error

func exporter(format string) (ext string, write exportFunc, err error) {
	switch format {
	case "ical", "ics":
		return "ics", func(s *schedule.Schedule, st *state.AppState, path string) error {
			return export.ICal(s, path, time.Now())
		}, nil
	case "csv":
		return "csv", export.CSV, nil
	case "json":
		return "json", export.JSON, nil
	default:
		return "", nil, fmt.Errorf("unknown export format %q (want ical, csv, or json)", format)
	}
}
