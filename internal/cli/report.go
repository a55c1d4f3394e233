package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"dayplan/internal/config"
	"dayplan/internal/report"
)

func newReportCommand(opts *RootOptions) *cobra.Command {
	var noSave bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate the end-of-day productivity report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, st, store, err := opts.currentSchedule()
			if err != nil {
				return err
			}
			cfg := config.Load(store.Root())

			now := time.Now()
			fmt.Fprintln(cmd.OutOrStdout(), report.Generate(s, st, now))

			if noSave || !cfg.Report.AutoSave {
				return nil
			}
			dir, err := store.ReportsDir()
			if err != nil {
				return err
			}
			path, err := report.Save(s, st, dir, now)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\nSaved to %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&noSave, "no-save", false, "print the report without writing it to the reports directory")
	return cmd
}
