package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"dayplan/internal/report"
)

func newStatsCommand(opts *RootOptions) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show completion trends across recent reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if days < 1 {
				return fmt.Errorf("--days must be at least 1, got %d", days)
			}
			store, err := opts.store()
			if err != nil {
				return err
			}
			dir := filepath.Join(store.Root(), "reports")

			ts, err := report.AnalyzeTrends(dir, days)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), report.FormatTrends(ts))
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 7, "number of most recent days to analyze")
	return cmd
}
