package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"dayplan/internal/report"
)

func newReportsCommand(opts *RootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "reports",
		Short: "List saved reports, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.store()
			if err != nil {
				return err
			}
			dir := filepath.Join(store.Root(), "reports")

			paths, err := report.ListRecent(dir, limit)
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No saved reports.")
				return nil
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, headStyle.Render("Saved reports:"))
			for _, p := range paths {
				info, err := os.Stat(p)
				if err != nil {
					continue
				}
				fmt.Fprintf(out, "  %s  %s  (%d bytes)\n",
					info.ModTime().Format("2006-01-02 15:04"), filepath.Base(p), info.Size())
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "maximum number of reports to list")
	return cmd
}
