package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"dayplan/internal/schedule"
)

func newInfoCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the active schedule with completion marks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, st, _, err := opts.currentSchedule()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, headStyle.Render(fmt.Sprintf("📅 %s", s.Date.Format("Monday, January 02, 2006"))))
			fmt.Fprintf(out, "   %s\n\n", st.ScheduleFile)

			for i := range s.Tasks {
				t := &s.Tasks[i]
				mark := "○"
				if st.IsComplete(t.ID) {
					mark = okStyle.Render("✓")
				}
				fmt.Fprintf(out, "  %s %s  %-30s %s [%s]\n",
					mark, t.TimeRange(), t.Title, t.Priority.Marker(), t.ID)
				if st.HasNotes(t.ID) {
					fmt.Fprintf(out, "      📝 %d note(s)\n", len(st.Notes(t.ID)))
				}
			}

			total := len(s.Tasks)
			fmt.Fprintf(out, "\nCompleted: %d/%d (%.0f%%)  ·  %s scheduled\n",
				st.CompletedCount(), total, st.CompletionPercentage(total),
				schedule.FormatMinutes(s.TotalMinutes()))
			return nil
		},
	}
}
