package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"dayplan/internal/schedule"
)

func newStatusCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current task, what's next, and progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, st, _, err := opts.currentSchedule()
			if err != nil {
				return err
			}

			now := schedule.TimeOfDayFromClock(time.Now())
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, headStyle.Render(fmt.Sprintf("📅 %s   %s", s.DateString(), now)))
			fmt.Fprintln(out)

			if current := s.CurrentTask(now); current != nil {
				remaining := current.End.MinuteOfDay() - now.MinuteOfDay()
				fmt.Fprintf(out, "▶ Now: %s  (%s, %s left)\n",
					current.Title, current.TimeRange(), schedule.FormatMinutes(remaining))
				if st.IsComplete(current.ID) {
					fmt.Fprintln(out, okStyle.Render("  ✓ already done"))
				}
			} else {
				fmt.Fprintln(out, "○ No task scheduled right now")
			}

			upcoming := s.UpcomingTasks(now, 3)
			if len(upcoming) > 0 {
				fmt.Fprintln(out, "\n⏰ Up next:")
				for _, t := range upcoming {
					fmt.Fprintf(out, "   %s  %s\n", t.Start, t.Title)
				}
			}

			total := len(s.Tasks)
			fmt.Fprintf(out, "\nProgress: %d/%d (%.0f%%)\n",
				st.CompletedCount(), total, st.CompletionPercentage(total))
			return nil
		},
	}
}
