package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newCompleteCommand(opts *RootOptions) *cobra.Command {
	var undo bool

	cmd := &cobra.Command{
		Use:   "complete <task-id>",
		Short: "Mark a task complete (or undo with --undo)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, st, store, err := opts.currentSchedule()
			if err != nil {
				return err
			}

			taskID := args[0]
			task := s.TaskByID(taskID)
			if task == nil {
				ids := make([]string, 0, len(s.Tasks))
				for i := range s.Tasks {
					ids = append(ids, s.Tasks[i].ID)
				}
				return fmt.Errorf("task %q not found in schedule (available: %s)",
					taskID, strings.Join(ids, ", "))
			}

			if undo {
				if err := store.MarkIncomplete(taskID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "○ Marked incomplete: %s\n", task.Title)
				return nil
			}

			if st.IsComplete(taskID) {
				fmt.Fprintf(cmd.OutOrStdout(), "Already complete: %s\n", task.Title)
				return nil
			}
			if err := store.MarkComplete(taskID); err != nil {
				return err
			}

			// Re-read for the summary line so the count reflects what
			// actually landed on disk.
			st, err = store.Load()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, okStyle.Render(fmt.Sprintf("✓ Completed: %s", task.Title)))
			fmt.Fprintf(out, "  %d/%d done (%.0f%%)\n",
				st.CompletedCount(), len(s.Tasks), st.CompletionPercentage(len(s.Tasks)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&undo, "undo", false, "mark the task incomplete instead")
	return cmd
}
