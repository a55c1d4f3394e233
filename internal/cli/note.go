package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newNoteCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "note <task-id> <text>",
		Short: "Attach a timestamped note to a task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, st, store, err := opts.currentSchedule()
			if err != nil {
				return err
			}

			taskID := args[0]
			task := s.TaskByID(taskID)
			if task == nil {
				return fmt.Errorf("task %q not found in schedule", taskID)
			}
			if err := store.AddNote(taskID, args[1]); err != nil {
				return err
			}

			count := len(st.Notes(taskID)) + 1
			fmt.Fprintf(cmd.OutOrStdout(), "📝 Note added to %s (%d total)\n", task.Title, count)
			return nil
		},
	}
}
