package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"dayplan/internal/config"
	"dayplan/internal/schedule"
	"dayplan/internal/state"
	"dayplan/internal/ui"
)

func newViewCommand(opts *RootOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Open the interactive schedule view",
		Long:  "Opens a full-screen terminal view of the day. Completion state is\nre-read from disk on a timer, so changes made by other dayplan\ninvocations show up without restarting.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.store()
			if err != nil {
				return err
			}
			cfg := config.Load(store.Root())

			var (
				s         *schedule.Schedule
				schedPath string
			)
			if file != "" {
				schedPath, err = filepath.Abs(file)
				if err != nil {
					return err
				}
				s, err = schedule.Load(schedPath)
				if err != nil {
					return err
				}
			} else {
				var st *state.AppState
				s, st, _, err = opts.currentSchedule()
				if err != nil {
					return err
				}
				schedPath = st.ScheduleFile
			}

			return ui.Run(cfg, store, s, schedPath)
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "view this schedule file instead of the loaded one")
	return cmd
}
