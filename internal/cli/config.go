package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"dayplan/internal/config"
)

func newConfigCommand(opts *RootOptions) *cobra.Command {
	var (
		show  bool
		reset bool
	)

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or reset the configuration",
		Long:  "Prints the effective configuration (the default action, also\navailable as --show), or restores the defaults with --reset.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if show && reset {
				return fmt.Errorf("--show and --reset are mutually exclusive")
			}
			store, err := opts.store()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if reset {
				fmt.Fprint(out, "Reset configuration to defaults? [y/N] ")
				reader := bufio.NewReader(cmd.InOrStdin())
				answer, _ := reader.ReadString('\n')
				answer = strings.ToLower(strings.TrimSpace(answer))
				if answer != "y" && answer != "yes" {
					fmt.Fprintln(out, "Aborted.")
					return nil
				}
				if _, err := config.Reset(store.Root()); err != nil {
					return err
				}
				fmt.Fprintln(out, okStyle.Render("✓ Configuration reset to defaults"))
				return nil
			}

			// Plain `config` and `config --show` both land here.
			cfg := config.Load(store.Root())
			fmt.Fprintf(out, "# %s\n", config.Path(store.Root()))
			return toml.NewEncoder(out).Encode(cfg)
		},
	}

	cmd.Flags().BoolVar(&show, "show", false, "print the effective configuration")
	cmd.Flags().BoolVar(&reset, "reset", false, "restore default configuration")
	return cmd
}
