package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/osvaldoandrade/shellcommander/internal/platform"
)

const welcomeDateLayout = "Monday, January 02, 2006"

func newWelcomeCmd(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "welcome",
		Short: "Greet the configured user with today's date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			now := platform.RealClock{}.Now()
			if opts.JSONOutput {
				return writeJSON(cmd.OutOrStdout(), struct {
					Name string `json:"name"`
					Date string `json:"date"`
				}{Name: opts.env.GitName, Date: now.Format(time.DateOnly)})
			}
			ui := newRenderer(cmd.OutOrStdout(), false)
			_, err := fmt.Fprint(cmd.OutOrStdout(), welcomeMessage(ui, opts.env.GitName, now))
			return err
		},
	}
}

func welcomeMessage(ui renderer, name string, now time.Time) string {
	return fmt.Sprintf("Welcome %s!\nToday is %s.\n\n", ui.accent(name), ui.ok(now.Format(welcomeDateLayout)))
}
