package cmd

import (
	"github.com/grovetools/gamestate/cli"
	"github.com/grovetools/gamestate/logging"
	"github.com/spf13/cobra"
)

func newErrorsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "errors",
		Short: "List the problems found while starting up",
		Long: `Run the startup sequence and list every problem it recorded, in the
configured language. Exits with an error only when no game is installed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, initErr := a.open(cmd)
			defer s.Close()

			msgs := s.registry.InitErrors()
			if s.opts.JSONOutput {
				if msgs == nil {
					msgs = []string{}
				}
				if err := cli.PrintJSON(cmd, msgs); err != nil {
					return err
				}
				return initErr
			}

			pretty := logging.NewPrettyLogger().WithWriter(cmd.OutOrStdout())
			if len(msgs) == 0 {
				pretty.Success("No problems found")
			}
			for _, msg := range msgs {
				pretty.Warn(msg)
			}
			return initErr
		},
	}
}
