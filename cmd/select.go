package cmd

import (
	"github.com/grovetools/gamestate/cli"
	"github.com/grovetools/gamestate/errors"
	"github.com/grovetools/gamestate/locale"
	"github.com/grovetools/gamestate/logging"
	"github.com/spf13/cobra"
)

func newSelectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "select <folder>",
		Short: "Switch to another installed game and remember it",
		Long: `Make the game with the given folder name current and save it as the
last used game, so the next run starts with it. Folder names are matched
without regard to case.

Examples:
  gamestate select skyrim
  gamestate select "Fallout4" --settings ./settings.toml
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.bootstrap(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			// A failed init still leaves the new game selected, so it is saved.
			changeErr := s.registry.ChangeGame(args[0])
			if errors.Is(changeErr, errors.ErrCodeGameNotFound) {
				return changeErr
			}

			if err := s.registry.Save(s.opts.ResolvedSettingsFile()); err != nil {
				return err
			}

			g, err := s.registry.CurrentGame()
			if err != nil {
				return err
			}
			if s.opts.JSONOutput {
				out := map[string]interface{}{"folder": g.FolderName(), "name": g.Name(), "initialized": g.Initialized()}
				if changeErr != nil {
					out["error"] = changeErr.Error()
				}
				return cli.PrintJSON(cmd, out)
			}

			pretty := logging.NewPrettyLogger().WithWriter(cmd.OutOrStdout())
			if changeErr != nil {
				pretty.Warn(locale.Sprintf(locale.MsgGameInitFailed, changeErr))
			}
			pretty.Success(locale.Sprintf(locale.MsgGameSelected, g.Name()))
			return nil
		},
	}
}
