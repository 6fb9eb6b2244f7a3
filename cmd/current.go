package cmd

import (
	"github.com/grovetools/gamestate/cli"
	"github.com/grovetools/gamestate/locale"
	"github.com/grovetools/gamestate/logging"
	"github.com/spf13/cobra"
)

// CurrentOutput describes the current game.
type CurrentOutput struct {
	Folder      string `json:"folder"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Master      string `json:"master"`
	GamePath    string `json:"gamePath"`
	DataPath    string `json:"dataPath"`
	RepoURL     string `json:"repo,omitempty"`
	RepoBranch  string `json:"branch,omitempty"`
	Initialized bool   `json:"initialized"`
}

func newCurrentCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "current",
		Short: "Show the game selected for this session",
		Long: `Show the game that would be managed, after applying the --game flag,
the preferred game setting and the last used game, in that order.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.bootstrap(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			g, err := s.registry.CurrentGame()
			if err != nil {
				return err
			}

			if s.opts.JSONOutput {
				return cli.PrintJSON(cmd, CurrentOutput{
					Folder:      g.FolderName(),
					Name:        g.Name(),
					Type:        string(g.Type()),
					Master:      g.Master(),
					GamePath:    g.GamePath(),
					DataPath:    g.DataPath(),
					RepoURL:     g.RepoURL(),
					RepoBranch:  g.RepoBranch(),
					Initialized: g.Initialized(),
				})
			}

			pretty := logging.NewPrettyLogger().WithWriter(cmd.OutOrStdout())
			pretty.Info(locale.Sprintf(locale.MsgCurrentGame, g.Name()))
			pretty.Field("Folder", g.FolderName())
			pretty.Field("Master", g.Master())
			pretty.Path("Game path", g.GamePath())
			pretty.Path("Data path", g.DataPath())
			if g.RepoURL() != "" {
				pretty.Field("Masterlist", g.RepoURL()+" ("+g.RepoBranch()+")")
			}
			return nil
		},
	}
}
