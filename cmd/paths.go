package cmd

import (
	"github.com/grovetools/gamestate/cli"
	"github.com/grovetools/gamestate/game"
	"github.com/grovetools/gamestate/logging"
	"github.com/grovetools/gamestate/pkg/paths"
	"github.com/spf13/cobra"
)

// PathsOutput represents the locations gamestate reads and writes.
type PathsOutput struct {
	DataDir      string   `json:"data_dir"`
	SettingsFile string   `json:"settings_file"`
	LogFile      string   `json:"log_file"`
	StateDir     string   `json:"state_dir"`
	PidFile      string   `json:"pid_file"`
	LibraryRoots []string `json:"library_roots"`
}

func NewPathsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "paths",
		Short: "Print the paths used by gamestate",
		Long: `Print the paths used by gamestate, after applying the --data-dir and
--settings flags.

- data_dir: Settings, the session log and per-game data
- state_dir: Runtime state such as the watcher pid file
- library_roots: Directories searched for game installations

Set GAMESTATE_HOME to keep everything under one directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cli.GetOptions(cmd)
			output := PathsOutput{
				DataDir:      opts.ResolvedDataDir(),
				SettingsFile: opts.ResolvedSettingsFile(),
				LogFile:      opts.ResolvedLogFile(),
				StateDir:     paths.StateDir(),
				PidFile:      paths.PidFilePath(),
				LibraryRoots: game.DefaultLibraryRoots(),
			}

			if opts.JSONOutput {
				return cli.PrintJSON(cmd, output)
			}

			pretty := logging.NewPrettyLogger().WithWriter(cmd.OutOrStdout())
			pretty.Path("Data", output.DataDir)
			pretty.Path("Settings", output.SettingsFile)
			pretty.Path("Log", output.LogFile)
			pretty.Path("State", output.StateDir)
			pretty.Path("Pid file", output.PidFile)
			for _, root := range output.LibraryRoots {
				pretty.Path("Library", root)
			}
			return nil
		},
	}

	return cmd
}
