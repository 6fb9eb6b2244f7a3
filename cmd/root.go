package cmd

import (
	"github.com/grovetools/gamestate/cli"
	"github.com/grovetools/gamestate/config"
	"github.com/grovetools/gamestate/game"
	"github.com/grovetools/gamestate/logging"
	"github.com/grovetools/gamestate/pkg/profiling"
	"github.com/grovetools/gamestate/state"
	"github.com/grovetools/gamestate/version"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// app carries what the subcommands share.
type app struct {
	profiler *profiling.CobraProfiler
}

// session is a bootstrapped registry for one command invocation.
type session struct {
	opts     cli.CommandOptions
	store    *config.Store
	registry *state.Registry
}

// NewRootCmd builds the gamestate command tree.
func NewRootCmd() *cobra.Command {
	a := &app{profiler: profiling.NewCobraProfiler()}

	root := cli.NewStandardCommand(
		"gamestate",
		"Track the installed Bethesda games and which one is being managed",
	)
	root.Long = `Detects which of the supported games are installed, keeps their
settings in sync with the settings file and remembers the game in use.

Examples:
  # List the installed games
  gamestate games

  # Switch to Fallout 4 and remember it for the next run
  gamestate select "Fallout4"

  # Reload the settings whenever the file changes
  gamestate watch
`
	cli.SetVersionTemplate(root, version.GetInfo())
	a.profiler.AddFlags(root)
	root.PersistentPreRunE = a.profiler.PreRun
	root.PersistentPostRun = a.profiler.PostRun

	root.AddCommand(
		newGamesCmd(a),
		newCurrentCmd(a),
		newSelectCmd(a),
		newSettingsCmd(a),
		newErrorsCmd(a),
		newWatchCmd(a),
		NewLogsCmd(),
		NewSchemaCmd(),
		NewPathsCmd(),
		cli.NewVersionCommand("gamestate"),
	)
	return root
}

// bootstrap loads the settings and detects the installed games, honouring
// the standard flags. Init problems that leave a usable registry are printed
// as warnings unless JSON output was requested.
func (a *app) bootstrap(cmd *cobra.Command) (*session, error) {
	s, err := a.open(cmd)
	if err != nil {
		s.Close()
		return nil, err
	}

	if !s.opts.JSONOutput {
		pretty := logging.NewPrettyLogger().WithWriter(cmd.ErrOrStderr())
		for _, msg := range s.registry.InitErrors() {
			pretty.Warn(msg)
		}
	}
	return s, nil
}

// open runs Init and returns the session even when Init fails, so the init
// errors can still be inspected.
func (a *app) open(cmd *cobra.Command) (*session, error) {
	opts := cli.GetOptions(cmd)
	store := config.NewStore()
	dataDir := opts.ResolvedDataDir()
	registry := state.NewRegistry(store, game.NewFileSystemDetector(game.DefaultLibraryRoots()...), dataDir)

	err := registry.Init(state.InitOptions{
		DataDir:      dataDir,
		SettingsPath: opts.ResolvedSettingsFile(),
		LogPath:      opts.ResolvedLogFile(),
		Game:         opts.Game,
		Profiler:     a.profiler.Profiler(),
	})
	if opts.Verbose {
		logging.SetVerbosity(logrus.DebugLevel)
	}
	return &session{opts: opts, store: store, registry: registry}, err
}

func (s *session) Close() {
	logging.CloseLogFile()
}
