package cmd

import (
	"fmt"
	"strings"

	"github.com/grovetools/gamestate/cli"
	"github.com/grovetools/gamestate/config"
	"github.com/grovetools/gamestate/logging"
	"github.com/moby/patternmatcher"
	"github.com/spf13/cobra"
)

// GameEntry is one row of the games listing.
type GameEntry struct {
	Folder    string `json:"folder"`
	Name      string `json:"name"`
	Type      string `json:"type,omitempty"`
	Path      string `json:"path,omitempty"`
	Installed bool   `json:"installed"`
	Current   bool   `json:"current"`
}

func newGamesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "games",
		Short: "List the installed games",
		Long: `List the installed games, marking the current one.

Patterns given with --match filter by folder name, ignoring case. They use
the same syntax as .dockerignore files, so a leading "!" excludes.

Examples:
  # Only the Fallout games, except Fallout 4
  gamestate games --match 'fallout*' --match '!fallout4'

  # Every configured game, installed or not
  gamestate games --all --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.bootstrap(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			patterns, _ := cmd.Flags().GetStringSlice("match")
			all, _ := cmd.Flags().GetBool("all")

			entries, err := listGames(s, all, patterns)
			if err != nil {
				return err
			}

			if s.opts.JSONOutput {
				return cli.PrintJSON(cmd, entries)
			}

			pretty := logging.NewPrettyLogger().WithWriter(cmd.OutOrStdout())
			if len(entries) == 0 {
				pretty.Info("No games match.")
				return nil
			}
			for _, e := range entries {
				detail := e.Path
				if !e.Installed {
					detail = "not installed"
				}
				pretty.Item(fmt.Sprintf("%s (%s)", e.Name, e.Folder), detail, e.Current)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceP("match", "m", nil, "Only list games whose folder matches these patterns")
	cmd.Flags().BoolP("all", "a", false, "Include configured games that are not installed")

	return cmd
}

func listGames(s *session, all bool, patterns []string) ([]GameEntry, error) {
	var matcher *patternmatcher.PatternMatcher
	if len(patterns) > 0 {
		lowered := make([]string, len(patterns))
		for i, p := range patterns {
			lowered[i] = strings.ToLower(p)
		}
		pm, err := patternmatcher.New(lowered)
		if err != nil {
			return nil, fmt.Errorf("invalid --match pattern: %w", err)
		}
		matcher = pm
	}

	current := ""
	if g, err := s.registry.CurrentGame(); err == nil {
		current = g.FolderName()
	}

	installed := make(map[string]config.GameSettings)
	for _, gs := range s.registry.Sessions() {
		installed[strings.ToLower(gs.FolderName)] = gs
	}

	var source []config.GameSettings
	if all {
		source = s.store.Games()
	} else {
		source = s.registry.Sessions()
	}

	var entries []GameEntry
	for _, gs := range source {
		if matcher != nil {
			ok, err := matcher.MatchesOrParentMatches(strings.ToLower(gs.FolderName))
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
		}
		session, isInstalled := installed[strings.ToLower(gs.FolderName)]
		if isInstalled {
			gs = session
		}
		name := gs.Name
		if name == "" {
			name = gs.FolderName
		}
		entries = append(entries, GameEntry{
			Folder:    gs.FolderName,
			Name:      name,
			Type:      string(gs.Type),
			Path:      gs.Path,
			Installed: isInstalled,
			Current:   strings.EqualFold(gs.FolderName, current),
		})
	}
	return entries, nil
}
