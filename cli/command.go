package cli

import (
	"encoding/json"
	"fmt"

	"github.com/grovetools/gamestate/pkg/paths"
	"github.com/spf13/cobra"
)

// CommandOptions holds the options shared by every gamestate command.
type CommandOptions struct {
	SettingsFile string
	DataDir      string
	Game         string
	Verbose      bool
	JSONOutput   bool
}

// NewStandardCommand creates a command carrying the standard gamestate flags.
func NewStandardCommand(use, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           use,
		Short:         short,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().StringP("settings", "s", "", "Path to the settings file (settings.toml in the data directory by default)")
	cmd.PersistentFlags().String("data-dir", "", "Directory holding settings, logs and game data")
	cmd.PersistentFlags().StringP("game", "g", "", "Folder name of the game to select, overriding the settings")

	SetStyledHelp(cmd)

	return cmd
}

// GetOptions extracts the standard options from a command.
func GetOptions(cmd *cobra.Command) CommandOptions {
	settingsFile, _ := cmd.Flags().GetString("settings")
	dataDir, _ := cmd.Flags().GetString("data-dir")
	game, _ := cmd.Flags().GetString("game")
	verbose, _ := cmd.Flags().GetBool("verbose")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	return CommandOptions{
		SettingsFile: settingsFile,
		DataDir:      dataDir,
		Game:         game,
		Verbose:      verbose,
		JSONOutput:   jsonOutput,
	}
}

// ResolvedDataDir returns the data directory flag, or the default location.
func (o CommandOptions) ResolvedDataDir() string {
	if o.DataDir != "" {
		return o.DataDir
	}
	return paths.DataDir()
}

// ResolvedSettingsFile returns the settings flag, or settings.toml in the
// resolved data directory.
func (o CommandOptions) ResolvedSettingsFile() string {
	if o.SettingsFile != "" {
		return o.SettingsFile
	}
	return paths.SettingsPath(o.ResolvedDataDir())
}

// ResolvedLogFile returns the session log inside the resolved data directory.
func (o CommandOptions) ResolvedLogFile() string {
	return paths.LogPath(o.ResolvedDataDir())
}

// PrintJSON writes v to the command's output as indented JSON.
func PrintJSON(cmd *cobra.Command, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
