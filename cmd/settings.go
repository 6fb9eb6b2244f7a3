package cmd

import (
	"fmt"

	"github.com/grovetools/gamestate/cli"
	"github.com/grovetools/gamestate/config"
	"github.com/spf13/cobra"
)

func newSettingsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Print the effective settings",
		Long: `Print the settings as they stand after startup: defaults applied and
detected install paths filled in. Nothing is written to disk.

Examples:
  gamestate settings
  gamestate settings --format yaml
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.bootstrap(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			format, _ := cmd.Flags().GetString("format")
			if s.opts.JSONOutput {
				format = "json"
			}
			return printSettings(cmd, s.store.Snapshot(), format)
		},
	}

	cmd.Flags().StringP("format", "f", "toml", "Output format: toml, yaml, json")

	return cmd
}

func printSettings(cmd *cobra.Command, settings *config.Settings, format string) error {
	switch format {
	case "json":
		return cli.PrintJSON(cmd, settings)
	case "toml", "yaml", "yml":
		f := config.FormatTOML
		if format != "toml" {
			f = config.FormatYAML
		}
		data, err := config.Marshal(settings, f)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	default:
		return fmt.Errorf("unknown format %q (expected toml, yaml or json)", format)
	}
}
