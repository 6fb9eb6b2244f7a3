package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/grovetools/gamestate/internal/pidfile"
	"github.com/grovetools/gamestate/logging"
	"github.com/grovetools/gamestate/pkg/paths"
	"github.com/grovetools/gamestate/pkg/watch"
	"github.com/spf13/cobra"
)

func newWatchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Reload the settings whenever the file changes",
		Long: `Start up, then watch the settings file and reconcile the installed games
with it after every change. Games removed from the file are dropped, new
ones are detected and the current game is kept when it still exists.

Only one watcher runs at a time. Stop it with Ctrl-C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pidPath, _ := cmd.Flags().GetString("pid-file")
			if pidPath == "" {
				pidPath = paths.PidFilePath()
			}
			if err := pidfile.Acquire(pidPath); err != nil {
				return err
			}
			defer pidfile.Release(pidPath)

			s, err := a.bootstrap(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			debounce, _ := cmd.Flags().GetDuration("debounce")
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			err = runWatch(ctx, cmd, s, debounce)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().Duration("debounce", watch.DefaultDebounce, "How long the file must stay unchanged before reloading")
	cmd.Flags().String("pid-file", "", "Pid file guarding against a second watcher")

	return cmd
}

func runWatch(ctx context.Context, cmd *cobra.Command, s *session, debounce time.Duration) error {
	logger := logging.NewLogger("watch")
	pretty := logging.NewPrettyLogger().WithWriter(cmd.OutOrStdout())

	w, err := watch.New(s.opts.ResolvedSettingsFile(), debounce, func(path string) {
		if err := s.registry.ReloadFrom(path); err != nil {
			logger.WithError(err).Error("Reload failed")
			pretty.Error("Reload failed", err)
			return
		}
		current, err := s.registry.CurrentSettings()
		if err != nil {
			pretty.Error("Reload failed", err)
			return
		}
		pretty.Success("Reloaded " + path)
		pretty.Item(current.Name, current.Path, true)
	})
	if err != nil {
		return err
	}

	pretty.Info("Watching " + w.Path())
	return w.Run(ctx)
}
