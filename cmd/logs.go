package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"os/signal"

	"github.com/grovetools/gamestate/cli"
	"github.com/grovetools/gamestate/errors"
	"github.com/hpcloud/tail"
	"github.com/spf13/cobra"
)

// NewLogsCmd creates the `logs` command.
func NewLogsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the log of the last session",
		Long: `Show the session log. Each run replaces the log, so it only holds the
most recent session.

Examples:
  # Follow the log of a running watcher
  gamestate logs -f

  # Show the last 20 lines
  gamestate logs --tail 20
`,
		Args: cobra.NoArgs,
		RunE: runLogsE,
	}

	cmd.Flags().BoolP("follow", "f", false, "Follow log output")
	cmd.Flags().Int("tail", -1, "Number of lines to show from the end of the log (default: all)")

	return cmd
}

func runLogsE(cmd *cobra.Command, args []string) error {
	opts := cli.GetOptions(cmd)
	follow, _ := cmd.Flags().GetBool("follow")
	tailLines, _ := cmd.Flags().GetInt("tail")
	path := opts.ResolvedLogFile()

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !follow {
			return errors.New(errors.ErrCodeInvalidInput, fmt.Sprintf("no log file at %s", path)).
				WithDetail("path", path)
		}
		if !os.IsNotExist(err) {
			return err
		}
	} else if err := printLog(cmd.OutOrStdout(), path, tailLines); err != nil {
		return err
	}

	if !follow {
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	return followLog(ctx, cmd.OutOrStdout(), path)
}

// printLog copies the log to w, or only its last n lines when n >= 0.
func printLog(w io.Writer, path string, n int) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if n < 0 {
		_, err := io.Copy(w, f)
		return err
	}

	ring := make([]string, 0, n)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if n == 0 {
			continue
		}
		if len(ring) == n {
			ring = ring[1:]
		}
		ring = append(ring, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	for _, line := range ring {
		fmt.Fprintln(w, line)
	}
	return nil
}

// followLog writes lines appended to path until ctx is done. The log is
// reopened when a new session replaces it.
func followLog(ctx context.Context, w io.Writer, path string) error {
	t, err := tail.TailFile(path, tail.Config{
		Follow:   true,
		ReOpen:   true,
		Location: &tail.SeekInfo{Offset: 0, Whence: io.SeekEnd},
		Logger:   stdlog.New(io.Discard, "", 0),
	})
	if err != nil {
		return fmt.Errorf("cannot follow %s: %w", path, err)
	}
	defer t.Cleanup()

	for {
		select {
		case <-ctx.Done():
			t.Stop()
			return nil
		case line, ok := <-t.Lines:
			if !ok {
				return t.Err()
			}
			if line.Err != nil {
				continue
			}
			fmt.Fprintln(w, line.Text)
		}
	}
}
