package profiling

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/grovetools/gamestate/logging"
	"github.com/spf13/cobra"
)

// CobraProfiler wires the --timing, --cpu-profile and --mem-profile flags
// into a cobra command tree.
type CobraProfiler struct {
	cpuProfileFile *os.File
	cpuProfilePath string
	memProfilePath string
	timing         bool
	profiler       *Profiler
}

func NewCobraProfiler() *CobraProfiler {
	return &CobraProfiler{profiler: Disabled()}
}

// AddFlags adds the profiling flags to cmd as persistent flags.
func (p *CobraProfiler) AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&p.cpuProfilePath, "cpu-profile", "", "Write CPU profile to file")
	cmd.PersistentFlags().StringVar(&p.memProfilePath, "mem-profile", "", "Write memory profile to file")
	cmd.PersistentFlags().BoolVar(&p.timing, "timing", false, "Print a timing summary of startup on exit")
}

// Profiler returns the profiler commands should time their work with. It
// records nothing unless --timing was given.
func (p *CobraProfiler) Profiler() *Profiler {
	return p.profiler
}

// PreRun is intended to be used as a Cobra PersistentPreRunE hook.
func (p *CobraProfiler) PreRun(cmd *cobra.Command, args []string) error {
	if p.timing {
		p.profiler = New()
	}

	if p.cpuProfilePath != "" {
		f, err := os.Create(p.cpuProfilePath)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		p.cpuProfileFile = f
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
	}
	return nil
}

// PostRun is intended to be used as a Cobra PersistentPostRun hook.
func (p *CobraProfiler) PostRun(cmd *cobra.Command, args []string) {
	logger := logging.NewLogger("profiling")

	if p.cpuProfileFile != nil {
		pprof.StopCPUProfile()
		p.cpuProfileFile.Close()
		fmt.Fprintf(cmd.ErrOrStderr(), "CPU profile written to %s\n", p.cpuProfilePath)
	}

	if p.memProfilePath != "" {
		f, err := os.Create(p.memProfilePath)
		if err != nil {
			logger.WithError(err).Error("Could not create memory profile")
			return
		}
		defer f.Close()
		runtime.GC()
		if err := pprof.WriteHeapProfile(f); err != nil {
			logger.WithError(err).Error("Could not write memory profile")
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Memory profile written to %s\n", p.memProfilePath)
	}

	if p.timing {
		p.profiler.Summarize(cmd.ErrOrStderr())
	}
}
