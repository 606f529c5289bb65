//go:build debug || profile

package global

import (
	"fmt"
	"io"
	"net/http"
	_ "net/http/pprof"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/exattr/exattr/internal/errors"
)

func RegisterProfiling(cmd *cobra.Command, stderr io.Writer) {
	var profiler Profiler

	origPreRun := cmd.PersistentPreRunE
	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if origPreRun != nil {
			if err := origPreRun(cmd, args); err != nil {
				return err
			}
		}
		return profiler.Start(profiler.opts, stderr)
	}

	// PersistentPostRunE is skipped when a command fails
	cobra.OnFinalize(func() {
		profiler.Stop()
	})

	profiler.opts.AddFlags(cmd.PersistentFlags())
}

type Profiler struct {
	opts ProfileOptions
	stop interface {
		Stop()
	}
}

type ProfileOptions struct {
	listen    string
	memPath   string
	cpuPath   string
	tracePath string
	blockPath string
}

func (opts *ProfileOptions) AddFlags(f *pflag.FlagSet) {
	f.StringVar(&opts.listen, "listen-profile", "", "listen on this `address:port` for memory profiling")
	f.StringVar(&opts.memPath, "mem-profile", "", "write memory profile to `dir`")
	f.StringVar(&opts.cpuPath, "cpu-profile", "", "write cpu profile to `dir`")
	f.StringVar(&opts.tracePath, "trace-profile", "", "write trace to `dir`")
	f.StringVar(&opts.blockPath, "block-profile", "", "write block profile to `dir`")
}

func (p *Profiler) Start(profileOpts ProfileOptions, stderr io.Writer) error {
	if profileOpts.listen != "" {
		fmt.Fprintf(stderr, "running profile HTTP server on %v\n", profileOpts.listen)
		go func() {
			err := http.ListenAndServe(profileOpts.listen, nil)
			if err != nil {
				fmt.Fprintf(stderr, "profile HTTP server listen failed: %v\n", err)
			}
		}()
	}

	var modes []func(*profile.Profile)
	var path string
	for _, m := range []struct {
		path string
		mode func(*profile.Profile)
	}{
		{profileOpts.memPath, profile.MemProfile},
		{profileOpts.cpuPath, profile.CPUProfile},
		{profileOpts.tracePath, profile.TraceProfile},
		{profileOpts.blockPath, profile.BlockProfile},
	} {
		if m.path != "" {
			modes = append(modes, m.mode)
			path = m.path
		}
	}

	switch len(modes) {
	case 0:
		return nil
	case 1:
		p.stop = profile.Start(profile.Quiet, profile.NoShutdownHook, modes[0], profile.ProfilePath(path))
		return nil
	default:
		return errors.Fatal("only one profile (memory, CPU, trace, or block) may be activated at the same time")
	}
}

func (p *Profiler) Stop() {
	if p.stop != nil {
		p.stop.Stop()
	}
}
