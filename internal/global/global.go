// Package global holds the options shared by all exattr commands.
package global

import (
	"io"
	"os"
	"runtime"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/exattr/exattr"
	"github.com/exattr/exattr/internal/errors"
	"github.com/exattr/exattr/internal/ui"
)

var Version = "0.3.0-dev (compiled manually)"

// TimeFormat is the format used for all timestamps printed by exattr.
const TimeFormat = "2006-01-02 15:04:05"

// Options hold all global options for exattr.
type Options struct {
	Quiet       bool
	Verbose     int
	JSON        bool
	Dereference bool
	Jobs        int

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Term receives all output of a command, it is set up by main.
	Term ui.Terminal

	// Verbosity is set as follows:
	//  0 means: don't print any messages except errors, this is used when --quiet is specified
	//  1 is the default: print essential messages
	//  2 means: print more messages, report minor things, this is used when --verbose is specified
	//  3 means: print very detailed debug messages, this is used when --verbose=2 is specified
	Verbosity uint

	flags *pflag.FlagSet
}

// New returns Options writing to the standard streams.
func New() Options {
	return Options{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

func (opts *Options) AddFlags(f *pflag.FlagSet) {
	f.BoolVarP(&opts.Quiet, "quiet", "q", false, "do not output informational messages")
	// use empty parameter name as `-v, --verbose n` instead of the correct `--verbose=n` is confusing
	f.CountVarP(&opts.Verbose, "verbose", "v", "be verbose (specify multiple times or a level using --verbose=n``, max level/times is 2)")
	f.BoolVarP(&opts.JSON, "json", "", false, "set output mode to JSON for commands that support it (default: $EXATTR_JSON)")
	f.BoolVarP(&opts.Dereference, "dereference", "L", false, "act on the target of symbolic links instead of the links themselves (default: $EXATTR_DEREFERENCE)")
	f.IntVar(&opts.Jobs, "jobs", 0, "process up to `n` paths concurrently (default: $EXATTR_JOBS or the number of CPUs)")

	opts.flags = f
}

func (opts *Options) changed(name string) bool {
	return opts.flags != nil && opts.flags.Changed(name)
}

// envBool sets *target from the environment variable name unless the flag
// was given on the command line.
func (opts *Options) envBool(flag, name string, target *bool) error {
	s := os.Getenv(name)
	if s == "" || opts.changed(flag) {
		return nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return errors.Fatalf("invalid value %q for %s: %v", s, name, err)
	}
	*target = v
	return nil
}

func (opts *Options) PreRun() error {
	// set verbosity, default is one
	opts.Verbosity = 1
	if opts.Quiet && opts.Verbose > 0 {
		return errors.Fatal("--quiet and --verbose cannot be specified at the same time")
	}

	switch {
	case opts.Verbose >= 2:
		opts.Verbosity = 3
	case opts.Verbose > 0:
		opts.Verbosity = 2
	case opts.Quiet:
		opts.Verbosity = 0
	}

	if err := opts.envBool("json", "EXATTR_JSON", &opts.JSON); err != nil {
		return err
	}
	if err := opts.envBool("dereference", "EXATTR_DEREFERENCE", &opts.Dereference); err != nil {
		return err
	}

	if s := os.Getenv("EXATTR_JOBS"); s != "" && !opts.changed("jobs") {
		jobs, err := strconv.Atoi(s)
		if err != nil {
			return errors.Fatalf("invalid value %q for EXATTR_JOBS: %v", s, err)
		}
		opts.Jobs = jobs
	}
	if opts.Jobs < 0 {
		return errors.Fatalf("invalid number of jobs %d", opts.Jobs)
	}
	opts.Jobs = opts.Workers()

	return nil
}

// Workers returns the number of paths to process concurrently, Jobs if it
// is set and GOMAXPROCS otherwise.
func (opts *Options) Workers() int {
	if opts.Jobs > 0 {
		return opts.Jobs
	}
	return runtime.GOMAXPROCS(0)
}

// Attrs returns the attribute accessor selected by the options.
func (opts *Options) Attrs() *exattr.Attrs {
	return exattr.New(exattr.Options{FollowSymlinks: opts.Dereference})
}
