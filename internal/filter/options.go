package filter

import (
	"fmt"
	"os"
	"strings"

	"github.com/exattr/exattr/internal/debug"
	"github.com/exattr/exattr/internal/errors"
	"github.com/exattr/exattr/internal/textfile"
	"github.com/spf13/pflag"
)

// SelectFunc reports whether an attribute should be processed.
type SelectFunc func(name string) bool

// PatternOptions collects the attribute name filters of a command.
type PatternOptions struct {
	Includes     []string
	Excludes     []string
	IncludeFiles []string
	ExcludeFiles []string
	IgnoreCase   bool
}

func (opts *PatternOptions) AddFlags(f *pflag.FlagSet) {
	f.StringArrayVarP(&opts.Includes, "include", "i", nil, "only process attributes matching `pattern` (can be specified multiple times)")
	f.StringArrayVarP(&opts.Excludes, "exclude", "e", nil, "skip attributes matching `pattern` (can be specified multiple times)")
	f.StringArrayVar(&opts.IncludeFiles, "include-file", nil, "read include patterns from a `file` (can be specified multiple times)")
	f.StringArrayVar(&opts.ExcludeFiles, "exclude-file", nil, "read exclude patterns from a `file` (can be specified multiple times)")
	f.BoolVar(&opts.IgnoreCase, "ignore-case", false, "match patterns case insensitively")
}

// Empty reports whether no filter was configured.
func (opts *PatternOptions) Empty() bool {
	return len(opts.Includes) == 0 && len(opts.Excludes) == 0 &&
		len(opts.IncludeFiles) == 0 && len(opts.ExcludeFiles) == 0
}

// Collect reads the pattern files, validates all patterns and returns a
// SelectFunc. An attribute is selected if it matches an include pattern,
// or there are none, and matches no exclude pattern.
func (opts PatternOptions) Collect(warnf func(msg string, args ...interface{})) (SelectFunc, error) {
	includes, err := collect("include", opts.Includes, opts.IncludeFiles)
	if err != nil {
		return nil, err
	}
	excludes, err := collect("exclude", opts.Excludes, opts.ExcludeFiles)
	if err != nil {
		return nil, err
	}

	fold := func(s string) string { return s }
	if opts.IgnoreCase {
		fold = strings.ToLower
		for i := range includes {
			includes[i] = fold(includes[i])
		}
		for i := range excludes {
			excludes[i] = fold(excludes[i])
		}
	}

	return func(name string) bool {
		name = fold(name)
		if len(includes) > 0 {
			matched, err := List(includes, name)
			if err != nil {
				warnf("error for include pattern: %v", err)
			}
			if !matched {
				return false
			}
		}

		matched, err := List(excludes, name)
		if err != nil {
			warnf("error for exclude pattern: %v", err)
		}
		if matched {
			debug.Log("attribute %q excluded by an exclude pattern", name)
			return false
		}
		return true
	}, nil
}

func collect(kind string, patterns, files []string) ([]string, error) {
	patterns = append([]string{}, patterns...)
	if len(files) > 0 {
		fromFiles, err := readPatternsFromFiles(files)
		if err != nil {
			return nil, err
		}
		if err := ValidatePatterns(fromFiles); err != nil {
			return nil, errors.Fatalf("--%s-file: %s", kind, err)
		}
		patterns = append(patterns, fromFiles...)
	}

	if err := ValidatePatterns(patterns); err != nil {
		return nil, errors.Fatalf("--%s: %s", kind, err)
	}
	return patterns, nil
}

// readPatternsFromFiles reads all files and returns the list of
// patterns. Blank lines and lines starting with '#' are ignored. For each
// remaining pattern, environment variables are resolved; a literal dollar
// sign is written as $$.
func readPatternsFromFiles(files []string) ([]string, error) {
	getenvOrDollar := func(s string) string {
		if s == "$" {
			return "$"
		}
		return os.Getenv(s)
	}

	var patterns []string
	for _, filename := range files {
		data, err := textfile.Read(filename)
		if err == nil {
			var lines []string
			lines, err = textfile.Lines(data)
			for _, line := range lines {
				patterns = append(patterns, os.Expand(line, getenvOrDollar))
			}
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read patterns from file %q: %w", filename, err)
		}
	}
	return patterns, nil
}
