package main

import (
	"context"
	"io/fs"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/exattr/exattr/internal/archive"
	"github.com/exattr/exattr/internal/debug"
	"github.com/exattr/exattr/internal/errors"
	"github.com/exattr/exattr/internal/filter"
	"github.com/exattr/exattr/internal/global"
	"github.com/exattr/exattr/internal/ui"
)

func newSnapshotCommand(globalOptions *global.Options) *cobra.Command {
	var opts SnapshotOptions

	cmd := &cobra.Command{
		Use:   "snapshot [flags] -o FILE PATH...",
		Short: "Save the extended attributes of files to a snapshot file",
		Long: `
The "snapshot" command reads the extended attributes of each PATH and saves
them to FILE. Every value is stored with its xxHash64 digest, which is
verified when the snapshot is loaded again. When FILE ends in ".zst" the
snapshot is compressed with zstd.

Attributes which are removed while the snapshot is taken are skipped with a
warning.

EXIT STATUS
===========

Exit status is 0 if the command was successful.
Exit status is 1 if there was any error.
Exit status is 2 if the arguments are invalid.
Exit status is 4 if extended attributes are not supported.
Exit status is 130 if the command was interrupted.
`,
		GroupID:           cmdGroupSnapshot,
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSnapshot(cmd.Context(), opts, *globalOptions, args, globalOptions.Term)
		},
	}
	opts.AddFlags(cmd.Flags())
	return cmd
}

// SnapshotOptions collects all options for the snapshot command.
type SnapshotOptions struct {
	filter.PatternOptions
	Output    string
	Recursive bool
}

func (opts *SnapshotOptions) AddFlags(f *pflag.FlagSet) {
	opts.PatternOptions.AddFlags(f)
	f.StringVarP(&opts.Output, "output", "o", "", "write the snapshot to `file`")
	f.BoolVarP(&opts.Recursive, "recursive", "R", false, "include everything below directories")
}

// collectPaths returns args, expanded with all files and directories below
// them if recursive is set. Symlinks are not followed.
func collectPaths(ctx context.Context, args []string, recursive bool) ([]string, error) {
	if !recursive {
		return args, nil
	}

	var paths []string
	for _, arg := range args {
		err := filepath.WalkDir(arg, func(path string, _ fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			paths = append(paths, path)
			return nil
		})
		if err != nil {
			return nil, errors.Wrapf(err, "walk %v", arg)
		}
	}
	debug.Log("collected %d paths below %v", len(paths), args)
	return paths, nil
}

func runSnapshot(ctx context.Context, opts SnapshotOptions, gopts global.Options, args []string, term ui.Terminal) error {
	if opts.Output == "" {
		return errorUsage("snapshot", "--output is required")
	}
	if len(args) == 0 {
		return errorUsage("snapshot", "at least one path expected")
	}

	printer := ui.NewProgressPrinter(gopts.JSON, gopts.Verbosity, term)
	sel, err := opts.Collect(printer.E)
	if err != nil {
		return err
	}

	paths, err := collectPaths(ctx, args, opts.Recursive)
	if err != nil {
		return err
	}

	sn, err := archive.Capture(ctx, gopts.Attrs(), paths, archive.Options{
		Jobs:    gopts.Workers(),
		Select:  sel,
		Printer: printer,
	})
	if err != nil {
		return err
	}

	err = archive.Save(opts.Output, sn)
	if err != nil {
		return errors.Fatalf("unable to save snapshot: %v", err)
	}

	if gopts.JSON {
		type jsonSummary struct {
			MessageType string `json:"message_type"` // summary
			Paths       int    `json:"paths"`
			Attributes  int    `json:"attributes"`
			File        string `json:"file"`
		}
		term.Print(ui.ToJSONString(jsonSummary{"summary", len(sn.Entries), sn.Count(), opts.Output}))
		return nil
	}

	printer.P("saved %v of %v to %v", ui.FormatCount(sn.Count(), "attribute"),
		ui.FormatCount(len(sn.Entries), "path"), opts.Output)
	return nil
}
