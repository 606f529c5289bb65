package main

import (
	"context"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/exattr/exattr/internal/archive"
	"github.com/exattr/exattr/internal/filter"
	"github.com/exattr/exattr/internal/global"
	"github.com/exattr/exattr/internal/ui"
)

func newDumpCommand(globalOptions *global.Options) *cobra.Command {
	opts := DumpOptions{Encoding: encodingFlag(ui.EncodingAuto)}

	cmd := &cobra.Command{
		Use:   "dump [flags] PATH...",
		Short: "Print all extended attributes of files",
		Long: `
The "dump" command prints the names and values of the extended attributes of
each PATH. Attributes can be selected with --include and --exclude patterns,
which are matched against the whole attribute name, e.g. "user.*".

An attribute which is removed while dump is running is reported as an error
instead of being skipped silently.

EXIT STATUS
===========

Exit status is 0 if the command was successful.
Exit status is 1 if there was any error.
Exit status is 2 if the arguments are invalid.
Exit status is 3 if a listed attribute vanished before it could be read.
Exit status is 4 if extended attributes are not supported.
`,
		GroupID:           cmdGroupDefault,
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(cmd.Context(), opts, *globalOptions, args, globalOptions.Term)
		},
	}
	opts.AddFlags(cmd.Flags())
	return cmd
}

// DumpOptions collects all options for the dump command.
type DumpOptions struct {
	filter.PatternOptions
	Encoding encodingFlag
}

func (opts *DumpOptions) AddFlags(f *pflag.FlagSet) {
	opts.PatternOptions.AddFlags(f)
	f.Var(&opts.Encoding, "encoding", "show values as `text`, hex or auto")
}

type dumpJSON struct {
	MessageType string `json:"message_type"` // dump
	archive.Entry
}

func runDump(ctx context.Context, opts DumpOptions, gopts global.Options, args []string, term ui.Terminal) error {
	if len(args) == 0 {
		return errorUsage("dump", "at least one path expected")
	}

	printer := ui.NewProgressPrinter(gopts.JSON, gopts.Verbosity, term)
	sel, err := opts.Collect(printer.E)
	if err != nil {
		return err
	}

	attrs := gopts.Attrs()
	entries := make([]archive.Entry, len(args))

	wg, wgCtx := errgroup.WithContext(ctx)
	wg.SetLimit(gopts.Workers())
	for i, path := range args {
		wg.Go(func() error {
			if wgCtx.Err() != nil {
				return wgCtx.Err()
			}

			values, err := attrs.Dump(path)
			if err != nil {
				return err
			}

			entry := archive.Entry{Path: path, Attributes: []archive.Attribute{}}
			for name, value := range values {
				if sel(name) {
					entry.Attributes = append(entry.Attributes, archive.NewAttribute(name, value))
				}
			}
			sort.Slice(entry.Attributes, func(i, j int) bool {
				return entry.Attributes[i].Name < entry.Attributes[j].Name
			})
			entries[i] = entry
			return nil
		})
	}
	if err := wg.Wait(); err != nil {
		return err
	}

	for i, entry := range entries {
		if gopts.JSON {
			term.Print(ui.ToJSONString(dumpJSON{"dump", entry}))
			continue
		}

		if i > 0 {
			term.Print("")
		}
		term.Print("# file: " + ui.Quote(entry.Path))
		for _, attr := range entry.Attributes {
			term.Print(ui.Quote(attr.Name) + "=" + ui.FormatValue(attr.Value, ui.Encoding(opts.Encoding)))
		}
	}
	return nil
}
