package main

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/exattr/exattr/internal/archive"
	"github.com/exattr/exattr/internal/filter"
	"github.com/exattr/exattr/internal/global"
	"github.com/exattr/exattr/internal/ui"
)

func newRestoreCommand(globalOptions *global.Options) *cobra.Command {
	var opts RestoreOptions

	cmd := &cobra.Command{
		Use:   "restore [flags] FILE",
		Short: "Restore extended attributes from a snapshot file",
		Long: `
The "restore" command applies the extended attributes saved in the snapshot
FILE to the paths recorded in it. Attributes which exist on a path but are
not part of the snapshot are removed. With --include and --exclude, only
matching attributes are set or removed, all others are left untouched.

EXIT STATUS
===========

Exit status is 0 if the command was successful.
Exit status is 1 if there was any error.
Exit status is 2 if the arguments are invalid or the snapshot is damaged.
Exit status is 4 if extended attributes are not supported.
Exit status is 130 if the command was interrupted.
`,
		GroupID:           cmdGroupSnapshot,
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRestore(cmd.Context(), opts, *globalOptions, args, globalOptions.Term)
		},
	}
	opts.AddFlags(cmd.Flags())
	return cmd
}

// RestoreOptions collects all options for the restore command.
type RestoreOptions struct {
	filter.PatternOptions
}

func (opts *RestoreOptions) AddFlags(f *pflag.FlagSet) {
	opts.PatternOptions.AddFlags(f)
}

func runRestore(ctx context.Context, opts RestoreOptions, gopts global.Options, args []string, term ui.Terminal) error {
	if len(args) != 1 {
		return errorUsage("restore", "exactly one snapshot file expected")
	}

	printer := ui.NewProgressPrinter(gopts.JSON, gopts.Verbosity, term)
	sel, err := opts.Collect(printer.E)
	if err != nil {
		return err
	}

	sn, err := archive.Load(args[0])
	if err != nil {
		return err
	}
	printer.V("loaded snapshot of %v taken on %v at %v", ui.FormatCount(len(sn.Entries), "path"),
		sn.Hostname, sn.Time.Format(global.TimeFormat))

	stats, err := archive.Restore(ctx, gopts.Attrs(), sn, archive.Options{
		Jobs:    gopts.Workers(),
		Select:  sel,
		Printer: printer,
	})
	if err != nil {
		return err
	}

	if gopts.JSON {
		type jsonSummary struct {
			MessageType string `json:"message_type"` // summary
			Paths       int    `json:"paths"`
			Set         int    `json:"set"`
			Removed     int    `json:"removed"`
		}
		term.Print(ui.ToJSONString(jsonSummary{"summary", stats.Paths, stats.Set, stats.Removed}))
		return nil
	}

	printer.P("restored %v, set %v, removed %v", ui.FormatCount(stats.Paths, "path"),
		ui.FormatCount(stats.Set, "attribute"), ui.FormatCount(stats.Removed, "attribute"))
	return nil
}
