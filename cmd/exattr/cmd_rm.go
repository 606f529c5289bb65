package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/exattr/exattr"
	"github.com/exattr/exattr/internal/global"
	"github.com/exattr/exattr/internal/ui"
)

func newRmCommand(globalOptions *global.Options) *cobra.Command {
	var opts RmOptions

	cmd := &cobra.Command{
		Use:   "rm [flags] PATH NAME...",
		Short: "Remove extended attributes",
		Long: `
The "rm" command removes the extended attributes NAME of PATH. Removing an
attribute which does not exist is an error unless --force is given.

EXIT STATUS
===========

Exit status is 0 if the command was successful.
Exit status is 1 if there was any error.
Exit status is 2 if the arguments are invalid.
Exit status is 3 if an attribute does not exist.
Exit status is 4 if extended attributes are not supported.
`,
		GroupID:           cmdGroupDefault,
		DisableAutoGenTag: true,
		RunE: func(_ *cobra.Command, args []string) error {
			return runRm(opts, *globalOptions, args, globalOptions.Term)
		},
	}
	opts.AddFlags(cmd.Flags())
	return cmd
}

// RmOptions collects all options for the rm command.
type RmOptions struct {
	Force bool
}

func (opts *RmOptions) AddFlags(f *pflag.FlagSet) {
	f.BoolVarP(&opts.Force, "force", "f", false, "ignore attributes which do not exist")
}

func runRm(opts RmOptions, gopts global.Options, args []string, term ui.Terminal) error {
	if len(args) < 2 {
		return errorUsage("rm", "path and at least one attribute name expected")
	}
	path := args[0]

	attrs := gopts.Attrs()
	printer := ui.NewProgressPrinter(gopts.JSON, gopts.Verbosity, term)

	for _, name := range args[1:] {
		var err error
		if opts.Force {
			err = attrs.Set(path, name, exattr.None())
		} else {
			err = attrs.Remove(path, name)
		}
		if err != nil {
			return err
		}
		printer.V("removed %v from %v", name, path)
	}
	return nil
}
