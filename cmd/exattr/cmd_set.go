package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/exattr/exattr"
	"github.com/exattr/exattr/internal/errors"
	"github.com/exattr/exattr/internal/global"
	"github.com/exattr/exattr/internal/ui"
)

func newSetCommand(globalOptions *global.Options) *cobra.Command {
	opts := SetOptions{Encoding: encodingFlag(ui.EncodingText)}

	cmd := &cobra.Command{
		Use:   "set [flags] PATH NAME [VALUE]",
		Short: "Set or clear an extended attribute",
		Long: `
The "set" command stores a value as the extended attribute NAME of PATH,
replacing an existing value. The value is taken from the VALUE argument,
from a file (--file) or from standard input (--stdin). An empty VALUE
stores an empty attribute.

With --clear the attribute is removed instead. Clearing an attribute which
does not exist is not an error, in contrast to the "rm" command.

EXIT STATUS
===========

Exit status is 0 if the command was successful.
Exit status is 1 if there was any error.
Exit status is 2 if the arguments are invalid.
Exit status is 4 if extended attributes are not supported.
`,
		GroupID:           cmdGroupDefault,
		DisableAutoGenTag: true,
		RunE: func(_ *cobra.Command, args []string) error {
			return runSet(opts, *globalOptions, args, globalOptions.Term)
		},
	}
	opts.AddFlags(cmd.Flags())
	return cmd
}

// SetOptions collects all options for the set command.
type SetOptions struct {
	File     string
	Stdin    bool
	Clear    bool
	Encoding encodingFlag
}

func (opts *SetOptions) AddFlags(f *pflag.FlagSet) {
	f.StringVar(&opts.File, "file", "", "read the value from `file`")
	f.BoolVar(&opts.Stdin, "stdin", false, "read the value from standard input")
	f.BoolVar(&opts.Clear, "clear", false, "remove the attribute, succeeds if it does not exist")
	f.Var(&opts.Encoding, "encoding", "interpret VALUE as `text`, hex or auto (0x prefix selects hex)")
}

// setValue determines the value to set from the arguments and options.
func setValue(opts SetOptions, args []string, stdin io.Reader) (exattr.Value, error) {
	sources := 0
	if len(args) == 3 {
		sources++
	}
	for _, set := range []bool{opts.File != "", opts.Stdin, opts.Clear} {
		if set {
			sources++
		}
	}
	if sources != 1 {
		return exattr.None(), errorUsage("set", "exactly one of VALUE, --file, --stdin or --clear must be given")
	}

	switch {
	case opts.Clear:
		return exattr.None(), nil
	case opts.File != "":
		buf, err := os.ReadFile(opts.File)
		if err != nil {
			return exattr.None(), errors.Fatalf("unable to read value: %v", err)
		}
		return exattr.Some(buf), nil
	case opts.Stdin:
		buf, err := io.ReadAll(stdin)
		if err != nil {
			return exattr.None(), errors.Fatalf("unable to read value from stdin: %v", err)
		}
		return exattr.Some(buf), nil
	default:
		buf, err := ui.ParseValue(args[2], ui.Encoding(opts.Encoding))
		if err != nil {
			return exattr.None(), errors.Fatalf("invalid value %q: %v", args[2], err)
		}
		return exattr.Some(buf), nil
	}
}

func runSet(opts SetOptions, gopts global.Options, args []string, term ui.Terminal) error {
	if len(args) < 2 || len(args) > 3 {
		return errorUsage("set", "path and attribute name expected")
	}
	path, name := args[0], args[1]

	v, err := setValue(opts, args, gopts.Stdin)
	if err != nil {
		return err
	}

	err = gopts.Attrs().Set(path, name, v)
	if err != nil {
		return err
	}

	printer := ui.NewProgressPrinter(gopts.JSON, gopts.Verbosity, term)
	if value, ok := v.Bytes(); ok {
		printer.V("set %v on %v (%v)", name, path, ui.FormatBytes(uint64(len(value))))
	} else {
		printer.V("cleared %v on %v", name, path)
	}
	return nil
}
