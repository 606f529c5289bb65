package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/exattr/exattr"
	"github.com/exattr/exattr/internal/archive"
	"github.com/exattr/exattr/internal/debug"
	"github.com/exattr/exattr/internal/global"
	"github.com/exattr/exattr/internal/ui"
)

func newGetCommand(globalOptions *global.Options) *cobra.Command {
	opts := GetOptions{Encoding: encodingFlag(ui.EncodingAuto)}

	cmd := &cobra.Command{
		Use:   "get [flags] PATH NAME",
		Short: "Print the value of an extended attribute",
		Long: `
The "get" command prints the value of the extended attribute NAME of PATH.
Printable values are shown as text, anything else as hex with a "0x" prefix.
Use --raw to write the value unmodified, e.g. to redirect it into a file.

EXIT STATUS
===========

Exit status is 0 if the command was successful.
Exit status is 1 if there was any error.
Exit status is 2 if the arguments are invalid.
Exit status is 3 if the attribute does not exist.
Exit status is 4 if extended attributes are not supported.
`,
		GroupID:           cmdGroupDefault,
		DisableAutoGenTag: true,
		RunE: func(_ *cobra.Command, args []string) error {
			return runGet(opts, *globalOptions, args, globalOptions.Term)
		},
	}
	opts.AddFlags(cmd.Flags())
	return cmd
}

// GetOptions collects all options for the get command.
type GetOptions struct {
	Encoding encodingFlag
	Raw      bool
}

func (opts *GetOptions) AddFlags(f *pflag.FlagSet) {
	f.Var(&opts.Encoding, "encoding", "show the value as `text`, hex or auto")
	f.BoolVar(&opts.Raw, "raw", false, "write the value unmodified")
}

type getJSON struct {
	MessageType string `json:"message_type"` // attribute
	Path        string `json:"path"`
	archive.Attribute
}

func runGet(opts GetOptions, gopts global.Options, args []string, term ui.Terminal) error {
	if len(args) != 2 {
		return errorUsage("get", "path and attribute name expected")
	}
	path, name := args[0], args[1]

	v, err := gopts.Attrs().Get(path, name)
	if err != nil {
		return err
	}

	value, ok := v.Bytes()
	if !ok {
		debug.Log("attribute %v of %v not found", name, path)
		return &exattr.Error{Op: "get", Path: path, Name: name, Kind: exattr.NoSuchAttribute}
	}

	switch {
	case gopts.JSON:
		term.Print(ui.ToJSONString(getJSON{"attribute", path, archive.NewAttribute(name, value)}))
	case opts.Raw:
		_, err = term.OutputRaw().Write(value)
	default:
		term.Print(ui.FormatValue(value, ui.Encoding(opts.Encoding)))
	}
	return err
}
