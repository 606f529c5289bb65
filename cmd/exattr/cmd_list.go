package main

import (
	"bytes"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/exattr/exattr"
	"github.com/exattr/exattr/internal/archive"
	"github.com/exattr/exattr/internal/global"
	"github.com/exattr/exattr/internal/ui"
	"github.com/exattr/exattr/internal/ui/table"
)

func newListCommand(globalOptions *global.Options) *cobra.Command {
	var opts ListOptions

	cmd := &cobra.Command{
		Use:   "list [flags] PATH...",
		Short: "List the extended attributes of files",
		Long: `
The "list" command prints the names of the extended attributes of each PATH.
Names are shown in the order reported by the filesystem unless --sort is
given. With --long, the size and the xxHash64 digest of each value are shown
as well.

EXIT STATUS
===========

Exit status is 0 if the command was successful.
Exit status is 1 if there was any error.
Exit status is 2 if the arguments are invalid.
Exit status is 4 if extended attributes are not supported.
`,
		Aliases:           []string{"ls"},
		GroupID:           cmdGroupDefault,
		DisableAutoGenTag: true,
		RunE: func(_ *cobra.Command, args []string) error {
			return runList(opts, *globalOptions, args, globalOptions.Term)
		},
	}
	opts.AddFlags(cmd.Flags())
	return cmd
}

// ListOptions collects all options for the list command.
type ListOptions struct {
	Long bool
	Sort bool
}

func (opts *ListOptions) AddFlags(f *pflag.FlagSet) {
	f.BoolVarP(&opts.Long, "long", "l", false, "show size and digest of each value")
	f.BoolVarP(&opts.Sort, "sort", "s", false, "sort the names")
}

type listAttr struct {
	Name  string `json:"name"`
	Size  uint64 `json:"size"`
	XXH64 string `json:"xxh64"`
}

type listJSON struct {
	MessageType string     `json:"message_type"` // list
	Path        string     `json:"path"`
	Names       []string   `json:"names,omitempty"`
	Attributes  []listAttr `json:"attributes,omitempty"`
}

func runList(opts ListOptions, gopts global.Options, args []string, term ui.Terminal) error {
	if len(args) == 0 {
		return errorUsage("list", "at least one path expected")
	}

	attrs := gopts.Attrs()
	for i, path := range args {
		names, err := attrs.List(path)
		if err != nil {
			return err
		}
		if opts.Sort {
			sort.Strings(names)
		}

		var long []listAttr
		if opts.Long {
			long, err = describe(attrs, path, names)
			if err != nil {
				return err
			}
		}

		switch {
		case gopts.JSON:
			msg := listJSON{MessageType: "list", Path: path}
			if opts.Long {
				msg.Attributes = long
			} else {
				msg.Names = names
			}
			term.Print(ui.ToJSONString(msg))
			continue
		case len(args) > 1:
			if i > 0 {
				term.Print("")
			}
			term.Print(ui.Quote(path) + ":")
		}

		if opts.Long {
			printLongList(term, long)
			continue
		}
		for _, name := range names {
			term.Print(ui.Quote(name))
		}
	}
	return nil
}

// describe reads the value of each attribute. An attribute removed after
// listing is reported as an error.
func describe(attrs *exattr.Attrs, path string, names []string) ([]listAttr, error) {
	res := make([]listAttr, 0, len(names))
	for _, name := range names {
		v, err := attrs.Get(path, name)
		if err != nil {
			return nil, err
		}
		value, ok := v.Bytes()
		if !ok {
			return nil, &exattr.Error{Op: "list", Path: path, Name: name, Kind: exattr.NoSuchAttribute, Err: exattr.ErrVanished}
		}
		res = append(res, listAttr{Name: name, Size: uint64(len(value)), XXH64: archive.Digest(value)})
	}
	return res, nil
}

func printLongList(term ui.Terminal, attrs []listAttr) {
	tab := table.New()
	tab.AddColumn("Name", "{{quote .Name}}")
	tab.AddColumn("Size", `{{printf "%10s" (bytes .Size)}}`)
	tab.AddColumn("XXH64", "{{.XXH64}}")
	for _, a := range attrs {
		tab.AddRow(a)
	}
	tab.AddFooter(ui.FormatCount(len(attrs), "attribute"))

	var buf bytes.Buffer
	// writing to a buffer does not fail
	_ = tab.Write(&buf)
	term.Print(strings.TrimSuffix(buf.String(), "\n"))
}
