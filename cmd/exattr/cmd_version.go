package main

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/exattr/exattr"
	"github.com/exattr/exattr/internal/global"
	"github.com/exattr/exattr/internal/ui"
)

func newVersionCommand(globalOptions *global.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long: `
The "version" command prints detailed information about the build environment
and the version of this software.

EXIT STATUS
===========

Exit status is 0 if the command was successful.
Exit status is 1 if there was any error.
`,
		DisableAutoGenTag: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			runVersion(*globalOptions, globalOptions.Term)
			return nil
		},
	}
	return cmd
}

func runVersion(gopts global.Options, term ui.Terminal) {
	if gopts.JSON {
		type jsonVersion struct {
			MessageType string `json:"message_type"` // version
			Version     string `json:"version"`
			GoVersion   string `json:"go_version"`
			GoOS        string `json:"go_os"`
			GoArch      string `json:"go_arch"`
			Xattrs      bool   `json:"xattrs_supported"`
		}

		term.Print(ui.ToJSONString(jsonVersion{
			MessageType: "version",
			Version:     global.Version,
			GoVersion:   runtime.Version(),
			GoOS:        runtime.GOOS,
			GoArch:      runtime.GOARCH,
			Xattrs:      exattr.Supported(),
		}))
		return
	}

	term.Print("exattr " + global.Version + " compiled with " + runtime.Version() +
		" on " + runtime.GOOS + "/" + runtime.GOARCH)
}
