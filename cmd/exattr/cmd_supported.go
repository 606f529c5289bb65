package main

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/exattr/exattr"
	"github.com/exattr/exattr/internal/global"
	"github.com/exattr/exattr/internal/ui"
)

func newSupportedCommand(globalOptions *global.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "supported",
		Short: "Report whether this platform supports extended attributes",
		Long: `
The "supported" command reports whether this build of exattr can access
extended attributes on the current platform. It does not check whether a
particular filesystem supports them.

EXIT STATUS
===========

Exit status is 0 if extended attributes are supported.
Exit status is 4 if they are not supported on this platform.
`,
		GroupID:           cmdGroupDefault,
		DisableAutoGenTag: true,
		RunE: func(_ *cobra.Command, args []string) error {
			return runSupported(*globalOptions, args, globalOptions.Term, exattr.Supported())
		},
	}
	return cmd
}

func runSupported(gopts global.Options, args []string, term ui.Terminal, supported bool) error {
	if len(args) > 0 {
		return errorUsage("supported", "no arguments expected")
	}

	if gopts.JSON {
		type jsonSupported struct {
			MessageType string `json:"message_type"` // supported
			Supported   bool   `json:"supported"`
			GoOS        string `json:"go_os"`
		}
		term.Print(ui.ToJSONString(jsonSupported{"supported", supported, runtime.GOOS}))
	} else if gopts.Verbosity > 0 {
		if supported {
			term.Print("extended attributes are supported on " + runtime.GOOS)
		} else {
			term.Print("extended attributes are not supported on " + runtime.GOOS)
		}
	}

	if !supported {
		return exattr.NotSupported
	}
	return nil
}
