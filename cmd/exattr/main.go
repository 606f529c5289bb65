package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/exattr/exattr"
	"github.com/exattr/exattr/internal/debug"
	"github.com/exattr/exattr/internal/errors"
	"github.com/exattr/exattr/internal/global"
	"github.com/exattr/exattr/internal/ui/termstatus"
)

func init() {
	// don't import `go.uber.org/automaxprocs` to disable the log output
	_, _ = maxprocs.Set()
}

var cmdGroupDefault = "default"
var cmdGroupSnapshot = "snapshot"

func newRootCommand(globalOptions *global.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exattr",
		Short: "Read, write and archive extended file attributes",
		Long: `
exattr reads, writes, removes and lists extended file attributes with the
same behavior and error reporting on Linux, the BSDs and macOS. Attributes
of many files can be captured into a snapshot file and restored later.
`,
		SilenceErrors:     true,
		SilenceUsage:      true,
		DisableAutoGenTag: true,

		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return globalOptions.PreRun()
		},
	}

	cmd.AddGroup(
		&cobra.Group{
			ID:    cmdGroupDefault,
			Title: "Available Commands:",
		},
		&cobra.Group{
			ID:    cmdGroupSnapshot,
			Title: "Snapshot Commands:",
		},
	)

	globalOptions.AddFlags(cmd.PersistentFlags())
	cmd.SetOut(globalOptions.Stdout)
	cmd.SetErr(globalOptions.Stderr)

	cmd.CompletionOptions.DisableDefaultCmd = true

	cmd.AddCommand(
		newDumpCommand(globalOptions),
		newGetCommand(globalOptions),
		newListCommand(globalOptions),
		newRestoreCommand(globalOptions),
		newRmCommand(globalOptions),
		newSetCommand(globalOptions),
		newSnapshotCommand(globalOptions),
		newSupportedCommand(globalOptions),
		newVersionCommand(globalOptions),
	)

	global.RegisterProfiling(cmd, globalOptions.Stderr)

	return cmd
}

type jsonExitError struct {
	MessageType string      `json:"message_type"` // exit_error
	Code        int         `json:"code"`
	Kind        exattr.Kind `json:"kind,omitempty"`
	Message     string      `json:"message"`
}

func printExitError(gopts global.Options, err error, code int, message string) {
	if gopts.JSON {
		jsonS := jsonExitError{
			MessageType: "exit_error",
			Code:        code,
			Message:     message,
		}
		var e *exattr.Error
		if errors.As(err, &e) {
			jsonS.Kind = e.Kind
		}

		err := json.NewEncoder(gopts.Stderr).Encode(jsonS)
		if err != nil {
			_, _ = fmt.Fprintf(gopts.Stderr, "JSON encode failed: %v\n", err)
			return
		}
	} else {
		_, _ = fmt.Fprintf(gopts.Stderr, "%v\n", message)
	}
}

// exitCode maps the error returned by a command to the process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return 130
	case errors.Is(err, exattr.NoSuchAttribute):
		return 3
	case errors.Is(err, exattr.NotSupported):
		return 4
	case errors.IsFatal(err):
		return 2
	default:
		return 1
	}
}

// exitMessage returns the text shown for err. Attribute and fatal errors
// are meant for the user, anything else includes the stack trace.
func exitMessage(err error, logBuffer *bytes.Buffer) string {
	var e *exattr.Error
	switch {
	case err == nil:
		return ""
	case errors.IsFatal(err), errors.As(err, &e), errors.Is(err, context.Canceled):
		return err.Error()
	}

	msg := fmt.Sprintf("%+v", err)
	if logBuffer != nil && logBuffer.Len() > 0 {
		msg += "\nalso, the following messages were logged by a library:\n"
		sc := bufio.NewScanner(logBuffer)
		for sc.Scan() {
			msg += fmt.Sprintln(sc.Text())
		}
	}
	return msg
}

func main() {
	// install custom global logger into a buffer, if an error occurs
	// we can show the logs
	logBuffer := bytes.NewBuffer(nil)
	log.SetOutput(logBuffer)

	debug.Log("main %#v", os.Args)
	debug.Log("exattr %s compiled with %v on %v/%v",
		global.Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)

	globalOptions := global.New()
	term, cancel := termstatus.Setup(globalOptions.Stdout, globalOptions.Stderr, false)
	globalOptions.Term = term

	// route writes to the std streams through the terminal so they don't
	// mix with status lines
	stderr := globalOptions.Stderr
	stdout, errOut := termstatus.WrapStdio(term)
	globalOptions.Stdout, globalOptions.Stderr = stdout, errOut

	ctx := createGlobalContext(term)
	err := newRootCommand(&globalOptions).ExecuteContext(ctx)

	_ = stdout.Close()
	_ = errOut.Close()
	cancel()
	globalOptions.Stderr = stderr

	if err == nil {
		err = ctx.Err()
	}

	code := exitCode(err)
	if code != 0 {
		printExitError(globalOptions, err, code, exitMessage(err, logBuffer))
	}
	Exit(code)
}
