package main

import (
	"encoding/json"
	"runtime"
	"strings"
	"testing"

	"github.com/exattr/exattr"
	"github.com/exattr/exattr/internal/errors"
	"github.com/exattr/exattr/internal/global"
	rtest "github.com/exattr/exattr/internal/test"
)

func TestRunSupported(t *testing.T) {
	gopts, term := testGlobalOptions(t)
	rtest.OK(t, runSupported(gopts, nil, term, true))
	rtest.Equals(t, []string{"extended attributes are supported on " + runtime.GOOS}, term.Output)

	gopts, term = testGlobalOptions(t)
	err := runSupported(gopts, nil, term, false)
	rtest.Assert(t, errors.Is(err, exattr.NotSupported), "want NotSupported, got %v", err)
	rtest.Equals(t, 4, exitCode(err))
	rtest.Equals(t, []string{"extended attributes are not supported on " + runtime.GOOS}, term.Output)
}

func TestRunSupportedQuiet(t *testing.T) {
	gopts, term := testGlobalOptions(t)
	gopts.Verbosity = 0
	err := runSupported(gopts, nil, term, false)
	rtest.Assert(t, errors.Is(err, exattr.NotSupported), "want NotSupported, got %v", err)
	rtest.Equals(t, 0, len(term.Output))
}

func TestRunSupportedJSON(t *testing.T) {
	gopts, term := testGlobalOptions(t)
	gopts.JSON = true
	rtest.OK(t, runSupported(gopts, nil, term, true))

	rtest.Equals(t, 1, len(term.Output))
	var res struct {
		MessageType string `json:"message_type"`
		Supported   bool   `json:"supported"`
		GoOS        string `json:"go_os"`
	}
	rtest.OK(t, json.Unmarshal([]byte(term.Output[0]), &res))
	rtest.Equals(t, "supported", res.MessageType)
	rtest.Assert(t, res.Supported, "supported not set")
	rtest.Equals(t, runtime.GOOS, res.GoOS)
}

func TestRunVersion(t *testing.T) {
	gopts, term := testGlobalOptions(t)
	runVersion(gopts, term)
	rtest.Equals(t, 1, len(term.Output))
	rtest.Assert(t, strings.HasPrefix(term.Output[0], "exattr "+global.Version), "unexpected output %q", term.Output[0])

	gopts, term = testGlobalOptions(t)
	gopts.JSON = true
	runVersion(gopts, term)
	var res map[string]interface{}
	rtest.OK(t, json.Unmarshal([]byte(term.Output[0]), &res))
	rtest.Equals(t, "version", res["message_type"])
	rtest.Equals(t, global.Version, res["version"])
	rtest.Equals(t, exattr.Supported(), res["xattrs_supported"])
}
