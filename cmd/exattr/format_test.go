package main

import (
	"strings"
	"testing"

	"github.com/spf13/pflag"

	"github.com/exattr/exattr/internal/errors"
	rtest "github.com/exattr/exattr/internal/test"
	"github.com/exattr/exattr/internal/ui"
)

func TestEncodingFlag(t *testing.T) {
	enc := encodingFlag(ui.EncodingAuto)
	f := pflag.NewFlagSet("test", pflag.ContinueOnError)
	f.Var(&enc, "encoding", "")

	rtest.OK(t, f.Parse([]string{"--encoding", "hex"}))
	rtest.Equals(t, encodingFlag(ui.EncodingHex), enc)
	rtest.Equals(t, "hex", enc.String())
	rtest.Equals(t, "encoding", enc.Type())

	err := enc.Set("base64")
	rtest.Assert(t, err != nil, "invalid encoding accepted")
	rtest.Equals(t, encodingFlag(ui.EncodingHex), enc)
}

func TestErrorUsage(t *testing.T) {
	err := errorUsage("get", "path expected")
	rtest.Assert(t, errors.IsFatal(err), "usage error must be fatal")
	rtest.Assert(t, strings.HasSuffix(err.Error(), "path expected, see `exattr help get` for usage"),
		"unexpected message %q", err.Error())
}
