package main

import (
	"github.com/exattr/exattr/internal/errors"
	"github.com/exattr/exattr/internal/ui"
)

// encodingFlag is a pflag.Value selecting how attribute values are shown.
type encodingFlag ui.Encoding

func (e *encodingFlag) String() string {
	return string(*e)
}

func (e *encodingFlag) Set(s string) error {
	switch enc := ui.Encoding(s); enc {
	case ui.EncodingText, ui.EncodingHex, ui.EncodingAuto:
		*e = encodingFlag(enc)
		return nil
	default:
		return errors.Errorf("invalid encoding %q, must be one of (text|hex|auto)", s)
	}
}

func (e *encodingFlag) Type() string {
	return "encoding"
}

func errorUsage(cmd, msg string) error {
	return errors.Fatalf("%s, see `exattr help %s` for usage", msg, cmd)
}
