package ui

import (
	"testing"
	"time"

	rtest "github.com/exattr/exattr/internal/test"
)

func TestMessageVerbosity(t *testing.T) {
	for _, c := range []struct {
		verbosity uint
		output    []string
	}{
		{0, nil},
		{1, []string{"p"}},
		{2, []string{"p", "v"}},
		{3, []string{"p", "v", "vv"}},
	} {
		term := &MockTerminal{}
		m := NewMessage(term, c.verbosity)
		m.E("e")
		m.P("p")
		m.V("v")
		m.VV("vv")

		rtest.Equals(t, []string{"e"}, term.Errors)
		rtest.Equals(t, c.output, term.Output)
	}
}

func TestProgressPrinterCounter(t *testing.T) {
	term := &MockTerminal{IsTerminal: true}
	p := NewProgressPrinter(false, 1, term)

	c := p.NewCounter("paths")
	rtest.Assert(t, c != nil, "expected counter on terminal")
	c.SetMax(2)
	c.Add(2)
	c.Done()
	rtest.Equals(t, 0, len(term.Status))

	for _, p := range []*ProgressPrinter{
		NewProgressPrinter(true, 1, &MockTerminal{IsTerminal: true}),
		NewProgressPrinter(false, 0, &MockTerminal{IsTerminal: true}),
		NewProgressPrinter(false, 1, &MockTerminal{}),
	} {
		rtest.Assert(t, p.NewCounter("paths") == nil, "unexpected counter")
	}
}

func TestFormatCounter(t *testing.T) {
	rtest.Equals(t, "[0:05] 3 paths", FormatCounter("paths", 3, 0, 5*time.Second))
	rtest.Equals(t, "[1:00:01] 50.00%  1 / 2 paths", FormatCounter("paths", 1, 2, time.Hour+time.Second))
}

func TestFormatPercent(t *testing.T) {
	rtest.Equals(t, "", FormatPercent(1, 0))
	rtest.Equals(t, "100.00%", FormatPercent(3, 2))
	rtest.Equals(t, "25.00%", FormatPercent(1, 4))
}
