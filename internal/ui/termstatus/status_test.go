package termstatus

import (
	"bytes"
	"context"
	"strings"
	"testing"

	rtest "github.com/exattr/exattr/internal/test"
)

func TestSetStatusWithoutTerminal(t *testing.T) {
	var buf, errBuf bytes.Buffer
	term, cancel := Setup(&buf, &errBuf, false)

	rtest.Assert(t, !term.CanUpdateStatus(), "buffer must not be treated as terminal")
	rtest.Assert(t, !term.OutputIsTerminal(), "buffer must not be treated as terminal")

	term.Print("user.foo")
	term.SetStatus([]string{"status is dropped"})
	term.Error("warning")
	term.Print("user.bar\n")
	cancel()

	rtest.Equals(t, "user.foo\nuser.bar\n", buf.String())
	rtest.Equals(t, "warning\n", errBuf.String())
}

func TestOutputWriter(t *testing.T) {
	var buf bytes.Buffer
	term, cancel := Setup(&buf, &buf, false)

	w := term.OutputWriter()
	_, err := w.Write([]byte("NAME  SIZE\nuser.foo  3"))
	rtest.OK(t, err)
	cancel()

	rtest.Equals(t, "NAME  SIZE\nuser.foo  3\n", buf.String())
}

func TestWriteStatus(t *testing.T) {
	var buf bytes.Buffer
	term := New(&buf, &buf, false)

	term.writeStatus([]string{"first\n", "second"})
	rtest.Equals(t, 2, term.lastStatusLen)
	out := buf.String()
	rtest.Assert(t, strings.Contains(out, "first\n"), "missing first line in %q", out)
	rtest.Assert(t, strings.HasSuffix(out, posixMoveCursorHome+"\x1b[1A"), "cursor not moved up: %q", out)

	buf.Reset()
	term.writeStatus(nil)
	rtest.Equals(t, 0, term.lastStatusLen)
	// both old lines are cleared
	rtest.Equals(t, 2, strings.Count(buf.String(), posixClearLine))
}

func TestSanitizeLines(t *testing.T) {
	var tests = []struct {
		input  []string
		width  int
		output []string
	}{
		{[]string{""}, 80, []string{""}},
		{[]string{"too long test line"}, 10, []string{"too long"}},
		{[]string{"too long test line", "text"}, 10, []string{"too long\n", "text"}},
		{[]string{"too long test line", "second long test line"}, 10, []string{"too long\n", "second l"}},
		{[]string{"user.\x00"}, 0, []string{`"user.\x00"`}},
	}

	for _, test := range tests {
		t.Run("", func(t *testing.T) {
			out := sanitizeLines(test.input, test.width)
			rtest.Equals(t, test.output, out)
		})
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	var buf bytes.Buffer
	term := New(&buf, &buf, true)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		term.Run(ctx)
		close(done)
	}()
	cancel()
	<-done

	// must not block once the terminal is closed
	term.Print("ignored")
	term.SetStatus([]string{"ignored"})
	term.Flush()
	rtest.Equals(t, "", buf.String())
}
