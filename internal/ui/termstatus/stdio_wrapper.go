package termstatus

import (
	"bytes"
	"io"
)

// WrapStdio returns line-buffering writers which pass complete lines to
// term.Print and term.Error. On Close, the remaining bytes are written,
// followed by a line break.
func WrapStdio(term interface {
	Print(string)
	Error(string)
}) (stdout, stderr io.WriteCloser) {
	return newLineWriter(term.Print), newLineWriter(term.Error)
}

type lineWriter struct {
	buf   bytes.Buffer
	print func(string)
}

var _ io.WriteCloser = &lineWriter{}

func newLineWriter(print func(string)) *lineWriter {
	return &lineWriter{print: print}
}

func (w *lineWriter) Write(data []byte) (n int, err error) {
	n, err = w.buf.Write(data)
	if err != nil {
		return n, err
	}

	// pass on everything up to the last line break
	if i := bytes.LastIndexByte(w.buf.Bytes(), '\n'); i != -1 {
		w.print(string(w.buf.Next(i + 1)))
	}

	return n, nil
}

func (w *lineWriter) Close() error {
	if w.buf.Len() > 0 {
		w.print(w.buf.String() + "\n")
		w.buf.Reset()
	}
	return nil
}
