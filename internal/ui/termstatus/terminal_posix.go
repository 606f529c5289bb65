package termstatus

import (
	"io"
	"strconv"
)

const (
	posixMoveCursorHome = "\r"
	posixClearLine      = "\x1b[2K"
)

// posixClearCurrentLine removes all characters from the current line and
// resets the cursor position to the first column.
func posixClearCurrentLine(wr io.Writer) error {
	_, err := wr.Write([]byte(posixMoveCursorHome + posixClearLine))
	return err
}

// posixMoveCursorUp moves the cursor to the line n lines above the current one.
func posixMoveCursorUp(wr io.Writer, n int) error {
	if n <= 0 {
		return nil
	}
	_, err := wr.Write([]byte(posixMoveCursorHome + "\x1b[" + strconv.Itoa(n) + "A"))
	return err
}
