package termstatus

import "golang.org/x/term"

// OutputIsTerminal returns whether fd is connected to a terminal.
func OutputIsTerminal(fd uintptr) bool {
	return term.IsTerminal(int(fd))
}

// Width returns the number of columns of the terminal fd, or 0 if unknown.
func Width(fd uintptr) int {
	w, _, err := term.GetSize(int(fd))
	if err != nil {
		return 0
	}
	return w
}
