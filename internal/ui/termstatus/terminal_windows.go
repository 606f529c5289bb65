//go:build windows

package termstatus

// CanUpdateStatus returns false, status lines are only supported on terminals
// which understand ANSI escape sequences.
func CanUpdateStatus(_ uintptr) bool {
	return false
}
