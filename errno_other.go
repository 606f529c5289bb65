//go:build !aix && !darwin && !dragonfly && !freebsd && !linux && !netbsd && !openbsd && !solaris

package exattr

import (
	iofs "io/fs"

	"github.com/exattr/exattr/internal/errors"
)

func errnoKind(err error) Kind {
	switch {
	case errors.Is(err, iofs.ErrNotExist):
		return NoSuchEntry
	case errors.Is(err, iofs.ErrPermission):
		return PermissionDenied
	case errors.Is(err, iofs.ErrInvalid):
		return InvalidArgument
	default:
		return Other
	}
}
