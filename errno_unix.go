//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

package exattr

import (
	"golang.org/x/sys/unix"

	"github.com/exattr/exattr/internal/errors"
)

// ENOTSUP, EOPNOTSUPP and ENOSYS are matched through errors.ErrUnsupported
// in kindOf, they share a value on some platforms.
var errnoKinds = map[unix.Errno]Kind{
	unix.E2BIG:        ValueTooLarge,
	unix.ERANGE:       ValueTooLarge,
	unix.EACCES:       PermissionDenied,
	unix.EINVAL:       InvalidArgument,
	unix.ENAMETOOLONG: InvalidArgument,
	unix.ELOOP:        InvalidArgument,
	unix.EFAULT:       InvalidArgument,
	unix.EBADF:        InvalidArgument,
	unix.EIO:          IOError,
	unix.ENOENT:       NoSuchEntry,
	unix.ENOTDIR:      NoSuchEntry,
	unix.ENOMEM:       OutOfMemory,
	unix.ENOSPC:       NoSpace,
	unix.EDQUOT:       NoSpace,
	unix.EPERM:        OperationNotPermitted,
	unix.EROFS:        ReadOnlyFilesystem,
}

func errnoKind(err error) Kind {
	var errno unix.Errno
	if !errors.As(err, &errno) {
		return Other
	}
	if k, ok := errnoKinds[errno]; ok {
		return k
	}
	return Other
}
