// Package fs performs the raw extended attribute syscalls. It reports
// absence and platform error codes as they are and leaves their
// interpretation to the caller.
package fs

import (
	"github.com/exattr/exattr/internal/debug"
	"github.com/exattr/exattr/internal/errors"
)

// Xattrs bundles the raw extended attribute operations of one platform.
type Xattrs interface {
	// Get returns the value of the attribute name of path. present is false
	// if the attribute does not exist, which is not an error.
	Get(path, name string) (value []byte, present bool, err error)
	// Set creates or replaces the attribute name of path.
	Set(path, name string, value []byte) error
	// Remove deletes the attribute name of path. A missing attribute is
	// reported as an *XattrError wrapping ErrNoAttr.
	Remove(path, name string) error
	// List returns the names of all attributes of path visible to the
	// current process, in filesystem order.
	List(path string) ([]string, error)
	// Supported reports whether the platform implements extended
	// attributes. It does not touch the filesystem.
	Supported() bool
}

var (
	// ErrNoAttr is the platform independent form of ENOATTR/ENODATA.
	ErrNoAttr = errors.New("no such attribute")
	// ErrNotSupported is returned by every operation on platforms without
	// extended attribute support.
	ErrNotSupported = errors.New("extended attributes not supported on this platform")
)

// XattrError records a failed extended attribute syscall. Err is the raw
// syscall.Errno, ErrNoAttr or ErrNotSupported.
type XattrError struct {
	Op   string
	Path string
	Name string
	Err  error
}

func (e *XattrError) Error() string {
	if e.Name == "" {
		return e.Op + " " + e.Path + ": " + e.Err.Error()
	}
	return e.Op + " " + e.Path + " " + e.Name + ": " + e.Err.Error()
}

func (e *XattrError) Unwrap() error {
	return e.Err
}

// Local accesses the extended attributes of the local filesystem. By
// default all operations act on a symlink itself, never on its target.
type Local struct {
	// FollowSymlinks makes operations act on the target of a symlink.
	FollowSymlinks bool
}

var _ Xattrs = Local{}

// Supported reports whether this build can use extended attributes.
func (Local) Supported() bool {
	return xattrSupported
}

func newXattrError(op, path, name string, err error) error {
	debug.Log("%v(%v, %q) failed: %v", op, path, name, err)
	return errors.WithStack(&XattrError{Op: op, Path: path, Name: name, Err: err})
}
