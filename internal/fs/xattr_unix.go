//go:build linux || darwin || freebsd || netbsd || solaris

package fs

import (
	"github.com/exattr/exattr/internal/errors"

	"github.com/pkg/xattr"
)

const xattrSupported = xattr.XATTR_SUPPORTED

// rawErr strips the *xattr.Error added by pkg/xattr so that callers see the
// bare errno.
func rawErr(err error) error {
	var xerr *xattr.Error
	if errors.As(err, &xerr) {
		return xerr.Err
	}
	return err
}

// Get retrieves extended attribute data associated with path. The L variants
// of pkg/xattr use lgetxattr on linux, XATTR_NOFOLLOW on darwin and
// extattr_get_link on the BSDs. A value which changes size during the call
// is read again.
func (l Local) Get(path, name string) ([]byte, bool, error) {
	get := xattr.LGet
	if l.FollowSymlinks {
		get = xattr.Get
	}

	value, err := get(path, name)
	if err != nil {
		err = rawErr(err)
		// ENOATTR is ENODATA on linux
		if err == xattr.ENOATTR {
			return nil, false, nil
		}
		return nil, false, newXattrError("getxattr", path, name, err)
	}
	if value == nil {
		value = []byte{}
	}
	return value, true, nil
}

// Set associates name and value together as an attribute of path.
func (l Local) Set(path, name string, value []byte) error {
	set := xattr.LSet
	if l.FollowSymlinks {
		set = xattr.Set
	}

	if err := set(path, name, value); err != nil {
		return newXattrError("setxattr", path, name, rawErr(err))
	}
	return nil
}

// Remove removes the attribute name from path.
func (l Local) Remove(path, name string) error {
	remove := xattr.LRemove
	if l.FollowSymlinks {
		remove = xattr.Remove
	}

	err := rawErr(remove(path, name))
	switch {
	case err == nil:
		return nil
	case err == xattr.ENOATTR:
		return newXattrError("removexattr", path, name, ErrNoAttr)
	default:
		return newXattrError("removexattr", path, name, err)
	}
}

// List retrieves the names of the extended attributes of path.
func (l Local) List(path string) ([]string, error) {
	list := xattr.LList
	if l.FollowSymlinks {
		list = xattr.List
	}

	names, err := list(path)
	if err != nil {
		return nil, newXattrError("listxattr", path, "", rawErr(err))
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}
