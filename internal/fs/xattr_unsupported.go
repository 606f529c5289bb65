//go:build !linux && !darwin && !freebsd && !netbsd && !solaris

package fs

const xattrSupported = false

// Get is not supported on this platform.
func (Local) Get(path, name string) ([]byte, bool, error) {
	return nil, false, newXattrError("getxattr", path, name, ErrNotSupported)
}

// Set is not supported on this platform.
func (Local) Set(path, name string, _ []byte) error {
	return newXattrError("setxattr", path, name, ErrNotSupported)
}

// Remove is not supported on this platform.
func (Local) Remove(path, name string) error {
	return newXattrError("removexattr", path, name, ErrNotSupported)
}

// List is not supported on this platform.
func (Local) List(path string) ([]string, error) {
	return nil, newXattrError("listxattr", path, "", ErrNotSupported)
}
