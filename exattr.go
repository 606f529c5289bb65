// Package exattr reads, writes, removes and lists extended file attributes
// with one error taxonomy on all platforms.
//
// Every failure is an *Error carrying a Kind, so callers can match on
// errors.Is(err, exattr.NoSuchAttribute) instead of parsing messages. An
// attribute that does not exist is not a failure for Get: it returns
// None(), which is distinct from a present empty value.
//
// Operations act on a symlink itself unless Options.FollowSymlinks is set.
// There is no caching and no internal concurrency; each call is one
// blocking filesystem operation.
package exattr

import (
	"github.com/exattr/exattr/internal/debug"
	"github.com/exattr/exattr/internal/errors"
	"github.com/exattr/exattr/internal/fs"
)

var (
	// ErrVanished is wrapped by Dump when a listed attribute is absent by
	// the time it is read, usually because of a concurrent removal.
	ErrVanished = errors.New("listed attribute vanished before it could be read")
	// ErrEmptyName is wrapped by operations called with an empty name.
	ErrEmptyName = errors.New("attribute name is empty")
)

// Options configure an Attrs.
type Options struct {
	// FollowSymlinks makes operations act on the target of a symlink
	// instead of the link itself.
	FollowSymlinks bool
}

// Attrs accesses extended attributes. It holds no state besides its
// options and is safe for concurrent use.
type Attrs struct {
	sys fs.Xattrs
}

// New returns an Attrs for the local filesystem.
func New(opts Options) *Attrs {
	return &Attrs{sys: fs.Local{FollowSymlinks: opts.FollowSymlinks}}
}

var std = New(Options{})

// Supported reports whether the platform implements extended attributes.
// When it returns false every other operation fails with NotSupported.
func Supported() bool { return std.Supported() }

// Get returns the value of the attribute name of path, or None() if there
// is no such attribute. Symlinks are not followed.
func Get(path, name string) (Value, error) { return std.Get(path, name) }

// Set stores v as the attribute name of path. Setting None() removes the
// attribute and succeeds if it was already absent. Symlinks are not
// followed.
func Set(path, name string, v Value) error { return std.Set(path, name, v) }

// Remove deletes the attribute name of path. Removing an attribute that
// does not exist fails with NoSuchAttribute. Symlinks are not followed.
func Remove(path, name string) error { return std.Remove(path, name) }

// List returns the attribute names of path visible to the process. The
// order is defined by the filesystem. Symlinks are not followed.
func List(path string) ([]string, error) { return std.List(path) }

// Dump returns all attributes of path. Symlinks are not followed.
func Dump(path string) (map[string][]byte, error) { return std.Dump(path) }

// Supported reports whether the platform implements extended attributes.
func (a *Attrs) Supported() bool {
	return a.sys.Supported()
}

// Get returns the value of the attribute name of path, or None() if there
// is no such attribute.
func (a *Attrs) Get(path, name string) (Value, error) {
	return a.get("get", path, name)
}

// Set stores v as the attribute name of path. A None() value removes the
// attribute; if it does not exist the call succeeds.
func (a *Attrs) Set(path, name string, v Value) error {
	value, ok := v.Bytes()
	if !ok {
		err := a.remove("set", path, name)
		if errors.Is(err, NoSuchAttribute) {
			debug.Log("set(%v, %q, None): already absent", path, name)
			return nil
		}
		return err
	}

	if err := a.precheck("set", path, name); err != nil {
		return err
	}
	if err := a.sys.Set(path, name, value); err != nil {
		return newError("set", path, name, err)
	}
	return nil
}

// Remove deletes the attribute name of path. It fails with NoSuchAttribute
// if there is nothing to remove.
func (a *Attrs) Remove(path, name string) error {
	return a.remove("remove", path, name)
}

// List returns the attribute names of path in filesystem order. The
// result is never nil on success.
func (a *Attrs) List(path string) ([]string, error) {
	return a.list("list", path)
}

// Dump reads every attribute returned by List. A name that List returned
// but Get then reports absent fails the whole call with NoSuchAttribute
// wrapping ErrVanished; such an entry is never dropped silently.
func (a *Attrs) Dump(path string) (map[string][]byte, error) {
	names, err := a.list("dump", path)
	if err != nil {
		return nil, err
	}

	attrs := make(map[string][]byte, len(names))
	for _, name := range names {
		v, err := a.get("dump", path, name)
		if err != nil {
			return nil, err
		}

		value, ok := v.Bytes()
		if !ok {
			debug.Log("dump(%v): %q listed but absent", path, name)
			return nil, &Error{Op: "dump", Path: path, Name: name, Kind: NoSuchAttribute, Err: ErrVanished}
		}
		attrs[name] = value
	}
	return attrs, nil
}

func (a *Attrs) get(op, path, name string) (Value, error) {
	if err := a.precheck(op, path, name); err != nil {
		return None(), err
	}

	value, present, err := a.sys.Get(path, name)
	if err != nil {
		return None(), newError(op, path, name, err)
	}
	if !present {
		return None(), nil
	}
	return Some(value), nil
}

func (a *Attrs) remove(op, path, name string) error {
	if err := a.precheck(op, path, name); err != nil {
		return err
	}
	if err := a.sys.Remove(path, name); err != nil {
		return newError(op, path, name, err)
	}
	return nil
}

func (a *Attrs) list(op, path string) ([]string, error) {
	if !a.sys.Supported() {
		return nil, &Error{Op: op, Path: path, Kind: NotSupported, Err: fs.ErrNotSupported}
	}

	names, err := a.sys.List(path)
	if err != nil {
		return nil, newError(op, path, "", err)
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

// precheck rejects calls that must not reach the platform layer.
func (a *Attrs) precheck(op, path, name string) error {
	if !a.sys.Supported() {
		return &Error{Op: op, Path: path, Name: name, Kind: NotSupported, Err: fs.ErrNotSupported}
	}
	if name == "" {
		return &Error{Op: op, Path: path, Kind: InvalidArgument, Err: ErrEmptyName}
	}
	return nil
}

// newError converts an error of the platform layer into an *Error.
func newError(op, path, name string, err error) *Error {
	raw := err
	var xerr *fs.XattrError
	if errors.As(err, &xerr) {
		raw = xerr.Err
	}

	kind := kindOf(raw)
	debug.Log("%v(%v, %q): %v mapped to %v", op, path, name, raw, kind)
	return &Error{Op: op, Path: path, Name: name, Kind: kind, Err: raw}
}

func kindOf(raw error) Kind {
	switch {
	case errors.Is(raw, fs.ErrNoAttr):
		return NoSuchAttribute
	case errors.Is(raw, fs.ErrNotSupported), errors.Is(raw, errors.ErrUnsupported):
		return NotSupported
	default:
		return errnoKind(raw)
	}
}
