package exattr

import (
	"fmt"
	"strings"

	"github.com/exattr/exattr/internal/errors"
)

// Kind is the portable classification of a failed attribute operation.
// Kind implements error, so errors.Is(err, NoSuchAttribute) reports
// whether err is an *Error of that kind.
type Kind int

const (
	// ValueTooLarge: the value exceeds a filesystem or platform limit.
	ValueTooLarge Kind = iota + 1
	// PermissionDenied: the caller lacks rights on the entry or namespace.
	PermissionDenied
	// InvalidArgument: malformed name, path or flag combination.
	InvalidArgument
	// IOError: generic device or transport failure.
	IOError
	// NoSuchAttribute: the named attribute does not exist on the entry.
	NoSuchAttribute
	// NoSuchEntry: the path does not exist.
	NoSuchEntry
	// OutOfMemory: allocation failure while marshalling the value.
	OutOfMemory
	// NoSpace: the device has no room to store the value.
	NoSpace
	// OperationNotPermitted: refused for a reason other than plain permission.
	OperationNotPermitted
	// ReadOnlyFilesystem: the filesystem is mounted read-only.
	ReadOnlyFilesystem
	// NotSupported: the filesystem or platform has no extended attributes.
	NotSupported
	// Other: a platform error without portable analog, see
	// (*Error).Description.
	Other
)

var kindNames = map[Kind][2]string{
	ValueTooLarge:         {"value_too_large", "value too large"},
	PermissionDenied:      {"permission_denied", "permission denied"},
	InvalidArgument:       {"invalid_argument", "invalid argument"},
	IOError:               {"io_error", "input/output error"},
	NoSuchAttribute:       {"no_such_attribute", "no such attribute"},
	NoSuchEntry:           {"no_such_entry", "no such file or directory"},
	OutOfMemory:           {"out_of_memory", "out of memory"},
	NoSpace:               {"no_space", "no space left on device"},
	OperationNotPermitted: {"operation_not_permitted", "operation not permitted"},
	ReadOnlyFilesystem:    {"read_only_filesystem", "read-only file system"},
	NotSupported:          {"not_supported", "operation not supported"},
	Other:                 {"other", "other error"},
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n[1]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) Error() string {
	return k.String()
}

// MarshalText returns the stable identifier of k, e.g. "no_such_attribute".
func (k Kind) MarshalText() ([]byte, error) {
	if n, ok := kindNames[k]; ok {
		return []byte(n[0]), nil
	}
	return nil, errors.Errorf("invalid kind %d", int(k))
}

// UnmarshalText parses an identifier produced by MarshalText.
func (k *Kind) UnmarshalText(text []byte) error {
	s := strings.ToLower(string(text))
	for kind, n := range kindNames {
		if n[0] == s {
			*k = kind
			return nil
		}
	}
	return errors.Errorf("unknown kind %q", text)
}

// Error is returned by all operations of this package.
type Error struct {
	Op   string // get, set, remove, list or dump
	Path string
	Name string // empty for list
	Kind Kind
	// Err is the underlying platform error, if any.
	Err error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("exattr.")
	b.WriteString(e.Op)
	b.WriteString(" ")
	b.WriteString(e.Path)
	if e.Name != "" {
		b.WriteString(" ")
		b.WriteString(e.Name)
	}
	b.WriteString(": ")
	b.WriteString(e.Description())
	return b.String()
}

// Description returns the text of the platform error for Other, and the
// kind otherwise.
func (e *Error) Description() string {
	if e.Kind == Other && e.Err != nil {
		return e.Err.Error()
	}
	if e.Err == ErrVanished {
		return e.Kind.String() + " (" + e.Err.Error() + ")"
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the Kind of e.
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

// KindOf returns the Kind of the first *Error in err's tree. It returns
// Other for errors produced elsewhere and zero for nil.
func KindOf(err error) Kind {
	if err == nil {
		return 0
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	var k Kind
	if errors.As(err, &k) {
		return k
	}
	return Other
}
