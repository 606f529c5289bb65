//go:build linux || darwin || freebsd || netbsd || solaris

package fs

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/exattr/exattr/internal/errors"
	rtest "github.com/exattr/exattr/internal/test"
)

// xattrTempDir returns a temporary directory on a filesystem that accepts
// user attributes, or skips the test.
func xattrTempDir(t *testing.T) string {
	t.Helper()
	dir := rtest.TempDir(t)
	probe := rtest.CreateFile(t, dir, ".probe")
	err := Local{}.Set(probe, "user.probe", []byte("1"))
	if err != nil {
		if errors.Is(err, errors.ErrUnsupported) {
			rtest.SkipDisallowed(t, t.Name())
			t.Skipf("filesystem of %v has no user xattr support: %v", dir, err)
		}
		t.Fatal(err)
	}
	rtest.OK(t, os.Remove(probe))
	return dir
}

func TestLocalRoundTrip(t *testing.T) {
	dir := xattrTempDir(t)
	file := rtest.CreateFile(t, dir, "file")
	fs := Local{}

	for i, value := range [][]byte{
		[]byte("123"),
		{},
		{0, 1, 2, 0xff, 0},
		rtest.Random(23, 3000),
	} {
		name := fmt.Sprintf("user.value%d", i)
		rtest.OK(t, fs.Set(file, name, value))

		got, present, err := fs.Get(file, name)
		rtest.OK(t, err)
		rtest.Assert(t, present, "attribute %v not present after set", name)
		rtest.Assert(t, got != nil, "present attribute %v returned nil value", name)
		rtest.Assert(t, bytes.Equal(value, got), "value mismatch for %v: want %q, got %q", name, value, got)
	}
}

func TestLocalGetAbsent(t *testing.T) {
	dir := xattrTempDir(t)
	file := rtest.CreateFile(t, dir, "file")

	value, present, err := Local{}.Get(file, "user.missing")
	rtest.OK(t, err)
	rtest.Assert(t, !present, "missing attribute reported as present")
	rtest.Assert(t, value == nil, "missing attribute returned value %q", value)
}

func TestLocalRemove(t *testing.T) {
	dir := xattrTempDir(t)
	file := rtest.CreateFile(t, dir, "file")
	fs := Local{}

	rtest.OK(t, fs.Set(file, "user.foo", []byte("bar")))
	rtest.OK(t, fs.Remove(file, "user.foo"))

	err := fs.Remove(file, "user.foo")
	rtest.Assert(t, errors.Is(err, ErrNoAttr), "want ErrNoAttr, got %v", err)

	var xerr *XattrError
	rtest.Assert(t, errors.As(err, &xerr), "want *XattrError, got %T", err)
	rtest.Equals(t, "removexattr", xerr.Op)
	rtest.Equals(t, file, xerr.Path)
	rtest.Equals(t, "user.foo", xerr.Name)
}

func TestLocalListGrows(t *testing.T) {
	dir := xattrTempDir(t)
	file := rtest.CreateFile(t, dir, "file")
	fs := Local{}

	names, err := fs.List(file)
	rtest.OK(t, err)
	rtest.Assert(t, names != nil, "empty list must not be nil")
	rtest.Equals(t, 0, len(names))

	// more names than fit into a first guess buffer
	var want []string
	for i := 0; i < 40; i++ {
		name := fmt.Sprintf("user.attribute-with-a-long-name-%02d", i)
		rtest.OK(t, fs.Set(file, name, []byte{byte(i)}))
		want = append(want, name)
	}

	names, err = fs.List(file)
	rtest.OK(t, err)
	sort.Strings(names)
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("list mismatch (-want +got):\n%s", diff)
	}
}

// TestLocalConcurrentResize reads an attribute and the name list while
// another goroutine grows and removes them. Readers must observe either
// the complete value or its absence.
func TestLocalConcurrentResize(t *testing.T) {
	dir := xattrTempDir(t)
	file := rtest.CreateFile(t, dir, "file")
	fs := Local{}
	value := rtest.Random(42, 3000)

	done := make(chan struct{})
	errs := make(chan error, 1)
	go func() {
		defer close(errs)
		for {
			select {
			case <-done:
				return
			default:
			}
			if err := fs.Set(file, "user.resize", value); err != nil {
				errs <- err
				return
			}
			if err := fs.Remove(file, "user.resize"); err != nil {
				errs <- err
				return
			}
		}
	}()

	for i := 0; i < 500; i++ {
		got, present, err := fs.Get(file, "user.resize")
		rtest.OK(t, err)
		if present {
			rtest.Assert(t, bytes.Equal(value, got), "read partial value of %d bytes", len(got))
		}

		names, err := fs.List(file)
		rtest.OK(t, err)
		for _, name := range names {
			rtest.Assert(t, name == "user.resize" || !strings.HasPrefix(name, "user."), "unexpected name %q", name)
		}
	}

	close(done)
	rtest.OK(t, <-errs)
}

func TestLocalMissingPath(t *testing.T) {
	dir := rtest.TempDir(t)
	missing := filepath.Join(dir, "missing")
	fs := Local{}

	_, _, err := fs.Get(missing, "user.foo")
	rtest.Assert(t, errors.Is(err, os.ErrNotExist), "get: want ENOENT, got %v", err)

	_, err = fs.List(missing)
	rtest.Assert(t, errors.Is(err, os.ErrNotExist), "list: want ENOENT, got %v", err)

	err = fs.Set(missing, "user.foo", []byte("x"))
	rtest.Assert(t, errors.Is(err, os.ErrNotExist), "set: want ENOENT, got %v", err)
}

func TestLocalSymlinkNotFollowed(t *testing.T) {
	dir := xattrTempDir(t)
	target := rtest.CreateFile(t, dir, "target")
	link := filepath.Join(dir, "link")
	rtest.OK(t, os.Symlink(target, link))

	// Linux refuses user attributes on symlinks, other platforms store them
	// on the link. In neither case may the target change.
	err := Local{}.Set(link, "user.foo", []byte("link"))
	if err == nil {
		value, present, err := Local{}.Get(link, "user.foo")
		rtest.OK(t, err)
		rtest.Assert(t, present && string(value) == "link", "link attribute not stored: %q %v", value, present)
	} else {
		rtest.Assert(t, !errors.Is(err, ErrNoAttr), "unexpected error %v", err)
	}

	_, present, err := Local{}.Get(target, "user.foo")
	rtest.OK(t, err)
	rtest.Assert(t, !present, "setting an attribute on a symlink changed its target")

	// explicit following acts on the target
	rtest.OK(t, Local{FollowSymlinks: true}.Set(link, "user.bar", []byte("target")))
	value, present, err := Local{}.Get(target, "user.bar")
	rtest.OK(t, err)
	rtest.Assert(t, present && string(value) == "target", "following set did not reach target: %q %v", value, present)
}

func TestLocalSupported(t *testing.T) {
	rtest.Assert(t, Local{}.Supported(), "platform with xattr syscalls reports no support")
}
