//go:build linux || darwin || freebsd || netbsd || solaris

package exattr

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/exattr/exattr/internal/errors"
	rtest "github.com/exattr/exattr/internal/test"
)

// newTestFile creates an empty file on a filesystem with user attribute
// support, or skips the test.
func newTestFile(t *testing.T) string {
	t.Helper()
	file := rtest.CreateFile(t, rtest.TempDir(t), "f")

	err := Set(file, "user.probe", Some([]byte("1")))
	if errors.Is(err, NotSupported) {
		rtest.SkipDisallowed(t, t.Name())
		t.Skipf("no user xattr support for %v: %v", file, err)
	}
	rtest.OK(t, err)
	rtest.OK(t, Remove(file, "user.probe"))
	return file
}

func TestLocalScenario(t *testing.T) {
	rtest.Assert(t, Supported(), "platform with xattrs reports no support")
	f := newTestFile(t)

	v, err := Get(f, "user.foo")
	rtest.OK(t, err)
	rtest.Equals(t, None(), v)

	rtest.OK(t, Set(f, "user.foo", Some([]byte("123"))))

	v, err = Get(f, "user.foo")
	rtest.OK(t, err)
	rtest.Equals(t, Some([]byte("123")), v)

	rtest.OK(t, Set(f, "user.foo", None()))

	v, err = Get(f, "user.foo")
	rtest.OK(t, err)
	rtest.Equals(t, None(), v)

	err = Remove(f, "user.foo")
	rtest.Assert(t, errors.Is(err, NoSuchAttribute), "want NoSuchAttribute, got %v", err)
}

func TestLocalRoundTrip(t *testing.T) {
	f := newTestFile(t)

	values := [][]byte{{}, []byte("x"), {0, 0, 0}}
	for i := 0; i < 8; i++ {
		values = append(values, rtest.Random(i, 1<<i*7))
	}

	for i, want := range values {
		name := fmt.Sprintf("user.roundtrip.%d", i)
		rtest.OK(t, Set(f, name, Some(want)))

		v, err := Get(f, name)
		rtest.OK(t, err)
		got, ok := v.Bytes()
		rtest.Assert(t, ok, "%v absent after set", name)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("%v mismatch (-want +got):\n%s", name, diff)
		}
	}
}

func TestLocalAbsentOnFreshFile(t *testing.T) {
	f := newTestFile(t)

	for _, name := range []string{"user.foo", "user.bar.baz", "trusted.x", "security.y"} {
		v, err := Get(f, name)
		if errors.Is(err, PermissionDenied) || errors.Is(err, OperationNotPermitted) || errors.Is(err, NotSupported) {
			// privileged namespaces may be refused outright
			continue
		}
		rtest.OK(t, err)
		rtest.Assert(t, !v.Present(), "fresh file has %v = %v", name, v)
	}
}

func TestLocalIdempotentClearAndStrictRemove(t *testing.T) {
	f := newTestFile(t)

	rtest.OK(t, Set(f, "user.never", None()))

	err := Remove(f, "user.never")
	rtest.Equals(t, NoSuchAttribute, KindOf(err))
}

func TestLocalListAndDump(t *testing.T) {
	f := newTestFile(t)

	rtest.OK(t, Set(f, "user.a", Some([]byte("1"))))
	rtest.OK(t, Set(f, "user.b", Some([]byte("2"))))

	names, err := List(f)
	rtest.OK(t, err)
	sort.Strings(names)
	rtest.Equals(t, []string{"user.a", "user.b"}, names)

	dump, err := Dump(f)
	rtest.OK(t, err)

	want := make(map[string][]byte)
	for _, name := range names {
		v, err := Get(f, name)
		rtest.OK(t, err)
		value, _ := v.Bytes()
		want[name] = value
	}
	if diff := cmp.Diff(want, dump); diff != "" {
		t.Errorf("dump mismatch (-want +got):\n%s", diff)
	}
}

func TestLocalMissingEntry(t *testing.T) {
	missing := filepath.Join(rtest.TempDir(t), "missing")

	_, err := Get(missing, "user.foo")
	rtest.Equals(t, NoSuchEntry, KindOf(err))
	_, err = List(missing)
	rtest.Equals(t, NoSuchEntry, KindOf(err))
	err = Set(missing, "user.foo", Some(nil))
	rtest.Equals(t, NoSuchEntry, KindOf(err))
	err = Remove(missing, "user.foo")
	rtest.Equals(t, NoSuchEntry, KindOf(err))
}

func TestLocalSymlinkIsNotDereferenced(t *testing.T) {
	target := newTestFile(t)
	link := filepath.Join(filepath.Dir(target), "link")
	rtest.OK(t, os.Symlink(target, link))

	rtest.OK(t, Set(target, "user.owner", Some([]byte("target"))))

	// the link has no attributes of its own
	v, err := Get(link, "user.owner")
	if err == nil {
		rtest.Assert(t, !v.Present(), "get on link returned the target's value")
	}

	// linux refuses user attributes on symlinks, others store them on the link
	err = Set(link, "user.owner", Some([]byte("link")))
	if err != nil {
		rtest.Assert(t, errors.Is(err, OperationNotPermitted) || errors.Is(err, PermissionDenied) || errors.Is(err, NotSupported),
			"unexpected error for set on symlink: %v", err)
	}

	v, err = Get(target, "user.owner")
	rtest.OK(t, err)
	rtest.Equals(t, Some([]byte("target")), v)

	err = Set(link, "user.owner", None())
	if err != nil {
		rtest.Assert(t, !errors.Is(err, NoSuchAttribute), "set none must not report a missing attribute: %v", err)
	}
	v, err = Get(target, "user.owner")
	rtest.OK(t, err)
	rtest.Assert(t, v.Present(), "clearing on the link removed the target's attribute")

	// explicit following reaches the target
	follow := New(Options{FollowSymlinks: true})
	v, err = follow.Get(link, "user.owner")
	rtest.OK(t, err)
	rtest.Equals(t, Some([]byte("target")), v)
}
