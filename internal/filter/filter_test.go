package filter_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/exattr/exattr/internal/errors"
	"github.com/exattr/exattr/internal/filter"
	rtest "github.com/exattr/exattr/internal/test"
)

var matchTests = []struct {
	pattern string
	name    string
	match   bool
}{
	{"", "user.foo", true},
	{"user.*", "user.foo", true},
	{"user.*", "user.foo.bar", true},
	{"user.*", "trusted.foo", false},
	{"user.foo", "user.foo", true},
	{"user.foo", "user.foobar", false},
	{"user.fo?", "user.foo", true},
	{"*.selinux", "security.selinux", true},
	{"security.[sa]*", "security.apparmor", true},
	{"security.[sa]*", "security.ima", false},
	{"foo", "user.foo", false},
}

func TestMatch(t *testing.T) {
	for _, test := range matchTests {
		match, err := filter.Match(test.pattern, test.name)
		rtest.OK(t, err)
		rtest.Assert(t, match == test.match, "Match(%q, %q): want %v, got %v", test.pattern, test.name, test.match, match)
	}
}

func TestMatchErrors(t *testing.T) {
	_, err := filter.Match("user.*", "")
	rtest.Assert(t, err == filter.ErrBadName, "want ErrBadName, got %v", err)

	_, err = filter.Match("user.[", "user.foo")
	rtest.Assert(t, err != nil, "malformed pattern accepted")
}

func TestList(t *testing.T) {
	patterns := []string{"", "trusted.*", "user.keep"}

	for name, want := range map[string]bool{
		"trusted.overlay.opaque": true,
		"user.keep":              true,
		"user.drop":              false,
	} {
		got, err := filter.List(patterns, name)
		rtest.OK(t, err)
		rtest.Assert(t, got == want, "List(%v): want %v, got %v", name, want, got)
	}

	got, err := filter.List(nil, "user.foo")
	rtest.OK(t, err)
	rtest.Assert(t, !got, "empty pattern list matched")
}

func TestValidatePatterns(t *testing.T) {
	err := filter.ValidatePatterns([]string{"user.*", "user.[", "["})
	var ip *filter.InvalidPatternError
	rtest.Assert(t, errors.As(err, &ip), "wrong error type %v", err)
	rtest.Equals(t, []string{"user.[", "["}, ip.InvalidPatterns)

	patterns := make([]string, 0, len(matchTests))
	for _, test := range matchTests {
		patterns = append(patterns, test.pattern)
	}
	rtest.OK(t, filter.ValidatePatterns(patterns))
}

func TestCollect(t *testing.T) {
	noopWarnf := func(_ string, _ ...interface{}) {}

	var tests = []struct {
		opts filter.PatternOptions
		want map[string]bool
	}{
		{
			filter.PatternOptions{},
			map[string]bool{"user.a": true, "trusted.b": true},
		},
		{
			filter.PatternOptions{Includes: []string{"user.*"}},
			map[string]bool{"user.a": true, "trusted.b": false},
		},
		{
			filter.PatternOptions{Includes: []string{"user.*"}, Excludes: []string{"user.tmp.*"}},
			map[string]bool{"user.a": true, "user.tmp.x": false, "trusted.b": false},
		},
		{
			filter.PatternOptions{Excludes: []string{"security.*"}},
			map[string]bool{"user.a": true, "security.selinux": false},
		},
		{
			filter.PatternOptions{Includes: []string{"USER.*"}, IgnoreCase: true},
			map[string]bool{"user.a": true, "User.B": true, "trusted.c": false},
		},
	}

	for _, test := range tests {
		sel, err := test.opts.Collect(noopWarnf)
		rtest.OK(t, err)
		for name, want := range test.want {
			rtest.Assert(t, sel(name) == want, "%+v: select(%q) want %v", test.opts, name, want)
		}
	}
}

func TestCollectInvalid(t *testing.T) {
	_, err := filter.PatternOptions{Excludes: []string{"user.["}}.Collect(nil)
	rtest.Assert(t, errors.IsFatal(err), "want fatal error, got %v", err)
}

func TestCollectPatternFiles(t *testing.T) {
	dir := t.TempDir()
	includeFile := filepath.Join(dir, "include")
	rtest.OK(t, os.WriteFile(includeFile, []byte("# comment\n$NS.*\n\nuser.$$literal\n"), 0o600))
	t.Setenv("NS", "trusted")

	opts := filter.PatternOptions{IncludeFiles: []string{includeFile}}
	sel, err := opts.Collect(func(_ string, _ ...interface{}) {})
	rtest.OK(t, err)

	rtest.Assert(t, sel("trusted.x"), "pattern with expanded variable not applied")
	rtest.Assert(t, sel("user.$literal"), "literal dollar pattern not applied")
	rtest.Assert(t, !sel("user.other"), "unlisted attribute selected")

	opts = filter.PatternOptions{IncludeFiles: []string{filepath.Join(dir, "missing")}}
	_, err = opts.Collect(nil)
	rtest.Assert(t, err != nil, "missing pattern file accepted")
}
