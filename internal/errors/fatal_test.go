package errors_test

import (
	"syscall"
	"testing"

	"github.com/exattr/exattr/internal/errors"
)

func TestFatal(t *testing.T) {
	for _, v := range []struct {
		err      error
		expected bool
	}{
		{errors.Fatal("broken"), true},
		{errors.Fatalf("broken %d", 42), true},
		{errors.New("error"), false},
		{errors.Wrap(errors.Fatal("nested"), "outer"), true},
	} {
		if errors.IsFatal(v.err) != v.expected {
			t.Fatalf("IsFatal for %q, expected: %v, got: %v", v.err, v.expected, errors.IsFatal(v.err))
		}
	}
}

func TestFatalErrorWrapping(t *testing.T) {
	underlying := syscall.ENOENT
	fatal := errors.Fatalf("cannot read %v: %v", "snapshot.json", underlying)

	if fatal.Error() != "Fatal: cannot read snapshot.json: no such file or directory" {
		t.Errorf("unexpected error message: %v", fatal.Error())
	}

	if !errors.Is(fatal, underlying) {
		t.Error("fatal error should wrap the underlying error")
	}
}
