// Package testkit holds assertions shared by the package tests
package testkit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// MustPanic fails t unless fn panics
func MustPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic")
		}
	}()
	fn()
}

// MustContain fails t unless out contains want
// long output goes to a temp file so the failure line stays readable
func MustContain(t *testing.T, out, want string) {
	t.Helper()
	if strings.Contains(out, want) {
		return
	}
	if len(out) < 512 {
		t.Fatalf("missing %q in %q", want, out)
	}
	f := filepath.Join(t.TempDir(), "output.txt")
	_ = os.WriteFile(f, []byte(out), 0o600)
	t.Fatalf("missing %q, output in %s", want, f)
}

// Swap points *target at v until the test ends
func Swap[T any](t *testing.T, target *T, v T) {
	t.Helper()
	orig := *target
	*target = v
	t.Cleanup(func() { *target = orig })
}
