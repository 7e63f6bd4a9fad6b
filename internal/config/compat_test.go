package config

import (
	"os"
	"testing"
)

// chdir is a Go 1.21 stand-in for testing.T.Chdir (Go 1.24): it changes the
// working directory and restores the previous one when the test finishes.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
