package handlers

import (
	"context"
	"testing"
)

// testContext is a Go 1.21 stand-in for testing.T.Context (Go 1.24): the
// returned context is cancelled when the test finishes.
func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}
