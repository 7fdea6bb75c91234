package search

import (
	"testing"

	"go.uber.org/goleak"
)

// Searches run on many goroutines in the server; none may outlive a call.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
