package diagnostics

import (
	"log"
	"os"
)

// Logger is the minimal sink diagnostics are mirrored to for host console
// visibility, independent of the structured Summary attached to each
// Frame. Mirrors the plain stdlib *log.Logger the rest of this module's
// ancestry uses for its own frame-rate and memory reporting.
var Logger = log.New(os.Stderr, "vizij: ", log.LstdFlags)

// SetOutputDisabled silences Logger entirely; tests use this to keep
// diagnostic noise out of test output while still exercising the code
// paths that would otherwise log.
func SetOutputDisabled() {
	Logger.SetOutput(discard{})
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
