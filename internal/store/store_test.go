package store

import (
	"os"
	"testing"
)

// Store tests run against the Firestore emulator and are skipped when it is
// not reachable.
func requireEmulator(t *testing.T) {
	t.Helper()
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}
}
