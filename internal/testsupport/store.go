package testsupport

import (
	"testing"

	"writingsystems/internal/config"
	"writingsystems/internal/romanstore"
)

// MustOpenStore opens a romanstore.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *romanstore.Store {
	t.Helper()

	store, err := romanstore.Open(cfg)
	if err != nil {
		t.Fatalf("romanstore.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}
