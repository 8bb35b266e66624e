package romanstore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"writingsystems/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	base := t.TempDir()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.CacheDir = filepath.Join(base, "cache")
	return &cfg
}

func TestOpenRejectsSchemaMismatch(t *testing.T) {
	cfg := testConfig(t)

	store, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if _, err := store.db.ExecContext(context.Background(), "UPDATE schema_version SET version = ?", schemaVersion+1); err != nil {
		t.Fatalf("bump version: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if _, err := Open(cfg); !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}

type codedError int

func (c codedError) Error() string { return "sqlite error" }
func (c codedError) Code() int     { return int(c) }

func TestIsSQLiteBusy(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "busy code", err: codedError(5), want: true},
		{name: "extended busy code", err: codedError(5 | 2<<8), want: true},
		{name: "other code", err: codedError(19), want: false},
		{name: "message", err: errors.New("database is locked (5) (SQLITE_BUSY)"), want: true},
		{name: "plain", err: errors.New("disk I/O error"), want: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := isSQLiteBusy(tc.err); got != tc.want {
				t.Fatalf("isSQLiteBusy(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}

func TestRetryOnBusyStopsOnOtherErrors(t *testing.T) {
	calls := 0
	err := retryOnBusy(context.Background(), func() error {
		calls++
		if calls < 3 {
			return codedError(5)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("expected success after busy retries, got %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls)
	}

	calls = 0
	constraint := codedError(19)
	err = retryOnBusy(context.Background(), func() error {
		calls++
		return constraint
	})
	if !errors.Is(err, constraint) || calls != 1 {
		t.Fatalf("expected single attempt returning constraint error, got %v after %d calls", err, calls)
	}
}
