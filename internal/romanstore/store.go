package romanstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"writingsystems/internal/config"
)

const busyTimeout = 5 * time.Second

// Store persists romanizations in a SQLite database under the data directory.
// It is safe for concurrent use.
type Store struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// Open opens, creating when missing, the database at cfg.StorePath and checks
// its schema version.
func Open(cfg *config.Config) (*Store, error) {
	if cfg == nil {
		return nil, errors.New("romanstore: config is nil")
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("romanstore: %w", err)
	}

	path := cfg.StorePath()
	db, err := sql.Open("sqlite", dataSourceName(path))
	if err != nil {
		return nil, fmt.Errorf("romanstore: open %s: %w", path, err)
	}
	db.SetMaxIdleConns(2)
	db.SetConnMaxIdleTime(time.Minute)

	s := &Store{db: db, path: path, now: time.Now}
	if err := s.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// dataSourceName carries the pragmas the driver applies to each new
// connection.
func dataSourceName(path string) string {
	params := url.Values{}
	params.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", busyTimeout.Milliseconds()))
	params.Add("_pragma", "journal_mode(WAL)")
	params.Add("_pragma", "foreign_keys(ON)")
	return "file:" + path + "?" + params.Encode()
}

// Path returns the database file location.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Close releases the connection pool.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func ensureContext(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}

// busyBackoff is the wait schedule between attempts of a write that found the
// database locked; busy_timeout already covers short waits inside SQLite.
var busyBackoff = []time.Duration{
	10 * time.Millisecond,
	20 * time.Millisecond,
	40 * time.Millisecond,
	80 * time.Millisecond,
}

// retryOnBusy runs op until it succeeds, fails with anything but SQLITE_BUSY,
// or the backoff schedule runs out.
func retryOnBusy(ctx context.Context, op func() error) error {
	err := op()
	for _, wait := range busyBackoff {
		if !isSQLiteBusy(err) {
			return err
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		err = op()
	}
	return err
}

// SQLite primary result code; extended codes carry it in the low byte.
const sqliteBusy = 5

type sqliteCoder interface {
	error
	Code() int
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	if coder, ok := errors.AsType[sqliteCoder](err); ok {
		return coder.Code()&0xff == sqliteBusy
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}
