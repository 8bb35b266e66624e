package registrycache

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/gofrs/flock"

	"writingsystems/internal/config"
	"writingsystems/internal/logging"
	"writingsystems/internal/registry"
)

// ErrUnavailable reports that no registry copy could be fetched or read.
var ErrUnavailable = errors.New("language subtag registry unavailable")

const (
	userAgent      = "romanize (language-subtag-registry fetch)"
	lockRetryDelay = 100 * time.Millisecond
)

// Info describes where the registry comes from and how old the cached copy is.
type Info struct {
	Path    string
	URL     string
	Local   bool
	Exists  bool
	ModTime time.Time
	Age     time.Duration
	MaxAge  time.Duration
	Stale   bool
}

// Option customises a Source.
type Option func(*Source)

// WithClock replaces time.Now for staleness checks.
func WithClock(now func() time.Time) Option {
	return func(s *Source) {
		s.now = now
	}
}

// WithRetryWait sets the initial and maximum wait between fetch retries.
func WithRetryWait(wait, maxWait time.Duration) Option {
	return func(s *Source) {
		s.client.SetRetryWaitTime(wait).SetRetryMaxWaitTime(maxWait)
	}
}

// Source loads the registry document according to the registry config.
type Source struct {
	url    string
	file   string
	path   string
	maxAge time.Duration
	client *resty.Client
	lock   *flock.Flock
	logger *slog.Logger
	now    func() time.Time
}

// New builds a Source from cfg.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) *Source {
	if logger == nil {
		logger = logging.NewNop()
	}
	path := cfg.RegistryCachePath()
	client := resty.New().
		SetTimeout(time.Duration(cfg.Registry.RequestTimeout)*time.Second).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "text/plain").
		SetRetryCount(3).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(5 * time.Second)
	client.AddRetryCondition(retryCondition)

	s := &Source{
		url:    cfg.Registry.URL,
		file:   cfg.Registry.File,
		path:   path,
		maxAge: time.Duration(cfg.Registry.MaxAgeDays) * 24 * time.Hour,
		client: client,
		lock:   flock.New(path + ".lock"),
		logger: logging.NewComponentLogger(logger, "registrycache"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// retryCondition retries network errors, server errors and throttling.
func retryCondition(r *resty.Response, err error) bool {
	if err != nil {
		return true
	}
	if r == nil {
		return false
	}
	code := r.StatusCode()
	return code >= 500 || code == 429 || code == 408
}

// Load returns the registry document, refreshing the cached copy when it is
// missing or stale.
func (s *Source) Load(ctx context.Context) ([]byte, error) {
	if s.file != "" {
		data, err := os.ReadFile(s.file)
		if err != nil {
			return nil, fmt.Errorf("%w: read %s: %w", ErrUnavailable, s.file, err)
		}
		return data, nil
	}

	cached, modTime, err := s.readCache()
	if err != nil {
		return nil, err
	}
	if cached != nil && !s.stale(modTime) {
		return cached, nil
	}
	return s.refresh(ctx, false)
}

// Refresh fetches the registry regardless of the cached copy's age.
func (s *Source) Refresh(ctx context.Context) ([]byte, error) {
	if s.file != "" {
		return nil, fmt.Errorf("registry is read from %s; nothing to refresh", s.file)
	}
	return s.refresh(ctx, true)
}

// Info reports the state of the registry copy without fetching.
func (s *Source) Info() (Info, error) {
	info := Info{Path: s.path, URL: s.url, MaxAge: s.maxAge}
	if s.file != "" {
		info.Path = s.file
		info.URL = ""
		info.Local = true
	}
	stat, err := os.Stat(info.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return info, nil
	}
	if err != nil {
		return info, fmt.Errorf("stat registry: %w", err)
	}
	info.Exists = true
	info.ModTime = stat.ModTime()
	info.Age = s.now().Sub(info.ModTime)
	info.Stale = !info.Local && s.stale(info.ModTime)
	return info, nil
}

func (s *Source) stale(modTime time.Time) bool {
	return s.now().Sub(modTime) >= s.maxAge
}

func (s *Source) readCache() ([]byte, time.Time, error) {
	stat, err := os.Stat(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, time.Time{}, nil
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("stat cached registry: %w", err)
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("read cached registry: %w", err)
	}
	return data, stat.ModTime(), nil
}

// refresh fetches under the lock file. Unless forced, a copy that became
// fresh while waiting for the lock is used as is, and a failed fetch falls
// back to a stale copy.
func (s *Source) refresh(ctx context.Context, forced bool) ([]byte, error) {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return nil, fmt.Errorf("create registry cache directory: %w", err)
	}
	locked, err := s.lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("acquire registry lock: %w", err)
	}
	if !locked {
		return nil, errors.New("acquire registry lock: not acquired")
	}
	defer func() {
		_ = s.lock.Unlock()
	}()

	// Another process may have refreshed while we waited for the lock.
	cached, modTime, err := s.readCache()
	if err != nil {
		return nil, err
	}
	if !forced && cached != nil && !s.stale(modTime) {
		return cached, nil
	}

	data, fetchErr := s.fetch(ctx)
	if fetchErr == nil {
		if err := s.write(data); err != nil {
			return nil, err
		}
		s.logger.Info("registry refreshed",
			logging.String("url", s.url),
			logging.Int("bytes", len(data)),
		)
		return data, nil
	}

	if !forced && cached != nil {
		logging.WarnWithContext(s.logger, "registry refresh failed; using stale copy", "registry_refresh_failed",
			logging.Error(fetchErr),
			logging.String("path", s.path),
			logging.Duration("age", s.now().Sub(modTime)),
			logging.String(logging.FieldErrorHint, "check network access to "+s.url),
			logging.String(logging.FieldImpact, "newly registered subtags are unknown until the next refresh"),
		)
		return cached, nil
	}
	return nil, fmt.Errorf("%w: %w", ErrUnavailable, fetchErr)
}

func (s *Source) fetch(ctx context.Context) ([]byte, error) {
	resp, err := s.client.R().SetContext(ctx).Get(s.url)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", s.url, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", s.url, resp.Status())
	}
	body := resp.Body()
	if _, err := registry.Parse(bytes.NewReader(body)); err != nil {
		return nil, fmt.Errorf("fetch %s: invalid registry document: %w", s.url, err)
	}
	return body, nil
}

func (s *Source) write(data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".registry-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp registry file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp registry file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp registry file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp registry file: %w", err)
	}
	return nil
}

// Loader yields a registry document.
type Loader interface {
	Load(ctx context.Context) ([]byte, error)
}

// LoadIndex loads the document from src and parses it.
func LoadIndex(ctx context.Context, src Loader) (*registry.Index, error) {
	data, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}
	idx, err := registry.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse language subtag registry: %w", err)
	}
	return idx, nil
}
