package testsupport

import (
	"path/filepath"
	"testing"

	"writingsystems/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// The registry is read from a local copy of RegistryDocument so no test
// reaches the network unless it points registry.url somewhere itself.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.CacheDir = filepath.Join(base, "cache")
	cfgVal.Paths.LogDir = ""
	cfgVal.Registry.File = WriteRegistryFile(t, base)

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithRegistryURL makes the config fetch the registry from url instead of the
// local fixture file.
func WithRegistryURL(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Registry.URL = url
		b.cfg.Registry.File = ""
	}
}

// WithDisabledEngines lists engines to leave out of dispatch.
func WithDisabledEngines(names ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Engines.Disabled = append([]string(nil), names...)
	}
}

// WithExtraRegistryRecords rewrites the fixture file with additional records.
func WithExtraRegistryRecords(records ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Registry.File = WriteRegistryFile(b.t, b.baseDir, records...)
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}
