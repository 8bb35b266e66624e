package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	DataDir  string `toml:"data_dir"`
	CacheDir string `toml:"cache_dir"`
	LogDir   string `toml:"log_dir"`
}

// Registry contains settings for retrieving the IANA Language Subtag Registry.
type Registry struct {
	URL            string `toml:"url"`
	File           string `toml:"file"`
	MaxAgeDays     int    `toml:"max_age_days"`
	RequestTimeout int    `toml:"request_timeout"`
}

// Cache contains memoization capacities.
type Cache struct {
	DetectorEntries  int `toml:"detector_entries"`
	RomanizerEntries int `toml:"romanizer_entries"`
}

// Engines selects which transliteration engines are registered.
type Engines struct {
	Disabled []string `toml:"disabled"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for romanize.
//
// Configuration sections by subsystem:
//   - Paths: result store, registry cache and optional log directory
//   - Registry: registry source URL, local override and staleness window
//   - Cache: script detection and romanization memoization capacities
//   - Engines: engines to leave out of dispatch
//   - Logging: log format and level
type Config struct {
	Paths    Paths    `toml:"paths"`
	Registry Registry `toml:"registry"`
	Cache    Cache    `toml:"cache"`
	Engines  Engines  `toml:"engines"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path of ~/.config/romanize/config.toml.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load reads the configuration at path, or from the default locations when
// path is empty, then normalizes and validates it. It also reports the file
// it settled on and whether that file exists; a missing file yields the
// defaults.
func Load(path string) (*Config, string, bool, error) {
	resolved, exists, err := locate(path)
	if err != nil {
		return nil, "", false, err
	}

	cfg := Default()
	if exists {
		if err := decodeFile(resolved, &cfg); err != nil {
			return nil, "", false, err
		}
	}
	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolved, exists, nil
}

func decodeFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	err = decoder.Decode(cfg)
	if err == nil {
		return nil
	}
	var strict *toml.StrictMissingError
	if errors.As(err, &strict) {
		return fmt.Errorf("config %s has unknown keys:\n%s", path, strict.String())
	}
	var syntax *toml.DecodeError
	if errors.As(err, &syntax) {
		row, col := syntax.Position()
		return fmt.Errorf("config %s:%d:%d: %w", path, row, col, err)
	}
	return fmt.Errorf("parse config %s: %w", path, err)
}

// locate picks the explicit path when given. Otherwise the user config wins
// over ./romanize.toml, and the user path is reported when neither exists.
func locate(path string) (string, bool, error) {
	var candidates []string
	if strings.TrimSpace(path) != "" {
		candidates = []string{path}
	} else {
		candidates = []string{defaultConfigPath, "romanize.toml"}
	}

	var first string
	for _, candidate := range candidates {
		expanded, err := expandPath(candidate)
		if err != nil {
			return "", false, err
		}
		if first == "" {
			first = expanded
		}
		info, err := os.Stat(expanded)
		switch {
		case err == nil && !info.IsDir():
			return expanded, true, nil
		case err != nil && !errors.Is(err, fs.ErrNotExist):
			return "", false, fmt.Errorf("stat config: %w", err)
		}
	}
	return first, false, nil
}

// EnsureDirectories creates the data and cache directories, and the log
// directory when one is configured.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.DataDir, c.Paths.CacheDir}
	if strings.TrimSpace(c.Paths.LogDir) != "" {
		dirs = append(dirs, c.Paths.LogDir)
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// StorePath returns the SQLite database holding stored romanizations.
func (c *Config) StorePath() string {
	return filepath.Join(c.Paths.DataDir, "romanizations.db")
}

// RegistryCachePath returns where the fetched registry document is kept.
func (c *Config) RegistryCachePath() string {
	return filepath.Join(c.Paths.CacheDir, "language-subtag-registry.txt")
}

// EngineEnabled reports whether name is not listed in engines.disabled.
func (c *Config) EngineEnabled(name string) bool {
	return !slices.Contains(c.Engines.Disabled, name)
}

// expandPath resolves a leading ~ and makes the path absolute.
func expandPath(value string) (string, error) {
	if value == "" {
		return "", nil
	}
	if value == "~" || strings.HasPrefix(value, "~/") || strings.HasPrefix(value, `~\`) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		value = filepath.Join(home, value[1:])
	}
	absolute, err := filepath.Abs(value)
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", value, err)
	}
	return absolute, nil
}

// ExpandPath applies the ~ and relative path rules used for config values.
func ExpandPath(value string) (string, error) {
	return expandPath(value)
}

// CreateSample writes the commented sample configuration to path, creating
// parent directories as needed.
func CreateSample(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
