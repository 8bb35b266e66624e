package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	defaultConfigPath      = "~/.config/romanize/config.toml"
	defaultDataDir         = "~/.local/share/romanize"
	defaultRegistryURL     = "https://www.iana.org/assignments/language-subtag-registry/language-subtag-registry"
	defaultRegistryMaxAge  = 30
	defaultRegistryTimeout = 30
	defaultCacheEntries    = 5000
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:  defaultDataDir,
			CacheDir: defaultCacheDir(),
		},
		Registry: Registry{
			URL:            defaultRegistryURL,
			MaxAgeDays:     defaultRegistryMaxAge,
			RequestTimeout: defaultRegistryTimeout,
		},
		Cache: Cache{
			DetectorEntries:  defaultCacheEntries,
			RomanizerEntries: defaultCacheEntries,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

func defaultCacheDir() string {
	if base, ok := os.LookupEnv("XDG_CACHE_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "romanize")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "~/.cache/romanize"
	}
	return filepath.Join(home, ".cache", "romanize")
}
