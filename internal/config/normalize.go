package config

import (
	"fmt"
	"os"
	"slices"
	"strings"
)

// RegistryFileEnv overrides registry.file when set.
const RegistryFileEnv = "ROMANIZE_REGISTRY_FILE"

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeRegistry(); err != nil {
		return err
	}
	c.normalizeEngines()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.CacheDir) == "" {
		c.Paths.CacheDir = defaultCacheDir()
	}
	if c.Paths.CacheDir, err = expandPath(c.Paths.CacheDir); err != nil {
		return fmt.Errorf("paths.cache_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeRegistry() error {
	c.Registry.URL = strings.TrimSpace(c.Registry.URL)
	if c.Registry.URL == "" {
		c.Registry.URL = defaultRegistryURL
	}
	if value, ok := os.LookupEnv(RegistryFileEnv); ok && strings.TrimSpace(value) != "" {
		c.Registry.File = value
	}
	c.Registry.File = strings.TrimSpace(c.Registry.File)
	if c.Registry.File != "" {
		var err error
		if c.Registry.File, err = expandPath(c.Registry.File); err != nil {
			return fmt.Errorf("registry.file: %w", err)
		}
	}
	if c.Registry.MaxAgeDays == 0 {
		c.Registry.MaxAgeDays = defaultRegistryMaxAge
	}
	if c.Registry.RequestTimeout == 0 {
		c.Registry.RequestTimeout = defaultRegistryTimeout
	}
	return nil
}

func (c *Config) normalizeEngines() {
	names := make([]string, 0, len(c.Engines.Disabled))
	for _, name := range c.Engines.Disabled {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" || slices.Contains(names, name) {
			continue
		}
		names = append(names, name)
	}
	c.Engines.Disabled = names
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
