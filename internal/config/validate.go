package config

import (
	"errors"
	"fmt"
	"strings"
)

// GenericEngine names the engine that serves undetermined languages. It cannot be disabled.
const GenericEngine = "unidecode"

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateRegistry(); err != nil {
		return err
	}
	if err := c.validateCache(); err != nil {
		return err
	}
	if err := c.validateEngines(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		return errors.New("paths.data_dir must be set")
	}
	if strings.TrimSpace(c.Paths.CacheDir) == "" {
		return errors.New("paths.cache_dir must be set")
	}
	return nil
}

func (c *Config) validateRegistry() error {
	if c.Registry.File == "" {
		if !strings.HasPrefix(c.Registry.URL, "http://") && !strings.HasPrefix(c.Registry.URL, "https://") {
			return fmt.Errorf("registry.url must be an http(s) URL, got %q", c.Registry.URL)
		}
	}
	if c.Registry.MaxAgeDays < 0 {
		return fmt.Errorf("registry.max_age_days must be non-negative, got %d", c.Registry.MaxAgeDays)
	}
	if c.Registry.RequestTimeout <= 0 {
		return fmt.Errorf("registry.request_timeout must be positive, got %d", c.Registry.RequestTimeout)
	}
	return nil
}

func (c *Config) validateCache() error {
	if c.Cache.DetectorEntries <= 0 {
		return fmt.Errorf("cache.detector_entries must be positive, got %d", c.Cache.DetectorEntries)
	}
	if c.Cache.RomanizerEntries <= 0 {
		return fmt.Errorf("cache.romanizer_entries must be positive, got %d", c.Cache.RomanizerEntries)
	}
	return nil
}

func (c *Config) validateEngines() error {
	for _, name := range c.Engines.Disabled {
		if name == GenericEngine {
			return fmt.Errorf("engines.disabled: %q serves undetermined languages and cannot be disabled", GenericEngine)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (want console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
