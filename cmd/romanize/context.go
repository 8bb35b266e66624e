package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"writingsystems/internal/config"
	"writingsystems/internal/engines"
	"writingsystems/internal/logging"
	"writingsystems/internal/registry"
	"writingsystems/internal/registrycache"
	"writingsystems/internal/romanize"
	"writingsystems/internal/romanstore"
	"writingsystems/internal/script"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error

	pipelineOnce sync.Once
	index        *registry.Index
	builtin      *engines.Registry
	romanizer    *romanize.Romanizer
	pipelineErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// ensureLogger builds the process logger. Every line of one invocation
// shares a correlation id.
func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.loggerErr = fmt.Errorf("init logger: %w", err)
			return
		}
		ctx := logging.WithRequestID(context.Background(), uuid.NewString())
		c.logger = logging.WithContext(ctx, logger)
	})
	return c.logger, c.loggerErr
}

func (c *commandContext) registrySource() (*registrycache.Source, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	return registrycache.New(cfg, logger), nil
}

// ensureRomanizer loads the registry and assembles detector, engines and
// romanizer.
func (c *commandContext) ensureRomanizer(ctx context.Context) (*romanize.Romanizer, error) {
	c.pipelineOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.pipelineErr = err
			return
		}
		logger, err := c.ensureLogger()
		if err != nil {
			c.pipelineErr = err
			return
		}
		index, err := registrycache.LoadIndex(ctx, registrycache.New(cfg, logger))
		if err != nil {
			c.pipelineErr = err
			return
		}
		detector, err := script.NewDetector(index,
			script.WithCacheSize(cfg.Cache.DetectorEntries),
			script.WithLogger(logger),
		)
		if err != nil {
			c.pipelineErr = err
			return
		}
		builtin, err := engines.Default(detector)
		if err != nil {
			c.pipelineErr = err
			return
		}
		romanizer, err := romanize.New(index, detector, builtin.Filter(cfg.Engines.Disabled...),
			romanize.WithCacheSize(cfg.Cache.RomanizerEntries),
			romanize.WithLogger(logger),
		)
		if err != nil {
			c.pipelineErr = err
			return
		}
		c.index = index
		c.builtin = builtin
		c.romanizer = romanizer
	})
	return c.romanizer, c.pipelineErr
}

// ensureIndex returns the registry index the pipeline was built from.
func (c *commandContext) ensureIndex(ctx context.Context) (*registry.Index, error) {
	if _, err := c.ensureRomanizer(ctx); err != nil {
		return nil, err
	}
	return c.index, nil
}

func (c *commandContext) withStore(fn func(*romanstore.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	store, err := romanstore.Open(cfg)
	if err != nil {
		return fmt.Errorf("open result store: %w", err)
	}
	defer store.Close()
	return fn(store)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
