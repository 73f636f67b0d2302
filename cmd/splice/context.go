package main

import (
	"log/slog"
	"os"
	"strings"
	"sync"

	"splice/internal/config"
	"splice/internal/logging"
	"splice/internal/probe"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger

	cache *probe.Cache
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
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		logger, err := logging.New(logging.Options{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
			Writer: os.Stderr,
		})
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		c.logger = logger
	})
	return c.logger
}

// inspector builds the cached probe inspector. The cache stays open for
// the process lifetime; closeCache releases it.
func (c *commandContext) inspector() (*probe.Inspector, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger := c.ensureLogger()
	if c.cache == nil {
		cache, err := probe.OpenCache(cfg.CacheDir(), logger)
		if err != nil {
			// A broken cache degrades to uncached probing.
			logger.Warn("probe cache unavailable", slog.String("error", err.Error()))
			cache = nil
		}
		c.cache = cache
	}
	return probe.NewInspector(cfg.Tools.FFprobeBinary, c.cache, logger), nil
}

func (c *commandContext) closeCache() {
	if c.cache != nil {
		_ = c.cache.Close()
		c.cache = nil
	}
}
