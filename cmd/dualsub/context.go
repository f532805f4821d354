package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"dualsub/internal/config"
	"dualsub/internal/history"
	"dualsub/internal/logging"
	"dualsub/internal/pairjob"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string
	verboseFlag  *bool

	configOnce   sync.Once
	config       *config.Config
	configPath   string
	configExists bool
	configErr    error
}

func newCommandContext(configFlag, logLevelFlag *string, verboseFlag *bool) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
		verboseFlag:  verboseFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, exists, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if c.logLevelFlag != nil && strings.TrimSpace(*c.logLevelFlag) != "" {
			cfg.Logging.Level = strings.ToLower(strings.TrimSpace(*c.logLevelFlag))
			if err := cfg.Validate(); err != nil {
				c.configErr = fmt.Errorf("--log-level: %w", err)
				return
			}
		}
		if c.verboseFlag != nil && *c.verboseFlag {
			cfg.Logging.Level = "debug"
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
		c.configExists = exists
	})
	return c.config, c.configErr
}

func (c *commandContext) logger() (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return logging.NewFromConfig(cfg)
}

// newRunner builds a pair runner. When withHistory is set and history is
// enabled, the returned closer releases the history database.
func (c *commandContext) newRunner(cfg *config.Config, withHistory bool) (*pairjob.Runner, func(), error) {
	logger, err := c.logger()
	if err != nil {
		return nil, nil, err
	}
	closer := func() {}
	var recorder pairjob.Recorder
	if withHistory && cfg.Batch.HistoryEnabled {
		store, err := history.Open(cfg)
		if err != nil {
			if !errors.Is(err, history.ErrSchemaMismatch) {
				return nil, nil, err
			}
			logging.WarnWithContext(logger, "run history disabled", "history_schema_mismatch",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "delete "+cfg.HistoryPath()),
				logging.String(logging.FieldImpact, "this run is not recorded"),
			)
		} else {
			recorder = store
			closer = func() { _ = store.Close() }
		}
	}
	runner, err := pairjob.NewRunner(cfg, logger, recorder)
	if err != nil {
		closer()
		return nil, nil, err
	}
	return runner, closer, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
