package config

import (
	"errors"
	"fmt"
	"strings"

	"dualsub/internal/language"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateTracks(); err != nil {
		return err
	}
	if err := c.validateSync(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.OutputDir == "" {
		return errors.New("paths.output_dir must be set")
	}
	if c.Paths.StateDir == "" {
		return errors.New("paths.state_dir must be set")
	}
	return nil
}

func (c *Config) validateTracks() error {
	if c.Tracks.PrimaryLanguage == "" {
		return errors.New("tracks.primary_language must be set")
	}
	if c.Tracks.SecondaryLanguage == "" {
		return errors.New("tracks.secondary_language must be set")
	}
	if language.Same(c.Tracks.PrimaryLanguage, c.Tracks.SecondaryLanguage) {
		return fmt.Errorf("tracks.primary_language and tracks.secondary_language both name %s", language.DisplayName(c.Tracks.PrimaryLanguage))
	}
	for name, value := range map[string]string{
		"tracks.input_format":  c.Tracks.InputFormat,
		"tracks.output_format": c.Tracks.OutputFormat,
	} {
		if value != "vtt" && value != "srt" {
			return fmt.Errorf("%s must be vtt or srt (got %q)", name, value)
		}
	}
	if strings.ContainsAny(c.Tracks.OutputSuffix, `/\`) {
		return errors.New("tracks.output_suffix must not contain path separators")
	}
	return nil
}

func (c *Config) validateSync() error {
	if c.Sync.GapToleranceSeconds < 0 {
		return errors.New("sync.gap_tolerance_seconds must be >= 0")
	}
	if c.Sync.MaxGroupDurationSeconds < 0 {
		return errors.New("sync.max_group_duration_seconds must be >= 0")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error (got %q)", c.Logging.Level)
	}
}
