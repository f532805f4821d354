package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTracks()
	c.normalizeCleaning()
	if err := c.normalizeCorrections(); err != nil {
		return err
	}
	c.normalizeBatch()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if value, ok := os.LookupEnv("DUALSUB_INPUT_DIR"); ok && strings.TrimSpace(value) != "" {
		c.Paths.InputDir = strings.TrimSpace(value)
	}
	if value, ok := os.LookupEnv("DUALSUB_OUTPUT_DIR"); ok && strings.TrimSpace(value) != "" {
		c.Paths.OutputDir = strings.TrimSpace(value)
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}

	var err error
	if c.Paths.InputDir, err = expandPath(strings.TrimSpace(c.Paths.InputDir)); err != nil {
		return fmt.Errorf("paths.input_dir: %w", err)
	}
	if c.Paths.OutputDir, err = expandPath(strings.TrimSpace(c.Paths.OutputDir)); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if c.Paths.StateDir, err = expandPath(strings.TrimSpace(c.Paths.StateDir)); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeTracks() {
	c.Tracks.PrimaryLanguage = strings.ToLower(strings.TrimSpace(c.Tracks.PrimaryLanguage))
	c.Tracks.SecondaryLanguage = strings.ToLower(strings.TrimSpace(c.Tracks.SecondaryLanguage))
	c.Tracks.InputFormat = normalizeFormat(c.Tracks.InputFormat)
	c.Tracks.OutputFormat = normalizeFormat(c.Tracks.OutputFormat)
	c.Tracks.OutputSuffix = strings.Trim(strings.TrimSpace(c.Tracks.OutputSuffix), "_")
}

func normalizeFormat(value string) string {
	value = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(value), "."))
	switch value {
	case "":
		return defaultFormat
	case "webvtt":
		return "vtt"
	case "subrip":
		return "srt"
	default:
		return value
	}
}

func (c *Config) normalizeCleaning() {
	keywords := make([]string, 0, len(c.Cleaning.NonDialogueKeywords))
	seen := make(map[string]struct{}, len(c.Cleaning.NonDialogueKeywords))
	for _, keyword := range c.Cleaning.NonDialogueKeywords {
		trimmed := strings.TrimSpace(keyword)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		keywords = append(keywords, trimmed)
	}
	c.Cleaning.NonDialogueKeywords = keywords
}

func (c *Config) normalizeCorrections() error {
	path := strings.TrimSpace(c.Corrections.DictionaryPath)
	if path == "" {
		c.Corrections.DictionaryPath = ""
		return nil
	}
	expanded, err := expandPath(path)
	if err != nil {
		return fmt.Errorf("corrections.dictionary_path: %w", err)
	}
	c.Corrections.DictionaryPath = expanded
	return nil
}

func (c *Config) normalizeBatch() {
	if c.Batch.Workers <= 0 {
		c.Batch.Workers = defaultBatchWorkers
	}
	if c.Batch.HistoryKeepRuns < 0 {
		c.Batch.HistoryKeepRuns = 0
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
