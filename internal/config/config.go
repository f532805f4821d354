package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"dualsub/internal/fileutil"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	InputDir  string `toml:"input_dir"`
	OutputDir string `toml:"output_dir"`
	StateDir  string `toml:"state_dir"`
	LogDir    string `toml:"log_dir"`
}

// Tracks describes how paired subtitle files are named and written.
type Tracks struct {
	PrimaryLanguage   string `toml:"primary_language"`
	SecondaryLanguage string `toml:"secondary_language"`
	InputFormat       string `toml:"input_format"`
	OutputFormat      string `toml:"output_format"`
	OutputSuffix      string `toml:"output_suffix"`
	WriteDual         bool   `toml:"write_dual"`
}

// Cleaning contains the extraction rules applied to both tracks.
type Cleaning struct {
	NonDialogueKeywords []string `toml:"non_dialogue_keywords"`
	StripAnnotations    bool     `toml:"strip_annotations"`
	StripForbidden      bool     `toml:"strip_forbidden"`
	DropAdvertisements  bool     `toml:"drop_advertisements"`
}

// Sync contains the optional grouping extensions. Zero values select the
// strict-overlap, uncapped policy.
type Sync struct {
	GapToleranceSeconds     float64 `toml:"gap_tolerance_seconds"`
	MaxGroupDurationSeconds float64 `toml:"max_group_duration_seconds"`
}

// Corrections contains the typo dictionary applied to secondary text.
type Corrections struct {
	Enabled        bool              `toml:"enabled"`
	DictionaryPath string            `toml:"dictionary_path"`
	Entries        map[string]string `toml:"entries"`
}

// Batch contains configuration for multi-pair runs.
type Batch struct {
	Workers         int  `toml:"workers"`
	HistoryEnabled  bool `toml:"history_enabled"`
	HistoryKeepRuns int  `toml:"history_keep_runs"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	File   bool   `toml:"file"`
}

// Config encapsulates all configuration values for dualsub.
//
// Configuration sections by subsystem:
//   - Paths: input, output, state, and log directories
//   - Tracks: language suffixes and file formats
//   - Cleaning: cue extraction rules
//   - Sync: optional grouping tolerances
//   - Corrections: secondary-track typo dictionary
//   - Batch: worker count and run history
//   - Logging: log format and level
type Config struct {
	Paths       Paths       `toml:"paths"`
	Tracks      Tracks      `toml:"tracks"`
	Cleaning    Cleaning    `toml:"cleaning"`
	Sync        Sync        `toml:"sync"`
	Corrections Corrections `toml:"corrections"`
	Batch       Batch       `toml:"batch"`
	Logging     Logging     `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/dualsub/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("dualsub.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the output, state, and log directories. The input
// directory is only read and is left alone.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.OutputDir, c.Paths.StateDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// HistoryPath returns the run history database location.
func (c *Config) HistoryPath() string {
	return filepath.Join(c.Paths.StateDir, "history.db")
}

// LogFilePath returns the log file used when logging.file is enabled.
func (c *Config) LogFilePath() string {
	return filepath.Join(c.Paths.LogDir, "dualsub.log")
}

// CorrectionEntries merges the dictionary file, when configured, over the
// inline entries. File entries win on conflicts.
func (c *Config) CorrectionEntries() (map[string]string, error) {
	merged := make(map[string]string, len(c.Corrections.Entries))
	for k, v := range c.Corrections.Entries {
		merged[k] = v
	}
	if c.Corrections.DictionaryPath == "" {
		return merged, nil
	}
	data, err := os.ReadFile(c.Corrections.DictionaryPath)
	if err != nil {
		return nil, fmt.Errorf("read corrections dictionary: %w", err)
	}
	var file struct {
		Corrections map[string]string `toml:"corrections"`
	}
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse corrections dictionary %s: %w", c.Corrections.DictionaryPath, err)
	}
	for k, v := range file.Corrections {
		merged[k] = v
	}
	return merged, nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if err := fileutil.WriteFileAtomic(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// Encode renders the effective configuration as TOML.
func (c *Config) Encode() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
}
