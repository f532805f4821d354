package testsupport

import (
	"path/filepath"
	"testing"

	"dualsub/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.InputDir = filepath.Join(base, "input")
	cfgVal.Paths.OutputDir = filepath.Join(base, "output")
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Batch.Workers = 2

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	if err := builder.cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return builder.cfg
}

// WithFormats sets the input and output subtitle formats.
func WithFormats(input, output string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Tracks.InputFormat = input
		b.cfg.Tracks.OutputFormat = output
	}
}

// WithLanguages overrides the primary and secondary track suffixes.
func WithLanguages(primary, secondary string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Tracks.PrimaryLanguage = primary
		b.cfg.Tracks.SecondaryLanguage = secondary
	}
}

// WithDualOutput enables the combined dual-language track.
func WithDualOutput() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Tracks.WriteDual = true
	}
}

// WithSyncTolerances sets the optional grouping extensions.
func WithSyncTolerances(gap, maxDuration float64) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Sync.GapToleranceSeconds = gap
		b.cfg.Sync.MaxGroupDurationSeconds = maxDuration
	}
}

// WithoutHistory disables the run history database.
func WithoutHistory() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Batch.HistoryEnabled = false
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}
