package config

const (
	defaultInputDir          = "~/.local/share/dualsub/input"
	defaultOutputDir         = "~/.local/share/dualsub/output"
	defaultStateDir          = "~/.local/share/dualsub/state"
	defaultLogDir            = "~/.local/share/dualsub/logs"
	defaultPrimaryLanguage   = "en"
	defaultSecondaryLanguage = "kr"
	defaultFormat            = "vtt"
	defaultOutputSuffix      = "FINAL"
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
	defaultBatchWorkers      = 4
	defaultHistoryKeepRuns   = 200
)

var defaultNonDialogueKeywords = []string{
	"배급:", "제공:", "감독:", "제작:",
	"Presented by", "Director:", "Production:", "WEBVTT",
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			InputDir:  defaultInputDir,
			OutputDir: defaultOutputDir,
			StateDir:  defaultStateDir,
			LogDir:    defaultLogDir,
		},
		Tracks: Tracks{
			PrimaryLanguage:   defaultPrimaryLanguage,
			SecondaryLanguage: defaultSecondaryLanguage,
			InputFormat:       defaultFormat,
			OutputFormat:      defaultFormat,
			OutputSuffix:      defaultOutputSuffix,
		},
		Cleaning: Cleaning{
			NonDialogueKeywords: append([]string(nil), defaultNonDialogueKeywords...),
			StripAnnotations:    true,
			StripForbidden:      true,
			DropAdvertisements:  true,
		},
		Corrections: Corrections{
			Enabled: true,
			Entries: map[string]string{"필요고 없지": "필요도 없지"},
		},
		Batch: Batch{
			Workers:         defaultBatchWorkers,
			HistoryEnabled:  true,
			HistoryKeepRuns: defaultHistoryKeepRuns,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
