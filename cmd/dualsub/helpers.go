package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"dualsub/internal/language"
)

// errPairsFailed makes the process exit non-zero after the report has
// already been printed.
var errPairsFailed = errors.New("one or more pairs failed")

// deriveName strips the extension and a trailing _<lang> suffix matching
// lang from a track file name: "ep01_en.vtt" becomes "ep01".
func deriveName(path, lang string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if cut := strings.LastIndex(stem, "_"); cut > 0 && language.Same(stem[cut+1:], lang) {
		return stem[:cut]
	}
	return stem
}

func formatDuration(d time.Duration) string {
	switch {
	case d <= 0:
		return "-"
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	default:
		return d.Round(10 * time.Millisecond).String()
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
