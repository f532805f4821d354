package subtitles

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"dualsub/internal/cue"
)

// ParseStats reports what extraction kept and discarded.
type ParseStats struct {
	Cues                int `json:"cues"`
	DroppedEmpty        int `json:"dropped_empty"`
	DroppedAds          int `json:"dropped_ads"`
	SkippedMetadata     int `json:"skipped_metadata"`
	MalformedTimestamps int `json:"malformed_timestamps"`
	Inverted            int `json:"inverted"`
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseFile reads a WebVTT or SRT file and returns its cleaned cues.
func ParseFile(path string, opts CleanOptions) (cue.Track, ParseStats, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, ParseStats{}, fmt.Errorf("open subtitle: %w", err)
	}
	defer file.Close()

	track, stats, err := Parse(file, opts)
	if err != nil {
		return nil, stats, fmt.Errorf("parse %s: %w", path, err)
	}
	return track, stats, nil
}

// Parse extracts cleaned cues from WebVTT or SRT content. Both formats are
// handled by the same block reader: a line containing "-->" opens a cue and
// the following lines up to a blank line are its text.
//
// Malformed timestamps are read as zero and counted; cues whose start falls
// after their end are dropped so downstream code never sees them.
func Parse(r io.Reader, opts CleanOptions) (cue.Track, ParseStats, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ParseStats{}, fmt.Errorf("read subtitle: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	content := strings.ReplaceAll(string(data), "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	var (
		track cue.Track
		stats ParseStats
	)
	for _, block := range splitBlocks(content) {
		timing := timingLineIndex(block)
		if timing < 0 {
			stats.SkippedMetadata++
			continue
		}

		start, end, malformed := parseTiming(block[timing])
		stats.MalformedTimestamps += malformed

		raw := block[timing+1:]
		if opts.DropAdvertisements && isAdvertisement(raw) {
			stats.DroppedAds++
			continue
		}

		text := make([]string, 0, len(raw))
		for _, line := range raw {
			if isNumeric(line) || isNonDialogue(line, opts.NonDialogueKeywords) {
				continue
			}
			if cleaned := CleanLine(line, opts); cleaned != "" {
				text = append(text, cleaned)
			}
		}
		if len(text) == 0 {
			stats.DroppedEmpty++
			continue
		}
		if start > end {
			stats.Inverted++
			continue
		}
		track = append(track, cue.Cue{Start: start, End: end, Text: strings.Join(text, "\n")})
	}

	stats.Cues = len(track)
	return track, stats, nil
}

// splitBlocks groups lines into blank-line separated blocks. Lines holding
// only whitespace count as separators.
func splitBlocks(content string) [][]string {
	var (
		blocks  [][]string
		current []string
	)
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == "" {
			if len(current) > 0 {
				blocks = append(blocks, current)
				current = nil
			}
			continue
		}
		current = append(current, strings.TrimRight(line, " \t"))
	}
	if len(current) > 0 {
		blocks = append(blocks, current)
	}
	return blocks
}

// timingLineIndex returns the position of the timing line within a cue block,
// or -1 for header, NOTE, STYLE and REGION blocks. The timing line may be
// preceded by one identifier line (SRT index or WebVTT cue id).
func timingLineIndex(block []string) int {
	first := strings.TrimSpace(block[0])
	if strings.HasPrefix(first, "WEBVTT") || strings.HasPrefix(first, "NOTE") ||
		first == "STYLE" || first == "REGION" {
		return -1
	}
	for i := 0; i < len(block) && i < 2; i++ {
		if strings.Contains(block[i], "-->") {
			return i
		}
	}
	return -1
}
