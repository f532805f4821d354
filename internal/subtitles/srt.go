package subtitles

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"
)

// Format identifies a timed-text file format.
type Format string

const (
	FormatVTT Format = "vtt"
	FormatSRT Format = "srt"
)

// ParseFormat normalizes a user-supplied format name or extension.
func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(value), ".")) {
	case "vtt", "webvtt":
		return FormatVTT, nil
	case "srt", "subrip":
		return FormatSRT, nil
	default:
		return "", fmt.Errorf("unsupported subtitle format %q", value)
	}
}

// FormatFromPath infers the format from a file extension, defaulting to VTT.
func FormatFromPath(path string) Format {
	if f, err := ParseFormat(filepath.Ext(path)); err == nil {
		return f
	}
	return FormatVTT
}

// Extension returns the file extension for the format, including the dot.
func (f Format) Extension() string {
	if f == FormatSRT {
		return ".srt"
	}
	return ".vtt"
}

func (f Format) millisSeparator() byte {
	if f == FormatSRT {
		return ','
	}
	return '.'
}

// ParseTimestamp converts HH:MM:SS.mmm, HH:MM:SS,mmm or MM:SS.mmm into seconds.
// Fractions shorter than three digits are read as tenths or hundredths.
func ParseTimestamp(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	value = strings.ReplaceAll(value, ",", ".")

	clock, fraction, _ := strings.Cut(value, ".")
	parts := strings.Split(clock, ":")
	if len(parts) == 2 {
		parts = append([]string{"0"}, parts...)
	}
	if len(parts) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}

	hours, errH := strconv.Atoi(parts[0])
	minutes, errM := strconv.Atoi(parts[1])
	seconds, errS := strconv.Atoi(parts[2])
	if errH != nil || errM != nil || errS != nil || hours < 0 || minutes < 0 || minutes > 59 || seconds < 0 || seconds > 59 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}

	millis := 0
	if fraction != "" {
		if len(fraction) > 3 {
			fraction = fraction[:3]
		}
		fraction += strings.Repeat("0", 3-len(fraction))
		ms, err := strconv.Atoi(fraction)
		if err != nil || ms < 0 {
			return 0, fmt.Errorf("invalid timestamp %q", value)
		}
		millis = ms
	}
	return float64(hours*3600+minutes*60+seconds) + float64(millis)/1000, nil
}

// FormatTimestamp renders seconds as zero-padded HH:MM:SS.mmm (HH:MM:SS,mmm for
// SRT), rounded to the millisecond. Hours are not wrapped at 24.
func FormatTimestamp(seconds float64, f Format) string {
	total := int64(math.Round(seconds * 1000))
	if total < 0 {
		total = 0
	}
	hours := total / 3_600_000
	minutes := (total / 60_000) % 60
	secs := (total / 1000) % 60
	millis := total % 1000
	return fmt.Sprintf("%02d:%02d:%02d%c%03d", hours, minutes, secs, f.millisSeparator(), millis)
}

// parseTiming splits a "start --> end [settings]" line. Unparseable
// timestamps are replaced with zero and reported through malformed.
func parseTiming(line string) (start, end float64, malformed int) {
	left, right, _ := strings.Cut(line, "-->")
	fields := strings.Fields(right)
	endText := ""
	if len(fields) > 0 {
		endText = fields[0]
	}

	var err error
	if start, err = ParseTimestamp(left); err != nil {
		start = 0
		malformed++
	}
	if end, err = ParseTimestamp(endText); err != nil {
		end = 0
		malformed++
	}
	return start, end, malformed
}
