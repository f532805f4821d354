package subtitles

import (
	"fmt"
	"io"
	"strings"

	"dualsub/internal/cue"
)

// Side selects which language of a synchronized pair a writer emits.
type Side int

const (
	SidePrimary Side = iota
	SideSecondary
)

func (s Side) String() string {
	if s == SideSecondary {
		return "secondary"
	}
	return "primary"
}

// WriteTrack writes one side of pairs as a numbered timed-text track. Both
// sides carry the primary timing. Secondary text passes through corrector.
func WriteTrack(w io.Writer, f Format, pairs []cue.Pair, side Side, corrector *Corrector) error {
	var sb strings.Builder
	writeHeader(&sb, f)
	for i, pair := range pairs {
		text := pair.PrimaryText()
		if side == SideSecondary {
			text = corrector.Correct(pair.SecondaryText())
		}
		writeBlock(&sb, f, i+1, pair, text)
	}
	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("write %s track: %w", side, err)
	}
	return nil
}

// WriteDual writes a single track whose cues show the primary text above the
// corrected secondary text.
func WriteDual(w io.Writer, f Format, pairs []cue.Pair, corrector *Corrector) error {
	var sb strings.Builder
	writeHeader(&sb, f)
	for i, pair := range pairs {
		text := pair.PrimaryText() + "\n" + corrector.Correct(pair.SecondaryText())
		writeBlock(&sb, f, i+1, pair, text)
	}
	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("write dual track: %w", err)
	}
	return nil
}

// RenderTrack returns WriteTrack output as bytes.
func RenderTrack(f Format, pairs []cue.Pair, side Side, corrector *Corrector) []byte {
	var sb strings.Builder
	_ = WriteTrack(&sb, f, pairs, side, corrector)
	return []byte(sb.String())
}

// RenderDual returns WriteDual output as bytes.
func RenderDual(f Format, pairs []cue.Pair, corrector *Corrector) []byte {
	var sb strings.Builder
	_ = WriteDual(&sb, f, pairs, corrector)
	return []byte(sb.String())
}

func writeHeader(sb *strings.Builder, f Format) {
	if f == FormatVTT {
		sb.WriteString("WEBVTT\n\n")
	}
}

func writeBlock(sb *strings.Builder, f Format, index int, pair cue.Pair, text string) {
	fmt.Fprintf(sb, "%d\n", index)
	fmt.Fprintf(sb, "%s --> %s\n", FormatTimestamp(pair.Start(), f), FormatTimestamp(pair.End(), f))
	sb.WriteString(text)
	sb.WriteString("\n\n")
}
