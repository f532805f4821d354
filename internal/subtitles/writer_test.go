package subtitles

import (
	"strings"
	"testing"

	"dualsub/internal/cue"
)

func samplePairs() []cue.Pair {
	return []cue.Pair{
		{
			Primary:   cue.Cue{Start: 1, End: 2.5, Text: "You don't need to."},
			Secondary: cue.Cue{Start: 1, End: 2.5, Text: "그럴 필요고 없지"},
		},
		{
			Primary:   cue.Cue{Start: 3723.004, End: 3725, Text: "A\nB"},
			Secondary: cue.Cue{Start: 3723.004, End: 3725, Text: "가"},
		},
	}
}

func TestWriteTrackPrimaryVTT(t *testing.T) {
	var sb strings.Builder
	if err := WriteTrack(&sb, FormatVTT, samplePairs(), SidePrimary, nil); err != nil {
		t.Fatalf("WriteTrack: %v", err)
	}
	want := "WEBVTT\n\n" +
		"1\n00:00:01.000 --> 00:00:02.500\nYou don't need to.\n\n" +
		"2\n01:02:03.004 --> 01:02:05.000\nA\nB\n\n"
	if sb.String() != want {
		t.Fatalf("unexpected output:\n%s", sb.String())
	}
}

func TestWriteTrackSecondaryIsCorrected(t *testing.T) {
	out := string(RenderTrack(FormatSRT, samplePairs(), SideSecondary, NewCorrector(DefaultCorrections())))
	if strings.HasPrefix(out, "WEBVTT") {
		t.Fatal("SRT output should not carry a WEBVTT header")
	}
	if !strings.Contains(out, "1\n00:00:01,000 --> 00:00:02,500\n그럴 필요도 없지\n") {
		t.Fatalf("expected corrected secondary text, got:\n%s", out)
	}
}

func TestWriteDual(t *testing.T) {
	out := string(RenderDual(FormatVTT, samplePairs(), nil))
	if !strings.Contains(out, "1\n00:00:01.000 --> 00:00:02.500\nYou don't need to.\n그럴 필요고 없지\n\n") {
		t.Fatalf("unexpected dual output:\n%s", out)
	}
}

func TestWriteRoundTrip(t *testing.T) {
	pairs := samplePairs()
	out := RenderTrack(FormatVTT, pairs, SideSecondary, nil)
	opts := CleanOptions{}
	track, _, err := Parse(strings.NewReader(string(out)), opts)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(track) != len(pairs) {
		t.Fatalf("expected %d cues, got %d", len(pairs), len(track))
	}
	if track[0].Start != 1 || track[0].End != 2.5 || track[0].Text != "그럴 필요고 없지" {
		t.Fatalf("unexpected cue %+v", track[0])
	}
}

func TestWriteEmpty(t *testing.T) {
	if got := string(RenderTrack(FormatVTT, nil, SidePrimary, nil)); got != "WEBVTT\n\n" {
		t.Fatalf("unexpected empty output %q", got)
	}
}
