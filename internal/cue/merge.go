package cue

import (
	"cmp"
	"slices"
	"strings"
)

// TextSeparator joins member texts in a merged cue so speaker turns stay on
// their own lines.
const TextSeparator = "\n"

// Merge collapses same-track cues into one cue spanning their union interval.
// Member texts are concatenated in ascending start order (ties broken by end,
// then text), so the result depends only on which cues are given, not on the
// order they are given in. Merge returns false for empty input.
func Merge(cues []Cue) (Cue, bool) {
	span, ok := Span(cues...)
	if !ok {
		return Cue{}, false
	}

	ordered := slices.Clone(cues)
	slices.SortFunc(ordered, compareCues)

	texts := make([]string, 0, len(ordered))
	for _, c := range ordered {
		texts = append(texts, c.Text)
	}
	span.Text = strings.Join(texts, TextSeparator)
	return span, true
}

func compareCues(a, b Cue) int {
	if c := cmp.Compare(a.Start, b.Start); c != 0 {
		return c
	}
	if c := cmp.Compare(a.End, b.End); c != 0 {
		return c
	}
	return strings.Compare(a.Text, b.Text)
}
