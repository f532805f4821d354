package cue

// Cue is a single subtitle entry: a time interval in seconds from the track
// origin plus display text. Start <= End is assumed, not checked.
type Cue struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Duration returns the length of the cue interval in seconds.
func (c Cue) Duration() float64 {
	return c.End - c.Start
}

// Track is an ordered sequence of cues for one language, indexed by original
// position.
type Track []Cue

// Pair is one synchronized output entry. Primary and Secondary always share
// the same Start and End; the primary track's timing is authoritative.
type Pair struct {
	Primary   Cue `json:"primary"`
	Secondary Cue `json:"secondary"`

	// PrimaryIndices and SecondaryIndices list, in ascending order, the
	// original track positions merged into this pair.
	PrimaryIndices   []int `json:"primary_indices"`
	SecondaryIndices []int `json:"secondary_indices"`
}

// Start returns the shared start time of both cues.
func (p Pair) Start() float64 { return p.Primary.Start }

// End returns the shared end time of both cues.
func (p Pair) End() float64 { return p.Primary.End }

// PrimaryText returns the merged primary-track text.
func (p Pair) PrimaryText() string { return p.Primary.Text }

// SecondaryText returns the merged secondary-track text, uncorrected.
func (p Pair) SecondaryText() string { return p.Secondary.Text }

// Overlaps reports whether a and b share a point in time. Touching or
// zero-width intervals do not overlap.
func Overlaps(a, b Cue) bool {
	return max(a.Start, b.Start) < min(a.End, b.End)
}

// OverlapsWithin is Overlaps widened by gap seconds, so cues separated by less
// than gap also count. A gap of zero or less is identical to Overlaps.
func OverlapsWithin(a, b Cue, gap float64) bool {
	if gap <= 0 {
		return Overlaps(a, b)
	}
	return max(a.Start, b.Start) < min(a.End, b.End)+gap
}

// Span returns the union interval [min start, max end] of cues as a cue with
// empty text. The second return value is false when cues is empty.
func Span(cues ...Cue) (Cue, bool) {
	if len(cues) == 0 {
		return Cue{}, false
	}
	span := Cue{Start: cues[0].Start, End: cues[0].End}
	for _, c := range cues[1:] {
		span.Start = min(span.Start, c.Start)
		span.End = max(span.End, c.End)
	}
	return span, true
}
