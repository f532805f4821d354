package alignment

import (
	"cmp"
	"slices"

	"dualsub/internal/cue"
)

// Options tunes grouping. The zero value is the canonical policy: strict
// overlap with no cap on how far a group may grow.
type Options struct {
	// GapTolerance lets cues separated by less than this many seconds join a
	// group as though they overlapped. Applies to seeding and expansion.
	GapTolerance float64
	// MaxGroupDuration rejects expansion candidates that would stretch the
	// combined span of both sides beyond this many seconds. The seed's
	// direct overlaps are always admitted. Zero disables the cap.
	MaxGroupDuration float64
}

// Result is the structured outcome of one synchronization run.
type Result struct {
	Pairs []cue.Pair
	// UnmatchedPrimary and UnmatchedSecondary hold original indices of cues
	// that no group consumed. They never appear in Pairs.
	UnmatchedPrimary   []int
	UnmatchedSecondary []int
	// Duplicates counts groups discarded because an earlier pair already had
	// the same primary start and text.
	Duplicates int
	// Passes is the total number of expansion passes across all groups.
	Passes int
}

// Synchronize aligns secondary to primary with the canonical policy and
// returns the pairs sorted by start time.
func Synchronize(primary, secondary cue.Track) []cue.Pair {
	return Run(primary, secondary, Options{}).Pairs
}

// Run groups cues from both tracks that overlap in time, including overlaps
// introduced transitively by the group itself, and merges each group into one
// pair re-stamped to the primary track's timing.
func Run(primary, secondary cue.Track, opts Options) Result {
	p := newSide(primary)
	s := newSide(secondary)

	var res Result
	seen := make(map[pairKey]struct{})
	if len(primary) > 0 && len(secondary) > 0 {
		for i := range primary {
			if p.consumed[i] {
				continue
			}
			g := &group{gen: i + 1, primary: member{side: p}, secondary: member{side: s}}
			if !g.seed(i, opts) {
				continue
			}
			res.Passes += g.expand(opts)

			pair := g.pair()
			key := pairKey{start: pair.Primary.Start, text: pair.Primary.Text}
			if _, dup := seen[key]; dup {
				res.Duplicates++
			} else {
				seen[key] = struct{}{}
				res.Pairs = append(res.Pairs, pair)
			}
			g.consume()
		}
	}

	slices.SortStableFunc(res.Pairs, func(a, b cue.Pair) int {
		return cmp.Compare(a.Start(), b.Start())
	})
	res.UnmatchedPrimary = p.unconsumed()
	res.UnmatchedSecondary = s.unconsumed()
	return res
}

type pairKey struct {
	start float64
	text  string
}

// side tracks per-run state for one input track. mark[i] holds the generation
// of the group currently holding cue i, so membership resets per seed without
// clearing the slice.
type side struct {
	cues     cue.Track
	consumed []bool
	mark     []int
}

func newSide(cues cue.Track) *side {
	return &side{
		cues:     cues,
		consumed: make([]bool, len(cues)),
		mark:     make([]int, len(cues)),
	}
}

func (s *side) unconsumed() []int {
	var out []int
	for i, used := range s.consumed {
		if !used {
			out = append(out, i)
		}
	}
	return out
}

type member struct {
	side    *side
	indices []int
	span    cue.Cue
}

func (m *member) add(i, gen int) {
	c := m.side.cues[i]
	if len(m.indices) == 0 {
		m.span = cue.Cue{Start: c.Start, End: c.End}
	} else {
		m.span.Start = min(m.span.Start, c.Start)
		m.span.End = max(m.span.End, c.End)
	}
	m.indices = append(m.indices, i)
	m.side.mark[i] = gen
}

func (m *member) eligible(i, gen int) bool {
	return !m.side.consumed[i] && m.side.mark[i] != gen
}

type group struct {
	gen       int
	primary   member
	secondary member
}

// seed starts a group from primary cue i and admits every unconsumed
// secondary cue overlapping it. It reports false when nothing matched.
func (g *group) seed(i int, opts Options) bool {
	g.primary.add(i, g.gen)
	anchor := g.primary.side.cues[i]
	for j, c := range g.secondary.side.cues {
		if g.secondary.eligible(j, g.gen) && cue.OverlapsWithin(anchor, c, opts.GapTolerance) {
			g.secondary.add(j, g.gen)
		}
	}
	return len(g.secondary.indices) > 0
}

// expand alternates between the two sides until a full pass admits nothing
// and returns the number of passes taken. Each pass only admits unconsumed,
// non-member cues, so the loop is bounded by the size of both tracks.
func (g *group) expand(opts Options) int {
	passes := 0
	for {
		passes++
		grew := g.absorb(&g.secondary, g.primary.span, opts)
		if g.absorb(&g.primary, g.secondary.span, opts) {
			grew = true
		}
		if !grew {
			return passes
		}
	}
}

func (g *group) absorb(into *member, against cue.Cue, opts Options) bool {
	added := false
	for j, c := range into.side.cues {
		if !into.eligible(j, g.gen) || !cue.OverlapsWithin(against, c, opts.GapTolerance) {
			continue
		}
		if opts.MaxGroupDuration > 0 && g.spanWith(c) > opts.MaxGroupDuration {
			continue
		}
		into.add(j, g.gen)
		added = true
	}
	return added
}

func (g *group) spanWith(c cue.Cue) float64 {
	span, _ := cue.Span(g.primary.span, g.secondary.span, c)
	return span.Duration()
}

func (g *group) pair() cue.Pair {
	primaryIdx := slices.Sorted(slices.Values(g.primary.indices))
	secondaryIdx := slices.Sorted(slices.Values(g.secondary.indices))

	merged, _ := cue.Merge(collect(g.primary.side.cues, primaryIdx))
	other, _ := cue.Merge(collect(g.secondary.side.cues, secondaryIdx))
	other.Start = merged.Start
	other.End = merged.End

	return cue.Pair{
		Primary:          merged,
		Secondary:        other,
		PrimaryIndices:   primaryIdx,
		SecondaryIndices: secondaryIdx,
	}
}

func (g *group) consume() {
	for _, i := range g.primary.indices {
		g.primary.side.consumed[i] = true
	}
	for _, j := range g.secondary.indices {
		g.secondary.side.consumed[j] = true
	}
}

func collect(track cue.Track, indices []int) []cue.Cue {
	out := make([]cue.Cue, 0, len(indices))
	for _, i := range indices {
		out = append(out, track[i])
	}
	return out
}
