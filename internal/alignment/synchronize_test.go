package alignment

import (
	"math/rand/v2"
	"reflect"
	"slices"
	"testing"

	"dualsub/internal/cue"
)

func TestSynchronizeDropsUnmatchedPrimary(t *testing.T) {
	primary := cue.Track{{Start: 0, End: 2, Text: "A"}, {Start: 2, End: 4, Text: "B"}}
	secondary := cue.Track{{Start: 0, End: 2, Text: "가"}}

	res := Run(primary, secondary, Options{})
	if len(res.Pairs) != 1 {
		t.Fatalf("expected 1 pair, got %d", len(res.Pairs))
	}
	pair := res.Pairs[0]
	if pair.Primary != (cue.Cue{Start: 0, End: 2, Text: "A"}) {
		t.Fatalf("unexpected primary %+v", pair.Primary)
	}
	if pair.Secondary != (cue.Cue{Start: 0, End: 2, Text: "가"}) {
		t.Fatalf("unexpected secondary %+v", pair.Secondary)
	}
	if !reflect.DeepEqual(res.UnmatchedPrimary, []int{1}) {
		t.Fatalf("unmatched primary = %v, want [1]", res.UnmatchedPrimary)
	}
	if len(res.UnmatchedSecondary) != 0 {
		t.Fatalf("unexpected unmatched secondary %v", res.UnmatchedSecondary)
	}
}

func TestSynchronizeMergesFinerSecondary(t *testing.T) {
	primary := cue.Track{{Start: 0, End: 3, Text: "A"}}
	secondary := cue.Track{
		{Start: 0, End: 1, Text: "가"},
		{Start: 1, End: 2, Text: "나"},
		{Start: 2, End: 3, Text: "다"},
	}

	pairs := Synchronize(primary, secondary)
	if len(pairs) != 1 {
		t.Fatalf("expected 1 pair, got %d", len(pairs))
	}
	want := cue.Cue{Start: 0, End: 3, Text: "가\n나\n다"}
	if pairs[0].Secondary != want {
		t.Fatalf("secondary = %+v, want %+v", pairs[0].Secondary, want)
	}
	if !reflect.DeepEqual(pairs[0].SecondaryIndices, []int{0, 1, 2}) {
		t.Fatalf("secondary indices = %v", pairs[0].SecondaryIndices)
	}
}

func TestSynchronizeFollowsTransitiveOverlap(t *testing.T) {
	primary := cue.Track{{Start: 0, End: 1, Text: "A"}, {Start: 1.5, End: 2.5, Text: "B"}}
	secondary := cue.Track{{Start: 0.5, End: 2, Text: "가"}}

	res := Run(primary, secondary, Options{})
	if len(res.Pairs) != 1 {
		t.Fatalf("expected 1 pair, got %d", len(res.Pairs))
	}
	pair := res.Pairs[0]
	if pair.Primary != (cue.Cue{Start: 0, End: 2.5, Text: "A\nB"}) {
		t.Fatalf("unexpected primary %+v", pair.Primary)
	}
	if pair.Secondary != (cue.Cue{Start: 0, End: 2.5, Text: "가"}) {
		t.Fatalf("unexpected secondary %+v", pair.Secondary)
	}
	if res.Passes != 2 {
		t.Fatalf("passes = %d, want 2", res.Passes)
	}
}

func TestSynchronizeSeparatesDisjointWindows(t *testing.T) {
	primary := cue.Track{
		{Start: 10, End: 12, Text: "late"},
		{Start: 0, End: 2, Text: "early"},
	}
	secondary := cue.Track{
		{Start: 0.5, End: 1.5, Text: "이른"},
		{Start: 10.5, End: 11.5, Text: "늦은"},
	}

	pairs := Synchronize(primary, secondary)
	if len(pairs) != 2 {
		t.Fatalf("expected 2 pairs, got %d", len(pairs))
	}
	if pairs[0].PrimaryText() != "early" || pairs[0].SecondaryText() != "이른" {
		t.Fatalf("first pair = %+v", pairs[0])
	}
	if pairs[1].PrimaryText() != "late" || pairs[1].SecondaryText() != "늦은" {
		t.Fatalf("second pair = %+v", pairs[1])
	}
	if pairs[1].Secondary.Start != 10 || pairs[1].Secondary.End != 12 {
		t.Fatalf("secondary not re-stamped: %+v", pairs[1].Secondary)
	}
}

func TestSynchronizeEmptyTracks(t *testing.T) {
	some := cue.Track{{Start: 0, End: 1, Text: "x"}}
	for _, tc := range []struct {
		name                 string
		primary, secondary   cue.Track
		unmatchedP, unmatchS int
	}{
		{"both empty", nil, nil, 0, 0},
		{"primary empty", nil, some, 0, 1},
		{"secondary empty", some, nil, 1, 0},
	} {
		res := Run(tc.primary, tc.secondary, Options{})
		if len(res.Pairs) != 0 {
			t.Fatalf("%s: expected no pairs, got %d", tc.name, len(res.Pairs))
		}
		if len(res.UnmatchedPrimary) != tc.unmatchedP || len(res.UnmatchedSecondary) != tc.unmatchS {
			t.Fatalf("%s: unmatched = %v / %v", tc.name, res.UnmatchedPrimary, res.UnmatchedSecondary)
		}
	}
}

func TestSynchronizeUsesUnionIntervalNotMembers(t *testing.T) {
	// The secondary cue at 1.1-1.4 overlaps no primary cue on its own but
	// falls inside the primary group's union interval once B joins.
	primary := cue.Track{{Start: 0, End: 1, Text: "A"}, {Start: 1.5, End: 2.5, Text: "B"}}
	secondary := cue.Track{
		{Start: 0.5, End: 2, Text: "가"},
		{Start: 1.1, End: 1.4, Text: "나"},
	}

	pairs := Synchronize(primary, secondary)
	if len(pairs) != 1 {
		t.Fatalf("expected 1 pair, got %d", len(pairs))
	}
	if pairs[0].SecondaryText() != "가\n나" {
		t.Fatalf("secondary text = %q", pairs[0].SecondaryText())
	}
}

func TestSynchronizeIdenticalTextsStayDistinct(t *testing.T) {
	primary := cue.Track{{Start: 0, End: 1, Text: "Yes."}, {Start: 5, End: 6, Text: "Yes."}}
	secondary := cue.Track{{Start: 0, End: 1, Text: "네."}, {Start: 5, End: 6, Text: "네."}}

	res := Run(primary, secondary, Options{})
	if len(res.Pairs) != 2 {
		t.Fatalf("expected 2 pairs, got %d", len(res.Pairs))
	}
	if res.Duplicates != 0 {
		t.Fatalf("unexpected duplicates %d", res.Duplicates)
	}
}

func TestSynchronizeDiscardsDuplicatePrimaryKey(t *testing.T) {
	// The cap splits two primary cues with the same start and text into
	// separate groups; the second group repeats the first pair's key.
	primary := cue.Track{
		{Start: 0, End: 1, Text: "Hi"},
		{Start: 0, End: 5, Text: "Hi"},
	}
	secondary := cue.Track{
		{Start: 0, End: 0.5, Text: "안"},
		{Start: 1.5, End: 5, Text: "녕"},
	}

	res := Run(primary, secondary, Options{MaxGroupDuration: 1})
	if res.Duplicates != 1 {
		t.Fatalf("duplicates = %d, want 1", res.Duplicates)
	}
	if len(res.Pairs) != 1 {
		t.Fatalf("expected 1 pair, got %d", len(res.Pairs))
	}
	if res.Pairs[0].Primary.End != 1 || res.Pairs[0].SecondaryText() != "안" {
		t.Fatalf("kept pair = %+v", res.Pairs[0])
	}
	if len(res.UnmatchedPrimary) != 0 || len(res.UnmatchedSecondary) != 0 {
		t.Fatalf("discarded group members should still be consumed: %v / %v", res.UnmatchedPrimary, res.UnmatchedSecondary)
	}
}

func TestSynchronizeGapTolerance(t *testing.T) {
	primary := cue.Track{{Start: 0, End: 1, Text: "A"}}
	secondary := cue.Track{{Start: 1.2, End: 2, Text: "가"}}

	if pairs := Synchronize(primary, secondary); len(pairs) != 0 {
		t.Fatalf("strict policy should not pair a 0.2s gap, got %d pairs", len(pairs))
	}
	res := Run(primary, secondary, Options{GapTolerance: 0.5})
	if len(res.Pairs) != 1 {
		t.Fatalf("expected 1 pair with gap tolerance, got %d", len(res.Pairs))
	}
	if got := res.Pairs[0].Secondary; got.Start != 0 || got.End != 1 {
		t.Fatalf("secondary not re-stamped to primary: %+v", got)
	}
}

func TestSynchronizeMaxGroupDuration(t *testing.T) {
	primary := cue.Track{{Start: 0, End: 2, Text: "A"}, {Start: 2.5, End: 6, Text: "B"}}
	secondary := cue.Track{{Start: 1, End: 3, Text: "가"}}

	uncapped := Run(primary, secondary, Options{})
	if len(uncapped.Pairs) != 1 || uncapped.Pairs[0].Primary.End != 6 {
		t.Fatalf("uncapped pairs = %+v", uncapped.Pairs)
	}

	capped := Run(primary, secondary, Options{MaxGroupDuration: 4})
	if len(capped.Pairs) != 1 {
		t.Fatalf("expected 1 capped pair, got %d", len(capped.Pairs))
	}
	if capped.Pairs[0].Primary != (cue.Cue{Start: 0, End: 2, Text: "A"}) {
		t.Fatalf("capped primary = %+v", capped.Pairs[0].Primary)
	}
	if !reflect.DeepEqual(capped.UnmatchedPrimary, []int{1}) {
		t.Fatalf("capped unmatched primary = %v", capped.UnmatchedPrimary)
	}
}

func TestSynchronizeProperties(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for round := 0; round < 50; round++ {
		primary := randomTrack(rng, 40, "p")
		secondary := randomTrack(rng, 55, "s")

		first := Run(primary, secondary, Options{})
		second := Run(primary, secondary, Options{})
		if !reflect.DeepEqual(first, second) {
			t.Fatalf("round %d: results differ between identical runs", round)
		}

		usedP := map[int]bool{}
		usedS := map[int]bool{}
		for i, pair := range first.Pairs {
			if pair.Primary.Start != pair.Secondary.Start || pair.Primary.End != pair.Secondary.End {
				t.Fatalf("round %d pair %d: timestamps not aligned: %+v", round, i, pair)
			}
			if i > 0 && first.Pairs[i-1].Start() > pair.Start() {
				t.Fatalf("round %d: output not sorted at %d", round, i)
			}
			if len(pair.PrimaryIndices) == 0 || len(pair.SecondaryIndices) == 0 {
				t.Fatalf("round %d pair %d: empty side", round, i)
			}
			for _, idx := range pair.PrimaryIndices {
				if usedP[idx] {
					t.Fatalf("round %d: primary cue %d consumed twice", round, idx)
				}
				usedP[idx] = true
				assertContains(t, pair.Primary, primary[idx])
			}
			for _, idx := range pair.SecondaryIndices {
				if usedS[idx] {
					t.Fatalf("round %d: secondary cue %d consumed twice", round, idx)
				}
				usedS[idx] = true
				if !cue.Overlaps(secondary[idx], pair.Primary) {
					t.Fatalf("round %d pair %d: secondary cue %+v does not overlap %+v", round, i, secondary[idx], pair.Primary)
				}
			}
		}

		for _, idx := range first.UnmatchedPrimary {
			if usedP[idx] {
				t.Fatalf("round %d: primary %d reported unmatched but consumed", round, idx)
			}
		}
		if len(usedP)+len(first.UnmatchedPrimary) != len(primary) {
			t.Fatalf("round %d: primary accounting mismatch", round)
		}
		if len(usedS)+len(first.UnmatchedSecondary) != len(secondary) {
			t.Fatalf("round %d: secondary accounting mismatch", round)
		}
	}
}

func TestSynchronizeNoOverlapPrimaryNeverAppears(t *testing.T) {
	primary := cue.Track{
		{Start: 0, End: 1, Text: "A"},
		{Start: 20, End: 21, Text: "lonely"},
		{Start: 2, End: 3, Text: "C"},
	}
	secondary := cue.Track{{Start: 0, End: 1, Text: "가"}, {Start: 2, End: 3, Text: "다"}}

	res := Run(primary, secondary, Options{})
	for _, pair := range res.Pairs {
		if slices.Contains(pair.PrimaryIndices, 1) {
			t.Fatalf("lonely primary cue appeared in %+v", pair)
		}
	}
	if !reflect.DeepEqual(res.UnmatchedPrimary, []int{1}) {
		t.Fatalf("unmatched primary = %v", res.UnmatchedPrimary)
	}
}

func assertContains(t *testing.T, outer, inner cue.Cue) {
	t.Helper()
	if inner.Start < outer.Start || inner.End > outer.End {
		t.Fatalf("interval %+v not contained in merged %+v", inner, outer)
	}
}

func randomTrack(rng *rand.Rand, n int, prefix string) cue.Track {
	track := make(cue.Track, 0, n)
	clock := 0.0
	for i := 0; i < n; i++ {
		clock += rng.Float64() * 3
		length := 0.2 + rng.Float64()*4
		track = append(track, cue.Cue{Start: clock, End: clock + length, Text: prefix + string(rune('a'+i%26))})
	}
	rng.Shuffle(len(track), func(i, j int) { track[i], track[j] = track[j], track[i] })
	return track
}
