// Package alignment synchronizes two independently timed subtitle tracks.
//
// Starting from each unconsumed primary cue, Run collects every overlapping
// secondary cue, then alternately widens both sides against the other side's
// union interval until a full pass admits nothing. Each resulting group is
// merged into one primary cue and one secondary cue that carries the primary
// timing. Membership is tracked by original index, so cues with identical
// text never collide and a consumed cue is never reused.
//
// The package is a pure function of its inputs: no logging, no I/O, no
// errors. Callers report unmatched cues from the returned Result.
package alignment
