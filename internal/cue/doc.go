// Package cue defines the subtitle cue model shared by the extractor, the
// synchronizer, and the writers.
//
// It owns the strict interval-overlap predicate that drives grouping and the
// interval merge that collapses a group of same-track cues into one. Nothing
// here performs I/O or logging; callers treat these as pure helpers.
package cue
