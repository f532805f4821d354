// Package pairjob runs the subtitle pipeline for track pairs: read and clean
// both tracks, synchronize them, and write the per-language outputs.
//
// RunPair handles a single pair. Discover scans an input directory for
// <base>_<language>.<ext> partners, and RunBatch fans a list of specs out to
// a bounded worker pool while holding a lock on each output directory and
// recording outcomes to the run history. Failures are classified through
// ErrorKind so callers can report them without string matching.
package pairjob
