// Package main hosts the dualsub CLI entrypoint and command graph.
//
// The Cobra-based command tree turns terminal invocations into single-pair
// syncs, directory batches, run history queries, and configuration
// scaffolding. It centralizes configuration resolution and logger setup so
// subcommands only translate flags and render results.
//
// Keep this package lean: extend the internal packages first, then surface the
// behaviour through a command or flag here.
package main
