// Package config loads, normalizes, and validates dualsub configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// DUALSUB_INPUT_DIR. The Config type centralizes every knob the CLI and batch
// runner need: where paired tracks live, how they are named, how cues are
// cleaned, and which optional grouping tolerances apply.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical formats, and clear validation errors.
package config
