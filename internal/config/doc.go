// Package config loads, normalizes, and validates vigil configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob
// the daemon and CLI need: the capture cadence, the pixelation factor, the
// partition root, and runtime file locations.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths and clear validation errors.
package config
