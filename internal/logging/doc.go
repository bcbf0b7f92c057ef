// Package logging builds the slog loggers used across vigil.
//
// Two output formats are supported: a console handler that renders
// single-line human-readable output with a component prefix, and a JSON
// handler for machine consumption. Components receive child loggers via
// NewComponentLogger so every line carries a component attribute.
package logging
