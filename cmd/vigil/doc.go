// Package main hosts the vigil CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into IPC
// calls against the vigild daemon: monitoring control, screenshot listing
// and review, capture tuning, and configuration scaffolding. Heavy lifting
// lives in the internal packages; commands stay declarative.
package main
