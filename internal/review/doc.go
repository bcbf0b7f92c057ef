// Package review resolves the disposition of captures.
//
// A capture starts unresolved the instant its record lands in the ledger.
// The Resolver drives exactly one resolution attempt: it asks a Collector
// for a human decision and applies the outcome (label, discard, or skip).
// The Dispatcher decouples the capture loop from however long the human
// takes: the monitor submits prompts without blocking, the dispatcher's
// goroutine collects decisions one at a time.
//
// Re-resolving a record is always legal, which is how skipped captures get
// revisited through `vigil review`.
package review
