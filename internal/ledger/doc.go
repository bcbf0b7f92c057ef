// Package ledger persists capture records in day-partitioned JSON files.
//
// Each calendar day owns one partition directory containing a
// screenshots.json ledger and the obscured capture images it references.
// The ledger is loaded fully into memory, mutated there, and rewritten
// whole on every mutation (write-temp-then-rename). Records keep insertion
// order, which equals capture order within a day.
//
// The ledger only tracks records; image files are written by the monitor
// and deleted by the review workflow. Treat this package as the single
// source of truth for the on-disk schema.
package ledger
