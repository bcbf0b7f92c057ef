// Package monitor drives the periodic capture loop.
//
// Each iteration captures the screen, obscures it, writes the image into
// the active day partition, appends a ledger record, and hands the capture
// to the review dispatcher without waiting for the human decision. Between
// iterations the loop sleeps a uniformly random number of seconds drawn
// from the configured interval, so capture times stay unpredictable.
//
// Capture-source failures skip the iteration and the loop keeps running;
// only Stop (or context cancellation) ends it. Day, interval, and pixel
// size may be reconfigured while running and apply from the next iteration.
package monitor
