// Package daemon wires the capture scheduler, the review dispatcher, and
// the ledger registry into one controllable unit, and enforces that only a
// single vigil daemon runs per machine via a file lock.
//
// The daemon's methods are the operations the IPC layer exposes to the CLI:
// start/stop monitoring, status and day reports, resolving records, and
// runtime reconfiguration.
package daemon
