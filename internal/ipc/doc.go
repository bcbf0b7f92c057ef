// Package ipc implements JSON-RPC communication between the vigil CLI and
// the vigild daemon over a Unix domain socket.
package ipc
