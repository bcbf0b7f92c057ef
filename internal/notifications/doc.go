// Package notifications pushes optional status updates through ntfy.
//
// The service is a no-op unless an ntfy topic is configured. Individual
// event kinds can be toggled; delivery failures are returned for logging
// and never interrupt capture or review.
package notifications
