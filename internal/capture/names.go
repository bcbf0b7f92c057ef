package capture

import (
	"fmt"
	"strings"
	"time"
)

const (
	filenamePrefix  = "screenshot_"
	filenameExt     = ".png"
	timestampLayout = "20060102_150405"
	// DayLayout is the partition key format shared across the repo.
	DayLayout = "2006-01-02"
)

// Filename builds the canonical capture filename for a timestamp:
// screenshot_YYYYMMDD_HHMMSS.png. The name doubles as the ledger key.
func Filename(t time.Time) string {
	return filenamePrefix + t.Format(timestampLayout) + filenameExt
}

// TimeLabel renders a capture timestamp for human prompts,
// e.g. "3:04 PM (2006/01/02)".
func TimeLabel(t time.Time) string {
	return t.Format("3:04 PM (2006/01/02)")
}

// ParseFilename recovers the capture timestamp encoded in a filename.
func ParseFilename(name string) (time.Time, error) {
	trimmed := strings.TrimSuffix(strings.TrimPrefix(name, filenamePrefix), filenameExt)
	if trimmed == name || !strings.HasPrefix(name, filenamePrefix) {
		return time.Time{}, fmt.Errorf("capture: %q is not a capture filename", name)
	}
	t, err := time.ParseInLocation(timestampLayout, trimmed, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("capture: parse timestamp in %q: %w", name, err)
	}
	return t, nil
}

// ValidDay reports whether day is a well-formed YYYY-MM-DD partition key.
func ValidDay(day string) bool {
	_, err := time.Parse(DayLayout, day)
	return err == nil
}

// Today returns the current day partition key.
func Today() string {
	return time.Now().Format(DayLayout)
}
