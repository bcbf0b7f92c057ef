package ledger

import "strings"

// Classification is the final disposition label for one capture.
type Classification string

const (
	ClassOnTask  Classification = "on-task"
	ClassOffTask Classification = "off-task"
	ClassNone    Classification = "none"
)

// ParseClassification maps user-supplied text onto a known label.
func ParseClassification(value string) (Classification, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "on-task", "on", "ontask":
		return ClassOnTask, true
	case "off-task", "off", "offtask":
		return ClassOffTask, true
	case "none":
		return ClassNone, true
	default:
		return "", false
	}
}

// Record is one persisted capture: its image filename and current label.
// Filename doubles as the lookup key and encodes the capture timestamp
// (screenshot_YYYYMMDD_HHMMSS.png).
type Record struct {
	Filename       string         `json:"filename"`
	Classification Classification `json:"classification"`
}

// document is the on-disk shape of one day partition.
type document struct {
	Day         string   `json:"day"`
	Screenshots []Record `json:"screenshots"`
}
