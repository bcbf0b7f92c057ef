package capture

import (
	"testing"
	"time"
)

func TestFilenameRoundTrip(t *testing.T) {
	ts := time.Date(2026, 8, 31, 14, 5, 9, 0, time.Local)
	name := Filename(ts)
	if name != "screenshot_20260831_140509.png" {
		t.Fatalf("Filename = %q", name)
	}

	parsed, err := ParseFilename(name)
	if err != nil {
		t.Fatalf("ParseFilename: %v", err)
	}
	if !parsed.Equal(ts) {
		t.Errorf("parsed %v, want %v", parsed, ts)
	}
}

func TestParseFilenameRejectsForeignNames(t *testing.T) {
	for _, name := range []string{
		"",
		"screenshots.json",
		"screenshot_.png",
		"screenshot_20260831.png",
		"photo_20260831_140509.png",
		"screenshot_notadate_atall.png",
	} {
		if _, err := ParseFilename(name); err == nil {
			t.Errorf("ParseFilename(%q) succeeded, want error", name)
		}
	}
}

func TestTimeLabel(t *testing.T) {
	ts := time.Date(2026, 8, 31, 15, 4, 0, 0, time.Local)
	if got := TimeLabel(ts); got != "3:04 PM (2026/08/31)" {
		t.Errorf("TimeLabel = %q", got)
	}

	morning := time.Date(2026, 8, 31, 9, 30, 0, 0, time.Local)
	if got := TimeLabel(morning); got != "9:30 AM (2026/08/31)" {
		t.Errorf("TimeLabel = %q", got)
	}
}

func TestValidDay(t *testing.T) {
	if !ValidDay("2026-08-31") {
		t.Error("2026-08-31 rejected")
	}
	for _, day := range []string{"", "20260831", "2026-13-01", "2026-08-32", "tomorrow"} {
		if ValidDay(day) {
			t.Errorf("ValidDay(%q) accepted", day)
		}
	}
}
