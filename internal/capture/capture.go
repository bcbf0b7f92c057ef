package capture

import (
	"context"
	"fmt"
	"image"

	"github.com/kbinani/screenshot"
)

// Source produces raw screen images. Implementations may fail transiently;
// the monitor treats any error as a skipped iteration, never as fatal.
type Source interface {
	Capture(ctx context.Context) (image.Image, error)
}

// ScreenSource captures one display using the platform screenshot backend.
type ScreenSource struct {
	// Display is the display index to capture (0 = primary).
	Display int
}

// Capture grabs the configured display. The context is checked before the
// grab; the grab itself is a single blocking syscall-level operation.
func (s ScreenSource) Capture(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if n := screenshot.NumActiveDisplays(); s.Display >= n {
		return nil, fmt.Errorf("capture: display %d not available (%d active)", s.Display, n)
	}
	img, err := screenshot.CaptureDisplay(s.Display)
	if err != nil {
		return nil, fmt.Errorf("capture display %d: %w", s.Display, err)
	}
	return img, nil
}
