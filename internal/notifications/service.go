package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"vigil/internal/config"
)

const userAgent = "Vigil/0.1.0"

// Service defines the notification surface exposed to the monitor and the
// review workflow. Failures are reported to the caller for logging and never
// escalate beyond that.
type Service interface {
	CaptureTaken(ctx context.Context, day, filename string) error
	CaptureClassified(ctx context.Context, filename, classification string) error
	CaptureDiscarded(ctx context.Context, filename string) error
	Error(ctx context.Context, err error, detail string) error
	Test(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	if cfg == nil {
		return noopService{}
	}
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint:   topic,
		client:     &http.Client{Timeout: timeout},
		capture:    cfg.Notifications.Capture,
		classified: cfg.Notifications.Classification,
		errors:     cfg.Notifications.Errors,
	}
}

// Noop returns a service that drops every notification.
func Noop() Service { return noopService{} }

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint   string
	client     *http.Client
	capture    bool
	classified bool
	errors     bool
}

func (n *ntfyService) CaptureTaken(ctx context.Context, day, filename string) error {
	if !n.capture {
		return nil
	}
	return n.send(ctx, payload{
		title:   "Vigil - Capture",
		message: fmt.Sprintf("Screenshot saved to %s: %s", day, filename),
		tags:    []string{"vigil", "capture"},
	})
}

func (n *ntfyService) CaptureClassified(ctx context.Context, filename, classification string) error {
	if !n.classified {
		return nil
	}
	return n.send(ctx, payload{
		title:   "Vigil - Classified",
		message: fmt.Sprintf("%s labeled %s", filename, classification),
		tags:    []string{"vigil", "classified"},
	})
}

func (n *ntfyService) CaptureDiscarded(ctx context.Context, filename string) error {
	if !n.classified {
		return nil
	}
	return n.send(ctx, payload{
		title:   "Vigil - Discarded",
		message: fmt.Sprintf("%s discarded", filename),
		tags:    []string{"vigil", "discarded"},
	})
}

func (n *ntfyService) Error(ctx context.Context, err error, detail string) error {
	if !n.errors || err == nil {
		return nil
	}
	message := err.Error()
	if strings.TrimSpace(detail) != "" {
		message = fmt.Sprintf("%s: %s", detail, message)
	}
	return n.send(ctx, payload{
		title:    "Vigil - Error",
		message:  message,
		tags:     []string{"vigil", "error"},
		priority: "high",
	})
}

func (n *ntfyService) Test(ctx context.Context) error {
	return n.send(ctx, payload{
		title:   "Vigil - Test",
		message: "Test notification from vigil",
		tags:    []string{"vigil", "test"},
	})
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) CaptureTaken(context.Context, string, string) error      { return nil }
func (noopService) CaptureClassified(context.Context, string, string) error { return nil }
func (noopService) CaptureDiscarded(context.Context, string) error          { return nil }
func (noopService) Error(context.Context, error, string) error              { return nil }
func (noopService) Test(context.Context) error                              { return nil }
