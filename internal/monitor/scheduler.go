package monitor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/disintegration/imaging"

	"vigil/internal/capture"
	"vigil/internal/config"
	"vigil/internal/ledger"
	"vigil/internal/logging"
	"vigil/internal/notifications"
	"vigil/internal/obscure"
	"vigil/internal/review"
)

// Handoff receives a freshly persisted capture for resolution. Submit must
// not block; the dispatcher in package review satisfies this.
type Handoff interface {
	Submit(prompt review.Prompt)
}

// Status is a point-in-time snapshot of the scheduler.
type Status struct {
	Running     bool
	Day         string
	Captures    int
	IntervalMin int
	IntervalMax int
	PixelSize   int
}

// Scheduler runs the capture loop: capture, obscure, persist, hand off,
// then sleep a randomized interval. One goroutine; cooperative cancellation
// checked at the wait boundary so an in-flight capture is never cut short
// but no new iteration starts after Stop.
type Scheduler struct {
	source   capture.Source
	handoff  Handoff
	notifier notifications.Service
	logger   *slog.Logger
	ledgers  *ledger.Registry

	mu          sync.Mutex
	day         string
	intervalMin int
	intervalMax int
	pixelSize   int
	store       *ledger.Store
	captures    int
	startedAt   time.Time

	// lifecycle serializes Start and Stop so a concurrent Start cannot
	// grow the wait group while Stop is draining it.
	lifecycle sync.Mutex
	running   bool
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

// New builds a scheduler for the active day. The ledger for that partition
// is opened lazily on Start or UpdateDay.
func New(cfg *config.Config, day string, ledgers *ledger.Registry, source capture.Source, handoff Handoff, notifier notifications.Service, logger *slog.Logger) *Scheduler {
	if notifier == nil {
		notifier = notifications.Noop()
	}
	return &Scheduler{
		source:      source,
		handoff:     handoff,
		notifier:    notifier,
		logger:      logging.NewComponentLogger(logger, "monitor"),
		ledgers:     ledgers,
		day:         day,
		intervalMin: cfg.Capture.IntervalMin,
		intervalMax: cfg.Capture.IntervalMax,
		pixelSize:   cfg.Capture.PixelSize,
	}
}

// Start begins the capture loop. Starting a running scheduler is a no-op.
func (s *Scheduler) Start(ctx context.Context) error {
	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return nil
	}
	if err := s.ensureStoreLocked(); err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.running = true
	s.captures = 0
	s.startedAt = time.Now()

	s.wg.Add(1)
	go s.run(runCtx)

	s.logger.Info("monitoring started",
		logging.String(logging.FieldDay, s.day),
		logging.Int("interval_min", s.intervalMin),
		logging.Int("interval_max", s.intervalMax))
	return nil
}

// Stop cancels the loop and waits for it to exit. No capture happens after
// Stop returns. Stopping a stopped scheduler is a no-op.
func (s *Scheduler) Stop() {
	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()

	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	cancel := s.cancel
	s.running = false
	s.cancel = nil
	s.mu.Unlock()

	cancel()
	s.wg.Wait()
	s.logger.Info("monitoring stopped")
}

// Running reports whether the loop is active.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Store returns the ledger for the active day, opening it if needed.
func (s *Scheduler) Store() (*ledger.Store, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureStoreLocked(); err != nil {
		return nil, err
	}
	return s.store, nil
}

// Status snapshots the scheduler state.
func (s *Scheduler) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{
		Running:     s.running,
		Day:         s.day,
		Captures:    s.captures,
		IntervalMin: s.intervalMin,
		IntervalMax: s.intervalMax,
		PixelSize:   s.pixelSize,
	}
}

// UpdateDay switches the active day partition. The loop keeps running;
// captures from the next iteration land in the new partition. The new
// partition's ledger file is created immediately, matching how a day switch
// behaves when the loop is stopped.
func (s *Scheduler) UpdateDay(day string) error {
	if !capture.ValidDay(day) {
		return fmt.Errorf("monitor: invalid day %q, want YYYY-MM-DD", day)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if day == s.day && s.store != nil {
		return nil
	}

	store, err := s.ledgers.Get(day)
	if err != nil {
		return fmt.Errorf("open partition %s: %w", day, err)
	}
	s.day = day
	s.store = store
	s.logger.Info("active day switched", logging.String(logging.FieldDay, day))
	return nil
}

// SetIntervals reconfigures the capture cadence. Takes effect from the next
// scheduling decision; an in-flight wait is not shortened.
func (s *Scheduler) SetIntervals(min, max int) error {
	if min <= 0 || max <= 0 || min > max {
		return fmt.Errorf("monitor: invalid interval range [%d, %d]", min, max)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.intervalMin = min
	s.intervalMax = max
	return nil
}

// SetPixelSize reconfigures the pixelation factor for subsequent captures.
func (s *Scheduler) SetPixelSize(size int) error {
	if size < 1 {
		return fmt.Errorf("monitor: pixel size must be at least 1, got %d", size)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pixelSize = size
	return nil
}

func (s *Scheduler) ensureStoreLocked() error {
	if s.store != nil && s.store.Day() == s.day {
		return nil
	}
	store, err := s.ledgers.Get(s.day)
	if err != nil {
		return fmt.Errorf("open partition %s: %w", s.day, err)
	}
	s.store = store
	return nil
}

func (s *Scheduler) run(ctx context.Context) {
	defer s.wg.Done()
	for {
		s.iterate(ctx)

		wait := s.waitDuration()
		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
		}
	}
}

// iterate performs one capture cycle. Every failure is contained here: the
// loop never stops because a capture or a write went wrong.
func (s *Scheduler) iterate(ctx context.Context) {
	img, err := s.source.Capture(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		s.logger.Warn("screen capture failed, skipping iteration", logging.Error(err))
		if nerr := s.notifier.Error(ctx, err, "screen capture"); nerr != nil {
			s.logger.Debug("error notification failed", logging.Error(nerr))
		}
		return
	}

	s.mu.Lock()
	store := s.store
	pixelSize := s.pixelSize
	s.mu.Unlock()

	obscured, err := obscure.Pipeline{PixelSize: pixelSize}.Apply(img)
	if err != nil {
		s.logger.Warn("obscure pipeline failed, skipping iteration", logging.Error(err))
		return
	}

	now := time.Now()
	filename := capture.Filename(now)
	imagePath := store.ImagePath(filename)
	if err := imaging.Save(obscured, imagePath); err != nil {
		s.logger.Warn("saving capture failed, skipping iteration",
			logging.String("path", imagePath),
			logging.Error(err))
		return
	}

	record := ledger.Record{Filename: filename, Classification: ledger.ClassNone}
	if err := store.Append(record); err != nil {
		s.logger.Warn("recording capture failed",
			logging.String(logging.FieldFilename, filename),
			logging.Error(err))
		return
	}

	s.mu.Lock()
	s.captures++
	count := s.captures
	elapsed := time.Since(s.startedAt)
	s.mu.Unlock()

	rate := 0.0
	if elapsed > 0 {
		rate = float64(count) / elapsed.Hours()
	}
	s.logger.Info("capture saved",
		logging.String(logging.FieldFilename, filename),
		logging.String(logging.FieldDay, store.Day()),
		logging.Int("captures", count),
		logging.String("rate_per_hour", fmt.Sprintf("%.1f", rate)))

	if s.handoff != nil {
		s.handoff.Submit(review.Prompt{
			Store:     store,
			Record:    record,
			ImagePath: imagePath,
			TimeLabel: capture.TimeLabel(now),
			Fresh:     true,
		})
	}
	if err := s.notifier.CaptureTaken(ctx, store.Day(), filename); err != nil {
		s.logger.Debug("capture notification failed", logging.Error(err))
	}
}

// waitDuration draws the next inter-capture wait uniformly from
// [intervalMin, intervalMax] whole seconds, inclusive on both ends.
func (s *Scheduler) waitDuration() time.Duration {
	s.mu.Lock()
	min, max := s.intervalMin, s.intervalMax
	s.mu.Unlock()
	return jitter(min, max)
}

func jitter(min, max int) time.Duration {
	if max < min {
		min, max = max, min
	}
	seconds := min
	if span := max - min + 1; span > 1 {
		seconds = min + rand.IntN(span)
	}
	return time.Duration(seconds) * time.Second
}
