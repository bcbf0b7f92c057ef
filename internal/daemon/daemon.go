package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"vigil/internal/capture"
	"vigil/internal/config"
	"vigil/internal/ledger"
	"vigil/internal/logging"
	"vigil/internal/monitor"
	"vigil/internal/notifications"
	"vigil/internal/review"
)

// Daemon coordinates the capture scheduler and the review dispatcher, and
// enforces single-instance execution through a file lock.
type Daemon struct {
	cfg        *config.Config
	logger     *slog.Logger
	ledgers    *ledger.Registry
	scheduler  *monitor.Scheduler
	dispatcher *review.Dispatcher
	resolver   *review.Resolver
	notifier   notifications.Service
	sessionID  string

	lockPath string
	lock     *flock.Flock

	// mu guards the lifecycle state so racing Start and Stop calls over
	// IPC are serialized.
	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
}

// Status represents daemon runtime information.
type Status struct {
	Running   bool
	Monitor   monitor.Status
	OnTask    int
	OffTask   int
	None      int
	SaveDir   string
	LockPath  string
	SessionID string
	PID       int
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, ledgers *ledger.Registry, scheduler *monitor.Scheduler, dispatcher *review.Dispatcher, resolver *review.Resolver, notifier notifications.Service, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || ledgers == nil || scheduler == nil || resolver == nil {
		return nil, errors.New("daemon requires config, ledgers, scheduler, and resolver")
	}
	if notifier == nil {
		notifier = notifications.Noop()
	}
	return &Daemon{
		cfg:        cfg,
		logger:     logging.NewComponentLogger(logger, "daemon"),
		ledgers:    ledgers,
		scheduler:  scheduler,
		dispatcher: dispatcher,
		resolver:   resolver,
		notifier:   notifier,
		sessionID:  uuid.NewString(),
		lockPath:   cfg.Paths.LockPath,
		lock:       flock.New(cfg.Paths.LockPath),
	}, nil
}

// AcquireLock claims the single-instance lock. The lock spans the process
// lifetime, not just monitoring: launching a second daemon fails even while
// the first one is idle.
func (d *Daemon) AcquireLock() error {
	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("another vigil daemon is already running (lock held at %s)", d.lockPath)
	}
	return nil
}

// ReleaseLock releases the single-instance lock.
func (d *Daemon) ReleaseLock() {
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
}

// Start launches the review dispatcher and the capture scheduler.
func (d *Daemon) Start(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.running {
		return errors.New("monitoring already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	if d.dispatcher != nil {
		if err := d.dispatcher.Start(runCtx); err != nil {
			cancel()
			return fmt.Errorf("start dispatcher: %w", err)
		}
	}
	if err := d.scheduler.Start(runCtx); err != nil {
		if d.dispatcher != nil {
			d.dispatcher.Stop()
		}
		cancel()
		return fmt.Errorf("start scheduler: %w", err)
	}

	d.cancel = cancel
	d.running = true
	d.logger.Info("monitoring started",
		logging.String(logging.FieldSessionID, d.sessionID),
		logging.String(logging.FieldDay, d.scheduler.Status().Day))
	return nil
}

// Stop halts capturing. The scheduler is drained first so no capture can
// arrive at a stopped dispatcher.
func (d *Daemon) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.running {
		return
	}

	d.scheduler.Stop()
	if d.dispatcher != nil {
		d.dispatcher.Stop()
	}
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.running = false
	d.logger.Info("monitoring stopped")
}

// Close stops monitoring and releases daemon resources.
func (d *Daemon) Close() {
	d.Stop()
	d.ReleaseLock()
}

// Status reports runtime state plus the active day's totals.
func (d *Daemon) Status() Status {
	d.mu.Lock()
	running := d.running
	d.mu.Unlock()

	st := Status{
		Running:   running,
		Monitor:   d.scheduler.Status(),
		SaveDir:   d.ledgers.Root(),
		LockPath:  d.lockPath,
		SessionID: d.sessionID,
		PID:       os.Getpid(),
	}
	if store, err := d.ledgers.Get(st.Monitor.Day); err == nil {
		st.OnTask, st.OffTask, st.None = store.Totals()
	}
	return st
}

// Records returns the record sequence for a day partition.
func (d *Daemon) Records(day string) ([]ledger.Record, error) {
	store, err := d.store(day)
	if err != nil {
		return nil, err
	}
	return store.Records(), nil
}

// Pending returns the records of a day that still carry the none label.
func (d *Daemon) Pending(day string) ([]ledger.Record, error) {
	records, err := d.Records(day)
	if err != nil {
		return nil, err
	}
	pending := records[:0:0]
	for _, rec := range records {
		if rec.Classification == ledger.ClassNone {
			pending = append(pending, rec)
		}
	}
	return pending, nil
}

// Totals aggregates the label counts for a day partition.
func (d *Daemon) Totals(day string) (onTask, offTask, none int, err error) {
	store, err := d.store(day)
	if err != nil {
		return 0, 0, 0, err
	}
	onTask, offTask, none = store.Totals()
	return onTask, offTask, none, nil
}

// Resolve applies a decision to one record of a day partition. The record
// must exist; resolving an already-labeled record relabels it.
func (d *Daemon) Resolve(ctx context.Context, day, filename string, decision review.Decision) error {
	store, err := d.store(day)
	if err != nil {
		return err
	}
	rec, ok := store.Find(filename)
	if !ok {
		return fmt.Errorf("no record %q in partition %s", filename, day)
	}

	prompt := review.Prompt{
		Store:     store,
		Record:    rec,
		ImagePath: store.ImagePath(filename),
		Fresh:     false,
	}
	if t, err := capture.ParseFilename(filename); err == nil {
		prompt.TimeLabel = capture.TimeLabel(t)
	}

	fixed := review.CollectorFunc(func(context.Context, review.Prompt) (review.Decision, error) {
		return decision, nil
	})
	_, err = d.resolver.Resolve(ctx, fixed, prompt)
	return err
}

// SetDay switches the active day partition.
func (d *Daemon) SetDay(day string) error {
	return d.scheduler.UpdateDay(day)
}

// SetIntervals reconfigures the capture cadence.
func (d *Daemon) SetIntervals(min, max int) error {
	return d.scheduler.SetIntervals(min, max)
}

// SetPixelSize reconfigures the pixelation factor.
func (d *Daemon) SetPixelSize(size int) error {
	return d.scheduler.SetPixelSize(size)
}

// TestNotification sends a test push through the configured notifier.
func (d *Daemon) TestNotification(ctx context.Context) error {
	return d.notifier.Test(ctx)
}

func (d *Daemon) store(day string) (*ledger.Store, error) {
	if day == "" {
		return d.scheduler.Store()
	}
	if !capture.ValidDay(day) {
		return nil, fmt.Errorf("invalid day %q, want YYYY-MM-DD", day)
	}
	return d.ledgers.Get(day)
}
