package review

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"vigil/internal/logging"
)

const defaultQueueSize = 64

// Dispatcher is the foreground context for fresh captures: the monitor hands
// a prompt off after persisting, the dispatcher's single goroutine invokes
// the collector synchronously. The hand-off never blocks the capture loop;
// when the queue is full the prompt is dropped and the capture simply stays
// unresolved, like any other skipped decision.
type Dispatcher struct {
	resolver  *Resolver
	collector Collector
	logger    *slog.Logger
	queue     chan Prompt

	// lifecycle serializes Start and Stop so a concurrent Start cannot
	// grow the wait group while Stop is draining it.
	lifecycle sync.Mutex
	mu        sync.Mutex
	running   bool
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

// NewDispatcher builds a dispatcher feeding prompts to collector.
func NewDispatcher(resolver *Resolver, collector Collector, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		resolver:  resolver,
		collector: collector,
		logger:    logging.NewComponentLogger(logger, "dispatcher"),
		queue:     make(chan Prompt, defaultQueueSize),
	}
}

// Start launches the consuming goroutine.
func (d *Dispatcher) Start(ctx context.Context) error {
	d.lifecycle.Lock()
	defer d.lifecycle.Unlock()

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.running {
		return errors.New("dispatcher already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.running = true

	d.wg.Add(1)
	go d.run(runCtx)
	return nil
}

// Stop cancels the consuming goroutine and waits for it to exit. Queued
// prompts that were never collected stay unresolved in the ledger.
func (d *Dispatcher) Stop() {
	d.lifecycle.Lock()
	defer d.lifecycle.Unlock()

	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return
	}
	cancel := d.cancel
	d.running = false
	d.cancel = nil
	d.mu.Unlock()

	cancel()
	d.wg.Wait()
}

// Submit queues a prompt for resolution without blocking.
func (d *Dispatcher) Submit(prompt Prompt) {
	select {
	case d.queue <- prompt:
	default:
		d.logger.Warn("review queue full, capture left unresolved",
			logging.String(logging.FieldFilename, prompt.Record.Filename))
	}
}

func (d *Dispatcher) run(ctx context.Context) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case prompt := <-d.queue:
			if _, err := d.resolver.Resolve(ctx, d.collector, prompt); err != nil {
				d.logger.Warn("capture resolution failed",
					logging.String(logging.FieldFilename, prompt.Record.Filename),
					logging.Error(err))
			}
		}
	}
}
