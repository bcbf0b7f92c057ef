package review

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"vigil/internal/logging"
	"vigil/internal/notifications"
)

// Resolver applies collected decisions to the ledger. It is the only
// component allowed to rewrite a record's classification or delete a record;
// everything else reads ledger state.
type Resolver struct {
	logger   *slog.Logger
	notifier notifications.Service
}

// NewResolver builds a resolver. Both arguments may be nil.
func NewResolver(logger *slog.Logger, notifier notifications.Service) *Resolver {
	if notifier == nil {
		notifier = notifications.Noop()
	}
	return &Resolver{
		logger:   logging.NewComponentLogger(logger, "review"),
		notifier: notifier,
	}
}

// Resolve asks the collector about the capture in prompt and applies the
// outcome. Resolving the same record again is always legal; a skipped
// capture simply stays unresolved. The returned Decision reports what
// happened even when a ledger write fails.
func (r *Resolver) Resolve(ctx context.Context, collector Collector, prompt Prompt) (Decision, error) {
	if collector == nil {
		return DecisionSkip, errors.New("review: collector is required")
	}
	if prompt.Store == nil {
		return DecisionSkip, errors.New("review: prompt needs a ledger store")
	}

	decision, err := collector.Collect(ctx, prompt)
	if err != nil {
		return DecisionSkip, fmt.Errorf("collect decision: %w", err)
	}

	switch decision {
	case DecisionOnTask, DecisionOffTask, DecisionNone:
		return decision, r.applyLabel(ctx, prompt, decision)
	case DecisionDiscard:
		return decision, r.applyDiscard(ctx, prompt)
	case DecisionSkip:
		r.logger.Debug("capture left unresolved",
			logging.String(logging.FieldFilename, prompt.Record.Filename))
		return decision, nil
	default:
		return DecisionSkip, fmt.Errorf("review: unknown decision %q", decision)
	}
}

func (r *Resolver) applyLabel(ctx context.Context, prompt Prompt, decision Decision) error {
	class, _ := decision.Classification()
	found, err := prompt.Store.UpdateClassification(prompt.Record.Filename, class)
	if err != nil {
		return fmt.Errorf("update classification: %w", err)
	}
	if !found {
		r.logger.Warn("record vanished before classification",
			logging.String(logging.FieldFilename, prompt.Record.Filename),
			logging.String(logging.FieldDay, prompt.Store.Day()))
		return nil
	}

	r.logger.Info("capture classified",
		logging.String(logging.FieldFilename, prompt.Record.Filename),
		logging.String("classification", string(class)))
	if err := r.notifier.CaptureClassified(ctx, prompt.Record.Filename, string(class)); err != nil {
		r.logger.Warn("classification notification failed", logging.Error(err))
	}
	return nil
}

func (r *Resolver) applyDiscard(ctx context.Context, prompt Prompt) error {
	// Image first. A missing or undeletable image is logged, not escalated;
	// the record removal still proceeds so the ledger never references a
	// capture the user asked to destroy.
	if err := os.Remove(prompt.ImagePath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		r.logger.Warn("discard could not delete image",
			logging.String("path", prompt.ImagePath),
			logging.Error(err))
	}

	found, err := prompt.Store.Remove(prompt.Record.Filename)
	if err != nil {
		return fmt.Errorf("remove record: %w", err)
	}
	if !found {
		r.logger.Warn("record vanished before discard",
			logging.String(logging.FieldFilename, prompt.Record.Filename))
		return nil
	}

	r.logger.Info("capture discarded",
		logging.String(logging.FieldFilename, prompt.Record.Filename))
	if err := r.notifier.CaptureDiscarded(ctx, prompt.Record.Filename); err != nil {
		r.logger.Warn("discard notification failed", logging.Error(err))
	}
	return nil
}
