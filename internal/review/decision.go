package review

import (
	"context"
	"strings"

	"vigil/internal/ledger"
)

// Decision is the outcome a collector returns for one capture.
type Decision string

const (
	DecisionOnTask  Decision = "on-task"
	DecisionOffTask Decision = "off-task"
	DecisionNone    Decision = "none"
	// DecisionDiscard permanently removes the capture and its record.
	DecisionDiscard Decision = "discard"
	// DecisionSkip leaves the record unresolved; it stays re-visitable.
	DecisionSkip Decision = "no-decision"
)

// Classification maps a labeling decision onto its ledger label. The bool is
// false for Discard and Skip, which carry no label.
func (d Decision) Classification() (ledger.Classification, bool) {
	switch d {
	case DecisionOnTask:
		return ledger.ClassOnTask, true
	case DecisionOffTask:
		return ledger.ClassOffTask, true
	case DecisionNone:
		return ledger.ClassNone, true
	default:
		return "", false
	}
}

// ParseDecision maps user-supplied text onto a Decision.
func ParseDecision(value string) (Decision, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "on-task", "on", "ontask":
		return DecisionOnTask, true
	case "off-task", "off", "offtask":
		return DecisionOffTask, true
	case "none":
		return DecisionNone, true
	case "discard", "x":
		return DecisionDiscard, true
	case "skip", "no-decision", "":
		return DecisionSkip, true
	default:
		return "", false
	}
}

// Prompt carries everything a collector needs to ask about one capture.
type Prompt struct {
	Store     *ledger.Store
	Record    ledger.Record
	ImagePath string
	TimeLabel string
	// Fresh distinguishes a just-taken capture from one re-opened for review.
	Fresh bool
}

// Collector gathers a human decision for one capture. Collect may block
// while the human responds; it is always invoked from the dispatcher's
// goroutine or a CLI command, never from the capture loop.
type Collector interface {
	Collect(ctx context.Context, prompt Prompt) (Decision, error)
}

// CollectorFunc adapts a function to the Collector interface.
type CollectorFunc func(ctx context.Context, prompt Prompt) (Decision, error)

func (f CollectorFunc) Collect(ctx context.Context, prompt Prompt) (Decision, error) {
	return f(ctx, prompt)
}

// Deferring is the headless daemon's default collector: every capture is
// left unresolved until a human reviews it through the CLI.
type Deferring struct{}

func (Deferring) Collect(context.Context, Prompt) (Decision, error) {
	return DecisionSkip, nil
}
