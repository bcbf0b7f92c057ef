package review

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// TerminalCollector asks for a decision on an interactive terminal. It backs
// the `vigil review` command.
type TerminalCollector struct {
	In  io.Reader
	Out io.Writer
}

// Collect prints the capture details and reads one answer per prompt.
// Unrecognized input re-asks; EOF defers the capture.
func (t TerminalCollector) Collect(ctx context.Context, prompt Prompt) (Decision, error) {
	verb := "taken"
	if !prompt.Fresh {
		verb = "revisited"
	}
	fmt.Fprintf(t.Out, "\nScreenshot %s at %s\n", verb, prompt.TimeLabel)
	fmt.Fprintf(t.Out, "  %s\n", prompt.ImagePath)
	if prompt.Record.Classification != "" {
		fmt.Fprintf(t.Out, "  current label: %s\n", prompt.Record.Classification)
	}

	scanner := bufio.NewScanner(t.In)
	for {
		if err := ctx.Err(); err != nil {
			return DecisionSkip, err
		}
		fmt.Fprint(t.Out, "[o]n-task / o[f]f-task / [n]one / [x] discard / [enter] skip > ")
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return DecisionSkip, err
			}
			fmt.Fprintln(t.Out)
			return DecisionSkip, nil
		}

		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "o", "on", "on-task":
			return DecisionOnTask, nil
		case "f", "off", "off-task":
			return DecisionOffTask, nil
		case "n", "none":
			return DecisionNone, nil
		case "x", "discard":
			return DecisionDiscard, nil
		case "", "s", "skip":
			return DecisionSkip, nil
		default:
			fmt.Fprintln(t.Out, "unrecognized answer")
		}
	}
}
