package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"vigil/internal/ipc"
	"vigil/internal/ledger"
	"vigil/internal/review"
)

func newReviewCommand(ctx *commandContext) *cobra.Command {
	var day string

	cmd := &cobra.Command{
		Use:   "review",
		Short: "Interactively label unlabeled screenshots",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.List(day, true)
				if err != nil {
					return err
				}

				stdout := cmd.OutOrStdout()
				if len(resp.Records) == 0 {
					fmt.Fprintf(stdout, "Nothing to review for %s\n", resp.Day)
					return nil
				}
				fmt.Fprintf(stdout, "%d screenshot(s) awaiting review for %s\n", len(resp.Records), resp.Day)

				cfg := ctx.configValue()
				collector := review.TerminalCollector{In: cmd.InOrStdin(), Out: stdout}
				resolved := 0
				for _, rec := range resp.Records {
					prompt := review.Prompt{
						Record:    ledger.Record{Filename: rec.Filename, Classification: ledger.Classification(rec.Classification)},
						TimeLabel: rec.CapturedAt,
					}
					if cfg != nil {
						prompt.ImagePath = filepath.Join(cfg.Capture.SaveDir, resp.Day, rec.Filename)
					}

					decision, err := collector.Collect(cmd.Context(), prompt)
					if err != nil {
						return err
					}
					if decision == review.DecisionSkip {
						continue
					}
					result, err := client.Resolve(resp.Day, rec.Filename, string(decision))
					if err != nil {
						return err
					}
					fmt.Fprintln(stdout, result.Message)
					resolved++
				}

				fmt.Fprintf(stdout, "\nResolved %d of %d screenshot(s)\n", resolved, len(resp.Records))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&day, "day", "d", "", "Day partition (YYYY-MM-DD, default: active day)")
	return cmd
}
