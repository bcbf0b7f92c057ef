package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"vigil/internal/ipc"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var day string
	var pendingOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List captured screenshots and their labels",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.List(day, pendingOnly)
				if err != nil {
					return err
				}

				stdout := cmd.OutOrStdout()
				if len(resp.Records) == 0 {
					if pendingOnly {
						fmt.Fprintf(stdout, "No unlabeled screenshots for %s\n", resp.Day)
					} else {
						fmt.Fprintf(stdout, "No screenshots for %s\n", resp.Day)
					}
					return nil
				}

				rows := make([][]string, 0, len(resp.Records))
				for _, rec := range resp.Records {
					rows = append(rows, []string{rec.Filename, rec.CapturedAt, rec.Classification})
				}
				fmt.Fprintln(stdout, renderTable(
					[]string{"Filename", "Captured", "Label"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft},
				))
				fmt.Fprintf(stdout, "%s: %d on-task, %d off-task, %d unlabeled\n",
					resp.Day, resp.OnTask, resp.OffTask, resp.None)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&day, "day", "d", "", "Day partition (YYYY-MM-DD, default: active day)")
	cmd.Flags().BoolVar(&pendingOnly, "pending", false, "Only show unlabeled screenshots")
	return cmd
}
