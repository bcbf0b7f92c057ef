package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"vigil/internal/ipc"
	"vigil/internal/review"
)

func newClassifyCommand(ctx *commandContext) *cobra.Command {
	var day string

	cmd := &cobra.Command{
		Use:   "classify <filename> <on-task|off-task|none>",
		Short: "Label a single screenshot",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			decision, ok := review.ParseDecision(args[1])
			if !ok {
				return fmt.Errorf("unknown label %q, want on-task, off-task, or none", args[1])
			}
			if _, labeled := decision.Classification(); !labeled {
				return fmt.Errorf("%q is not a label; use `vigil discard` to delete a screenshot", args[1])
			}
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Resolve(day, args[0], string(decision))
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), resp.Message)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&day, "day", "d", "", "Day partition (YYYY-MM-DD, default: active day)")
	return cmd
}

func newDiscardCommand(ctx *commandContext) *cobra.Command {
	var day string

	cmd := &cobra.Command{
		Use:   "discard <filename>",
		Short: "Delete a screenshot and drop its record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Resolve(day, args[0], string(review.DecisionDiscard))
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), resp.Message)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&day, "day", "d", "", "Day partition (YYYY-MM-DD, default: active day)")
	return cmd
}
