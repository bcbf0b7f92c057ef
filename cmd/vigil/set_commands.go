package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"vigil/internal/ipc"
)

func newSetCommand(ctx *commandContext) *cobra.Command {
	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Adjust the running daemon's capture settings",
	}

	setCmd.AddCommand(&cobra.Command{
		Use:   "day <YYYY-MM-DD>",
		Short: "Switch the active day partition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.SetDay(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Active day set to %s\n", resp.Day)
				return nil
			})
		},
	})

	setCmd.AddCommand(&cobra.Command{
		Use:   "interval <min-seconds> <max-seconds>",
		Short: "Set the capture interval bounds",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			minVal, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("parse min interval: %w", err)
			}
			maxVal, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("parse max interval: %w", err)
			}
			return ctx.withClient(func(client *ipc.Client) error {
				if _, err := client.SetIntervals(minVal, maxVal); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Capture interval set to %d-%d seconds\n", minVal, maxVal)
				return nil
			})
		},
	})

	setCmd.AddCommand(&cobra.Command{
		Use:   "pixel-size <factor>",
		Short: "Set the pixelation factor applied to captures",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			size, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("parse pixel size: %w", err)
			}
			return ctx.withClient(func(client *ipc.Client) error {
				if _, err := client.SetPixelSize(size); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Pixel size set to %d\n", size)
				return nil
			})
		},
	})

	return setCmd
}
