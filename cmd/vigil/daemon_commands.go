package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"vigil/internal/ipc"
)

func newDaemonCommands(ctx *commandContext) []*cobra.Command {
	startCmd := &cobra.Command{
		Use:   "start",
		Short: "Start screenshot monitoring",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Start()
				if err != nil {
					return err
				}
				stdout := cmd.OutOrStdout()
				if !resp.Started {
					fmt.Fprintln(stdout, resp.Message)
					return nil
				}
				fmt.Fprintln(stdout, "Monitoring started")
				return nil
			})
		},
	}

	stopCmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop screenshot monitoring (the daemon keeps running)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				if _, err := client.Stop(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Monitoring stopped")
				return nil
			})
		},
	}

	shutdownCmd := &cobra.Command{
		Use:   "shutdown",
		Short: "Terminate the vigild daemon process",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Shutdown()
				if err != nil {
					return err
				}
				stdout := cmd.OutOrStdout()
				if resp.ShuttingDown {
					fmt.Fprintln(stdout, "Daemon shutting down")
				} else {
					fmt.Fprintln(stdout, "Shutdown request sent")
				}
				return nil
			})
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show monitoring status and the active day's totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Status()
				if err != nil {
					return err
				}

				stdout := cmd.OutOrStdout()
				colorize := shouldColorize(stdout)

				for _, line := range renderSectionHeader("Monitoring", colorize) {
					fmt.Fprintln(stdout, line)
				}
				runningKind := statusWarn
				runningDetail := "idle"
				if resp.Running {
					runningKind = statusOK
					runningDetail = "capturing"
				}
				fmt.Fprintln(stdout, renderStatusLine("State", runningKind, runningDetail, colorize))
				fmt.Fprintln(stdout, renderStatusLine("Day", statusInfo, resp.Day, colorize))
				fmt.Fprintln(stdout, renderStatusLine("Interval", statusInfo,
					fmt.Sprintf("%d-%d seconds", resp.IntervalMin, resp.IntervalMax), colorize))
				fmt.Fprintln(stdout, renderStatusLine("Pixel size", statusInfo, strconv.Itoa(resp.PixelSize), colorize))
				fmt.Fprintln(stdout, renderStatusLine("Captures", statusInfo,
					fmt.Sprintf("%d this session", resp.Captures), colorize))
				fmt.Fprintln(stdout, renderStatusLine("PID", statusInfo, strconv.Itoa(resp.PID), colorize))
				fmt.Fprintln(stdout)

				for _, line := range renderSectionHeader("Today", colorize) {
					fmt.Fprintln(stdout, line)
				}
				rows := [][]string{
					{"on-task", strconv.Itoa(resp.OnTask)},
					{"off-task", strconv.Itoa(resp.OffTask)},
					{"none", strconv.Itoa(resp.None)},
				}
				fmt.Fprintln(stdout, renderTable([]string{"Label", "Count"}, rows, []columnAlignment{alignLeft, alignRight}))
				return nil
			})
		},
	}

	return []*cobra.Command{startCmd, stopCmd, shutdownCmd, statusCmd}
}
