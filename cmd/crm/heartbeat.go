package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var heartbeatCmd = &cobra.Command{
	Use:   "heartbeat",
	Short: "Probe the API once and append a heartbeat line",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		line := newHeartbeatJob(newAPIClient()).Run(cmd.Context())
		fmt.Fprintln(cmd.OutOrStdout(), line)
	},
}
