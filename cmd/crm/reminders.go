package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var remindersCmd = &cobra.Command{
	Use:   "order-reminders",
	Short: "Log orders placed in the last lookback window",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := newRemindersJob(newAPIClient()).Run(cmd.Context()); err != nil {
			return fmt.Errorf("order-reminders: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Order reminders processed!")

		return nil
	},
}
