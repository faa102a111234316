// Package main provides the crm binary: the GraphQL API server, its migrations
// and the maintenance jobs that poll it.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/corray333/backend-labs/crm/internal/config"
)

// configFile is set by the --config flag.
var configFile string

func main() {
	os.Exit(execute(os.Args[1:]))
}

// execute runs the command line and returns the process exit code.
func execute(args []string) int {
	rootCmd.SetArgs(args)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), err)

		return 1
	}

	return 0
}

var rootCmd = &cobra.Command{
	Use:           "crm",
	Short:         "CRM data API",
	Long:          `CRM serves customers, products and orders over GraphQL and runs the heartbeat and order reminder jobs.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.MustInit(configFile)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: ./config.yaml or /etc/crm/config.yaml)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(heartbeatCmd)
	rootCmd.AddCommand(remindersCmd)
	rootCmd.AddCommand(scheduleCmd)
}
