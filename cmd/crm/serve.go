package main

import (
	"github.com/spf13/cobra"

	"github.com/corray333/backend-labs/crm/internal/app"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the GraphQL API server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.MustNewApp().Run()
	},
}
