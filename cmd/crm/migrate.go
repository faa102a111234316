package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/corray333/backend-labs/crm/internal/dal/database"
)

var migrateStatus bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := database.NewClient(context.Background(), database.ConfigFromEnv())
		if err != nil {
			return err
		}
		defer client.Close()

		if migrateStatus {
			return client.MigrationStatus()
		}

		if err := client.Migrate(); err != nil {
			return err
		}

		slog.Info("Migrations applied", "driver", client.Driver())

		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateStatus, "status", false, "print migration status instead of applying")
}
