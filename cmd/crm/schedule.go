package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/corray333/backend-labs/crm/internal/worker/scheduler"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run the heartbeat and order reminder jobs on their intervals",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		heartbeatInterval, err := time.ParseDuration(viper.GetString("jobs.heartbeat.interval"))
		if err != nil {
			return fmt.Errorf("failed to parse heartbeat interval: %w", err)
		}

		remindersInterval, err := time.ParseDuration(viper.GetString("jobs.order_reminders.interval"))
		if err != nil {
			return fmt.Errorf("failed to parse order reminders interval: %w", err)
		}

		client := newAPIClient()
		heartbeatJob := newHeartbeatJob(client)
		remindersJob := newRemindersJob(client)

		workers := []*scheduler.Worker{
			scheduler.NewWorker("heartbeat", heartbeatInterval, func(ctx context.Context) error {
				heartbeatJob.Run(ctx)

				return nil
			}),
			scheduler.NewWorker("order_reminders", remindersInterval, remindersJob.Run),
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		g, gctx := errgroup.WithContext(ctx)
		for _, w := range workers {
			g.Go(func() error {
				w.Start(gctx)

				return nil
			})
		}

		err = g.Wait()
		slog.Info("Scheduler stopped")

		return err
	},
}
