package main

import (
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/corray333/backend-labs/crm/internal/dal/crmapi"
	"github.com/corray333/backend-labs/crm/internal/jobs/heartbeat"
	"github.com/corray333/backend-labs/crm/internal/jobs/joblog"
	"github.com/corray333/backend-labs/crm/internal/jobs/reminders"
)

func jobTimeout() time.Duration {
	return time.Duration(viper.GetInt("jobs.timeout_seconds")) * time.Second
}

func newAPIClient() *crmapi.Client {
	return crmapi.NewClient(viper.GetString("jobs.endpoint"), jobTimeout())
}

func newHeartbeatJob(client *crmapi.Client) *heartbeat.Job {
	return heartbeat.NewJob(
		client,
		joblog.NewAppender(afero.NewOsFs(), viper.GetString("jobs.heartbeat.log_path")),
		jobTimeout(),
	)
}

func newRemindersJob(client *crmapi.Client) *reminders.Job {
	return reminders.NewJob(
		client,
		joblog.NewAppender(afero.NewOsFs(), viper.GetString("jobs.order_reminders.log_path")),
		viper.GetInt("jobs.order_reminders.lookback_days"),
		jobTimeout(),
	)
}
