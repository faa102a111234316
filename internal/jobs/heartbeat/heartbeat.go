// Package heartbeat records that the CRM is alive and whether its GraphQL endpoint answers.
package heartbeat

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/corray333/backend-labs/crm/internal/jobs/joblog"
)

// TimestampLayout formats heartbeat timestamps as DD/MM/YYYY-HH:MM:SS.
const TimestampLayout = "02/01/2006-15:04:05"

// LivenessChecker probes the GraphQL endpoint.
type LivenessChecker interface {
	Hello(ctx context.Context) (string, error)
}

// Job writes one heartbeat line per run.
type Job struct {
	checker LivenessChecker
	log     *joblog.Appender
	timeout time.Duration
	now     func() time.Time
}

// NewJob creates a heartbeat job. A zero timeout means no deadline beyond ctx.
func NewJob(checker LivenessChecker, log *joblog.Appender, timeout time.Duration) *Job {
	return &Job{
		checker: checker,
		log:     log,
		timeout: timeout,
		now:     time.Now,
	}
}

// Run probes the endpoint and appends the result. It never fails: probe errors
// are part of the line and write errors are logged. The line is returned.
func (j *Job) Run(ctx context.Context) string {
	timestamp := j.now().Format(TimestampLayout)

	if j.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.timeout)
		defer cancel()
	}

	var status string
	hello, err := j.checker.Hello(ctx)
	if err != nil {
		status = fmt.Sprintf(" - GraphQL endpoint error: %v", err)
	} else {
		status = fmt.Sprintf(" - GraphQL endpoint responsive: %s", hello)
	}

	line := timestamp + " CRM is alive" + status

	if err := j.log.Append(line); err != nil {
		slog.Error("Failed to write heartbeat log", "path", j.log.Path(), "error", err)
	} else {
		slog.Info("Heartbeat logged", "line", line)
	}

	return line
}
