// Package reminders logs the orders placed within a recent window.
package reminders

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/corray333/backend-labs/crm/internal/dal/crmapi"
	"github.com/corray333/backend-labs/crm/internal/jobs/joblog"
)

// TimestampLayout formats the bracketed timestamp of every reminder line.
const TimestampLayout = "2006-01-02 15:04:05"

// DefaultLookbackDays is the window used when none is configured.
const DefaultLookbackDays = 7

// OrderSource lists orders dated on or after a day.
type OrderSource interface {
	OrdersSince(ctx context.Context, since time.Time) ([]crmapi.Order, error)
}

// Job writes one reminder line per recent order.
type Job struct {
	source       OrderSource
	log          *joblog.Appender
	lookbackDays int
	timeout      time.Duration
	now          func() time.Time
}

// NewJob creates a reminder job. Non-positive lookbackDays uses DefaultLookbackDays.
func NewJob(source OrderSource, log *joblog.Appender, lookbackDays int, timeout time.Duration) *Job {
	if lookbackDays <= 0 {
		lookbackDays = DefaultLookbackDays
	}

	return &Job{
		source:       source,
		log:          log,
		lookbackDays: lookbackDays,
		timeout:      timeout,
		now:          time.Now,
	}
}

// Since returns local midnight lookbackDays before now.
func Since(now time.Time, lookbackDays int) time.Time {
	day := now.AddDate(0, 0, -lookbackDays)

	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, now.Location())
}

// Run appends a line for every order in the window followed by a summary, or
// a single line when there are none. A failure is appended as an ERROR line and
// returned.
func (j *Job) Run(ctx context.Context) error {
	now := j.now()
	stamp := "[" + now.Format(TimestampLayout) + "]"

	if j.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.timeout)
		defer cancel()
	}

	orders, err := j.source.OrdersSince(ctx, Since(now, j.lookbackDays))
	if err != nil {
		return j.fail(stamp, err)
	}

	var lines []string
	if len(orders) == 0 {
		lines = []string{fmt.Sprintf("%s No orders found in the last %d days", stamp, j.lookbackDays)}
	} else {
		lines = make([]string, 0, len(orders)+1)
		for _, o := range orders {
			lines = append(lines, fmt.Sprintf("%s Order ID: %s, Customer Email: %s, Order Date: %s",
				stamp, o.ID, o.CustomerEmail, o.OrderDate))
		}
		lines = append(lines, fmt.Sprintf("%s Order reminders batch completed. Processed %d orders", stamp, len(orders)))
	}

	if err := j.log.Append(lines...); err != nil {
		return j.fail(stamp, err)
	}

	slog.Info("Order reminders processed", "orders", len(orders))

	return nil
}

func (j *Job) fail(stamp string, err error) error {
	slog.Error("Order reminders failed", "error", err)

	if logErr := j.log.Append(fmt.Sprintf("%s ERROR: %v", stamp, err)); logErr != nil {
		return errors.Join(err, logErr)
	}

	return err
}
