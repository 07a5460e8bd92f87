// Package scheduler runs the monthly digest job.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dan9191/finance-tracker/internal/analytics"
	"github.com/Dan9191/finance-tracker/internal/models"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const jobTimeout = 10 * time.Minute

// SummarySource lists the recipients and computes their summaries
type SummarySource interface {
	ActiveUsers(ctx context.Context) ([]models.User, error)
	MonthlySummary(ctx context.Context, userID string, month, year int) (*models.BalanceSummary, error)
}

// Notifier delivers one digest
type Notifier interface {
	SendMonthlyDigest(user models.User, summary *models.BalanceSummary) error
}

// DigestScheduler mails every active user the summary of the previous month
type DigestScheduler struct {
	cron     *cron.Cron
	source   SummarySource
	notifier Notifier
	log      *logrus.Logger
	now      func() time.Time
}

// NewDigestScheduler registers the digest job on a standard five-field cron
// schedule, such as "0 8 1 * *".
func NewDigestScheduler(schedule string, source SummarySource, notifier Notifier, log *logrus.Logger) (*DigestScheduler, error) {
	s := &DigestScheduler{
		cron:     cron.New(cron.WithChain(cron.Recover(cronLogger{log}), cron.SkipIfStillRunning(cronLogger{log}))),
		source:   source,
		notifier: notifier,
		log:      log,
		now:      time.Now,
	}
	if _, err := s.cron.AddFunc(schedule, s.run); err != nil {
		return nil, fmt.Errorf("invalid digest schedule %q: %w", schedule, err)
	}
	return s, nil
}

// Start runs the schedule in its own goroutine
func (s *DigestScheduler) Start() {
	s.cron.Start()
	s.log.Info("Digest scheduler started")
}

// Stop prevents new runs and waits for a running job until ctx is done
func (s *DigestScheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.log.Info("Digest scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *DigestScheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()
	if err := s.SendDigests(ctx); err != nil {
		s.log.WithError(err).Error("Digest run finished with errors")
	}
}

// SendDigests mails the previous month's summary to every active user that
// had any transactions in it. A failure for one user does not stop the rest.
func (s *DigestScheduler) SendDigests(ctx context.Context) error {
	period := analytics.PeriodOf(s.now()).Prev()
	users, err := s.source.ActiveUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	var errs []error
	sent := 0
	for _, user := range users {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		summary, err := s.source.MonthlySummary(ctx, user.ID, period.Month, period.Year)
		if err != nil {
			errs = append(errs, fmt.Errorf("summary for %s: %w", user.ID, err))
			continue
		}
		if summary.TotalIncome == 0 && summary.TotalExpense == 0 {
			continue
		}
		if err := s.notifier.SendMonthlyDigest(user, summary); err != nil {
			errs = append(errs, fmt.Errorf("digest for %s: %w", user.ID, err))
			continue
		}
		sent++
	}

	s.log.WithFields(logrus.Fields{"period": period.String(), "users": len(users), "sent": sent}).Info("Monthly digests sent")
	return errors.Join(errs...)
}

// cronLogger adapts logrus to cron.Logger
type cronLogger struct {
	log *logrus.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.WithFields(fields(keysAndValues)).Debug(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.WithFields(fields(keysAndValues)).WithError(err).Error(msg)
}

func fields(keysAndValues []any) logrus.Fields {
	f := make(logrus.Fields, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		f[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}
	return f
}
