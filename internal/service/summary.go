package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Dan9191/finance-tracker/internal/analytics"
	"github.com/Dan9191/finance-tracker/internal/export"
	"github.com/Dan9191/finance-tracker/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultHistoryMonths is the length of a history without explicit bounds
	DefaultHistoryMonths = 6
	// MaxHistoryMonths bounds a single history request
	MaxHistoryMonths = 24
)

// MonthlySummary returns the balance summary of one month, from cache when possible
func (s *Service) MonthlySummary(ctx context.Context, userID string, month, year int) (*models.BalanceSummary, error) {
	period := analytics.Period{Year: year, Month: month}
	logger := s.log.WithFields(logrus.Fields{"user_id": userID, "period": period.String()})

	cached, version, err := s.summaries.Get(ctx, userID, period)
	if err != nil {
		logger.WithError(err).Warn("Failed to read cached summary")
	}
	if cached != nil {
		logger.Debug("Summary cache hit")
		return cached, nil
	}

	txs, err := s.store.ListTransactions(ctx, userID, analytics.Filter{Month: month, Year: year})
	if err != nil {
		return nil, err
	}
	summary := analytics.ComputeMonthlySummary(userID, txs, month, year)
	if err := s.summaries.Set(ctx, &summary, version); err != nil {
		logger.WithError(err).Warn("Failed to cache summary")
	}
	return &summary, nil
}

// HistoryRange fills in missing history bounds. The range ends with the
// current month and starts DefaultHistoryMonths-1 months before its end.
func HistoryRange(from, to *analytics.Period, now time.Time) (analytics.Period, analytics.Period) {
	end := analytics.PeriodOf(now)
	if to != nil {
		end = *to
	}
	start := end
	for i := 1; i < DefaultHistoryMonths; i++ {
		start = start.Prev()
	}
	if from != nil {
		start = *from
	}
	return start, end
}

// SummaryHistory returns one summary per month from..to inclusive, oldest first
func (s *Service) SummaryHistory(ctx context.Context, userID string, from, to analytics.Period) ([]models.BalanceSummary, error) {
	months := from.MonthsUntil(to)
	if months == 0 {
		return nil, fmt.Errorf("%w: %s is after %s", models.ErrInvalidPeriod, from, to)
	}
	if months > MaxHistoryMonths {
		return nil, fmt.Errorf("%w: at most %d months per request", models.ErrInvalidPeriod, MaxHistoryMonths)
	}

	txs, err := s.store.ListTransactions(ctx, userID, analytics.Filter{StartDate: from.FirstDay(), EndDate: to.LastDay()})
	if err != nil {
		return nil, err
	}
	return analytics.SummaryRange(userID, txs, from, to), nil
}

// ExportSummary renders the summary of one month as XML
func (s *Service) ExportSummary(ctx context.Context, userID string, month, year int) ([]byte, error) {
	summary, err := s.MonthlySummary(ctx, userID, month, year)
	if err != nil {
		return nil, err
	}
	return export.SummaryXML(summary)
}
