package cache

import (
	"context"

	"github.com/Dan9191/finance-tracker/internal/analytics"
	"github.com/Dan9191/finance-tracker/internal/models"
)

// Noop is used when no REDIS_URL is configured; every read misses
type Noop struct{}

func (Noop) Get(context.Context, string, analytics.Period) (*models.BalanceSummary, int64, error) {
	return nil, 0, nil
}

func (Noop) Set(context.Context, *models.BalanceSummary, int64) error { return nil }

func (Noop) Invalidate(context.Context, string, ...analytics.Period) error { return nil }

func (Noop) InvalidateUser(context.Context, string) error { return nil }
