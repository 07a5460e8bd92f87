package service

import (
	"context"
	"io"

	"github.com/Dan9191/finance-tracker/internal/analytics"
	"github.com/Dan9191/finance-tracker/internal/config"
	"github.com/Dan9191/finance-tracker/internal/models"
	"github.com/sirupsen/logrus"
)

// UserStore persists users
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByID(ctx context.Context, id string) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	ListActiveUsers(ctx context.Context) ([]models.User, error)
}

// CategoryStore persists categories. Every lookup is scoped to the owner.
type CategoryStore interface {
	ListCategories(ctx context.Context, userID string) ([]models.Category, error)
	FindCategory(ctx context.Context, userID, id string) (*models.Category, error)
	CreateCategory(ctx context.Context, c *models.Category) error
	DeleteCategory(ctx context.Context, userID, id string) error
}

// TransactionStore persists transactions. Listed and found transactions have
// their category resolved; lists are newest first.
type TransactionStore interface {
	ListTransactions(ctx context.Context, userID string, f analytics.Filter) ([]models.Transaction, error)
	FindTransaction(ctx context.Context, userID, id string) (*models.Transaction, error)
	CreateTransaction(ctx context.Context, t *models.Transaction) error
	UpdateTransaction(ctx context.Context, t *models.Transaction) error
	DeleteTransaction(ctx context.Context, userID, id string) error
}

// Store is implemented by repository.Repository and memory.Store
type Store interface {
	UserStore
	CategoryStore
	TransactionStore
}

// SummaryCache holds computed monthly summaries. Get returns nil on a miss
// along with the user's cache version; Set drops the summary when the cache
// was invalidated since that version was read.
type SummaryCache interface {
	Get(ctx context.Context, userID string, p analytics.Period) (*models.BalanceSummary, int64, error)
	Set(ctx context.Context, summary *models.BalanceSummary, version int64) error
	Invalidate(ctx context.Context, userID string, periods ...analytics.Period) error
	InvalidateUser(ctx context.Context, userID string) error
}

// PhotoStore saves profile photos and returns their public URL
type PhotoStore interface {
	SavePhoto(ctx context.Context, userID, filename string, r io.Reader) (string, error)
}

// Service handles business logic
type Service struct {
	store     Store
	summaries SummaryCache
	photos    PhotoStore
	log       *logrus.Logger
	config    *config.Config
}

// NewService initializes a new service
func NewService(store Store, summaries SummaryCache, photos PhotoStore, log *logrus.Logger, cfg *config.Config) *Service {
	return &Service{
		store:     store,
		summaries: summaries,
		photos:    photos,
		log:       log,
		config:    cfg,
	}
}

// invalidate drops cached summaries; failures only cost a recomputation
func (s *Service) invalidate(ctx context.Context, userID string, periods ...analytics.Period) {
	if err := s.summaries.Invalidate(ctx, userID, periods...); err != nil {
		s.log.WithFields(logrus.Fields{"user_id": userID, "error": err}).Warn("Failed to invalidate cached summaries")
	}
}
