package service

import (
	"context"

	"github.com/Dan9191/finance-tracker/internal/models"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// CategoryInput is the data of a new category
type CategoryInput struct {
	Name  string
	Icon  string
	Color string
}

func (s *Service) ListCategories(ctx context.Context, userID string) ([]models.Category, error) {
	return s.store.ListCategories(ctx, userID)
}

func (s *Service) CreateCategory(ctx context.Context, userID string, in CategoryInput) (*models.Category, error) {
	c := &models.Category{
		ID:     uuid.NewString(),
		UserID: userID,
		Name:   in.Name,
		Icon:   in.Icon,
		Color:  in.Color,
	}
	if err := s.store.CreateCategory(ctx, c); err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"user_id": userID, "category_id": c.ID}).Info("Category created")
	return c, nil
}

// DeleteCategory removes a category. Its transactions stay but lose their
// category, which changes every breakdown they appear in.
func (s *Service) DeleteCategory(ctx context.Context, userID, id string) error {
	if err := s.store.DeleteCategory(ctx, userID, id); err != nil {
		return err
	}
	if err := s.summaries.InvalidateUser(ctx, userID); err != nil {
		s.log.WithFields(logrus.Fields{"user_id": userID, "error": err}).Warn("Failed to invalidate cached summaries")
	}
	s.log.WithFields(logrus.Fields{"user_id": userID, "category_id": id}).Info("Category deleted")
	return nil
}
