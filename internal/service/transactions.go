package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dan9191/finance-tracker/internal/analytics"
	"github.com/Dan9191/finance-tracker/internal/models"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// TransactionInput is the data of a new transaction
type TransactionInput struct {
	Type       models.TransactionType
	Name       string
	CategoryID string
	Amount     float64
	Date       string
	Note       *string
}

// TransactionUpdate holds the fields to change; nil fields are kept.
// The type of a transaction cannot be changed.
type TransactionUpdate struct {
	Name       *string
	CategoryID *string
	Amount     *float64
	Date       *string
	Note       *string
}

func (s *Service) ListTransactions(ctx context.Context, userID string, f analytics.Filter) ([]models.Transaction, error) {
	return s.store.ListTransactions(ctx, userID, f)
}

// GroupedTransactions returns the matching transactions bucketed by day
func (s *Service) GroupedTransactions(ctx context.Context, userID string, f analytics.Filter) ([]models.TransactionsByDate, error) {
	txs, err := s.store.ListTransactions(ctx, userID, f)
	if err != nil {
		return nil, err
	}
	return analytics.GroupTransactionsByDate(txs), nil
}

func (s *Service) GetTransaction(ctx context.Context, userID, id string) (*models.Transaction, error) {
	return s.store.FindTransaction(ctx, userID, id)
}

func (s *Service) CreateTransaction(ctx context.Context, userID string, in TransactionInput) (*models.Transaction, error) {
	if !in.Type.Valid() {
		return nil, fmt.Errorf("unknown transaction type %q", in.Type)
	}
	period, err := analytics.ParseDate(in.Date)
	if err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, userID, in.CategoryID); err != nil {
		return nil, err
	}

	categoryID := in.CategoryID
	t := &models.Transaction{
		ID:         uuid.NewString(),
		UserID:     userID,
		CategoryID: &categoryID,
		Type:       in.Type,
		Name:       in.Name,
		Amount:     in.Amount,
		Date:       in.Date,
		Note:       in.Note,
	}
	if err := s.store.CreateTransaction(ctx, t); err != nil {
		return nil, err
	}
	s.invalidate(ctx, userID, period)

	s.log.WithFields(logrus.Fields{"user_id": userID, "transaction_id": t.ID, "type": t.Type}).Info("Transaction created")
	return s.store.FindTransaction(ctx, userID, t.ID)
}

// UpdateTransaction applies a partial update. Moving a transaction to another
// month invalidates the summaries of both months.
func (s *Service) UpdateTransaction(ctx context.Context, userID, id string, in TransactionUpdate) (*models.Transaction, error) {
	t, err := s.store.FindTransaction(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	oldPeriod, err := analytics.ParseDate(t.Date)
	if err != nil {
		return nil, err
	}

	if in.CategoryID != nil {
		if err := s.checkCategory(ctx, userID, *in.CategoryID); err != nil {
			return nil, err
		}
		t.CategoryID = in.CategoryID
	}
	if in.Name != nil {
		t.Name = *in.Name
	}
	if in.Amount != nil {
		t.Amount = *in.Amount
	}
	if in.Date != nil {
		t.Date = *in.Date
	}
	if in.Note != nil {
		t.Note = in.Note
	}
	newPeriod, err := analytics.ParseDate(t.Date)
	if err != nil {
		return nil, err
	}

	if err := s.store.UpdateTransaction(ctx, t); err != nil {
		return nil, err
	}
	if newPeriod == oldPeriod {
		s.invalidate(ctx, userID, oldPeriod)
	} else {
		s.invalidate(ctx, userID, oldPeriod, newPeriod)
	}

	s.log.WithFields(logrus.Fields{"user_id": userID, "transaction_id": id}).Info("Transaction updated")
	return s.store.FindTransaction(ctx, userID, id)
}

func (s *Service) DeleteTransaction(ctx context.Context, userID, id string) error {
	t, err := s.store.FindTransaction(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.store.DeleteTransaction(ctx, userID, id); err != nil {
		return err
	}
	if period, err := analytics.ParseDate(t.Date); err == nil {
		s.invalidate(ctx, userID, period)
	}
	s.log.WithFields(logrus.Fields{"user_id": userID, "transaction_id": id}).Info("Transaction deleted")
	return nil
}

func (s *Service) checkCategory(ctx context.Context, userID, categoryID string) error {
	_, err := s.store.FindCategory(ctx, userID, categoryID)
	if errors.Is(err, models.ErrNotFound) {
		return models.ErrCategoryNotOwned
	}
	return err
}
