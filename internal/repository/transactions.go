package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Dan9191/finance-tracker/internal/analytics"
	"github.com/Dan9191/finance-tracker/internal/models"
)

const transactionSelect = `
		SELECT t.id, t.user_id, t.category_id, t.type, t.name, t.amount, t.date, t.note, t.created_at, t.updated_at,
		       c.id, c.user_id, c.name, c.icon, c.color, c.created_at, c.updated_at
		FROM transactions t
		LEFT JOIN categories c ON c.id = t.category_id`

// ListTransactions returns the transactions of a user matching f, with the
// category resolved, newest first.
func (r *Repository) ListTransactions(ctx context.Context, userID string, f analytics.Filter) ([]models.Transaction, error) {
	where, args := filterClause(f, []any{userID})
	query := transactionSelect + `
		WHERE t.user_id = $1` + where + `
		ORDER BY t.date DESC, t.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	// ensure empty array ([]) instead of null when no rows
	transactions := make([]models.Transaction, 0)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return transactions, nil
}

// filterClause renders the same precedence as analytics.Filter.Match as SQL
func filterClause(f analytics.Filter, args []any) (string, []any) {
	next := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	var b strings.Builder
	switch f.Resolve() {
	case analytics.FilterMonth:
		b.WriteString(" AND t.date LIKE " + next(f.Period().Prefix()+"%"))
	case analytics.FilterDate:
		b.WriteString(" AND t.date = " + next(f.Date))
	case analytics.FilterRange:
		b.WriteString(" AND t.date BETWEEN " + next(f.StartDate))
		b.WriteString(" AND " + next(f.EndDate))
	case analytics.FilterFrom:
		b.WriteString(" AND t.date >= " + next(f.StartDate))
	case analytics.FilterUntil:
		b.WriteString(" AND t.date <= " + next(f.EndDate))
	}
	return b.String(), args
}

// FindTransaction retrieves a transaction owned by userID
func (r *Repository) FindTransaction(ctx context.Context, userID, id string) (*models.Transaction, error) {
	query := transactionSelect + `
		WHERE t.id = $1 AND t.user_id = $2`
	t, err := scanTransaction(r.db.QueryRowContext(ctx, query, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}
	return t, nil
}

// CreateTransaction creates a new transaction in the database
func (r *Repository) CreateTransaction(ctx context.Context, t *models.Transaction) error {
	query := `
		INSERT INTO transactions (id, user_id, category_id, type, name, amount, date, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		t.ID, t.UserID, nullString(t.CategoryID), string(t.Type), t.Name, t.Amount, t.Date, nullString(t.Note),
	).Scan(&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// UpdateTransaction stores the editable fields of t
func (r *Repository) UpdateTransaction(ctx context.Context, t *models.Transaction) error {
	query := `
		UPDATE transactions
		SET category_id = $3, name = $4, amount = $5, date = $6, note = $7, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND user_id = $2
		RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query,
		t.ID, t.UserID, nullString(t.CategoryID), t.Name, t.Amount, t.Date, nullString(t.Note),
	).Scan(&t.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	return nil
}

// DeleteTransaction removes a transaction owned by userID
func (r *Repository) DeleteTransaction(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	if n == 0 {
		return models.ErrNotFound
	}
	return nil
}

func scanTransaction(s scanner) (*models.Transaction, error) {
	t := &models.Transaction{}
	var (
		typ                                string
		categoryID, note                   sql.NullString
		cID, cUserID, cName, cIcon, cColor sql.NullString
		cCreatedAt, cUpdatedAt             sql.NullTime
	)
	err := s.Scan(&t.ID, &t.UserID, &categoryID, &typ, &t.Name, &t.Amount, &t.Date, &note, &t.CreatedAt, &t.UpdatedAt,
		&cID, &cUserID, &cName, &cIcon, &cColor, &cCreatedAt, &cUpdatedAt)
	if err != nil {
		return nil, err
	}
	t.Type = models.TransactionType(typ)
	t.CategoryID = stringPtr(categoryID)
	t.Note = stringPtr(note)
	if cID.Valid {
		t.Category = &models.Category{
			ID:        cID.String,
			UserID:    cUserID.String,
			Name:      cName.String,
			Icon:      cIcon.String,
			Color:     cColor.String,
			CreatedAt: timeOrZero(cCreatedAt),
			UpdatedAt: timeOrZero(cUpdatedAt),
		}
	}
	return t, nil
}

func timeOrZero(nt sql.NullTime) time.Time {
	if !nt.Valid {
		return time.Time{}
	}
	return nt.Time
}
