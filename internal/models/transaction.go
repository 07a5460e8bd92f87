package models

import "time"

// TransactionType is either income or expense
type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// Valid reports whether t is a known transaction type
func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

// Transaction represents a financial transaction.
// CategoryID is nil once the category has been deleted; Category is the
// resolved category and is only populated by store reads.
type Transaction struct {
	ID         string          `json:"id"`
	UserID     string          `json:"userId"`
	CategoryID *string         `json:"categoryId"`
	Category   *Category       `json:"category"`
	Type       TransactionType `json:"type"`
	Name       string          `json:"name"`
	Amount     float64         `json:"amount"`
	Date       string          `json:"date"` // Format: YYYY-MM-DD
	Note       *string         `json:"note"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}
