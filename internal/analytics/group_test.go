package analytics

import (
	"testing"

	"github.com/Dan9191/finance-tracker/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupTransactionsByDate(t *testing.T) {
	groups := GroupTransactionsByDate(exampleTransactions())

	require.Len(t, groups, 2)
	assert.Equal(t, "2025-01-06", groups[0].Date)
	assert.Equal(t, 0.0, groups[0].TotalIncome)
	assert.Equal(t, 10.0, groups[0].TotalExpense)
	assert.Len(t, groups[0].Transactions, 1)

	assert.Equal(t, "2025-01-05", groups[1].Date)
	assert.Equal(t, 100.0, groups[1].TotalIncome)
	assert.Equal(t, 40.0, groups[1].TotalExpense)
	assert.Len(t, groups[1].Transactions, 2)
}

func TestGroupTransactionsByDateOrdering(t *testing.T) {
	a := tx(models.Expense, 1, "2025-01-02", rent)
	a.ID = "a"
	b := tx(models.Expense, 2, "2024-12-31", rent)
	b.ID = "b"
	c := tx(models.Income, 3, "2025-01-02", salary)
	c.ID = "c"
	d := tx(models.Expense, 4, "2025-01-10", nil)
	d.ID = "d"

	groups := GroupTransactionsByDate([]models.Transaction{a, b, c, d})
	require.Len(t, groups, 3)

	for i := 1; i < len(groups); i++ {
		assert.Greater(t, groups[i-1].Date, groups[i].Date, "dates must be strictly descending")
	}

	bucket := groups[1]
	assert.Equal(t, "2025-01-02", bucket.Date)
	require.Len(t, bucket.Transactions, 2)
	assert.Equal(t, "a", bucket.Transactions[0].ID)
	assert.Equal(t, "c", bucket.Transactions[1].ID)
	assert.Equal(t, 3.0, bucket.TotalIncome)
	assert.Equal(t, 1.0, bucket.TotalExpense)
}

func TestGroupTransactionsByDateEmpty(t *testing.T) {
	groups := GroupTransactionsByDate(nil)
	assert.NotNil(t, groups)
	assert.Empty(t, groups)
}
