package service

import (
	"context"
	"testing"

	"github.com/Dan9191/finance-tracker/internal/analytics"
	"github.com/Dan9191/finance-tracker/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTransactionChecksCategoryOwner(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	ann := env.register(t, "ann@example.com")
	bob := env.register(t, "bob@example.com")
	bobsFood := env.category(t, bob.ID, "Food")

	_, err := env.svc.CreateTransaction(ctx, ann.ID, TransactionInput{
		Type: models.Expense, Name: "Lunch", CategoryID: bobsFood.ID, Amount: 10, Date: "2025-01-05",
	})
	assert.ErrorIs(t, err, models.ErrCategoryNotOwned)

	_, err = env.svc.CreateTransaction(ctx, ann.ID, TransactionInput{
		Type: models.Expense, Name: "Lunch", CategoryID: "missing", Amount: 10, Date: "2025-01-05",
	})
	assert.ErrorIs(t, err, models.ErrCategoryNotOwned)
}

func TestTransactionLifecycleInvalidatesSummaries(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	user := env.register(t, "ann@example.com")
	food := env.category(t, user.ID, "Food")
	travel := env.category(t, user.ID, "Travel")

	tx := env.transaction(t, user.ID, TransactionInput{
		Type: models.Expense, Name: "Lunch", CategoryID: food.ID, Amount: 10, Date: "2025-01-05",
	})
	require.NotNil(t, tx.Category)
	assert.Equal(t, "Food", tx.Category.Name)
	assert.Equal(t, []string{"2025-01"}, env.cache.invalidated)

	updated, err := env.svc.UpdateTransaction(ctx, user.ID, tx.ID, TransactionUpdate{
		CategoryID: &travel.ID,
		Date:       strPtr("2025-02-01"),
		Note:       strPtr("moved"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Travel", updated.Category.Name)
	assert.Equal(t, "Lunch", updated.Name)
	assert.Equal(t, "moved", *updated.Note)
	assert.Equal(t, []string{"2025-01", "2025-01", "2025-02"}, env.cache.invalidated)

	_, err = env.svc.UpdateTransaction(ctx, user.ID, tx.ID, TransactionUpdate{CategoryID: strPtr("missing")})
	assert.ErrorIs(t, err, models.ErrCategoryNotOwned)

	require.NoError(t, env.svc.DeleteTransaction(ctx, user.ID, tx.ID))
	assert.Equal(t, "2025-02", env.cache.invalidated[len(env.cache.invalidated)-1])

	assert.ErrorIs(t, env.svc.DeleteTransaction(ctx, user.ID, tx.ID), models.ErrNotFound)
	_, err = env.svc.GetTransaction(ctx, user.ID, tx.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestTransactionsAreScopedToOwner(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	ann := env.register(t, "ann@example.com")
	bob := env.register(t, "bob@example.com")
	food := env.category(t, ann.ID, "Food")

	tx := env.transaction(t, ann.ID, TransactionInput{
		Type: models.Expense, Name: "Lunch", CategoryID: food.ID, Amount: 10, Date: "2025-01-05",
	})

	_, err := env.svc.GetTransaction(ctx, bob.ID, tx.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
	_, err = env.svc.UpdateTransaction(ctx, bob.ID, tx.ID, TransactionUpdate{Name: strPtr("x")})
	assert.ErrorIs(t, err, models.ErrNotFound)

	list, err := env.svc.ListTransactions(ctx, bob.ID, analytics.Filter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestGroupedTransactions(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	user := env.register(t, "ann@example.com")
	food := env.category(t, user.ID, "Food")
	salary := env.category(t, user.ID, "Salary")

	env.transaction(t, user.ID, TransactionInput{Type: models.Income, Name: "Pay", CategoryID: salary.ID, Amount: 100, Date: "2025-01-05"})
	env.transaction(t, user.ID, TransactionInput{Type: models.Expense, Name: "Lunch", CategoryID: food.ID, Amount: 30, Date: "2025-01-06"})
	env.transaction(t, user.ID, TransactionInput{Type: models.Expense, Name: "Dinner", CategoryID: food.ID, Amount: 20, Date: "2025-01-06"})
	env.transaction(t, user.ID, TransactionInput{Type: models.Expense, Name: "Taxi", CategoryID: food.ID, Amount: 5, Date: "2025-02-01"})

	groups, err := env.svc.GroupedTransactions(ctx, user.ID, analytics.Filter{Month: 1, Year: 2025})
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "2025-01-06", groups[0].Date)
	assert.Equal(t, 50.0, groups[0].TotalExpense)
	assert.Len(t, groups[0].Transactions, 2)
	assert.Equal(t, "2025-01-05", groups[1].Date)
	assert.Equal(t, 100.0, groups[1].TotalIncome)
}

func TestDeleteCategoryWipesUserSummaries(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	user := env.register(t, "ann@example.com")
	food := env.category(t, user.ID, "Food")

	tx := env.transaction(t, user.ID, TransactionInput{
		Type: models.Expense, Name: "Lunch", CategoryID: food.ID, Amount: 10, Date: "2025-01-05",
	})

	require.NoError(t, env.svc.DeleteCategory(ctx, user.ID, food.ID))
	assert.Equal(t, []string{user.ID}, env.cache.userWipes)

	got, err := env.svc.GetTransaction(ctx, user.ID, tx.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Category)

	assert.ErrorIs(t, env.svc.DeleteCategory(ctx, user.ID, food.ID), models.ErrNotFound)
}
