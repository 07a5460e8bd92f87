package memory

import (
	"context"
	"testing"
	"time"

	"github.com/Dan9191/finance-tracker/internal/analytics"
	"github.com/Dan9191/finance-tracker/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

// newClockedStore returns a store whose clock advances one second per write
func newClockedStore() *Store {
	s := NewStore()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	s.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	return s
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	s := newClockedStore()

	user := &models.User{ID: "u1", FullName: "Ann", Email: "ann@example.com", IsActive: true}
	require.NoError(t, s.CreateUser(ctx, user))
	assert.False(t, user.CreatedAt.IsZero())

	err := s.CreateUser(ctx, &models.User{ID: "u2", Email: "ANN@example.com"})
	assert.ErrorIs(t, err, models.ErrEmailTaken)

	found, err := s.FindUserByEmail(ctx, "ann@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", found.ID)

	found.FullName = "Ann B"
	found.PhotoURL = strPtr("/uploads/u1/profile_u1.jpg")
	require.NoError(t, s.UpdateUser(ctx, found))

	again, err := s.FindUserByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ann B", again.FullName)
	require.NotNil(t, again.PhotoURL)
	assert.True(t, again.UpdatedAt.After(again.CreatedAt))

	_, err = s.FindUserByID(ctx, "nope")
	assert.ErrorIs(t, err, models.ErrNotFound)

	require.NoError(t, s.CreateUser(ctx, &models.User{ID: "u3", Email: "off@example.com"}))
	active, err := s.ListActiveUsers(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "u1", active[0].ID)
}

func TestCategoryOwnership(t *testing.T) {
	ctx := context.Background()
	s := newClockedStore()

	require.NoError(t, s.CreateCategory(ctx, &models.Category{ID: "c2", UserID: "u1", Name: "Travel"}))
	require.NoError(t, s.CreateCategory(ctx, &models.Category{ID: "c1", UserID: "u1", Name: "Food"}))
	require.NoError(t, s.CreateCategory(ctx, &models.Category{ID: "c3", UserID: "u2", Name: "Salary"}))

	cats, err := s.ListCategories(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, "Food", cats[0].Name)
	assert.Equal(t, "Travel", cats[1].Name)

	_, err = s.FindCategory(ctx, "u1", "c3")
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.ErrorIs(t, s.DeleteCategory(ctx, "u1", "c3"), models.ErrNotFound)
}

func TestDeleteCategoryDetachesTransactions(t *testing.T) {
	ctx := context.Background()
	s := newClockedStore()

	require.NoError(t, s.CreateCategory(ctx, &models.Category{ID: "c1", UserID: "u1", Name: "Food"}))
	require.NoError(t, s.CreateTransaction(ctx, &models.Transaction{
		ID: "t1", UserID: "u1", CategoryID: strPtr("c1"), Type: models.Expense, Name: "Lunch", Amount: 10, Date: "2025-01-05",
	}))

	tx, err := s.FindTransaction(ctx, "u1", "t1")
	require.NoError(t, err)
	require.NotNil(t, tx.Category)
	assert.Equal(t, "Food", tx.Category.Name)

	require.NoError(t, s.DeleteCategory(ctx, "u1", "c1"))

	tx, err = s.FindTransaction(ctx, "u1", "t1")
	require.NoError(t, err)
	assert.Nil(t, tx.CategoryID)
	assert.Nil(t, tx.Category)
}

func TestListTransactionsFiltersAndOrders(t *testing.T) {
	ctx := context.Background()
	s := newClockedStore()

	for _, tx := range []models.Transaction{
		{ID: "a", UserID: "u1", Type: models.Income, Amount: 1, Date: "2025-01-05"},
		{ID: "b", UserID: "u1", Type: models.Expense, Amount: 2, Date: "2025-01-06"},
		{ID: "c", UserID: "u1", Type: models.Expense, Amount: 3, Date: "2025-01-05"},
		{ID: "d", UserID: "u1", Type: models.Expense, Amount: 4, Date: "2025-02-01"},
		{ID: "e", UserID: "u2", Type: models.Expense, Amount: 5, Date: "2025-01-05"},
	} {
		tx := tx
		require.NoError(t, s.CreateTransaction(ctx, &tx))
	}

	txs, err := s.ListTransactions(ctx, "u1", analytics.Filter{Month: 1, Year: 2025})
	require.NoError(t, err)
	ids := make([]string, 0, len(txs))
	for _, tx := range txs {
		ids = append(ids, tx.ID)
	}
	assert.Equal(t, []string{"b", "c", "a"}, ids)

	all, err := s.ListTransactions(ctx, "u1", analytics.Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 4)

	none, err := s.ListTransactions(ctx, "u3", analytics.Filter{})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestUpdateAndDeleteTransaction(t *testing.T) {
	ctx := context.Background()
	s := newClockedStore()

	tx := &models.Transaction{ID: "t1", UserID: "u1", Type: models.Expense, Name: "Taxi", Amount: 7, Date: "2025-03-01"}
	require.NoError(t, s.CreateTransaction(ctx, tx))

	tx.Amount = 9
	tx.Note = strPtr("airport")
	tx.Type = models.Income
	require.NoError(t, s.UpdateTransaction(ctx, tx))

	got, err := s.FindTransaction(ctx, "u1", "t1")
	require.NoError(t, err)
	assert.Equal(t, 9.0, got.Amount)
	assert.Equal(t, "airport", *got.Note)
	assert.Equal(t, models.Expense, got.Type, "type is not editable")

	other := *tx
	other.UserID = "u2"
	assert.ErrorIs(t, s.UpdateTransaction(ctx, &other), models.ErrNotFound)
	assert.ErrorIs(t, s.DeleteTransaction(ctx, "u2", "t1"), models.ErrNotFound)

	require.NoError(t, s.DeleteTransaction(ctx, "u1", "t1"))
	_, err = s.FindTransaction(ctx, "u1", "t1")
	assert.ErrorIs(t, err, models.ErrNotFound)
}
