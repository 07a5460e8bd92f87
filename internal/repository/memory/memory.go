// Package memory holds map-backed stores used by DATA_BACKEND=memory and by tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Dan9191/finance-tracker/internal/analytics"
	"github.com/Dan9191/finance-tracker/internal/models"
)

// Store keeps users, categories and transactions in memory
type Store struct {
	mu           sync.RWMutex
	users        map[string]models.User
	categories   map[string]models.Category
	transactions map[string]models.Transaction
	now          func() time.Time
}

// NewStore returns an empty store
func NewStore() *Store {
	return &Store{
		users:        make(map[string]models.User),
		categories:   make(map[string]models.Category),
		transactions: make(map[string]models.Transaction),
		now:          time.Now,
	}
}

// CreateUser stores user; emails are unique case-insensitively
func (s *Store) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return models.ErrEmailTaken
		}
	}
	now := s.now().UTC()
	user.CreatedAt, user.UpdatedAt = now, now
	s.users[user.ID] = copyUser(*user)
	return nil
}

func (s *Store) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			found := copyUser(u)
			return &found, nil
		}
	}
	return nil, models.ErrNotFound
}

func (s *Store) FindUserByID(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	found := copyUser(u)
	return &found, nil
}

// UpdateUser stores the profile fields of user
func (s *Store) UpdateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.users[user.ID]
	if !ok {
		return models.ErrNotFound
	}
	stored.FullName = user.FullName
	stored.DateOfBirth = clone(user.DateOfBirth)
	stored.PhotoURL = clone(user.PhotoURL)
	stored.UpdatedAt = s.now().UTC()
	s.users[user.ID] = stored
	user.UpdatedAt = stored.UpdatedAt
	return nil
}

func (s *Store) ListActiveUsers(_ context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		if u.IsActive {
			users = append(users, copyUser(u))
		}
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].ID < users[j].ID
		}
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users, nil
}

// ListCategories returns the categories of a user ordered by name
func (s *Store) ListCategories(_ context.Context, userID string) ([]models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	categories := make([]models.Category, 0)
	for _, c := range s.categories {
		if c.UserID == userID {
			categories = append(categories, c)
		}
	}
	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})
	return categories, nil
}

func (s *Store) FindCategory(_ context.Context, userID, id string) (*models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.categories[id]
	if !ok || c.UserID != userID {
		return nil, models.ErrNotFound
	}
	return &c, nil
}

func (s *Store) CreateCategory(_ context.Context, c *models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now().UTC()
	c.CreatedAt, c.UpdatedAt = now, now
	s.categories[c.ID] = *c
	return nil
}

// DeleteCategory removes a category and detaches it from transactions
func (s *Store) DeleteCategory(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.categories[id]
	if !ok || c.UserID != userID {
		return models.ErrNotFound
	}
	delete(s.categories, id)
	for txID, t := range s.transactions {
		if t.CategoryID != nil && *t.CategoryID == id {
			t.CategoryID = nil
			s.transactions[txID] = t
		}
	}
	return nil
}

// ListTransactions returns the transactions of a user matching f, newest first
func (s *Store) ListTransactions(_ context.Context, userID string, f analytics.Filter) ([]models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	owned := make([]models.Transaction, 0)
	for _, t := range s.transactions {
		if t.UserID == userID {
			owned = append(owned, s.resolve(t))
		}
	}
	return analytics.FilterTransactions(owned, f), nil
}

func (s *Store) FindTransaction(_ context.Context, userID, id string) (*models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.transactions[id]
	if !ok || t.UserID != userID {
		return nil, models.ErrNotFound
	}
	resolved := s.resolve(t)
	return &resolved, nil
}

func (s *Store) CreateTransaction(_ context.Context, t *models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now().UTC()
	t.CreatedAt, t.UpdatedAt = now, now
	s.transactions[t.ID] = copyTransaction(*t)
	return nil
}

// UpdateTransaction stores the editable fields of t
func (s *Store) UpdateTransaction(_ context.Context, t *models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.transactions[t.ID]
	if !ok || stored.UserID != t.UserID {
		return models.ErrNotFound
	}
	stored.CategoryID = clone(t.CategoryID)
	stored.Name = t.Name
	stored.Amount = t.Amount
	stored.Date = t.Date
	stored.Note = clone(t.Note)
	stored.UpdatedAt = s.now().UTC()
	s.transactions[t.ID] = stored
	t.UpdatedAt = stored.UpdatedAt
	return nil
}

func (s *Store) DeleteTransaction(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.transactions[id]
	if !ok || t.UserID != userID {
		return models.ErrNotFound
	}
	delete(s.transactions, id)
	return nil
}

// resolve returns a copy of t with its category attached. Callers hold mu.
func (s *Store) resolve(t models.Transaction) models.Transaction {
	t = copyTransaction(t)
	t.Category = nil
	if t.CategoryID != nil {
		if c, ok := s.categories[*t.CategoryID]; ok {
			t.Category = &c
		}
	}
	return t
}

func copyUser(u models.User) models.User {
	u.DateOfBirth = clone(u.DateOfBirth)
	u.PhotoURL = clone(u.PhotoURL)
	return u
}

func copyTransaction(t models.Transaction) models.Transaction {
	t.CategoryID = clone(t.CategoryID)
	t.Note = clone(t.Note)
	t.Category = nil
	return t
}

func clone(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
