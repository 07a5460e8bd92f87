package service

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Dan9191/finance-tracker/internal/analytics"
	"github.com/Dan9191/finance-tracker/internal/config"
	"github.com/Dan9191/finance-tracker/internal/models"
	"github.com/Dan9191/finance-tracker/internal/repository/memory"
	"github.com/Dan9191/finance-tracker/internal/storage"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

// recordingCache is an in-process SummaryCache that remembers invalidations
type recordingCache struct {
	mu          sync.Mutex
	entries     map[string]models.BalanceSummary
	versions    map[string]int64
	invalidated []string
	userWipes   []string
	gets        int
}

func newRecordingCache() *recordingCache {
	return &recordingCache{
		entries:  make(map[string]models.BalanceSummary),
		versions: make(map[string]int64),
	}
}

func cacheKey(userID string, p analytics.Period) string { return userID + ":" + p.String() }

func (c *recordingCache) Get(_ context.Context, userID string, p analytics.Period) (*models.BalanceSummary, int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	s, ok := c.entries[cacheKey(userID, p)]
	if !ok {
		return nil, c.versions[userID], nil
	}
	return &s, c.versions[userID], nil
}

func (c *recordingCache) Set(_ context.Context, s *models.BalanceSummary, version int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.versions[s.UserID] != version {
		return nil
	}
	c.entries[cacheKey(s.UserID, analytics.Period{Year: s.Year, Month: s.Month})] = *s
	return nil
}

func (c *recordingCache) Invalidate(_ context.Context, userID string, periods ...analytics.Period) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range periods {
		delete(c.entries, cacheKey(userID, p))
		c.invalidated = append(c.invalidated, p.String())
	}
	if len(periods) > 0 {
		c.versions[userID]++
	}
	return nil
}

func (c *recordingCache) InvalidateUser(_ context.Context, userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		if strings.HasPrefix(k, userID+":") {
			delete(c.entries, k)
		}
	}
	c.userWipes = append(c.userWipes, userID)
	c.versions[userID]++
	return nil
}

type testEnv struct {
	svc   *Service
	store Store
	cache *recordingCache
	cfg   *config.Config
}

// hookedStore runs afterList once a listing has been read, so tests can
// interleave writes with a summary computation
type hookedStore struct {
	*memory.Store
	afterList func()
}

func (s *hookedStore) ListTransactions(ctx context.Context, userID string, f analytics.Filter) ([]models.Transaction, error) {
	txs, err := s.Store.ListTransactions(ctx, userID, f)
	if s.afterList != nil {
		s.afterList()
	}
	return txs, err
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithStore(t, memory.NewStore())
}

func newTestEnvWithStore(t *testing.T, store Store) *testEnv {
	t.Helper()
	cfg := &config.Config{
		JWTSecret:      "test-secret",
		AccessTokenTTL: time.Hour,
		UploadDir:      t.TempDir(),
		PhotoBaseURL:   "/uploads",
	}
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	cache := newRecordingCache()
	photos := storage.NewLocalPhotoStore(cfg.UploadDir, cfg.PhotoBaseURL)
	return &testEnv{
		svc:   NewService(store, cache, photos, logger, cfg),
		store: store,
		cache: cache,
		cfg:   cfg,
	}
}

func (e *testEnv) register(t *testing.T, email string) *models.User {
	t.Helper()
	resp, err := e.svc.Register(context.Background(), RegisterInput{FullName: "Test User", Email: email, Password: "secret1"})
	require.NoError(t, err)
	return resp.User
}

func (e *testEnv) category(t *testing.T, userID, name string) *models.Category {
	t.Helper()
	c, err := e.svc.CreateCategory(context.Background(), userID, CategoryInput{Name: name, Icon: "i", Color: "#000"})
	require.NoError(t, err)
	return c
}

func (e *testEnv) transaction(t *testing.T, userID string, in TransactionInput) *models.Transaction {
	t.Helper()
	tx, err := e.svc.CreateTransaction(context.Background(), userID, in)
	require.NoError(t, err)
	return tx
}

func strPtr(s string) *string { return &s }
