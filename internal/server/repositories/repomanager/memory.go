package repomanager

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/dwitter/internal/server/repositories/tweets"
	"github.com/dmitrijs2005/dwitter/internal/server/repositories/users"
)

// MemoryRepositoryManager keeps all data in process memory. Units of work run
// one at a time; they are not rolled back on error, so callers mutate only
// after every check has passed.
type MemoryRepositoryManager struct {
	txMu   sync.Mutex
	users  *users.MemoryRepository
	tweets *tweets.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	u := users.NewMemoryRepository()
	return &MemoryRepositoryManager{
		users:  u,
		tweets: tweets.NewMemoryRepository(u),
	}
}

func (m *MemoryRepositoryManager) Users() users.Repository   { return m.users }
func (m *MemoryRepositoryManager) Tweets() tweets.Repository { return m.tweets }

func (m *MemoryRepositoryManager) WithTx(ctx context.Context, fn func(ctx context.Context, r Repositories) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx, m)
}

// RunMigrations is a no-op for the memory store.
func (m *MemoryRepositoryManager) RunMigrations(ctx context.Context) error { return nil }

func (m *MemoryRepositoryManager) Close() error { return nil }
