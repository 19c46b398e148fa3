package services

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/dwitter/internal/server/config"
	"github.com/dmitrijs2005/dwitter/internal/server/models"
	"github.com/dmitrijs2005/dwitter/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/dwitter/internal/server/repositories/tweets"
	"github.com/dmitrijs2005/dwitter/internal/server/repositories/users"
	"github.com/stretchr/testify/require"
)

// fakeHasher prefixes the password instead of running bcrypt.
type fakeHasher struct {
	mu       sync.Mutex
	compares int
	hashErr  error
}

func (h *fakeHasher) Hash(password []byte) ([]byte, error) {
	if h.hashErr != nil {
		return nil, h.hashErr
	}
	return append([]byte("hashed:"), password...), nil
}

func (h *fakeHasher) Compare(hash, password []byte) bool {
	h.mu.Lock()
	h.compares++
	h.mu.Unlock()
	return bytes.Equal(hash, append([]byte("hashed:"), password...))
}

func testConfig() *config.Config {
	return &config.Config{SecretKey: "k", TokenValidityDuration: time.Hour}
}

// stubManager lets a test swap single repositories while keeping the rest of
// the memory store.
type stubManager struct {
	*repomanager.MemoryRepositoryManager
	users  users.Repository
	tweets tweets.Repository
}

func (m *stubManager) Users() users.Repository {
	if m.users != nil {
		return m.users
	}
	return m.MemoryRepositoryManager.Users()
}

func (m *stubManager) Tweets() tweets.Repository {
	if m.tweets != nil {
		return m.tweets
	}
	return m.MemoryRepositoryManager.Tweets()
}

func (m *stubManager) WithTx(ctx context.Context, fn func(ctx context.Context, r repomanager.Repositories) error) error {
	return m.MemoryRepositoryManager.WithTx(ctx, func(ctx context.Context, _ repomanager.Repositories) error {
		return fn(ctx, m)
	})
}

type failingUsers struct{ err error }

func (f failingUsers) Create(context.Context, *models.User) (*models.User, error) { return nil, f.err }
func (f failingUsers) GetUserByLogin(context.Context, string) (*models.User, error) {
	return nil, f.err
}
func (f failingUsers) GetUserByID(context.Context, string) (*models.User, error) { return nil, f.err }

func mustSignup(t *testing.T, s *UserService, username string) *AuthResult {
	t.Helper()
	res, err := s.Signup(context.Background(), SignupDetails{
		Name: "User " + username, UserName: username, Email: username + "@example.com", Password: "secret1",
	})
	require.NoError(t, err)
	return res
}
