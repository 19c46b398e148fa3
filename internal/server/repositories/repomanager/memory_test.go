package repomanager

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/dwitter/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_SharedStore(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryRepositoryManager()
	var _ RepositoryManager = m

	u, err := m.Users().Create(ctx, &models.User{Name: "Alice", UserName: "alice"})
	require.NoError(t, err)

	tw, err := m.Tweets().Create(ctx, "hello world", u.ID)
	require.NoError(t, err)

	err = m.WithTx(ctx, func(ctx context.Context, r Repositories) error {
		got, err := r.Tweets().GetByIDForUpdate(ctx, tw.ID)
		if err != nil {
			return err
		}
		_, err = r.Tweets().Update(ctx, got.ID, "edited")
		return err
	})
	require.NoError(t, err)

	got, err := m.Tweets().GetByID(ctx, tw.ID)
	require.NoError(t, err)
	assert.Equal(t, "edited", got.Text)

	assert.NoError(t, m.RunMigrations(ctx))
	assert.NoError(t, m.Close())
}

func TestMemory_WithTxSerializes(t *testing.T) {
	m := NewMemoryRepositoryManager()

	var inside, maxInside int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = m.WithTx(context.Background(), func(ctx context.Context, r Repositories) error {
				n := atomic.AddInt32(&inside, 1)
				for {
					cur := atomic.LoadInt32(&maxInside)
					if n <= cur || atomic.CompareAndSwapInt32(&maxInside, cur, n) {
						break
					}
				}
				time.Sleep(time.Millisecond)
				atomic.AddInt32(&inside, -1)
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInside)
}

func TestMemory_WithTxPropagatesErrorAndContext(t *testing.T) {
	m := NewMemoryRepositoryManager()

	boom := errors.New("boom")
	err := m.WithTx(context.Background(), func(ctx context.Context, r Repositories) error { return boom })
	assert.ErrorIs(t, err, boom)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err = m.WithTx(ctx, func(ctx context.Context, r Repositories) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}
