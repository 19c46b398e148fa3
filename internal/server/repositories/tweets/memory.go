package tweets

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/dwitter/internal/common"
	"github.com/dmitrijs2005/dwitter/internal/server/models"
	"github.com/google/uuid"
)

// AuthorLookup resolves the author fields joined onto every tweet.
type AuthorLookup interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

type storedTweet struct {
	models.Tweet
	seq uint64
}

// MemoryRepository keeps tweets in process memory. GetByIDForUpdate does not
// lock; callers serialize through the repository manager's transaction.
type MemoryRepository struct {
	mu      sync.RWMutex
	authors AuthorLookup
	items   map[string]*storedTweet
	seq     uint64
}

func NewMemoryRepository(authors AuthorLookup) *MemoryRepository {
	return &MemoryRepository{
		authors: authors,
		items:   make(map[string]*storedTweet),
	}
}

func (r *MemoryRepository) GetAll(ctx context.Context) ([]*models.Tweet, error) {
	return r.list(ctx, "")
}

func (r *MemoryRepository) GetAllByUsername(ctx context.Context, username string) ([]*models.Tweet, error) {
	return r.list(ctx, username)
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*models.Tweet, error) {
	r.mu.RLock()
	st, ok := r.items[id]
	var t models.Tweet
	if ok {
		t = st.Tweet
	}
	r.mu.RUnlock()

	if !ok {
		return nil, common.ErrorNotFound
	}
	return r.withAuthor(ctx, t)
}

func (r *MemoryRepository) GetByIDForUpdate(ctx context.Context, id string) (*models.Tweet, error) {
	return r.GetByID(ctx, id)
}

func (r *MemoryRepository) Create(ctx context.Context, text, userID string) (*models.Tweet, error) {
	if _, err := r.authors.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.seq++
	st := &storedTweet{
		Tweet: models.Tweet{
			ID:        uuid.NewString(),
			Text:      text,
			CreatedAt: time.Now().UTC(),
			UserID:    userID,
		},
		seq: r.seq,
	}
	r.items[st.ID] = st
	t := st.Tweet
	r.mu.Unlock()

	return r.withAuthor(ctx, t)
}

func (r *MemoryRepository) Update(ctx context.Context, id, text string) (*models.Tweet, error) {
	r.mu.Lock()
	st, ok := r.items[id]
	var t models.Tweet
	if ok {
		st.Text = text
		t = st.Tweet
	}
	r.mu.Unlock()

	if !ok {
		return nil, common.ErrorNotFound
	}
	return r.withAuthor(ctx, t)
}

func (r *MemoryRepository) Remove(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *MemoryRepository) list(ctx context.Context, username string) ([]*models.Tweet, error) {
	r.mu.RLock()
	snapshot := make([]storedTweet, 0, len(r.items))
	for _, st := range r.items {
		snapshot = append(snapshot, *st)
	}
	r.mu.RUnlock()

	sort.Slice(snapshot, func(i, j int) bool { return snapshot[i].seq > snapshot[j].seq })

	result := make([]*models.Tweet, 0, len(snapshot))
	for _, st := range snapshot {
		t, err := r.withAuthor(ctx, st.Tweet)
		if err != nil {
			return nil, err
		}
		if username != "" && t.UserName != username {
			continue
		}
		result = append(result, t)
	}
	return result, nil
}

func (r *MemoryRepository) withAuthor(ctx context.Context, t models.Tweet) (*models.Tweet, error) {
	u, err := r.authors.GetUserByID(ctx, t.UserID)
	if err != nil {
		return nil, err
	}
	t.Name = u.Name
	t.UserName = u.UserName
	t.URL = u.URL
	return &t, nil
}
