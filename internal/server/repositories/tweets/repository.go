// Package tweets stores tweets and reads them back joined with their author.
package tweets

import (
	"context"

	"github.com/dmitrijs2005/dwitter/internal/server/models"
)

// Repository persists tweets. Reads return tweets newest first with the
// author's name, username and url filled in. Single-row operations return
// common.ErrorNotFound when the id does not exist.
type Repository interface {
	GetAll(ctx context.Context) ([]*models.Tweet, error)
	GetAllByUsername(ctx context.Context, username string) ([]*models.Tweet, error)
	GetByID(ctx context.Context, id string) (*models.Tweet, error)
	// GetByIDForUpdate reads a tweet and locks it until the surrounding
	// transaction ends.
	GetByIDForUpdate(ctx context.Context, id string) (*models.Tweet, error)
	Create(ctx context.Context, text, userID string) (*models.Tweet, error)
	Update(ctx context.Context, id, text string) (*models.Tweet, error)
	Remove(ctx context.Context, id string) error
}
