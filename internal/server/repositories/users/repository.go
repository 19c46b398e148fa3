package users

import (
	"context"

	"github.com/dmitrijs2005/dwitter/internal/server/models"
)

// Repository persists users. Lookups return common.ErrorNotFound when no user
// matches; Create returns common.ErrorAlreadyExists when the username is taken.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}
