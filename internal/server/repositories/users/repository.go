package users

import (
	"context"

	"github.com/dmitrijs2005/gamekeeper/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	// Confirm marks the user holding token as confirmed and clears the token.
	Confirm(ctx context.Context, token string) (*models.User, error)
}
