// Package games persists catalog rows. Every query is scoped to the owning
// user, so callers never see or touch another user's rows.
package games

import (
	"context"

	"github.com/dmitrijs2005/gamekeeper/internal/server/models"
)

type Repository interface {
	List(ctx context.Context, userID string) ([]*models.Game, error)
	Insert(ctx context.Context, game *models.Game) (*models.Game, error)
	Update(ctx context.Context, userID string, id int64, patch models.GamePatch) (*models.Game, error)
	Delete(ctx context.Context, userID string, id int64) error
}
