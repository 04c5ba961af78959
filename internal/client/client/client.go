package client

import (
	"context"

	"github.com/dmitrijs2005/gamekeeper/internal/client/models"
)

// Client is the backend binding used by the session holder and the catalog.
type Client interface {
	Close() error
	Ping(ctx context.Context) error

	SignUp(ctx context.Context, email, password string) (*models.User, error)
	SignIn(ctx context.Context, email, password string) (*models.Session, error)
	SignOut(ctx context.Context) error
	GetSession(ctx context.Context) (*models.Session, error)
	GetUser(ctx context.Context) (*models.User, error)
	OnAuthStateChange(fn AuthListener) Subscription

	ListGames(ctx context.Context) ([]*models.Game, error)
	InsertGame(ctx context.Context, title, userID string) (*models.Game, error)
	UpdateGame(ctx context.Context, id int64, patch models.GamePatch) (*models.Game, error)
	DeleteGame(ctx context.Context, id int64) error
	SubscribeGames(ctx context.Context, fn func(models.ChangeEvent)) Subscription

	Upload(ctx context.Context, bucket, name, contentType string, data []byte) (string, error)
	PublicURL(ctx context.Context, bucket, name string) (string, error)
}

var _ Client = (*GRPCClient)(nil)
