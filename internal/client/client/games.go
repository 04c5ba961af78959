package client

import (
	"context"
	"errors"
	"io"

	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/gamekeeper/internal/api"
	"github.com/dmitrijs2005/gamekeeper/internal/client/models"
)

// GamesTable is the only table exposed over the change channel.
const GamesTable = "games"

func fromAPIGame(g *api.Game) *models.Game {
	if g == nil {
		return nil
	}
	return &models.Game{ID: g.ID, Title: g.Title, ImageURL: g.ImageURL, UserID: g.UserID}
}

func (c *GRPCClient) ListGames(ctx context.Context) ([]*models.Game, error) {
	resp, err := c.client.ListGames(ctx, &api.ListGamesRequest{})
	if err != nil {
		return nil, mapError(err)
	}
	games := make([]*models.Game, 0, len(resp.Games))
	for _, g := range resp.Games {
		games = append(games, fromAPIGame(g))
	}
	return games, nil
}

func (c *GRPCClient) InsertGame(ctx context.Context, title, userID string) (*models.Game, error) {
	resp, err := c.client.InsertGame(ctx, &api.InsertGameRequest{Title: title, UserID: userID})
	if err != nil {
		return nil, mapError(err)
	}
	return fromAPIGame(resp.Game), nil
}

func (c *GRPCClient) UpdateGame(ctx context.Context, id int64, patch models.GamePatch) (*models.Game, error) {
	resp, err := c.client.UpdateGame(ctx, &api.UpdateGameRequest{ID: id, Title: patch.Title, ImageURL: patch.ImageURL})
	if err != nil {
		return nil, mapError(err)
	}
	return fromAPIGame(resp.Game), nil
}

func (c *GRPCClient) DeleteGame(ctx context.Context, id int64) error {
	_, err := c.client.DeleteGame(ctx, &api.DeleteGameRequest{ID: id})
	return mapError(err)
}

// Upload stores data as bucket/name and returns the object key.
func (c *GRPCClient) Upload(ctx context.Context, bucket, name, contentType string, data []byte) (string, error) {
	resp, err := c.client.UploadObject(ctx, &api.UploadObjectRequest{
		Bucket:      bucket,
		Name:        name,
		ContentType: contentType,
		Data:        data,
	})
	if err != nil {
		return "", mapError(err)
	}
	return resp.Key, nil
}

func (c *GRPCClient) PublicURL(ctx context.Context, bucket, name string) (string, error) {
	resp, err := c.client.GetPublicURL(ctx, &api.GetPublicURLRequest{Bucket: bucket, Name: name})
	if err != nil {
		return "", mapError(err)
	}
	return resp.PublicURL, nil
}

// Ping reports whether the server answers its health check.
func (c *GRPCClient) Ping(ctx context.Context) error {
	resp, err := c.health.Check(ctx, &healthpb.HealthCheckRequest{Service: api.ServiceName})
	if err != nil {
		return mapError(err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return ErrUnavailable
	}
	return nil
}

// SubscribeGames delivers every change to the games table to fn until the
// returned subscription is released or ctx ends. A stream that fails with an
// expired token is reopened after a refresh; any other failure ends the
// subscription and is logged. Unsubscribe does not wait for an fn call in
// progress.
func (c *GRPCClient) SubscribeGames(ctx context.Context, fn func(models.ChangeEvent)) Subscription {
	ctx, cancel := context.WithCancel(ctx)

	go func() {
		for {
			token := c.accessToken()
			err := c.watch(ctx, fn)
			if ctx.Err() != nil {
				return
			}
			if isTokenExpired(err) {
				if rerr := c.refresh(ctx, token); rerr == nil {
					continue
				}
			}
			if err != nil {
				c.logger.Warn(ctx, "games subscription ended", "error", err)
			}
			return
		}
	}()

	return NewSubscription(cancel)
}

func (c *GRPCClient) watch(ctx context.Context, fn func(models.ChangeEvent)) error {
	stream, err := c.client.WatchGames(ctx, &api.WatchGamesRequest{Table: GamesTable})
	if err != nil {
		return err
	}
	for {
		ev, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			if status.Code(err) == codes.Canceled {
				return nil
			}
			return err
		}
		fn(models.ChangeEvent{
			Type: ev.Type,
			New:  fromAPIGame(ev.Record),
			Old:  fromAPIGame(ev.OldRecord),
		})
	}
}
