package client

import (
	"context"

	"github.com/dmitrijs2005/gamekeeper/internal/api"
	"github.com/dmitrijs2005/gamekeeper/internal/client/models"
)

func fromAPIUser(u *api.User) *models.User {
	if u == nil {
		return nil
	}
	return &models.User{ID: u.ID, Email: u.Email}
}

func fromAPISession(s *api.Session) *models.Session {
	if s == nil {
		return nil
	}
	return &models.Session{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		ExpiresAt:    s.ExpiresAt,
		User:         fromAPIUser(s.User),
	}
}

// SignUp registers a new account. When the server does not require email
// confirmation it returns a session and the client is signed in right away.
func (c *GRPCClient) SignUp(ctx context.Context, email, password string) (*models.User, error) {
	resp, err := c.client.SignUp(ctx, &api.SignUpRequest{Email: email, Password: password})
	if err != nil {
		return nil, mapError(err)
	}
	if resp.Session != nil {
		c.setSession(ctx, fromAPISession(resp.Session), models.SignedIn)
	}
	return fromAPIUser(resp.User), nil
}

func (c *GRPCClient) SignIn(ctx context.Context, email, password string) (*models.Session, error) {
	resp, err := c.client.SignIn(ctx, &api.SignInRequest{Email: email, Password: password})
	if err != nil {
		return nil, mapError(err)
	}
	s := fromAPISession(resp.Session)
	c.setSession(ctx, s, models.SignedIn)
	return s, nil
}

// SignOut revokes the refresh token on the server and drops the local
// session. The local session is dropped even when the server call fails.
func (c *GRPCClient) SignOut(ctx context.Context) error {
	s := c.currentSession()
	if s == nil {
		return nil
	}

	_, err := c.client.SignOut(ctx, &api.SignOutRequest{RefreshToken: s.RefreshToken})
	if err != nil {
		c.logger.Warn(ctx, "server sign out failed", "error", err)
	}
	c.setSession(ctx, nil, models.SignedOut)
	return mapError(err)
}

// GetSession returns the cached session, nil when signed out.
func (c *GRPCClient) GetSession(_ context.Context) (*models.Session, error) {
	return c.currentSession(), nil
}

// GetUser asks the server who the current access token belongs to.
func (c *GRPCClient) GetUser(ctx context.Context) (*models.User, error) {
	if c.currentSession() == nil {
		return nil, ErrNoSession
	}
	resp, err := c.client.GetUser(ctx, &api.GetUserRequest{})
	if err != nil {
		return nil, mapError(err)
	}
	return fromAPIUser(resp.User), nil
}
