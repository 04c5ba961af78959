package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/gamekeeper/internal/api"
	"github.com/dmitrijs2005/gamekeeper/internal/common"
	"github.com/dmitrijs2005/gamekeeper/internal/server/models"
	"github.com/dmitrijs2005/gamekeeper/internal/server/services"
)

func (s *GRPCServer) SignUp(ctx context.Context, req *api.SignUpRequest) (*api.SignUpResponse, error) {
	user, session, err := s.users.SignUp(ctx, req.Email, req.Password)
	if err != nil {
		return nil, s.toStatus(ctx, "sign up", err)
	}

	s.logger.Info(ctx, "Registered", "user_id", user.ID, "confirmed", user.Confirmed())
	return &api.SignUpResponse{User: toAPIUser(user), Session: toAPISession(session)}, nil
}

func (s *GRPCServer) SignIn(ctx context.Context, req *api.SignInRequest) (*api.SignInResponse, error) {
	session, err := s.users.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		return nil, s.toStatus(ctx, "sign in", err)
	}
	return &api.SignInResponse{Session: toAPISession(session)}, nil
}

func (s *GRPCServer) SignOut(ctx context.Context, req *api.SignOutRequest) (*api.SignOutResponse, error) {
	if err := s.users.SignOut(ctx, req.RefreshToken); err != nil {
		return nil, s.toStatus(ctx, "sign out", err)
	}
	return &api.SignOutResponse{}, nil
}

func (s *GRPCServer) RefreshToken(ctx context.Context, req *api.RefreshTokenRequest) (*api.RefreshTokenResponse, error) {
	session, err := s.users.Refresh(ctx, req.RefreshToken)
	if err != nil {
		return nil, s.toStatus(ctx, "refresh token", err)
	}
	return &api.RefreshTokenResponse{Session: toAPISession(session)}, nil
}

func (s *GRPCServer) GetUser(ctx context.Context, req *api.GetUserRequest) (*api.GetUserResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, status.Error(codes.Unauthenticated, "User not found")
		}
		return nil, s.toStatus(ctx, "get user", err)
	}
	return &api.GetUserResponse{User: toAPIUser(user)}, nil
}

func (s *GRPCServer) ConfirmEmail(ctx context.Context, req *api.ConfirmEmailRequest) (*api.ConfirmEmailResponse, error) {
	user, err := s.users.ConfirmEmail(ctx, req.Token)
	if err != nil {
		return nil, s.toStatus(ctx, "confirm email", err)
	}
	return &api.ConfirmEmailResponse{User: toAPIUser(user)}, nil
}

func (s *GRPCServer) ListGames(ctx context.Context, req *api.ListGamesRequest) (*api.ListGamesResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	games, err := s.games.List(ctx, userID)
	if err != nil {
		return nil, s.toStatus(ctx, "list games", err)
	}

	out := make([]*api.Game, 0, len(games))
	for _, g := range games {
		out = append(out, toAPIGame(g))
	}
	return &api.ListGamesResponse{Games: out}, nil
}

func (s *GRPCServer) InsertGame(ctx context.Context, req *api.InsertGameRequest) (*api.InsertGameResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	g, err := s.games.Insert(ctx, userID, req.Title, req.UserID)
	if err != nil {
		return nil, s.toStatus(ctx, "insert game", err)
	}
	return &api.InsertGameResponse{Game: toAPIGame(g)}, nil
}

func (s *GRPCServer) UpdateGame(ctx context.Context, req *api.UpdateGameRequest) (*api.UpdateGameResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	g, err := s.games.Update(ctx, userID, req.ID, models.GamePatch{Title: req.Title, ImageURL: req.ImageURL})
	if err != nil {
		return nil, s.toStatus(ctx, "update game", err)
	}
	return &api.UpdateGameResponse{Game: toAPIGame(g)}, nil
}

func (s *GRPCServer) DeleteGame(ctx context.Context, req *api.DeleteGameRequest) (*api.DeleteGameResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.games.Delete(ctx, userID, req.ID); err != nil {
		return nil, s.toStatus(ctx, "delete game", err)
	}
	return &api.DeleteGameResponse{}, nil
}

func (s *GRPCServer) UploadObject(ctx context.Context, req *api.UploadObjectRequest) (*api.UploadObjectResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	key, err := s.storage.Upload(ctx, userID, req.Bucket, req.Name, req.ContentType, req.Data)
	if err != nil {
		return nil, s.toStatus(ctx, "upload object", err)
	}
	return &api.UploadObjectResponse{Key: key}, nil
}

func (s *GRPCServer) GetPublicURL(ctx context.Context, req *api.GetPublicURLRequest) (*api.GetPublicURLResponse, error) {
	u, err := s.storage.PublicURL(req.Bucket, req.Name)
	if err != nil {
		return nil, s.toStatus(ctx, "public url", err)
	}
	return &api.GetPublicURLResponse{PublicURL: u}, nil
}

// WatchGames streams change events for the caller's rows until the client
// goes away or the server shuts down.
func (s *GRPCServer) WatchGames(req *api.WatchGamesRequest, stream grpc.ServerStreamingServer[api.ChangeEvent]) error {
	ctx := stream.Context()
	userID, err := callerID(ctx)
	if err != nil {
		return err
	}
	if req.Table != "" && req.Table != common.GamesTable {
		return status.Errorf(codes.NotFound, "unknown table %q", req.Table)
	}

	subID, events, cancel := s.changes.Subscribe(userID)
	defer cancel()
	s.logger.Info(ctx, "watch started", "subscriber_id", subID, "user_id", userID)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info(ctx, "watch ended", "subscriber_id", subID)
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := stream.Send(ev); err != nil {
				return err
			}
		}
	}
}

func callerID(ctx context.Context) (string, error) {
	id, ok := UserIDFromContext(ctx)
	if !ok {
		return "", status.Error(codes.Unauthenticated, "missing token")
	}
	return id, nil
}

// toStatus maps service errors to gRPC statuses. Messages of known errors
// are meant to be shown to the user as they are.
func (s *GRPCServer) toStatus(ctx context.Context, op string, err error) error {
	var inputErr *services.InputError
	switch {
	case errors.As(err, &inputErr):
		return status.Error(codes.InvalidArgument, inputErr.Msg)
	case errors.Is(err, services.ErrBucketNotFound):
		return status.Error(codes.NotFound, "Bucket not found")
	case errors.Is(err, common.ErrAlreadyExists):
		if op == "sign up" {
			return status.Error(codes.AlreadyExists, "User already registered")
		}
		return status.Error(codes.AlreadyExists, "The resource already exists")
	case errors.Is(err, common.ErrInvalidCredentials):
		return status.Error(codes.Unauthenticated, "Invalid login credentials")
	case errors.Is(err, common.ErrEmailNotConfirmed):
		return status.Error(codes.Unauthenticated, "Email not confirmed")
	case errors.Is(err, common.ErrRefreshTokenExpired):
		return status.Error(codes.Unauthenticated, "Refresh token expired")
	case errors.Is(err, common.ErrInvalidToken):
		return status.Error(codes.Unauthenticated, "Invalid token")
	case errors.Is(err, common.ErrPermissionDenied):
		return status.Error(codes.PermissionDenied, "new row violates row-level security policy")
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, "Row not found")
	case errors.Is(err, common.ErrInvalidArgument):
		return status.Error(codes.InvalidArgument, "Invalid argument")
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "request cancelled")
	default:
		s.logger.Error(ctx, op+" failed", "error", err)
		return status.Error(codes.Internal, "internal error")
	}
}

func toAPIUser(u *models.User) *api.User {
	if u == nil {
		return nil
	}
	return &api.User{ID: u.ID, Email: u.Email, CreatedAt: u.CreatedAt}
}

func toAPISession(s *services.Session) *api.Session {
	if s == nil {
		return nil
	}
	return &api.Session{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		ExpiresAt:    s.ExpiresAt,
		User:         toAPIUser(s.User),
	}
}

func toAPIGame(g *models.Game) *api.Game {
	return &api.Game{
		ID:        g.ID,
		Title:     g.Title,
		ImageURL:  g.ImageURL,
		UserID:    g.UserID,
		CreatedAt: g.CreatedAt,
	}
}
