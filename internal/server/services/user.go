// Package services contains server-side business logic. UserService covers
// sign-up, sign-in, email confirmation and the access/refresh token pair.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/gamekeeper/internal/common"
	"github.com/dmitrijs2005/gamekeeper/internal/dbx"
	"github.com/dmitrijs2005/gamekeeper/internal/logging"
	"github.com/dmitrijs2005/gamekeeper/internal/server/auth"
	"github.com/dmitrijs2005/gamekeeper/internal/server/config"
	"github.com/dmitrijs2005/gamekeeper/internal/server/models"
	"github.com/dmitrijs2005/gamekeeper/internal/server/repositories/repomanager"
)

const minPasswordLength = 6

// Session is what a successful sign-in or refresh hands back to the client.
type Session struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
	User         *models.User
}

type UserService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	mailer                       Mailer
	logger                       logging.Logger
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
	requireConfirmation          bool
	publicBaseURL                string
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, mailer Mailer, l logging.Logger, cfg *config.Config) *UserService {
	return &UserService{
		db:                           db,
		repomanager:                  m,
		mailer:                       mailer,
		logger:                       l.With("module", "user_service"),
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
		requireConfirmation:          cfg.RequireConfirmation,
		publicBaseURL:                strings.TrimRight(cfg.PublicBaseURL, "/"),
	}
}

// SignUp creates an account. With confirmation enabled the returned session
// is nil and a confirmation link is mailed; otherwise the user is signed in
// straight away.
func (s *UserService) SignUp(ctx context.Context, email, password string) (*models.User, *Session, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, nil, err
	}
	if len(password) < minPasswordLength {
		return nil, nil, invalid(fmt.Sprintf("Password should be at least %d characters.", minPasswordLength))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{Email: email, PasswordHash: hash}
	if s.requireConfirmation {
		token := uuid.NewString()
		user.ConfirmationToken = &token
	} else {
		now := time.Now()
		user.ConfirmedAt = &now
	}

	u, err := s.repomanager.Users(s.db).Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, nil, common.ErrAlreadyExists
		}
		return nil, nil, fmt.Errorf("error creating user: %w", err)
	}

	if s.requireConfirmation {
		if err := s.mailer.SendConfirmation(ctx, u.Email, s.confirmationLink(*u.ConfirmationToken)); err != nil {
			return nil, nil, fmt.Errorf("error sending confirmation: %w", err)
		}
		return u, nil, nil
	}

	session, err := s.issueSession(ctx, u, s.db)
	if err != nil {
		return nil, nil, err
	}
	return u, session, nil
}

// SignIn checks the password and, for confirmed users, issues a session.
func (s *UserService) SignIn(ctx context.Context, email, password string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, common.ErrorInternal
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return nil, common.ErrInvalidCredentials
	}
	if !user.Confirmed() {
		return nil, common.ErrEmailNotConfirmed
	}

	return s.issueSession(ctx, user, s.db)
}

// Refresh rotates refreshToken inside a transaction and returns a new session.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	var session *Session

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.RefreshTokens(tx)

		token, err := repo.Find(ctx, refreshToken)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrInvalidToken
			}
			return fmt.Errorf("error searching refresh token: %w", err)
		}
		if token.Expires.Before(time.Now()) {
			return common.ErrRefreshTokenExpired
		}

		if err := repo.Delete(ctx, refreshToken); err != nil {
			return fmt.Errorf("error deleting refresh token: %w", err)
		}

		user, err := s.repomanager.Users(tx).GetByID(ctx, token.UserID)
		if err != nil {
			return fmt.Errorf("error loading user: %w", err)
		}

		session, err = s.issueSession(ctx, user, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

// SignOut revokes the refresh token. Unknown tokens are ignored.
func (s *UserService) SignOut(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	if err := s.repomanager.RefreshTokens(s.db).Delete(ctx, refreshToken); err != nil {
		return fmt.Errorf("error revoking refresh token: %w", err)
	}
	return nil
}

func (s *UserService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	return s.repomanager.Users(s.db).GetByID(ctx, userID)
}

// ConfirmEmail consumes a confirmation token. Unknown or used tokens yield
// common.ErrInvalidToken.
func (s *UserService) ConfirmEmail(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, common.ErrInvalidToken
	}
	u, err := s.repomanager.Users(s.db).Confirm(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, err
	}
	s.logger.Info(ctx, "email confirmed", "user_id", u.ID)
	return u, nil
}

// PurgeExpiredTokens removes refresh tokens that can no longer be used.
func (s *UserService) PurgeExpiredTokens(ctx context.Context) (int64, error) {
	return s.repomanager.RefreshTokens(s.db).DeleteExpired(ctx, time.Now())
}

func (s *UserService) confirmationLink(token string) string {
	return s.publicBaseURL + "/auth/v1/verify?token=" + url.QueryEscape(token)
}

func (s *UserService) issueSession(ctx context.Context, user *models.User, tx dbx.DBTX) (*Session, error) {
	access, expires, err := auth.GenerateToken(user.ID, user.Email, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refresh, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, common.ErrorInternal
	}
	if err := s.repomanager.RefreshTokens(tx).Create(ctx, user.ID, refresh, s.refreshTokenValidityDuration); err != nil {
		return nil, common.ErrorInternal
	}
	return &Session{AccessToken: access, RefreshToken: refresh, ExpiresAt: expires, User: user}, nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", invalid("Unable to validate email address: invalid format")
	}
	return email, nil
}
