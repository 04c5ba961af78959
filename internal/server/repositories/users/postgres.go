// Package users stores accounts in Postgres.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gamekeeper/internal/common"
	"github.com/dmitrijs2005/gamekeeper/internal/dbx"
	"github.com/dmitrijs2005/gamekeeper/internal/server/models"
	"github.com/dmitrijs2005/gamekeeper/internal/server/repositories/pgerr"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const userColumns = `id, email, password_hash, confirmation_token, confirmed_at, created_at`

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (email, password_hash, confirmation_token, confirmed_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		user.Email, user.PasswordHash, user.ConfirmationToken, user.ConfirmedAt).Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		if pgerr.IsUniqueViolation(err) {
			return nil, common.ErrAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) Confirm(ctx context.Context, token string) (*models.User, error) {
	query :=
		`UPDATE users SET confirmed_at = now(), confirmation_token = NULL
		 WHERE confirmation_token = $1
		 RETURNING ` + userColumns
	return scanUser(r.db.QueryRowContext(ctx, query, token))
}

func scanUser(row *sql.Row) (*models.User, error) {
	var (
		u           models.User
		token       sql.NullString
		confirmedAt sql.NullTime
	)

	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &token, &confirmedAt, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		if pgerr.IsInvalidInput(err) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if token.Valid {
		u.ConfirmationToken = &token.String
	}
	if confirmedAt.Valid {
		u.ConfirmedAt = &confirmedAt.Time
	}
	return &u, nil
}
