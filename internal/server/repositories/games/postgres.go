package games

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

const gameColumns = `id, title, image_url, user_id, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanGame(row scanner) (*models.Game, error) {
	var (
		g   models.Game
		url sql.NullString
	)
	if err := row.Scan(&g.ID, &g.Title, &url, &g.UserID, &g.CreatedAt); err != nil {
		return nil, err
	}
	if url.Valid {
		g.ImageURL = &url.String
	}
	return &g, nil
}

// List returns the user's games, newest first.
func (r *PostgresRepository) List(ctx context.Context, userID string) ([]*models.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Game, 0)
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Insert(ctx context.Context, game *models.Game) (*models.Game, error) {
	query := `INSERT INTO games (title, user_id)
		VALUES ($1, $2)
		RETURNING ` + gameColumns

	g, err := scanGame(r.db.QueryRowContext(ctx, query, game.Title, game.UserID))
	if err != nil {
		if pgerr.IsInvalidInput(err) {
			return nil, common.ErrInvalidArgument
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return g, nil
}

// Update applies the non-nil fields of patch. A row that does not exist or
// belongs to someone else yields common.ErrorNotFound.
func (r *PostgresRepository) Update(ctx context.Context, userID string, id int64, patch models.GamePatch) (*models.Game, error) {
	query := `UPDATE games
		SET title = COALESCE($1, title), image_url = COALESCE($2, image_url)
		WHERE id = $3 AND user_id = $4
		RETURNING ` + gameColumns

	g, err := scanGame(r.db.QueryRowContext(ctx, query, patch.Title, patch.ImageURL, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		if pgerr.IsInvalidInput(err) {
			return nil, common.ErrInvalidArgument
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return g, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID string, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM games WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
