package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/gamekeeper/internal/common"
	"github.com/dmitrijs2005/gamekeeper/internal/server/models"
	"github.com/dmitrijs2005/gamekeeper/internal/server/repositories/repomanager"
)

// MaxTitleLength caps game titles, in characters.
const MaxTitleLength = 1000

// GameService applies owner-only access to the games table: callers read
// and write only rows whose user_id equals their own id.
type GameService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewGameService(db *sql.DB, m repomanager.RepositoryManager) *GameService {
	return &GameService{db: db, repomanager: m}
}

func (s *GameService) List(ctx context.Context, callerID string) ([]*models.Game, error) {
	return s.repomanager.Games(s.db).List(ctx, callerID)
}

// Insert stores a new row owned by the caller. An explicit userID that is
// not the caller's is rejected.
func (s *GameService) Insert(ctx context.Context, callerID, title, userID string) (*models.Game, error) {
	if err := checkTitle(title); err != nil {
		return nil, err
	}
	if userID != "" && userID != callerID {
		return nil, common.ErrPermissionDenied
	}

	return s.repomanager.Games(s.db).Insert(ctx, &models.Game{Title: title, UserID: callerID})
}

func (s *GameService) Update(ctx context.Context, callerID string, id int64, patch models.GamePatch) (*models.Game, error) {
	if patch.Empty() {
		return nil, invalid("Nothing to update")
	}
	if patch.Title != nil {
		if err := checkTitle(*patch.Title); err != nil {
			return nil, err
		}
	}
	if patch.ImageURL != nil && strings.TrimSpace(*patch.ImageURL) == "" {
		return nil, invalid("Image URL must not be empty")
	}

	return s.repomanager.Games(s.db).Update(ctx, callerID, id, patch)
}

func (s *GameService) Delete(ctx context.Context, callerID string, id int64) error {
	return s.repomanager.Games(s.db).Delete(ctx, callerID, id)
}

func checkTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return invalid("Title is required")
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return invalid(fmt.Sprintf("Title must be at most %d characters", MaxTitleLength))
	}
	return nil
}
