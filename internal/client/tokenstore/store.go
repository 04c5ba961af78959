// Package tokenstore persists the signed-in session on the device. The
// session is stored under a single metadata key, sealed with the device key.
package tokenstore

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gamekeeper/internal/client/models"
	"github.com/dmitrijs2005/gamekeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gamekeeper/internal/cryptox"
)

const SessionKey = "session"

type Store struct {
	repo metadata.Repository
	key  []byte
}

func New(repo metadata.Repository, deviceKey []byte) *Store {
	return &Store{repo: repo, key: deviceKey}
}

// Load returns the stored session or nil when there is none.
func (s *Store) Load(ctx context.Context) (*models.Session, error) {
	blob, err := s.repo.Get(ctx, SessionKey)
	if err != nil {
		return nil, err
	}
	if blob == nil {
		return nil, nil
	}

	var session models.Session
	if err := cryptox.Open(blob, s.key, &session); err != nil {
		return nil, fmt.Errorf("stored session unreadable: %w", err)
	}
	return &session, nil
}

func (s *Store) Save(ctx context.Context, session *models.Session) error {
	blob, err := cryptox.Seal(session, s.key)
	if err != nil {
		return fmt.Errorf("seal session: %w", err)
	}
	return s.repo.Set(ctx, SessionKey, blob)
}

func (s *Store) Clear(ctx context.Context) error {
	return s.repo.Delete(ctx, SessionKey)
}
