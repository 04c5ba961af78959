package tokenstore

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gamekeeper/internal/client/models"
	"github.com/dmitrijs2005/gamekeeper/internal/cryptox"
)

type memRepo struct {
	m map[string][]byte
}

func newMemRepo() *memRepo { return &memRepo{m: map[string][]byte{}} }

func (r *memRepo) Get(_ context.Context, key string) ([]byte, error) { return r.m[key], nil }
func (r *memRepo) Set(_ context.Context, key string, v []byte) error { r.m[key] = v; return nil }
func (r *memRepo) Delete(_ context.Context, key string) error        { delete(r.m, key); return nil }
func (r *memRepo) Clear(_ context.Context) error                     { r.m = map[string][]byte{}; return nil }
func (r *memRepo) List(_ context.Context) (map[string][]byte, error) { return r.m, nil }

func TestStore_SaveLoadClear(t *testing.T) {
	repo := newMemRepo()
	key := bytes.Repeat([]byte{9}, cryptox.KeySize)
	s := New(repo, key)
	ctx := context.Background()

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	in := &models.Session{
		AccessToken:  "at",
		RefreshToken: "refresh-token-value",
		ExpiresAt:    time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
		User:         &models.User{ID: "u1", Email: "a@b.io"},
	}
	require.NoError(t, s.Save(ctx, in))
	assert.NotContains(t, string(repo.m[SessionKey]), "refresh-token-value")

	got, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, in, got)

	require.NoError(t, s.Clear(ctx))
	got, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_LoadWithOtherKeyFails(t *testing.T) {
	repo := newMemRepo()
	ctx := context.Background()
	require.NoError(t, New(repo, bytes.Repeat([]byte{1}, cryptox.KeySize)).Save(ctx, &models.Session{AccessToken: "x"}))

	_, err := New(repo, bytes.Repeat([]byte{2}, cryptox.KeySize)).Load(ctx)
	assert.Error(t, err)
}
