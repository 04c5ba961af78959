package grpc

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/gamekeeper/internal/api"
	"github.com/dmitrijs2005/gamekeeper/internal/common"
	"github.com/dmitrijs2005/gamekeeper/internal/server/models"
	"github.com/dmitrijs2005/gamekeeper/internal/server/services"
)

type fakeUsers struct {
	signUpUser    *models.User
	signUpSession *services.Session
	signUpErr     error

	signInSession *services.Session
	signInErr     error

	refreshSession *services.Session
	refreshErr     error

	signOutToken string
	signOutErr   error

	getUser *models.User
	getErr  error

	confirmUser *models.User
	confirmErr  error
}

func (f *fakeUsers) SignUp(ctx context.Context, email, password string) (*models.User, *services.Session, error) {
	return f.signUpUser, f.signUpSession, f.signUpErr
}

func (f *fakeUsers) SignIn(ctx context.Context, email, password string) (*services.Session, error) {
	return f.signInSession, f.signInErr
}

func (f *fakeUsers) SignOut(ctx context.Context, refreshToken string) error {
	f.signOutToken = refreshToken
	return f.signOutErr
}

func (f *fakeUsers) Refresh(ctx context.Context, refreshToken string) (*services.Session, error) {
	return f.refreshSession, f.refreshErr
}

func (f *fakeUsers) GetUser(ctx context.Context, userID string) (*models.User, error) {
	return f.getUser, f.getErr
}

func (f *fakeUsers) ConfirmEmail(ctx context.Context, token string) (*models.User, error) {
	return f.confirmUser, f.confirmErr
}

type fakeGames struct {
	mu       sync.Mutex
	rows     []*models.Game
	lastCall string
	err      error
}

func (f *fakeGames) List(ctx context.Context, callerID string) ([]*models.Game, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastCall = "list:" + callerID
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

func (f *fakeGames) Insert(ctx context.Context, callerID, title, userID string) (*models.Game, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastCall = "insert:" + callerID
	if f.err != nil {
		return nil, f.err
	}
	g := &models.Game{ID: int64(len(f.rows) + 1), Title: title, UserID: callerID, CreatedAt: time.Now()}
	f.rows = append(f.rows, g)
	return g, nil
}

func (f *fakeGames) Update(ctx context.Context, callerID string, id int64, patch models.GamePatch) (*models.Game, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastCall = "update:" + callerID
	if f.err != nil {
		return nil, f.err
	}
	for _, g := range f.rows {
		if g.ID == id {
			if patch.Title != nil {
				g.Title = *patch.Title
			}
			if patch.ImageURL != nil {
				g.ImageURL = patch.ImageURL
			}
			return g, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeGames) Delete(ctx context.Context, callerID string, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastCall = "delete:" + callerID
	return f.err
}

type fakeStorage struct {
	key string
	err error
}

func (f *fakeStorage) Upload(ctx context.Context, userID, bucket, name, contentType string, data []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return bucket + "/" + name, nil
}

func (f *fakeStorage) PublicURL(bucket, name string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "http://cdn/" + bucket + "/" + name, nil
}

// fakeSubscriber hands out one channel per Subscribe call.
type fakeSubscriber struct {
	mu        sync.Mutex
	ch        chan *api.ChangeEvent
	userID    string
	cancelled bool
	ready     chan struct{}
}

func newFakeSubscriber() *fakeSubscriber {
	return &fakeSubscriber{ch: make(chan *api.ChangeEvent, 4), ready: make(chan struct{})}
}

func (f *fakeSubscriber) Subscribe(userID string) (string, <-chan *api.ChangeEvent, func()) {
	f.mu.Lock()
	f.userID = userID
	f.mu.Unlock()
	close(f.ready)
	return "sub-1", f.ch, func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.cancelled = true
	}
}
