package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gamekeeper/internal/client/client"
	"github.com/dmitrijs2005/gamekeeper/internal/client/config"
	"github.com/dmitrijs2005/gamekeeper/internal/client/models"
	"github.com/dmitrijs2005/gamekeeper/internal/logging"
)

type fakeClient struct {
	mu        sync.Mutex
	session   *models.Session
	listeners map[int]client.AuthListener
	nextL     int
	games     []*models.Game
	nextID    int64
	watches   int
	unwatched int
	pingErr   error
	closed    bool
}

func newFakeClient() *fakeClient {
	return &fakeClient{listeners: map[int]client.AuthListener{}, nextID: 6}
}

func (f *fakeClient) emit(e models.AuthEvent, s *models.Session) {
	f.mu.Lock()
	var fns []client.AuthListener
	for _, fn := range f.listeners {
		fns = append(fns, fn)
	}
	f.mu.Unlock()
	for _, fn := range fns {
		fn(e, s)
	}
}

func (f *fakeClient) Close() error {
	f.closed = true
	return nil
}

func (f *fakeClient) Ping(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pingErr
}

func (f *fakeClient) SignUp(_ context.Context, email, _ string) (*models.User, error) {
	return &models.User{ID: "u2", Email: email}, nil
}

func (f *fakeClient) SignIn(_ context.Context, email, password string) (*models.Session, error) {
	if password != "secret" {
		return nil, &client.APIError{Msg: "Invalid login credentials", Err: client.ErrUnauthorized}
	}
	s := &models.Session{AccessToken: "at", RefreshToken: "rt", User: &models.User{ID: "u1", Email: email}}
	f.mu.Lock()
	f.session = s
	f.mu.Unlock()
	f.emit(models.SignedIn, s)
	return s, nil
}

func (f *fakeClient) SignOut(context.Context) error {
	f.mu.Lock()
	f.session = nil
	f.mu.Unlock()
	f.emit(models.SignedOut, nil)
	return nil
}

func (f *fakeClient) GetSession(context.Context) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.session, nil
}

func (f *fakeClient) GetUser(context.Context) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.session == nil {
		return nil, client.ErrNoSession
	}
	return f.session.User, nil
}

func (f *fakeClient) OnAuthStateChange(fn client.AuthListener) client.Subscription {
	f.mu.Lock()
	id := f.nextL
	f.nextL++
	f.listeners[id] = fn
	f.mu.Unlock()
	return client.NewSubscription(func() {
		f.mu.Lock()
		delete(f.listeners, id)
		f.mu.Unlock()
	})
}

func (f *fakeClient) ListGames(context.Context) ([]*models.Game, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*models.Game(nil), f.games...), nil
}

func (f *fakeClient) InsertGame(_ context.Context, title, userID string) (*models.Game, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	g := &models.Game{ID: f.nextID, Title: title, UserID: userID}
	f.games = append([]*models.Game{g}, f.games...)
	return g, nil
}

func (f *fakeClient) UpdateGame(_ context.Context, id int64, patch models.GamePatch) (*models.Game, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, g := range f.games {
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
	return nil, &client.APIError{Msg: "Row not found", Err: client.ErrNotFound}
}

func (f *fakeClient) DeleteGame(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, g := range f.games {
		if g.ID == id {
			f.games = append(f.games[:i], f.games[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeClient) SubscribeGames(context.Context, func(models.ChangeEvent)) client.Subscription {
	f.mu.Lock()
	f.watches++
	f.mu.Unlock()
	return client.NewSubscription(func() {
		f.mu.Lock()
		f.unwatched++
		f.mu.Unlock()
	})
}

func (f *fakeClient) Upload(_ context.Context, bucket, name, _ string, _ []byte) (string, error) {
	return bucket + "/" + name, nil
}

func (f *fakeClient) PublicURL(_ context.Context, bucket, name string) (string, error) {
	return "http://cdn/" + bucket + "/" + name, nil
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := getPassword
	getPassword = func(io.Writer) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { getPassword = orig })
}

func runApp(t *testing.T, fc *fakeClient, input string) string {
	t.Helper()

	var out bytes.Buffer
	cfg := &config.Config{OnlineCheckInterval: time.Hour}
	a := newApp(cfg, fc, bufio.NewReader(strings.NewReader(input)), &out, logging.Nop{})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	a.Run(ctx)
	a.Close()
	return out.String()
}

func TestApp_SignInAddEditDeleteLogout(t *testing.T) {
	stubPassword(t, "secret")
	fc := newFakeClient()

	out := runApp(t, fc, strings.Join([]string{
		"login",
		"a@b.c",
		"add Chess",
		"edit 7",
		"title Checkers",
		"submit",
		"delete 7",
		"Delete",
		"logout",
		"exit",
	}, "\n")+"\n")

	assert.Contains(t, out, "Signed out. Commands: login, signup, help, exit")
	assert.Contains(t, out, "Chess")
	assert.Contains(t, out, "Checkers")
	assert.Contains(t, out, `Delete: Delete "Checkers"? [Cancel/Delete]`)
	assert.Empty(t, fc.games)
	assert.Equal(t, 1, fc.watches)
	assert.Equal(t, 1, fc.unwatched)
	assert.True(t, fc.closed)
}

func TestApp_RestoredSessionOpensCatalog(t *testing.T) {
	fc := newFakeClient()
	fc.session = &models.Session{AccessToken: "at", User: &models.User{ID: "u1", Email: "a@b.c"}}
	fc.games = []*models.Game{{ID: 3, Title: "Hades", UserID: "u1"}}

	out := runApp(t, fc, "exit\n")

	assert.Contains(t, out, "Hades")
	assert.NotContains(t, out, "Signed out.")
	assert.Equal(t, 1, fc.watches)
	assert.Equal(t, 1, fc.unwatched)
}

func TestApp_LoginErrorStaysOnAuthScreen(t *testing.T) {
	stubPassword(t, "wrong")
	fc := newFakeClient()

	out := runApp(t, fc, "login\na@b.c\nexit\n")

	assert.Contains(t, out, "Login Error: Invalid login credentials")
	assert.Zero(t, fc.watches)
}

func TestApp_SignUpShowsConfirmationHint(t *testing.T) {
	stubPassword(t, "secret")
	fc := newFakeClient()

	out := runApp(t, fc, "signup\nnew@b.c\nexit\n")

	assert.Contains(t, out, "Success: Check your email for a confirmation link!")
	assert.Zero(t, fc.watches)
}

func TestApp_OnlineWatcherTracksPing(t *testing.T) {
	fc := newFakeClient()
	a := newApp(&config.Config{}, fc, bufio.NewReader(strings.NewReader("")), io.Discard, logging.Nop{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		a.StartOnlineStatusWatcher(ctx, 5*time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool { return a.Mode() == ModeOnline }, time.Second, 5*time.Millisecond)
	fc.mu.Lock()
	fc.pingErr = errors.New("down")
	fc.mu.Unlock()
	require.Eventually(t, func() bool { return a.Mode() == ModeOffline }, time.Second, 5*time.Millisecond)

	cancel()
	<-done
}
