package catalog

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/gamekeeper/internal/client/client"
	"github.com/dmitrijs2005/gamekeeper/internal/client/models"
	"github.com/dmitrijs2005/gamekeeper/internal/client/picker"
)

type uploadCall struct {
	bucket, name, contentType string
	data                      []byte
}

type updateCall struct {
	id    int64
	patch models.GamePatch
}

type fakeBackend struct {
	mu sync.Mutex

	user    *models.User
	userErr error

	games   []*models.Game
	listErr error
	lists   int
	onList  func()

	insertErr error
	inserted  []string

	updateErr error
	updates   []updateCall

	deleteErr error
	deleted   []int64

	uploadErr error
	uploads   []uploadCall

	publicURL string

	signOuts int

	watch        func(models.ChangeEvent)
	subscribed   int
	unsubscribed int
}

func (f *fakeBackend) GetUser(context.Context) (*models.User, error) { return f.user, f.userErr }

func (f *fakeBackend) SignOut(context.Context) error {
	f.signOuts++
	return nil
}

func (f *fakeBackend) ListGames(context.Context) ([]*models.Game, error) {
	if f.onList != nil {
		f.onList()
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]*models.Game(nil), f.games...), nil
}

func (f *fakeBackend) InsertGame(_ context.Context, title, userID string) (*models.Game, error) {
	f.inserted = append(f.inserted, title+"/"+userID)
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	return &models.Game{ID: 7, Title: title, UserID: userID}, nil
}

func (f *fakeBackend) UpdateGame(_ context.Context, id int64, patch models.GamePatch) (*models.Game, error) {
	f.updates = append(f.updates, updateCall{id, patch})
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return &models.Game{ID: id}, nil
}

func (f *fakeBackend) DeleteGame(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return f.deleteErr
}

func (f *fakeBackend) SubscribeGames(_ context.Context, fn func(models.ChangeEvent)) client.Subscription {
	f.subscribed++
	f.watch = fn
	return client.NewSubscription(func() { f.unsubscribed++ })
}

func (f *fakeBackend) Upload(_ context.Context, bucket, name, contentType string, data []byte) (string, error) {
	f.uploads = append(f.uploads, uploadCall{bucket, name, contentType, data})
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	return bucket + "/" + name, nil
}

func (f *fakeBackend) PublicURL(_ context.Context, bucket, name string) (string, error) {
	return f.publicURL + bucket + "/" + name, nil
}

func (f *fakeBackend) listCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lists
}

type fakePicker struct {
	asset   *picker.Asset
	pickErr error
	data    []byte
	readErr error
}

func (p *fakePicker) Pick(context.Context) (*picker.Asset, error) { return p.asset, p.pickErr }

func (p *fakePicker) Read(context.Context, *picker.Asset) ([]byte, error) { return p.data, p.readErr }

type alert struct{ title, message string }

type fakeDialog struct {
	answer   bool
	alerts   []alert
	confirms []string
}

func (d *fakeDialog) Alert(title, message string) {
	d.alerts = append(d.alerts, alert{title, message})
}

func (d *fakeDialog) Confirm(title, message, cancel, ok string) bool {
	d.confirms = append(d.confirms, title+"|"+message+"|"+cancel+"|"+ok)
	return d.answer
}
