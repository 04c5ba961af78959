// Package catalog is the view-model behind the games screen: the cached
// list, the add/edit form and the per-row upload marker.
//
// Every successful mutation and every realtime event is followed by a full
// refetch of the list; nothing is merged locally.
package catalog

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/gamekeeper/internal/client/client"
	"github.com/dmitrijs2005/gamekeeper/internal/client/models"
	"github.com/dmitrijs2005/gamekeeper/internal/client/picker"
	"github.com/dmitrijs2005/gamekeeper/internal/logging"
)

// ImagesBucket is where cover images are uploaded.
const ImagesBucket = "game-images"

const (
	defaultContentType = "image/jpeg"
	fallbackMessage    = "Something went wrong"
)

type Backend interface {
	GetUser(ctx context.Context) (*models.User, error)
	SignOut(ctx context.Context) error

	ListGames(ctx context.Context) ([]*models.Game, error)
	InsertGame(ctx context.Context, title, userID string) (*models.Game, error)
	UpdateGame(ctx context.Context, id int64, patch models.GamePatch) (*models.Game, error)
	DeleteGame(ctx context.Context, id int64) error
	SubscribeGames(ctx context.Context, fn func(models.ChangeEvent)) client.Subscription

	Upload(ctx context.Context, bucket, name, contentType string, data []byte) (string, error)
	PublicURL(ctx context.Context, bucket, name string) (string, error)
}

type Picker interface {
	Pick(ctx context.Context) (*picker.Asset, error)
	Read(ctx context.Context, a *picker.Asset) ([]byte, error)
}

// Dialog shows modal prompts.
type Dialog interface {
	Alert(title, message string)
	// Confirm returns true when the user picks ok.
	Confirm(title, message, cancel, ok string) bool
}

// State is a snapshot for rendering.
type State struct {
	Games       []*models.Game
	Loading     bool
	Title       string
	EditingID   *int64
	UploadingID *int64
}

type ViewModel struct {
	backend Backend
	picker  Picker
	dialog  Dialog
	logger  logging.Logger
	now     func() time.Time

	mu    sync.Mutex
	state State

	obsMu     sync.Mutex
	observers map[int]func()
	nextObs   int

	sub    client.Subscription
	closed bool
}

func New(b Backend, p Picker, d Dialog, l logging.Logger) *ViewModel {
	return &ViewModel{
		backend:   b,
		picker:    p,
		dialog:    d,
		logger:    l.With("module", "catalog"),
		now:       time.Now,
		state:     State{Loading: true},
		observers: make(map[int]func()),
	}
}

func (vm *ViewModel) State() State {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	st := vm.state
	st.Games = append([]*models.Game(nil), vm.state.Games...)
	return st
}

// Observe registers fn to run after every state change.
func (vm *ViewModel) Observe(fn func()) client.Subscription {
	vm.obsMu.Lock()
	id := vm.nextObs
	vm.nextObs++
	vm.observers[id] = fn
	vm.obsMu.Unlock()

	return client.NewSubscription(func() {
		vm.obsMu.Lock()
		delete(vm.observers, id)
		vm.obsMu.Unlock()
	})
}

func (vm *ViewModel) changed() {
	vm.obsMu.Lock()
	fns := make([]func(), 0, len(vm.observers))
	for _, fn := range vm.observers {
		fns = append(fns, fn)
	}
	vm.obsMu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

func (vm *ViewModel) update(fn func(s *State)) {
	vm.mu.Lock()
	fn(&vm.state)
	vm.mu.Unlock()
	vm.changed()
}

// Start loads the list and follows the games change channel. Every event
// causes exactly one refetch.
func (vm *ViewModel) Start(ctx context.Context) {
	vm.List(ctx)
	if vm.isClosed() {
		return
	}

	sub := vm.backend.SubscribeGames(ctx, func(ev models.ChangeEvent) {
		vm.logger.Debug(ctx, "games changed", "type", ev.Type)
		vm.List(ctx)
	})

	vm.mu.Lock()
	closed := vm.closed
	if !closed {
		vm.sub = sub
	}
	vm.mu.Unlock()

	// closed while subscribing
	if closed {
		sub.Unsubscribe()
	}
}

func (vm *ViewModel) isClosed() bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.closed
}

// Close drops the realtime subscription. Safe to call more than once,
// and before or during Start.
func (vm *ViewModel) Close() {
	vm.mu.Lock()
	sub := vm.sub
	vm.sub = nil
	vm.closed = true
	vm.mu.Unlock()

	if sub != nil {
		sub.Unsubscribe()
	}
}

// List replaces the cached list with a fresh fetch. On failure the old
// list stays.
func (vm *ViewModel) List(ctx context.Context) {
	games, err := vm.backend.ListGames(ctx)
	if err != nil {
		vm.logger.Error(ctx, "Error fetching games", "error", err)
	}
	vm.update(func(s *State) {
		if err == nil {
			s.Games = games
		}
		s.Loading = false
	})
}

func (vm *ViewModel) SetTitle(title string) {
	vm.update(func(s *State) { s.Title = title })
}

func (vm *ViewModel) draft() (string, *int64) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return strings.TrimSpace(vm.state.Title), vm.state.EditingID
}

// Insert adds the drafted title for the current user.
func (vm *ViewModel) Insert(ctx context.Context) {
	title, _ := vm.draft()
	if title == "" {
		return
	}

	user, err := vm.backend.GetUser(ctx)
	if err != nil || user == nil {
		vm.logger.Debug(ctx, "insert skipped, no user", "error", err)
		return
	}

	if _, err := vm.backend.InsertGame(ctx, title, user.ID); err != nil {
		vm.dialog.Alert("Error", client.Message(err))
		return
	}

	vm.update(func(s *State) { s.Title = "" })
	vm.List(ctx)
}

// Update renames the game being edited to the drafted title.
func (vm *ViewModel) Update(ctx context.Context) {
	title, editingID := vm.draft()
	if title == "" || editingID == nil {
		return
	}

	if _, err := vm.backend.UpdateGame(ctx, *editingID, models.GamePatch{Title: &title}); err != nil {
		vm.dialog.Alert("Error", client.Message(err))
		return
	}

	vm.update(func(s *State) {
		s.Title = ""
		s.EditingID = nil
	})
	vm.List(ctx)
}

// Submit updates while editing and inserts otherwise.
func (vm *ViewModel) Submit(ctx context.Context) {
	if _, editingID := vm.draft(); editingID != nil {
		vm.Update(ctx)
		return
	}
	vm.Insert(ctx)
}

// Delete removes a game after the user confirms.
func (vm *ViewModel) Delete(ctx context.Context, id int64, title string) {
	if !vm.dialog.Confirm("Delete", fmt.Sprintf("Delete %q?", title), "Cancel", "Delete") {
		return
	}

	if err := vm.backend.DeleteGame(ctx, id); err != nil {
		vm.dialog.Alert("Error", client.Message(err))
		return
	}
	vm.List(ctx)
}

func (vm *ViewModel) StartEditing(g *models.Game) {
	id := g.ID
	vm.update(func(s *State) {
		s.EditingID = &id
		s.Title = g.Title
	})
}

func (vm *ViewModel) CancelEditing() {
	vm.update(func(s *State) {
		s.EditingID = nil
		s.Title = ""
	})
}

// UploadImage picks a photo, uploads it and links it to game id.
func (vm *ViewModel) UploadImage(ctx context.Context, id int64) {
	asset, err := vm.picker.Pick(ctx)
	if err != nil {
		vm.logger.Warn(ctx, "image pick failed", "error", err)
		return
	}
	if asset == nil || asset.URI == "" || asset.FileName == "" {
		return
	}

	vm.update(func(s *State) { s.UploadingID = &id })
	defer vm.update(func(s *State) { s.UploadingID = nil })

	name := fmt.Sprintf("%d-%d.jpg", id, vm.now().UnixMilli())

	data, err := vm.picker.Read(ctx, asset)
	if err != nil {
		vm.dialog.Alert("Error", messageOr(err, fallbackMessage))
		return
	}

	contentType := asset.Type
	if contentType == "" {
		contentType = defaultContentType
	}

	if _, err := vm.backend.Upload(ctx, ImagesBucket, name, contentType, data); err != nil {
		vm.dialog.Alert("Upload Error", client.Message(err))
		return
	}

	url, err := vm.backend.PublicURL(ctx, ImagesBucket, name)
	if err != nil {
		vm.dialog.Alert("Error", messageOr(err, fallbackMessage))
		return
	}

	if _, err := vm.backend.UpdateGame(ctx, id, models.GamePatch{ImageURL: &url}); err != nil {
		vm.dialog.Alert("Error", client.Message(err))
		return
	}
	vm.List(ctx)
}

// Logout asks the backend to end the session; the session holder switches
// the screen.
func (vm *ViewModel) Logout(ctx context.Context) {
	if err := vm.backend.SignOut(ctx); err != nil {
		vm.logger.Warn(ctx, "sign out failed", "error", err)
	}
}

func messageOr(err error, fallback string) string {
	if msg := client.Message(err); msg != "" {
		return msg
	}
	return fallback
}
