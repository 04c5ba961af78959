// Package session keeps the client's view of the signed-in session and
// tells observers when it changes.
package session

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/gamekeeper/internal/client/client"
	"github.com/dmitrijs2005/gamekeeper/internal/client/models"
	"github.com/dmitrijs2005/gamekeeper/internal/logging"
)

// Source is the part of the backend binding the holder depends on.
type Source interface {
	GetSession(ctx context.Context) (*models.Session, error)
	OnAuthStateChange(fn client.AuthListener) client.Subscription
}

// State is what observers receive. Loaded is false until the initial
// session check has finished.
type State struct {
	Loaded  bool
	Session *models.Session
}

type Holder struct {
	src    Source
	logger logging.Logger

	mu        sync.Mutex
	state     State
	gotEvent  bool
	observers map[int]func(State)
	nextID    int

	sub      client.Subscription
	closed   bool
	ready    chan struct{}
	initOnce sync.Once
}

func New(src Source, l logging.Logger) *Holder {
	return &Holder{
		src:       src,
		logger:    l,
		observers: make(map[int]func(State)),
		ready:     make(chan struct{}),
	}
}

// Init subscribes to auth-state changes and starts the initial session
// fetch in the background. Ready is closed once the fetch has finished.
// A failed fetch leaves the holder signed out.
func (h *Holder) Init(ctx context.Context) {
	h.initOnce.Do(func() {
		sub := h.src.OnAuthStateChange(h.onAuthEvent)

		h.mu.Lock()
		closed := h.closed
		if !closed {
			h.sub = sub
		}
		h.mu.Unlock()

		if closed {
			sub.Unsubscribe()
		}
		go h.load(ctx)
	})
}

func (h *Holder) load(ctx context.Context) {
	defer close(h.ready)

	s, err := h.src.GetSession(ctx)
	if err != nil {
		h.logger.Debug(ctx, "session check failed", "error", err)
		s = nil
	}

	h.mu.Lock()
	// an auth event that arrived meanwhile is newer than what we fetched
	if !h.gotEvent {
		h.state.Session = s
	}
	h.state.Loaded = true
	st := h.state
	h.mu.Unlock()

	h.notify(st)
}

func (h *Holder) onAuthEvent(event models.AuthEvent, s *models.Session) {
	h.logger.Debug(context.Background(), "auth state changed", "event", string(event))

	h.mu.Lock()
	h.gotEvent = true
	h.state.Session = s
	st := h.state
	h.mu.Unlock()

	h.notify(st)
}

func (h *Holder) notify(st State) {
	h.mu.Lock()
	fns := make([]func(State), 0, len(h.observers))
	for _, fn := range h.observers {
		fns = append(fns, fn)
	}
	h.mu.Unlock()

	for _, fn := range fns {
		fn(st)
	}
}

// Ready is closed when the initial session check is over.
func (h *Holder) Ready() <-chan struct{} {
	return h.ready
}

func (h *Holder) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Observe registers fn for every state change.
func (h *Holder) Observe(fn func(State)) client.Subscription {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.observers[id] = fn
	h.mu.Unlock()

	return client.NewSubscription(func() {
		h.mu.Lock()
		delete(h.observers, id)
		h.mu.Unlock()
	})
}

// Close releases the auth-state subscription. Safe to call more than once
// and before Init.
func (h *Holder) Close() {
	h.mu.Lock()
	sub := h.sub
	h.sub = nil
	h.closed = true
	h.mu.Unlock()

	if sub != nil {
		sub.Unsubscribe()
	}
}
