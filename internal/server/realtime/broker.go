// Package realtime fans out committed games changes to WatchGames streams.
// A Listener receives Postgres notifications and hands them to a Broker,
// which routes each event to the subscribers of the row's owner.
package realtime

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/gamekeeper/internal/api"
	"github.com/dmitrijs2005/gamekeeper/internal/logging"
)

const defaultBuffer = 16

type subscriber struct {
	userID string
	ch     chan *api.ChangeEvent
}

// Broker keeps per-user subscriber channels. Publish never blocks: when a
// subscriber's buffer is full the event is dropped for that subscriber.
type Broker struct {
	mu     sync.RWMutex
	subs   map[string]*subscriber
	buffer int
	logger logging.Logger
}

func NewBroker(buffer int, l logging.Logger) *Broker {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	return &Broker{
		subs:   make(map[string]*subscriber),
		buffer: buffer,
		logger: l.With("module", "realtime_broker"),
	}
}

// Subscribe registers a receiver for events on rows owned by userID. The
// returned cancel func removes the subscription and closes the channel; it
// is safe to call more than once.
func (b *Broker) Subscribe(userID string) (string, <-chan *api.ChangeEvent, func()) {
	id := uuid.NewString()
	s := &subscriber{userID: userID, ch: make(chan *api.ChangeEvent, b.buffer)}

	b.mu.Lock()
	b.subs[id] = s
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
			close(s.ch)
		})
	}
	return id, s.ch, cancel
}

// Publish delivers ev to every subscriber owning the new or old row.
func (b *Broker) Publish(ctx context.Context, ev *api.ChangeEvent) {
	owners := eventOwners(ev)
	if len(owners) == 0 {
		return
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	for id, s := range b.subs {
		if _, ok := owners[s.userID]; !ok {
			continue
		}
		select {
		case s.ch <- ev:
		default:
			b.logger.Warn(ctx, "subscriber is slow, event dropped", "subscriber_id", id, "user_id", s.userID, "type", ev.Type)
		}
	}
}

// Len reports the number of active subscriptions.
func (b *Broker) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

func eventOwners(ev *api.ChangeEvent) map[string]struct{} {
	owners := make(map[string]struct{}, 2)
	if ev.Record != nil && ev.Record.UserID != "" {
		owners[ev.Record.UserID] = struct{}{}
	}
	if ev.OldRecord != nil && ev.OldRecord.UserID != "" {
		owners[ev.OldRecord.UserID] = struct{}{}
	}
	return owners
}
