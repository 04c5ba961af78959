package client

import "sync"

// Subscription is a handle for a listener or a stream. Unsubscribe may be
// called any number of times; the release happens once.
type Subscription interface {
	Unsubscribe()
}

type funcSubscription struct {
	once sync.Once
	fn   func()
}

// NewSubscription returns a handle that runs fn on the first Unsubscribe.
func NewSubscription(fn func()) Subscription {
	return &funcSubscription{fn: fn}
}

func (s *funcSubscription) Unsubscribe() {
	s.once.Do(s.fn)
}
