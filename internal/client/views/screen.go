// Package views holds the UI logic of the client that does not depend on
// how it is rendered: screen selection and the authentication form.
package views

import (
	"sync"

	"github.com/dmitrijs2005/gamekeeper/internal/client/models"
)

type Screen int

const (
	ScreenLoading Screen = iota
	ScreenAuth
	ScreenCatalog
)

func (s Screen) String() string {
	switch s {
	case ScreenLoading:
		return "loading"
	case ScreenAuth:
		return "auth"
	case ScreenCatalog:
		return "catalog"
	default:
		return "unknown"
	}
}

// ScreenFor picks the screen for the given session state.
func ScreenFor(loaded bool, s *models.Session) Screen {
	switch {
	case !loaded:
		return ScreenLoading
	case s != nil:
		return ScreenCatalog
	default:
		return ScreenAuth
	}
}

// Root tracks the current screen and reports transitions.
type Root struct {
	mu       sync.Mutex
	screen   Screen
	onChange func(prev, next Screen)
}

// NewRoot starts on ScreenLoading. onChange runs for every transition,
// outside the Root lock.
func NewRoot(onChange func(prev, next Screen)) *Root {
	return &Root{screen: ScreenLoading, onChange: onChange}
}

// Update recomputes the screen and returns it.
func (r *Root) Update(loaded bool, s *models.Session) Screen {
	next := ScreenFor(loaded, s)

	r.mu.Lock()
	prev := r.screen
	r.screen = next
	r.mu.Unlock()

	if prev != next && r.onChange != nil {
		r.onChange(prev, next)
	}
	return next
}

func (r *Root) Screen() Screen {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.screen
}
