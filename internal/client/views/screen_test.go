package views

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrijs2005/gamekeeper/internal/client/models"
)

func TestScreenFor(t *testing.T) {
	s := &models.Session{AccessToken: "at"}

	tests := []struct {
		name    string
		loaded  bool
		session *models.Session
		want    Screen
	}{
		{"not loaded", false, nil, ScreenLoading},
		{"not loaded with session", false, s, ScreenLoading},
		{"signed out", true, nil, ScreenAuth},
		{"signed in", true, s, ScreenCatalog},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScreenFor(tt.loaded, tt.session))
		})
	}
}

func TestRoot_ReportsTransitionsOnly(t *testing.T) {
	type change struct{ prev, next Screen }
	var changes []change
	r := NewRoot(func(prev, next Screen) { changes = append(changes, change{prev, next}) })

	s := &models.Session{AccessToken: "at"}
	r.Update(false, nil)
	r.Update(true, nil)
	r.Update(true, nil)
	r.Update(true, s)
	r.Update(true, &models.Session{AccessToken: "refreshed"})
	r.Update(true, nil)

	assert.Equal(t, []change{
		{ScreenLoading, ScreenAuth},
		{ScreenAuth, ScreenCatalog},
		{ScreenCatalog, ScreenAuth},
	}, changes)
	assert.Equal(t, ScreenAuth, r.Screen())
	assert.Equal(t, "auth", r.Screen().String())
}
