// Package models defines server-side rows persisted in Postgres.
package models

import "time"

type Game struct {
	ID        int64
	Title     string
	ImageURL  *string
	UserID    string
	CreatedAt time.Time
}

// GamePatch lists the columns an update may touch; nil means unchanged.
type GamePatch struct {
	Title    *string
	ImageURL *string
}

func (p GamePatch) Empty() bool {
	return p.Title == nil && p.ImageURL == nil
}
