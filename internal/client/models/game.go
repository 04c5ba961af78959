package models

// Game is one catalog entry. ImageURL stays nil until a cover is uploaded.
type Game struct {
	ID       int64
	Title    string
	ImageURL *string
	UserID   string
}

// HasImage reports whether the row has a non-empty cover URL.
func (g *Game) HasImage() bool {
	return g.ImageURL != nil && *g.ImageURL != ""
}

// GamePatch lists the fields an update changes; nil leaves a field as is.
type GamePatch struct {
	Title    *string
	ImageURL *string
}

// ChangeEvent is one realtime notification about a games row. New is nil
// for deletes and Old is nil for inserts.
type ChangeEvent struct {
	Type string
	New  *Game
	Old  *Game
}
