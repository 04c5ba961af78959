package api

import "time"

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Session is the credential set handed to a signed-in client.
type Session struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	User         *User     `json:"user"`
}

// Game is one row of the games table. ImageURL is nil until a cover is attached.
type Game struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	ImageURL  *string   `json:"image_url"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignUpResponse carries a Session only when no email confirmation is pending.
type SignUpResponse struct {
	User    *User    `json:"user"`
	Session *Session `json:"session,omitempty"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignInResponse struct {
	Session *Session `json:"session"`
}

type SignOutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type SignOutResponse struct{}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenResponse struct {
	Session *Session `json:"session"`
}

type GetUserRequest struct{}

type GetUserResponse struct {
	User *User `json:"user"`
}

type ConfirmEmailRequest struct {
	Token string `json:"token"`
}

type ConfirmEmailResponse struct {
	User *User `json:"user"`
}

type ListGamesRequest struct{}

type ListGamesResponse struct {
	Games []*Game `json:"games"`
}

type InsertGameRequest struct {
	Title  string `json:"title"`
	UserID string `json:"user_id"`
}

type InsertGameResponse struct {
	Game *Game `json:"game"`
}

// UpdateGameRequest patches the non-nil fields of game ID.
type UpdateGameRequest struct {
	ID       int64   `json:"id"`
	Title    *string `json:"title,omitempty"`
	ImageURL *string `json:"image_url,omitempty"`
}

type UpdateGameResponse struct {
	Game *Game `json:"game"`
}

type DeleteGameRequest struct {
	ID int64 `json:"id"`
}

type DeleteGameResponse struct{}

type UploadObjectRequest struct {
	Bucket      string `json:"bucket"`
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"data"`
}

type UploadObjectResponse struct {
	Key string `json:"key"`
}

type GetPublicURLRequest struct {
	Bucket string `json:"bucket"`
	Name   string `json:"name"`
}

type GetPublicURLResponse struct {
	PublicURL string `json:"public_url"`
}

type WatchGamesRequest struct {
	Table string `json:"table"`
}

// Change event types, matching the Postgres trigger operation names.
const (
	EventInsert = "INSERT"
	EventUpdate = "UPDATE"
	EventDelete = "DELETE"
)

// ChangeEvent describes one committed change to a games row. Record is nil
// for deletes, OldRecord is nil for inserts.
type ChangeEvent struct {
	Type            string    `json:"type"`
	Table           string    `json:"table"`
	Record          *Game     `json:"record,omitempty"`
	OldRecord       *Game     `json:"old_record,omitempty"`
	CommitTimestamp time.Time `json:"commit_timestamp"`
}
