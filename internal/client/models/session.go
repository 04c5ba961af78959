// Package models holds the client-side view of accounts, sessions and games.
package models

import "time"

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Session is the signed-in state persisted on the device.
type Session struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	User         *User     `json:"user"`
}

// AuthEvent names a session transition reported by the backend binding.
type AuthEvent string

const (
	SignedIn       AuthEvent = "SIGNED_IN"
	SignedOut      AuthEvent = "SIGNED_OUT"
	TokenRefreshed AuthEvent = "TOKEN_REFRESHED"
)
