package models

import "time"

// User is an account row. ConfirmedAt stays nil until the email link is
// followed when confirmation is required.
type User struct {
	ID                string
	Email             string
	PasswordHash      []byte
	ConfirmationToken *string
	ConfirmedAt       *time.Time
	CreatedAt         time.Time
}

func (u *User) Confirmed() bool {
	return u.ConfirmedAt != nil
}
