// Package client is the GameKeeper backend binding.
//
// GRPCClient talks to the server over the internal/api contract. It sends
// the project API key with every call, attaches the current access token and
// transparently refreshes it once when the server answers "token expired".
// The session is cached in memory and persisted through a TokenStore so a
// restarted client comes back signed in.
//
// Session transitions are reported to OnAuthStateChange listeners as
// SIGNED_IN, SIGNED_OUT and TOKEN_REFRESHED events.
//
// Failures are returned as *APIError values wrapping one of the sentinels
// (ErrUnavailable, ErrUnauthorized, ErrNotFound, ErrRejected); Message
// extracts the server text for display.
//
// InitDatabase and RunMigrations bootstrap the on-device SQLite database.
package client
