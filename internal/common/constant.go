// Package common contains shared constants and sentinel errors used across
// GameKeeper components.
package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// APIKeyHeaderName carries the project key identifying the client app.
const APIKeyHeaderName = "apikey"

const (
	// GamesTable is the only table exposed to the catalog.
	GamesTable = "games"
	// GameImagesBucket is the public bucket holding cover images.
	GameImagesBucket = "game-images"
	// GamesChannel is the Postgres NOTIFY channel fed by the games trigger.
	GamesChannel = "games_changes"
)
