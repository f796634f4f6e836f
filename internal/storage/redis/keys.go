package redis

import (
	"fmt"

	"github.com/mcoot/tilegame/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "tilegame"

// gameKey returns the Redis key for a Game
func gameKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%s", keyPrefix, id)
}

// gamesIndexKey returns the Redis key for the SET of all game IDs
func gamesIndexKey() string {
	return fmt.Sprintf("%s:idx:games", keyPrefix)
}

// credentialKey returns the Redis key for a PlayerCredential
func credentialKey(gameID model.GameID, playerID model.PlayerID) string {
	return fmt.Sprintf("%s:credential:%s:%s", keyPrefix, gameID, playerID)
}

// credentialsForGameIndexKey returns the Redis key for the SET of players holding credentials in a game
func credentialsForGameIndexKey(gameID model.GameID) string {
	return fmt.Sprintf("%s:idx:credentials_for_game:%s", keyPrefix, gameID)
}
