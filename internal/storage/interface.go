package storage

import (
	"context"

	"github.com/mcoot/tilegame/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Game operations
	SaveGame(ctx context.Context, game *model.Game) error
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)
	DeleteGame(ctx context.Context, id model.GameID) error
	GameExists(ctx context.Context, id model.GameID) (bool, error)
	ListGameIDs(ctx context.Context) ([]model.GameID, error)

	// Credential operations
	SavePlayerCredential(ctx context.Context, cred *model.PlayerCredential) error
	GetPlayerCredential(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.PlayerCredential, error)
}
