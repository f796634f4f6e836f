package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/mcoot/tilegame/internal/model"
	"github.com/mcoot/tilegame/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// Games are copied on the way in and out, so callers can mutate what
// they load without touching the stored state until they save.
type Storage struct {
	mu sync.RWMutex

	games       map[model.GameID]*model.Game
	credentials map[credentialKey]*model.PlayerCredential
}

type credentialKey struct {
	gameID   model.GameID
	playerID model.PlayerID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		games:       make(map[model.GameID]*model.Game),
		credentials: make(map[credentialKey]*model.PlayerCredential),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[game.ID] = game.Clone()
	return nil
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return game.Clone(), nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, id)
	for key := range s.credentials {
		if key.gameID == id {
			delete(s.credentials, key)
		}
	}
	return nil
}

func (s *Storage) GameExists(ctx context.Context, id model.GameID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.games[id]
	return ok, nil
}

func (s *Storage) ListGameIDs(ctx context.Context) ([]model.GameID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]model.GameID, 0, len(s.games))
	for id := range s.games {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}

// Credential operations

func (s *Storage) SavePlayerCredential(ctx context.Context, cred *model.PlayerCredential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *cred
	s.credentials[credentialKey{gameID: cred.GameID, playerID: cred.PlayerID}] = &c
	return nil
}

func (s *Storage) GetPlayerCredential(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.PlayerCredential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cred, ok := s.credentials[credentialKey{gameID: gameID, playerID: playerID}]
	if !ok {
		return nil, model.ErrCredentialNotFound
	}
	c := *cred
	return &c, nil
}
