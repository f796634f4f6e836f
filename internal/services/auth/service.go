package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/tilegame/internal/dependencies/clock"
	"github.com/mcoot/tilegame/internal/model"
	"github.com/mcoot/tilegame/internal/storage"
)

// Service issues and checks the bearer tokens that let a client act as a player.
// A token is "<playerID>.<secret>"; only a bcrypt hash of the whole token is stored.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	cost    int

	// Tokens already verified against their hash, keyed by game and token
	mu       sync.RWMutex
	verified map[verifiedKey]model.PlayerID
}

type verifiedKey struct {
	gameID model.GameID
	token  string
}

// Config holds configuration for the auth service
type Config struct {
	TokenCost int // bcrypt cost
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		TokenCost: bcrypt.DefaultCost,
	}
}

// New creates a new AuthService
func New(storage storage.Storage, clock clock.Clock, cfg Config) *Service {
	if cfg.TokenCost == 0 {
		cfg.TokenCost = DefaultConfig().TokenCost
	}
	return &Service{
		storage:  storage,
		clock:    clock,
		cost:     cfg.TokenCost,
		verified: make(map[verifiedKey]model.PlayerID),
	}
}

// IssueToken creates a fresh token for a player, replacing any earlier one
func (s *Service) IssueToken(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (string, error) {
	token := string(playerID) + "." + generateSecret()

	hash, err := bcrypt.GenerateFromPassword([]byte(token), s.cost)
	if err != nil {
		return "", err
	}

	cred := &model.PlayerCredential{
		GameID:    gameID,
		PlayerID:  playerID,
		TokenHash: string(hash),
		CreatedAt: s.clock.Now(),
	}
	if err := s.storage.SavePlayerCredential(ctx, cred); err != nil {
		return "", err
	}

	s.forget(gameID, playerID)
	return token, nil
}

// Authenticate resolves a token to the player it was issued for
func (s *Service) Authenticate(ctx context.Context, gameID model.GameID, token string) (model.PlayerID, error) {
	key := verifiedKey{gameID: gameID, token: token}
	s.mu.RLock()
	playerID, ok := s.verified[key]
	s.mu.RUnlock()
	if ok {
		return playerID, nil
	}

	id, _, found := strings.Cut(token, ".")
	if !found || id == "" {
		return "", model.ErrInvalidToken
	}
	playerID = model.PlayerID(id)

	cred, err := s.storage.GetPlayerCredential(ctx, gameID, playerID)
	if err != nil {
		if errors.Is(err, model.ErrCredentialNotFound) {
			return "", model.ErrInvalidToken
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.TokenHash), []byte(token)); err != nil {
		return "", model.ErrInvalidToken
	}

	s.mu.Lock()
	s.verified[key] = playerID
	s.mu.Unlock()

	return playerID, nil
}

// forget drops cached verifications for a player whose token was reissued
func (s *Service) forget(gameID model.GameID, playerID model.PlayerID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, id := range s.verified {
		if key.gameID == gameID && id == playerID {
			delete(s.verified, key)
		}
	}
}

// generateSecret returns 32 random bytes, URL-safe encoded
func generateSecret() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}

// Interface for dependency injection
type ServiceInterface interface {
	IssueToken(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (string, error)
	Authenticate(ctx context.Context, gameID model.GameID, token string) (model.PlayerID, error)
}

var _ ServiceInterface = (*Service)(nil)
