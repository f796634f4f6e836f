package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/tilegame/internal/storage/storagetest"
)

type StorageSuite struct {
	storagetest.Suite
	storage *Storage
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.Storage = s.storage
	s.Ctx = context.Background()
}

func (s *StorageSuite) TestSavedGameIsCopied() {
	game := storagetest.NewGame("game-1")
	s.Require().NoError(s.storage.SaveGame(s.Ctx, game))

	game.Players[0].Score = 500

	retrieved, err := s.storage.GetGame(s.Ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(10, retrieved.Players[0].Score)
}
