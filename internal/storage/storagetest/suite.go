// Package storagetest holds behaviour every storage backend must share
package storagetest

import (
	"context"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/tilegame/internal/model"
	"github.com/mcoot/tilegame/internal/storage"
)

// Suite runs the common storage checks. Backends embed it and set
// Storage in their own SetupTest.
type Suite struct {
	suite.Suite
	Storage storage.Storage
	Ctx     context.Context
}

// NewGame builds a small but fully populated game
func NewGame(id model.GameID) *model.Game {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	board := model.NewBoard()
	board.PlaceTile(model.Position{Row: 7, Col: 7}, model.Tile{Letter: 'H'})
	board.PlaceTile(model.Position{Row: 7, Col: 8}, model.Tile{Letter: 'I', Blank: true})

	return &model.Game{
		ID:    id,
		State: model.GameStateActive,
		Board: board,
		Pool:  &model.TilePool{Tiles: []rune("AEIOU?")},
		Players: []*model.Player{
			{ID: "p1", Name: "Alice", Score: 10, Rack: model.Rack("CATDOG?"), JoinedAt: now},
			{ID: "p2", Name: "Bob", Rack: model.Rack("XYZ"), JoinedAt: now},
		},
		TurnNumber:       3,
		CurrentPlayerIdx: 1,
		Moves: []model.Move{{
			PlayerID:     "p1",
			Word:         "HI",
			Origin:       model.Position{Row: 7, Col: 7},
			Direction:    model.Horizontal,
			Score:        10,
			BlankIndexes: []int{1},
			PlayedAt:     now,
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *Suite) TestSaveAndGetGame() {
	game := NewGame("game-1")
	s.Require().NoError(s.Storage.SaveGame(s.Ctx, game))

	retrieved, err := s.Storage.GetGame(s.Ctx, "game-1")
	s.Require().NoError(err)

	s.Equal(game.ID, retrieved.ID)
	s.Equal(game.State, retrieved.State)
	s.Equal(game.Board.Snapshot(), retrieved.Board.Snapshot())
	s.Equal(&model.Tile{Letter: 'I', Blank: true}, retrieved.Board.Get(model.Position{Row: 7, Col: 8}))
	s.Equal(game.Pool.Tiles, retrieved.Pool.Tiles)
	s.Require().Len(retrieved.Players, 2)
	s.Equal("Alice", retrieved.Players[0].Name)
	s.Equal(10, retrieved.Players[0].Score)
	s.Equal(model.Rack("CATDOG?"), retrieved.Players[0].Rack)
	s.Equal(3, retrieved.TurnNumber)
	s.Equal(1, retrieved.CurrentPlayerIdx)
	s.Require().Len(retrieved.Moves, 1)
	s.Equal([]int{1}, retrieved.Moves[0].BlankIndexes)
	s.True(game.CreatedAt.Equal(retrieved.CreatedAt))
}

func (s *Suite) TestGetGameNotFound() {
	_, err := s.Storage.GetGame(s.Ctx, "nonexistent")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *Suite) TestSaveGameOverwrites() {
	game := NewGame("game-1")
	s.Require().NoError(s.Storage.SaveGame(s.Ctx, game))

	game.Players[0].Score = 99
	game.Pool.Draw(2)
	s.Require().NoError(s.Storage.SaveGame(s.Ctx, game))

	retrieved, err := s.Storage.GetGame(s.Ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(99, retrieved.Players[0].Score)
	s.Equal(4, retrieved.Pool.Remaining())
}

func (s *Suite) TestMutatingLoadedGameDoesNotPersist() {
	s.Require().NoError(s.Storage.SaveGame(s.Ctx, NewGame("game-1")))

	loaded, err := s.Storage.GetGame(s.Ctx, "game-1")
	s.Require().NoError(err)
	loaded.Players[0].Rack = model.Rack{}
	loaded.Board.PlaceTile(model.Position{Row: 0, Col: 0}, model.Tile{Letter: 'Z'})

	again, err := s.Storage.GetGame(s.Ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(model.Rack("CATDOG?"), again.Players[0].Rack)
	s.True(again.Board.IsEmpty(model.Position{Row: 0, Col: 0}))
}

func (s *Suite) TestDeleteGame() {
	s.Require().NoError(s.Storage.SaveGame(s.Ctx, NewGame("game-1")))
	s.Require().NoError(s.Storage.SavePlayerCredential(s.Ctx, &model.PlayerCredential{
		GameID: "game-1", PlayerID: "p1", TokenHash: "hash",
	}))

	s.Require().NoError(s.Storage.DeleteGame(s.Ctx, "game-1"))

	_, err := s.Storage.GetGame(s.Ctx, "game-1")
	s.ErrorIs(err, model.ErrGameNotFound)
	_, err = s.Storage.GetPlayerCredential(s.Ctx, "game-1", "p1")
	s.ErrorIs(err, model.ErrCredentialNotFound)
}

func (s *Suite) TestDeleteMissingGameIsNoop() {
	s.NoError(s.Storage.DeleteGame(s.Ctx, "nonexistent"))
}

func (s *Suite) TestGameExists() {
	exists, err := s.Storage.GameExists(s.Ctx, "game-1")
	s.Require().NoError(err)
	s.False(exists)

	s.Require().NoError(s.Storage.SaveGame(s.Ctx, NewGame("game-1")))

	exists, err = s.Storage.GameExists(s.Ctx, "game-1")
	s.Require().NoError(err)
	s.True(exists)
}

func (s *Suite) TestListGameIDs() {
	ids, err := s.Storage.ListGameIDs(s.Ctx)
	s.Require().NoError(err)
	s.Empty(ids)

	s.Require().NoError(s.Storage.SaveGame(s.Ctx, NewGame("game-b")))
	s.Require().NoError(s.Storage.SaveGame(s.Ctx, NewGame("game-a")))
	s.Require().NoError(s.Storage.SaveGame(s.Ctx, NewGame("game-b")))

	ids, err = s.Storage.ListGameIDs(s.Ctx)
	s.Require().NoError(err)
	s.Equal([]model.GameID{"game-a", "game-b"}, ids)
}

func (s *Suite) TestSaveAndGetPlayerCredential() {
	cred := &model.PlayerCredential{
		GameID:    "game-1",
		PlayerID:  "p1",
		TokenHash: "$2a$04$hash",
		CreatedAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
	s.Require().NoError(s.Storage.SavePlayerCredential(s.Ctx, cred))

	retrieved, err := s.Storage.GetPlayerCredential(s.Ctx, "game-1", "p1")
	s.Require().NoError(err)
	s.Equal(cred.TokenHash, retrieved.TokenHash)
	s.Equal(cred.PlayerID, retrieved.PlayerID)
	s.True(cred.CreatedAt.Equal(retrieved.CreatedAt))

	_, err = s.Storage.GetPlayerCredential(s.Ctx, "game-2", "p1")
	s.ErrorIs(err, model.ErrCredentialNotFound)
}

func (s *Suite) TestSavePlayerCredentialReplaces() {
	s.Require().NoError(s.Storage.SavePlayerCredential(s.Ctx, &model.PlayerCredential{
		GameID: "game-1", PlayerID: "p1", TokenHash: "old",
	}))
	s.Require().NoError(s.Storage.SavePlayerCredential(s.Ctx, &model.PlayerCredential{
		GameID: "game-1", PlayerID: "p1", TokenHash: "new",
	}))

	retrieved, err := s.Storage.GetPlayerCredential(s.Ctx, "game-1", "p1")
	s.Require().NoError(err)
	s.Equal("new", retrieved.TokenHash)
}
