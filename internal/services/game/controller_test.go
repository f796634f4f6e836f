package game

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/tilegame/internal/dependencies/mocks"
	"github.com/mcoot/tilegame/internal/dependencies/random"
	"github.com/mcoot/tilegame/internal/model"
	"github.com/mcoot/tilegame/internal/services/board"
	"github.com/mcoot/tilegame/internal/services/scoring"
	"github.com/mcoot/tilegame/internal/services/tilepool"
	"github.com/mcoot/tilegame/internal/storage/memory"
	"github.com/mcoot/tilegame/internal/testutil"
)

type ControllerSuite struct {
	suite.Suite
	storage        *memory.Storage
	scoringService *scoring.Service
	clock          *mocks.MockClock
	random         *mocks.MockRandom
	controller     *Controller
	ctx            context.Context
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.storage = memory.New()
	s.scoringService = scoring.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.controller = NewController(
		s.storage,
		tilepool.New(mocks.NewIdentityShuffleRandom()),
		board.New(),
		s.scoringService,
		s.clock,
		s.random,
		testutil.NopLogger(),
	)
	s.ctx = context.Background()
}

// createGame makes a game and seats one player
func (s *ControllerSuite) createGame() (*model.Game, *model.Player) {
	s.random.QueueString("GAME00000001", "ALICE0000001")
	game, err := s.controller.CreateGame(s.ctx)
	s.Require().NoError(err)
	player, err := s.controller.AddPlayer(s.ctx, game.ID, "Alice")
	s.Require().NoError(err)
	return game, player
}

// setRack overwrites a player's rack directly in storage
func (s *ControllerSuite) setRack(gameID model.GameID, playerID model.PlayerID, rack string) {
	game, err := s.storage.GetGame(s.ctx, gameID)
	s.Require().NoError(err)
	game.GetPlayer(playerID).Rack = model.Rack(rack)
	s.Require().NoError(s.storage.SaveGame(s.ctx, game))
}

// setPool overwrites the pool directly in storage. Draws take from the end.
func (s *ControllerSuite) setPool(gameID model.GameID, tiles string) {
	game, err := s.storage.GetGame(s.ctx, gameID)
	s.Require().NoError(err)
	game.Pool.Tiles = []rune(tiles)
	s.Require().NoError(s.storage.SaveGame(s.ctx, game))
}

func (s *ControllerSuite) loadGame(gameID model.GameID) *model.Game {
	game, err := s.storage.GetGame(s.ctx, gameID)
	s.Require().NoError(err)
	return game
}

func hello() model.Placement {
	return model.Placement{Word: "HELLO", Origin: model.Position{Row: 7, Col: 7}, Direction: model.Horizontal}
}

// CreateGame tests

func (s *ControllerSuite) TestCreateGameSucceeds() {
	s.random.QueueString("GAME12345678")

	game, err := s.controller.CreateGame(s.ctx)
	s.Require().NoError(err)

	s.Equal(model.GameID("GAME12345678"), game.ID)
	s.Equal(model.GameStateActive, game.State)
	s.Equal(100, game.Pool.Remaining())
	s.Equal(0, game.Board.TileCount())
	s.Empty(game.Players)
	s.Equal(s.clock.CurrentTime, game.CreatedAt)
}

func (s *ControllerSuite) TestCreateGameIsPersisted() {
	game, _ := s.createGame()

	exists, err := s.storage.GameExists(s.ctx, game.ID)
	s.Require().NoError(err)
	s.True(exists)
}

func (s *ControllerSuite) TestGetGameNotFound() {
	_, err := s.controller.GetGame(s.ctx, "missing")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *ControllerSuite) TestListGames() {
	s.random.QueueString("GAME-B", "GAME-A")
	_, err := s.controller.CreateGame(s.ctx)
	s.Require().NoError(err)
	_, err = s.controller.CreateGame(s.ctx)
	s.Require().NoError(err)

	ids, err := s.controller.ListGames(s.ctx)
	s.Require().NoError(err)
	s.Equal([]model.GameID{"GAME-A", "GAME-B"}, ids)
}

func (s *ControllerSuite) TestPreviewScoreLeavesGameUntouched() {
	game, _ := s.createGame()

	breakdown, err := s.controller.PreviewScore(s.ctx, game.ID, hello())
	s.Require().NoError(err)

	s.Equal(18, breakdown.Total)
	s.Equal(2, breakdown.WordMultiplier)
	s.Equal(model.BonusDoubleLetter, breakdown.Letters[4].Bonus)

	stored := s.loadGame(game.ID)
	s.Equal(0, stored.Board.TileCount())
	s.Empty(stored.Moves)
	s.Equal(0, stored.Players[0].Score)
}

func (s *ControllerSuite) TestPreviewScoreOutOfBounds() {
	game, _ := s.createGame()

	_, err := s.controller.PreviewScore(s.ctx, game.ID, model.Placement{
		Word: "HELLO", Origin: model.Position{Row: 14, Col: 12}, Direction: model.Horizontal,
	})
	s.ErrorIs(err, model.ErrOutOfBounds)
}

func (s *ControllerSuite) TestPreviewScoreUnknownGame() {
	_, err := s.controller.PreviewScore(s.ctx, "NOPE", hello())
	s.ErrorIs(err, model.ErrGameNotFound)
}

// AddPlayer tests

func (s *ControllerSuite) TestAddPlayerDealsFullRack() {
	game, player := s.createGame()

	s.Equal("Alice", player.Name)
	s.Equal(model.PlayerID("ALICE0000001"), player.ID)
	s.Len(player.Rack, model.RackSize)
	s.Equal(93, s.loadGame(game.ID).Pool.Remaining())
}

func (s *ControllerSuite) TestAddPlayerKeepsJoinOrder() {
	game, _ := s.createGame()
	s.random.QueueString("BOB000000001", "CAROL0000001")
	_, err := s.controller.AddPlayer(s.ctx, game.ID, "Bob")
	s.Require().NoError(err)
	_, err = s.controller.AddPlayer(s.ctx, game.ID, "Carol")
	s.Require().NoError(err)

	players, err := s.controller.Players(s.ctx, game.ID)
	s.Require().NoError(err)

	s.Require().Len(players, 3)
	s.Equal("Alice", players[0].Name)
	s.Equal("Bob", players[1].Name)
	s.Equal("Carol", players[2].Name)
}

func (s *ControllerSuite) TestAddPlayerShortPoolDealsFewer() {
	game, _ := s.createGame()
	s.setPool(game.ID, "AB")

	player, err := s.controller.AddPlayer(s.ctx, game.ID, "Bob")
	s.Require().NoError(err)

	s.Equal(model.Rack("BA"), player.Rack)
	s.Equal(0, s.loadGame(game.ID).Pool.Remaining())
}

func (s *ControllerSuite) TestAddPlayerRejectsEmptyName() {
	game, _ := s.createGame()

	_, err := s.controller.AddPlayer(s.ctx, game.ID, "   ")
	s.ErrorIs(err, model.ErrInvalidPlayerName)
}

func (s *ControllerSuite) TestAddPlayerUnknownGame() {
	_, err := s.controller.AddPlayer(s.ctx, "missing", "Bob")
	s.ErrorIs(err, model.ErrGameNotFound)
}

// PlaceWord tests

func (s *ControllerSuite) TestPlaceWordCreditsStandaloneScore() {
	game, player := s.createGame()
	s.setRack(game.ID, player.ID, "HELLOAZ")

	standalone, err := s.scoringService.ComputeScore(model.NewBoard(), hello())
	s.Require().NoError(err)

	move, err := s.controller.PlaceWord(s.ctx, game.ID, player.ID, hello())
	s.Require().NoError(err)

	s.Equal(standalone, move.Score)
	s.Equal(18, move.Score)
	updated := s.loadGame(game.ID)
	s.Equal(standalone, updated.GetPlayer(player.ID).Score)
}

func (s *ControllerSuite) TestPlaceWordCommitsLetters() {
	game, player := s.createGame()
	s.setRack(game.ID, player.ID, "HELLOAZ")

	_, err := s.controller.PlaceWord(s.ctx, game.ID, player.ID, hello())
	s.Require().NoError(err)

	snapshot, err := s.controller.BoardSnapshot(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Equal([]string{"H", "E", "L", "L", "O"}, snapshot[7][7:12])
}

func (s *ControllerSuite) TestPlaceWordRefillsToSeven() {
	game, player := s.createGame()
	s.setRack(game.ID, player.ID, "HELLOAZ")
	s.setPool(game.ID, "XYQRS")

	_, err := s.controller.PlaceWord(s.ctx, game.ID, player.ID, hello())
	s.Require().NoError(err)

	updated := s.loadGame(game.ID)
	s.Equal(model.Rack("AZSRQYX"), updated.GetPlayer(player.ID).Rack)
	s.Equal(0, updated.Pool.Remaining())
}

func (s *ControllerSuite) TestPlaceWordRefillTruncatedByPool() {
	game, player := s.createGame()
	s.setRack(game.ID, player.ID, "HELLOAZ")
	s.setPool(game.ID, "XY")

	_, err := s.controller.PlaceWord(s.ctx, game.ID, player.ID, hello())
	s.Require().NoError(err)

	// min(7, 2 left after the word + 2 in the pool)
	updated := s.loadGame(game.ID)
	s.Len(updated.GetPlayer(player.ID).Rack, 4)
	s.Equal(0, updated.Pool.Remaining())
}

func (s *ControllerSuite) TestPlaceWordEmptyPoolNoRefill() {
	game, player := s.createGame()
	s.setRack(game.ID, player.ID, "HELLOAZ")
	s.setPool(game.ID, "")

	_, err := s.controller.PlaceWord(s.ctx, game.ID, player.ID, hello())
	s.Require().NoError(err)

	s.Equal(model.Rack("AZ"), s.loadGame(game.ID).GetPlayer(player.ID).Rack)
}

func (s *ControllerSuite) TestPlaceWordWithBlank() {
	game, player := s.createGame()
	s.setRack(game.ID, player.ID, "HEL?OAZ")
	s.setPool(game.ID, "")

	move, err := s.controller.PlaceWord(s.ctx, game.ID, player.ID, hello())
	s.Require().NoError(err)

	s.Equal([]int{3}, move.BlankIndexes)
	// The word as written is scored, so the blank's L keeps its value
	s.Equal(18, move.Score)

	updated := s.loadGame(game.ID)
	s.Equal(&model.Tile{Letter: 'L', Blank: true}, updated.Board.Get(model.Position{Row: 7, Col: 10}))
	s.Equal("l", updated.Board.Snapshot()[7][10])
	s.Equal(model.Rack("AZ"), updated.GetPlayer(player.ID).Rack)
}

func (s *ControllerSuite) TestPlaceWordLowercaseIsNormalized() {
	game, player := s.createGame()
	s.setRack(game.ID, player.ID, "HELLOAZ")

	p := hello()
	p.Word = "hello"
	move, err := s.controller.PlaceWord(s.ctx, game.ID, player.ID, p)
	s.Require().NoError(err)

	s.Equal("HELLO", move.Word)
	s.Equal(18, move.Score)
	s.Equal('H', s.loadGame(game.ID).Board.Get(model.Position{Row: 7, Col: 7}).Letter)
}

func (s *ControllerSuite) TestPlaceWordInsufficientTilesChangesNothing() {
	game, player := s.createGame()
	s.setRack(game.ID, player.ID, "ABCDEFG")
	before := s.loadGame(game.ID)

	_, err := s.controller.PlaceWord(s.ctx, game.ID, player.ID, hello())

	s.ErrorIs(err, model.ErrInsufficientTiles)
	var ite *model.InsufficientTilesError
	s.Require().ErrorAs(err, &ite)
	s.Equal('H', ite.Letter)
	s.Equal(before, s.loadGame(game.ID))

	// Retrying sees the identical rack
	_, err = s.controller.PlaceWord(s.ctx, game.ID, player.ID, hello())
	s.ErrorIs(err, model.ErrInsufficientTiles)
	s.Equal(model.Rack("ABCDEFG"), s.loadGame(game.ID).GetPlayer(player.ID).Rack)
}

func (s *ControllerSuite) TestPlaceWordOutOfBoundsChangesNothing() {
	game, player := s.createGame()
	s.setRack(game.ID, player.ID, "HELLOAZ")
	before := s.loadGame(game.ID)

	p := hello()
	p.Origin = model.Position{Row: 7, Col: 12}
	_, err := s.controller.PlaceWord(s.ctx, game.ID, player.ID, p)

	s.ErrorIs(err, model.ErrOutOfBounds)
	s.True(IsPlacementError(err))
	s.Equal(before, s.loadGame(game.ID))
	s.Equal(0, s.loadGame(game.ID).Board.TileCount())
}

func (s *ControllerSuite) TestPlaceWordInvalidDirection() {
	game, player := s.createGame()
	s.setRack(game.ID, player.ID, "HELLOAZ")

	p := hello()
	p.Direction = "D"
	_, err := s.controller.PlaceWord(s.ctx, game.ID, player.ID, p)

	s.ErrorIs(err, model.ErrInvalidDirection)
	s.Equal(model.Rack("HELLOAZ"), s.loadGame(game.ID).GetPlayer(player.ID).Rack)
}

func (s *ControllerSuite) TestPlaceWordUnknownPlayer() {
	game, _ := s.createGame()

	_, err := s.controller.PlaceWord(s.ctx, game.ID, "nobody", hello())
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *ControllerSuite) TestPlaceWordTwiceCreditsIndependently() {
	game, player := s.createGame()
	s.setRack(game.ID, player.ID, "CATCATZ")
	s.setPool(game.ID, "")

	first := model.Placement{Word: "CAT", Origin: model.Position{Row: 2, Col: 2}, Direction: model.Horizontal}
	second := model.Placement{Word: "CAT", Origin: model.Position{Row: 10, Col: 0}, Direction: model.Horizontal}

	firstScore, err := s.scoringService.ComputeScore(model.NewBoard(), first)
	s.Require().NoError(err)
	secondScore, err := s.scoringService.ComputeScore(model.NewBoard(), second)
	s.Require().NoError(err)

	_, err = s.controller.PlaceWord(s.ctx, game.ID, player.ID, first)
	s.Require().NoError(err)
	_, err = s.controller.PlaceWord(s.ctx, game.ID, player.ID, second)
	s.Require().NoError(err)

	updated := s.loadGame(game.ID)
	s.Equal(firstScore+secondScore, updated.GetPlayer(player.ID).Score)
	s.Len(updated.Moves, 2)
	s.Equal(model.Rack("Z"), updated.GetPlayer(player.ID).Rack)
}

func (s *ControllerSuite) TestPlaceWordLeavesOtherCellsUntouched() {
	game, player := s.createGame()
	s.setRack(game.ID, player.ID, "HELLOAZ")
	before := s.loadGame(game.ID).Board.Snapshot()

	_, err := s.controller.PlaceWord(s.ctx, game.ID, player.ID, hello())
	s.Require().NoError(err)

	after := s.loadGame(game.ID).Board.Snapshot()
	for row := range after {
		for col := range after[row] {
			if row == 7 && col >= 7 && col <= 11 {
				continue
			}
			s.Equal(before[row][col], after[row][col], "cell (%d, %d)", row, col)
		}
	}
}

func (s *ControllerSuite) TestPlaceWordOverwritesOccupiedCells() {
	game, player := s.createGame()
	s.setRack(game.ID, player.ID, "HELLOAZ")
	_, err := s.controller.PlaceWord(s.ctx, game.ID, player.ID, hello())
	s.Require().NoError(err)

	s.setRack(game.ID, player.ID, "ZA")
	p := model.Placement{Word: "ZA", Origin: model.Position{Row: 7, Col: 7}, Direction: model.Vertical}
	move, err := s.controller.PlaceWord(s.ctx, game.ID, player.ID, p)
	s.Require().NoError(err)

	// Bonus at (7,7) still applies: (10+1) x2
	s.Equal(22, move.Score)
	s.Equal('Z', s.loadGame(game.ID).Board.Get(model.Position{Row: 7, Col: 7}).Letter)
}

func (s *ControllerSuite) TestPlaceWordRecordsMove() {
	game, player := s.createGame()
	s.setRack(game.ID, player.ID, "HELLOAZ")

	_, err := s.controller.PlaceWord(s.ctx, game.ID, player.ID, hello())
	s.Require().NoError(err)

	moves, err := s.controller.Moves(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Require().Len(moves, 1)
	s.Equal(player.ID, moves[0].PlayerID)
	s.Equal("HELLO", moves[0].Word)
	s.Equal(model.Horizontal, moves[0].Direction)
	s.Equal(0, moves[0].TurnNumber)
}

func (s *ControllerSuite) TestPlaceWordConservesTiles() {
	game, player := s.createGame()
	s.setRack(game.ID, player.ID, "HELLOAZ")
	s.setPool(game.ID, "QRSTUVW")

	_, err := s.controller.PlaceWord(s.ctx, game.ID, player.ID, hello())
	s.Require().NoError(err)

	updated := s.loadGame(game.ID)
	total := updated.Board.TileCount() + updated.Pool.Remaining() + updated.GetPlayer(player.ID).Rack.Count()
	s.Equal(7+7, total)
}

func (s *ControllerSuite) TestConcurrentPlacementsAreSerialized() {
	game, player := s.createGame()
	s.setRack(game.ID, player.ID, "AAAAAAA")
	s.setPool(game.ID, "")

	var wg sync.WaitGroup
	for i := 0; i < 7; i++ {
		wg.Add(1)
		go func(col int) {
			defer wg.Done()
			p := model.Placement{Word: "A", Origin: model.Position{Row: 0, Col: col}, Direction: model.Horizontal}
			_, _ = s.controller.PlaceWord(s.ctx, game.ID, player.ID, p)
		}(i)
	}
	wg.Wait()

	updated := s.loadGame(game.ID)
	s.Len(updated.Moves, 7)
	s.Empty(updated.GetPlayer(player.ID).Rack)
	s.Equal(7, updated.Board.TileCount())
}

// EndTurn tests

func (s *ControllerSuite) TestEndTurnRotatesPlayers() {
	game, alice := s.createGame()
	s.random.QueueString("BOB000000001")
	bob, err := s.controller.AddPlayer(s.ctx, game.ID, "Bob")
	s.Require().NoError(err)

	updated, err := s.controller.EndTurn(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Equal(bob.ID, updated.CurrentPlayer().ID)
	s.Equal(1, updated.TurnNumber)

	updated, err = s.controller.EndTurn(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Equal(alice.ID, updated.CurrentPlayer().ID)
	s.Equal(2, updated.TurnNumber)
}

func (s *ControllerSuite) TestEndTurnWithoutPlayers() {
	s.random.QueueString("GAME00000001")
	game, err := s.controller.CreateGame(s.ctx)
	s.Require().NoError(err)

	_, err = s.controller.EndTurn(s.ctx, game.ID)
	s.ErrorIs(err, model.ErrNoPlayers)
}

func (s *ControllerSuite) TestMoveRecordsTurnNumber() {
	game, player := s.createGame()
	_, err := s.controller.EndTurn(s.ctx, game.ID)
	s.Require().NoError(err)
	s.setRack(game.ID, player.ID, "HELLOAZ")

	move, err := s.controller.PlaceWord(s.ctx, game.ID, player.ID, hello())
	s.Require().NoError(err)
	s.Equal(1, move.TurnNumber)
}

// CompleteGame tests

func (s *ControllerSuite) TestCompleteGameReportsWinner() {
	game, alice := s.createGame()
	s.random.QueueString("BOB000000001")
	bob, err := s.controller.AddPlayer(s.ctx, game.ID, "Bob")
	s.Require().NoError(err)
	s.setRack(game.ID, alice.ID, "HELLOAZ")
	_, err = s.controller.PlaceWord(s.ctx, game.ID, alice.ID, hello())
	s.Require().NoError(err)

	summary, err := s.controller.CompleteGame(s.ctx, game.ID)
	s.Require().NoError(err)

	s.Equal(alice.ID, summary.Winner)
	s.Equal(18, summary.FinalScores[alice.ID])
	s.Equal(0, summary.FinalScores[bob.ID])
	s.True(s.loadGame(game.ID).IsComplete())
}

func (s *ControllerSuite) TestCompleteGameTieHasNoWinner() {
	game, _ := s.createGame()
	s.random.QueueString("BOB000000001")
	_, err := s.controller.AddPlayer(s.ctx, game.ID, "Bob")
	s.Require().NoError(err)

	summary, err := s.controller.CompleteGame(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Empty(summary.Winner)
}

func (s *ControllerSuite) TestCompletedGameRejectsChanges() {
	game, player := s.createGame()
	_, err := s.controller.CompleteGame(s.ctx, game.ID)
	s.Require().NoError(err)

	_, err = s.controller.PlaceWord(s.ctx, game.ID, player.ID, hello())
	s.ErrorIs(err, model.ErrGameComplete)
	_, err = s.controller.AddPlayer(s.ctx, game.ID, "Late")
	s.ErrorIs(err, model.ErrGameComplete)
	_, err = s.controller.EndTurn(s.ctx, game.ID)
	s.ErrorIs(err, model.ErrGameComplete)

	// Completing again is idempotent
	_, err = s.controller.CompleteGame(s.ctx, game.ID)
	s.NoError(err)
}

// Seeded games

func (s *ControllerSuite) TestSeededGamesDealIdentically() {
	newController := func() *Controller {
		return NewController(
			memory.New(),
			tilepool.New(random.NewSeeded("repeatable")),
			board.New(),
			scoring.New(),
			s.clock,
			mocks.NewMockRandom(),
			testutil.NopLogger(),
		)
	}

	deal := func(c *Controller) model.Rack {
		game, err := c.CreateGame(s.ctx)
		s.Require().NoError(err)
		player, err := c.AddPlayer(s.ctx, game.ID, "Alice")
		s.Require().NoError(err)
		return player.Rack
	}

	s.Equal(deal(newController()), deal(newController()))
}
