package game

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/mcoot/tilegame/internal/dependencies/clock"
	"github.com/mcoot/tilegame/internal/dependencies/random"
	"github.com/mcoot/tilegame/internal/model"
	"github.com/mcoot/tilegame/internal/services/board"
	"github.com/mcoot/tilegame/internal/services/scoring"
	"github.com/mcoot/tilegame/internal/services/tilepool"
	"github.com/mcoot/tilegame/internal/storage"
)

const gameIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Controller runs the placement transaction and turn flow for games
type Controller struct {
	storage        storage.Storage
	poolService    *tilepool.Service
	boardService   *board.Service
	scoringService *scoring.Service
	clock          clock.Clock
	random         random.Random
	logger         *slog.Logger

	// One lock per game, held across load, mutate and save
	mu    sync.Mutex
	locks map[model.GameID]*sync.Mutex
}

// NewController creates a new GameController
func NewController(
	storage storage.Storage,
	poolService *tilepool.Service,
	boardService *board.Service,
	scoringService *scoring.Service,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:        storage,
		poolService:    poolService,
		boardService:   boardService,
		scoringService: scoringService,
		clock:          clock,
		random:         random,
		logger:         logger,
		locks:          make(map[model.GameID]*sync.Mutex),
	}
}

// lock serializes mutating operations on one game
func (c *Controller) lock(gameID model.GameID) func() {
	c.mu.Lock()
	l, ok := c.locks[gameID]
	if !ok {
		l = &sync.Mutex{}
		c.locks[gameID] = l
	}
	c.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// CreateGame starts a game with an empty board and a freshly shuffled pool
func (c *Controller) CreateGame(ctx context.Context) (*model.Game, error) {
	now := c.clock.Now()
	game := &model.Game{
		ID:        model.GameID(c.random.String(12, gameIDAlphabet)),
		State:     model.GameStateActive,
		Board:     model.NewBoard(),
		Pool:      c.poolService.NewPool(),
		Players:   []*model.Player{},
		Moves:     []model.Move{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.storage.SaveGame(ctx, game); err != nil {
		c.logger.Error("failed to save game",
			slog.String("game_id", string(game.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("game created",
		slog.String("game_id", string(game.ID)),
		slog.Int("pool_size", game.Pool.Remaining()),
	)

	return game, nil
}

// GetGame retrieves a game by ID
func (c *Controller) GetGame(ctx context.Context, gameID model.GameID) (*model.Game, error) {
	return c.storage.GetGame(ctx, gameID)
}

// AddPlayer seats a new player at the end of the turn order and deals
// them up to a full rack. A nearly empty pool deals fewer tiles.
func (c *Controller) AddPlayer(ctx context.Context, gameID model.GameID, name string) (*model.Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, model.ErrInvalidPlayerName
	}

	defer c.lock(gameID)()

	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game.IsComplete() {
		return nil, model.ErrGameComplete
	}

	now := c.clock.Now()
	player := &model.Player{
		ID:       model.PlayerID(c.random.String(12, gameIDAlphabet)),
		Name:     name,
		Rack:     model.Rack(game.Pool.Draw(model.RackSize)),
		JoinedAt: now,
	}
	game.Players = append(game.Players, player)
	game.UpdatedAt = now

	if err := c.storage.SaveGame(ctx, game); err != nil {
		return nil, err
	}

	c.logger.Info("player joined",
		slog.String("game_id", string(gameID)),
		slog.String("player_id", string(player.ID)),
		slog.String("name", name),
		slog.Int("rack_size", player.Rack.Count()),
	)

	return player, nil
}

// PlaceWord runs one placement transaction: reserve the word on the
// player's rack, score it, commit it to the board, then refill the rack.
// Any failure leaves the stored game exactly as it was.
func (c *Controller) PlaceWord(ctx context.Context, gameID model.GameID, playerID model.PlayerID, placement model.Placement) (*model.Move, error) {
	defer c.lock(gameID)()

	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game.IsComplete() {
		return nil, model.ErrGameComplete
	}
	player := game.GetPlayer(playerID)
	if player == nil {
		return nil, model.ErrPlayerNotFound
	}

	reservation, err := player.Rack.Reserve(placement.Word)
	if err != nil {
		c.rejected(gameID, playerID, placement, err)
		return nil, err
	}

	score, err := c.scoringService.ComputeScore(game.Board, placement)
	if err != nil {
		c.rejected(gameID, playerID, placement, err)
		return nil, err
	}

	if _, err := c.boardService.Commit(game.Board, placement, reservation.Used); err != nil {
		return nil, err
	}

	now := c.clock.Now()
	player.Rack = reservation.Remaining
	player.Score += score
	move := model.Move{
		PlayerID:     playerID,
		Word:         strings.ToUpper(placement.Word),
		Origin:       placement.Origin,
		Direction:    placement.Direction,
		Score:        score,
		BlankIndexes: reservation.BlankIndexes(),
		TurnNumber:   game.TurnNumber,
		PlayedAt:     now,
	}
	game.Moves = append(game.Moves, move)

	refill := game.Pool.Draw(model.RackSize - player.Rack.Count())
	player.Rack = append(player.Rack, refill...)
	game.UpdatedAt = now

	if err := c.storage.SaveGame(ctx, game); err != nil {
		c.logger.Error("failed to save game",
			slog.String("game_id", string(gameID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("word placed",
		slog.String("game_id", string(gameID)),
		slog.String("player_id", string(playerID)),
		slog.String("word", move.Word),
		slog.Int("score", score),
		slog.Int("total_score", player.Score),
		slog.Int("drawn", len(refill)),
		slog.Int("pool_remaining", game.Pool.Remaining()),
	)

	return &move, nil
}

func (c *Controller) rejected(gameID model.GameID, playerID model.PlayerID, placement model.Placement, err error) {
	c.logger.Info("placement rejected",
		slog.String("game_id", string(gameID)),
		slog.String("player_id", string(playerID)),
		slog.String("word", placement.Word),
		slog.String("reason", err.Error()),
	)
}

// EndTurn hands the turn to the next player in join order.
// It applies whether or not the outgoing player placed a word.
func (c *Controller) EndTurn(ctx context.Context, gameID model.GameID) (*model.Game, error) {
	defer c.lock(gameID)()

	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game.IsComplete() {
		return nil, model.ErrGameComplete
	}
	if len(game.Players) == 0 {
		return nil, model.ErrNoPlayers
	}

	game.CurrentPlayerIdx = (game.CurrentPlayerIdx + 1) % len(game.Players)
	game.TurnNumber++
	game.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveGame(ctx, game); err != nil {
		return nil, err
	}

	c.logger.Info("turn ended",
		slog.String("game_id", string(gameID)),
		slog.Int("turn_number", game.TurnNumber),
		slog.String("next_player_id", string(game.CurrentPlayer().ID)),
	)

	return game, nil
}

// CompleteGame closes the game to further changes and reports final scores
func (c *Controller) CompleteGame(ctx context.Context, gameID model.GameID) (*model.GameSummary, error) {
	defer c.lock(gameID)()

	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if !game.IsComplete() {
		game.State = model.GameStateCompleted
		game.UpdatedAt = c.clock.Now()
		if err := c.storage.SaveGame(ctx, game); err != nil {
			return nil, err
		}
		c.logger.Info("game completed",
			slog.String("game_id", string(gameID)),
			slog.Int("turns", game.TurnNumber),
			slog.Int("moves", len(game.Moves)),
		)
	}

	return summarize(game), nil
}

func summarize(game *model.Game) *model.GameSummary {
	summary := &model.GameSummary{
		ID:          game.ID,
		FinalScores: make(map[model.PlayerID]int, len(game.Players)),
		CompletedAt: game.UpdatedAt,
	}
	for _, p := range game.Players {
		summary.FinalScores[p.ID] = p.Score
	}
	if leader := game.Leader(); leader != nil {
		summary.Winner = leader.ID
	}
	return summary
}

// BoardSnapshot returns the board's display markers
func (c *Controller) BoardSnapshot(ctx context.Context, gameID model.GameID) ([][]string, error) {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	return game.Board.Snapshot(), nil
}

// Players returns the game's players in turn order
func (c *Controller) Players(ctx context.Context, gameID model.GameID) ([]model.Player, error) {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	players := make([]model.Player, len(game.Players))
	for i, p := range game.Players {
		players[i] = *p.Clone()
	}
	return players, nil
}

// Moves returns every successful placement in the order played
func (c *Controller) Moves(ctx context.Context, gameID model.GameID) ([]model.Move, error) {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	return game.Moves, nil
}

// PreviewScore scores a placement against the current board without
// touching the game. Rack contents are not checked.
func (c *Controller) PreviewScore(ctx context.Context, gameID model.GameID, placement model.Placement) (*scoring.Breakdown, error) {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	return c.scoringService.Explain(game.Board, placement)
}

// ListGames returns the IDs of every stored game
func (c *Controller) ListGames(ctx context.Context) ([]model.GameID, error) {
	return c.storage.ListGameIDs(ctx)
}

// IsPlacementError reports whether err is a rejected placement rather
// than a lookup or storage failure
func IsPlacementError(err error) bool {
	return errors.Is(err, model.ErrInsufficientTiles) ||
		errors.Is(err, model.ErrOutOfBounds) ||
		errors.Is(err, model.ErrInvalidDirection)
}

// Interface for dependency injection
type ControllerInterface interface {
	CreateGame(ctx context.Context) (*model.Game, error)
	GetGame(ctx context.Context, gameID model.GameID) (*model.Game, error)
	AddPlayer(ctx context.Context, gameID model.GameID, name string) (*model.Player, error)
	PlaceWord(ctx context.Context, gameID model.GameID, playerID model.PlayerID, placement model.Placement) (*model.Move, error)
	EndTurn(ctx context.Context, gameID model.GameID) (*model.Game, error)
	CompleteGame(ctx context.Context, gameID model.GameID) (*model.GameSummary, error)
	BoardSnapshot(ctx context.Context, gameID model.GameID) ([][]string, error)
	Players(ctx context.Context, gameID model.GameID) ([]model.Player, error)
	Moves(ctx context.Context, gameID model.GameID) ([]model.Move, error)
	PreviewScore(ctx context.Context, gameID model.GameID, placement model.Placement) (*scoring.Breakdown, error)
	ListGames(ctx context.Context) ([]model.GameID, error)
}

var _ ControllerInterface = (*Controller)(nil)
