package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/tilegame/internal/api/middleware"
	"github.com/mcoot/tilegame/internal/api/request"
	"github.com/mcoot/tilegame/internal/api/response"
	"github.com/mcoot/tilegame/internal/dependencies/clock"
	"github.com/mcoot/tilegame/internal/model"
	"github.com/mcoot/tilegame/internal/services/game"
	"github.com/mcoot/tilegame/internal/web/sse"
)

// GameHandler handles game HTTP requests
type GameHandler struct {
	gameController game.ControllerInterface
	hubManager     *sse.HubManager
	events         eventEmitter
}

// NewGameHandler creates a new GameHandler
func NewGameHandler(
	gameController game.ControllerInterface,
	hubManager *sse.HubManager,
	publisher EventPublisher,
	clock clock.Clock,
) *GameHandler {
	return &GameHandler{
		gameController: gameController,
		hubManager:     hubManager,
		events:         eventEmitter{publisher: publisher, clock: clock},
	}
}

func gameID(r *http.Request) model.GameID {
	return model.GameID(mux.Vars(r)["id"])
}

// Create handles POST /games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	g, err := h.gameController.CreateGame(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	h.events.emit(model.EventGameCreated, g.ID, "", nil)
	response.Created(w, response.GameFromModel(g))
}

// Get handles GET /games/{id}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	g, err := h.gameController.GetGame(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.GameFromModel(g))
}

// Board handles GET /games/{id}/board
func (h *GameHandler) Board(w http.ResponseWriter, r *http.Request) {
	cells, err := h.gameController.BoardSnapshot(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.BoardFromSnapshot(cells))
}

// Moves handles GET /games/{id}/moves
func (h *GameHandler) Moves(w http.ResponseWriter, r *http.Request) {
	moves, err := h.gameController.Moves(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.MovesFromModel(moves))
}

// Score handles POST /games/{id}/score. It prices a placement without
// playing it, so no token is needed.
func (h *GameHandler) Score(w http.ResponseWriter, r *http.Request) {
	var req request.PlaceRequest
	if err := decode(r, &req); err != nil {
		WriteError(w, err)
		return
	}
	placement, err := req.Placement()
	if err != nil {
		WriteError(w, err)
		return
	}

	breakdown, err := h.gameController.PreviewScore(r.Context(), gameID(r), placement)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.ScorePreviewFromBreakdown(placement.Word, breakdown))
}

// Place handles POST /games/{id}/place
func (h *GameHandler) Place(w http.ResponseWriter, r *http.Request) {
	playerID := middleware.MustGetPlayerID(r.Context())
	id := gameID(r)

	var req request.PlaceRequest
	if err := decode(r, &req); err != nil {
		WriteError(w, err)
		return
	}
	placement, err := req.Placement()
	if err != nil {
		WriteError(w, err)
		return
	}

	move, err := h.gameController.PlaceWord(r.Context(), id, playerID, placement)
	if err != nil {
		WriteError(w, err)
		return
	}

	g, err := h.gameController.GetGame(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	player := g.GetPlayer(playerID)
	if player == nil {
		WriteError(w, model.ErrPlayerNotFound)
		return
	}

	h.events.emit(model.EventWordPlaced, id, playerID, model.WordPlacedPayload{
		Move:          *move,
		TotalScore:    player.Score,
		PoolRemaining: g.Pool.Remaining(),
	})

	response.JSON(w, http.StatusOK, response.PlaceResponse{
		Move:          response.MoveFromModel(*move),
		TotalScore:    player.Score,
		Rack:          player.Rack.String(),
		PoolRemaining: g.Pool.Remaining(),
	})
}

// EndTurn handles POST /games/{id}/turn/end
func (h *GameHandler) EndTurn(w http.ResponseWriter, r *http.Request) {
	playerID := middleware.MustGetPlayerID(r.Context())

	g, err := h.gameController.EndTurn(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	turn := response.Turn{TurnNumber: g.TurnNumber}
	if next := g.CurrentPlayer(); next != nil {
		turn.CurrentPlayerID = string(next.ID)
	}

	h.events.emit(model.EventTurnEnded, g.ID, playerID, model.TurnEndedPayload{
		TurnNumber:   g.TurnNumber,
		NextPlayerID: model.PlayerID(turn.CurrentPlayerID),
	})
	response.JSON(w, http.StatusOK, turn)
}

// Complete handles POST /games/{id}/complete
func (h *GameHandler) Complete(w http.ResponseWriter, r *http.Request) {
	playerID := middleware.MustGetPlayerID(r.Context())

	summary, err := h.gameController.CompleteGame(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	h.events.emit(model.EventGameComplete, summary.ID, playerID, model.GameCompletePayload{
		Scores: summary.FinalScores,
		Winner: summary.Winner,
	})
	response.JSON(w, http.StatusOK, response.GameSummaryFromModel(*summary))
}

// Events handles GET /games/{id}/events as a server-sent event stream
func (h *GameHandler) Events(w http.ResponseWriter, r *http.Request) {
	id := gameID(r)
	if _, err := h.gameController.GetGame(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}
	sse.ServeSSE(w, r, h.hubManager.GetOrCreateHub(id))
}
