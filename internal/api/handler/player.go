package handler

import (
	"net/http"

	"github.com/mcoot/tilegame/internal/api/middleware"
	"github.com/mcoot/tilegame/internal/api/request"
	"github.com/mcoot/tilegame/internal/api/response"
	"github.com/mcoot/tilegame/internal/dependencies/clock"
	"github.com/mcoot/tilegame/internal/model"
	"github.com/mcoot/tilegame/internal/services/auth"
	"github.com/mcoot/tilegame/internal/services/game"
)

// PlayerHandler handles player HTTP requests
type PlayerHandler struct {
	gameController game.ControllerInterface
	authService    auth.ServiceInterface
	events         eventEmitter
}

// NewPlayerHandler creates a new PlayerHandler
func NewPlayerHandler(
	gameController game.ControllerInterface,
	authService auth.ServiceInterface,
	publisher EventPublisher,
	clock clock.Clock,
) *PlayerHandler {
	return &PlayerHandler{
		gameController: gameController,
		authService:    authService,
		events:         eventEmitter{publisher: publisher, clock: clock},
	}
}

// Join handles POST /games/{id}/players
func (h *PlayerHandler) Join(w http.ResponseWriter, r *http.Request) {
	id := gameID(r)

	var req request.JoinRequest
	if err := decode(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	player, err := h.gameController.AddPlayer(r.Context(), id, req.Name)
	if err != nil {
		WriteError(w, err)
		return
	}

	token, err := h.authService.IssueToken(r.Context(), id, player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.events.emit(model.EventPlayerJoined, id, player.ID, model.PlayerJoinedPayload{
		Name:      player.Name,
		RackCount: player.Rack.Count(),
	})

	response.Created(w, response.JoinResponse{
		Player: response.PlayerFromModel(*player),
		Rack:   player.Rack.String(),
		Token:  token,
	})
}

// List handles GET /games/{id}/players
func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	players, err := h.gameController.Players(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.PlayersFromModel(players))
}

// Rack handles GET /games/{id}/rack for the authenticated player
func (h *PlayerHandler) Rack(w http.ResponseWriter, r *http.Request) {
	playerID := middleware.MustGetPlayerID(r.Context())

	players, err := h.gameController.Players(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}
	for _, p := range players {
		if p.ID == playerID {
			response.JSON(w, http.StatusOK, response.Rack{
				PlayerID: string(p.ID),
				Tiles:    p.Rack.String(),
			})
			return
		}
	}
	WriteError(w, model.ErrPlayerNotFound)
}
