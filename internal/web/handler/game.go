package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/gorilla/mux"

	"github.com/mcoot/tilegame/internal/dependencies/clock"
	"github.com/mcoot/tilegame/internal/model"
	"github.com/mcoot/tilegame/internal/services/game"
	"github.com/mcoot/tilegame/internal/web/middleware"
	"github.com/mcoot/tilegame/internal/web/sse"
	"github.com/mcoot/tilegame/internal/web/templates"
)

// GameHandler handles the read-only game pages
type GameHandler struct {
	gameController game.ControllerInterface
	broadcaster    *sse.Broadcaster
	clock          clock.Clock
	logger         *slog.Logger
}

// NewGameHandler creates a new GameHandler
func NewGameHandler(gameController game.ControllerInterface, broadcaster *sse.Broadcaster, clock clock.Clock, logger *slog.Logger) *GameHandler {
	return &GameHandler{
		gameController: gameController,
		broadcaster:    broadcaster,
		clock:          clock,
		logger:         logger,
	}
}

func (h *GameHandler) load(w http.ResponseWriter, r *http.Request) (*model.Game, bool) {
	id := model.GameID(mux.Vars(r)["id"])
	g, err := h.gameController.GetGame(r.Context(), id)
	if err == nil {
		return g, true
	}
	if errors.Is(err, model.ErrGameNotFound) {
		renderError(w, r, http.StatusNotFound, "Game not found")
		return nil, false
	}
	h.logger.Error("failed to load game", slog.String("game_id", string(id)), slog.String("error", err.Error()))
	renderError(w, r, http.StatusInternalServerError, "Could not load game")
	return nil, false
}

// View renders the game page
func (h *GameHandler) View(w http.ResponseWriter, r *http.Request) {
	g, ok := h.load(w, r)
	if !ok {
		return
	}

	data := templates.GameData{
		PageData: templates.PageData{
			Title: "Game " + string(g.ID),
			Flash: middleware.GetFlash(r.Context()),
		},
		Game: g,
	}
	templ.Handler(templates.GamePage(data)).ServeHTTP(w, r)
}

// Board renders just the board table, for refreshing a page in place
func (h *GameHandler) Board(w http.ResponseWriter, r *http.Request) {
	g, ok := h.load(w, r)
	if !ok {
		return
	}
	templ.Handler(templates.BoardGrid(g.Board.Snapshot())).ServeHTTP(w, r)
}

// Create starts a game and redirects to its page
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	g, err := h.gameController.CreateGame(r.Context())
	if err != nil {
		middleware.SetFlash(w, "error", "Could not create game")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if h.broadcaster != nil {
		h.broadcaster.Publish(model.Event{
			Type:      model.EventGameCreated,
			Timestamp: h.clock.Now(),
			GameID:    g.ID,
		})
	}

	middleware.SetFlash(w, "success", "Game created")
	http.Redirect(w, r, "/games/"+string(g.ID), http.StatusSeeOther)
}
