package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/tilegame/internal/api/handler"
	"github.com/mcoot/tilegame/internal/api/middleware"
	"github.com/mcoot/tilegame/internal/dependencies/clock"
	"github.com/mcoot/tilegame/internal/services/auth"
	"github.com/mcoot/tilegame/internal/services/game"
	"github.com/mcoot/tilegame/internal/storage"
	"github.com/mcoot/tilegame/internal/web/sse"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	Clock          clock.Clock
	Storage        storage.Storage
	StorageKind    string
	AuthService    auth.ServiceInterface
	GameController game.ControllerInterface
	HubManager     *sse.HubManager
	Publisher      handler.EventPublisher
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	Register(r, cfg)
	return r
}

// Register mounts the API routes under /api/v1 on an existing router
func Register(r *mux.Router, cfg RouterConfig) {
	gameHandler := handler.NewGameHandler(cfg.GameController, cfg.HubManager, cfg.Publisher, cfg.Clock)
	playerHandler := handler.NewPlayerHandler(cfg.GameController, cfg.AuthService, cfg.Publisher, cfg.Clock)
	healthHandler := handler.NewHealthHandler(cfg.Storage, cfg.StorageKind)

	playerAuth := middleware.PlayerAuth(cfg.AuthService)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))

	api.HandleFunc("/health", healthHandler.Check).Methods(http.MethodGet)

	// Public game routes
	api.HandleFunc("/games", gameHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/games/{id}", gameHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/games/{id}/board", gameHandler.Board).Methods(http.MethodGet)
	api.HandleFunc("/games/{id}/moves", gameHandler.Moves).Methods(http.MethodGet)
	api.HandleFunc("/games/{id}/score", gameHandler.Score).Methods(http.MethodPost)
	api.HandleFunc("/games/{id}/events", gameHandler.Events).Methods(http.MethodGet)
	api.HandleFunc("/games/{id}/players", playerHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/games/{id}/players", playerHandler.Join).Methods(http.MethodPost)

	// Player routes (token issued on join)
	player := api.PathPrefix("/games/{id}").Subrouter()
	player.Use(playerAuth)
	player.HandleFunc("/rack", playerHandler.Rack).Methods(http.MethodGet)
	player.HandleFunc("/place", gameHandler.Place).Methods(http.MethodPost)
	player.HandleFunc("/turn/end", gameHandler.EndTurn).Methods(http.MethodPost)
	player.HandleFunc("/complete", gameHandler.Complete).Methods(http.MethodPost)
}
