package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/tilegame/internal/dependencies/clock"
	"github.com/mcoot/tilegame/internal/services/game"
	"github.com/mcoot/tilegame/internal/web/handler"
	"github.com/mcoot/tilegame/internal/web/middleware"
	"github.com/mcoot/tilegame/internal/web/sse"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger         *slog.Logger
	Clock          clock.Clock
	GameController game.ControllerInterface
	Broadcaster    *sse.Broadcaster
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) *mux.Router {
	r := mux.NewRouter()
	Register(r, cfg)
	return r
}

// Register mounts the HTML pages on an existing router
func Register(r *mux.Router, cfg RouterConfig) {
	homeHandler := handler.NewHomeHandler(cfg.GameController)
	gameHandler := handler.NewGameHandler(cfg.GameController, cfg.Broadcaster, cfg.Clock, cfg.Logger)

	pages := r.NewRoute().Subrouter()
	pages.Use(middleware.Recovery(cfg.Logger))
	pages.Use(middleware.Logging(cfg.Logger))
	pages.Use(middleware.Flash())

	pages.HandleFunc("/", homeHandler.Home).Methods(http.MethodGet)
	pages.HandleFunc("/games", gameHandler.Create).Methods(http.MethodPost)
	pages.HandleFunc("/games/{id}", gameHandler.View).Methods(http.MethodGet)
	pages.HandleFunc("/games/{id}/board", gameHandler.Board).Methods(http.MethodGet)
}
