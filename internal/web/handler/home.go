package handler

import (
	"net/http"

	"github.com/a-h/templ"

	"github.com/mcoot/tilegame/internal/services/game"
	"github.com/mcoot/tilegame/internal/web/middleware"
	"github.com/mcoot/tilegame/internal/web/templates"
)

// HomeHandler handles the home page
type HomeHandler struct {
	gameController game.ControllerInterface
}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler(gameController game.ControllerInterface) *HomeHandler {
	return &HomeHandler{gameController: gameController}
}

// Home renders the list of games
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	ids, err := h.gameController.ListGames(r.Context())
	if err != nil {
		renderError(w, r, http.StatusInternalServerError, "Could not list games")
		return
	}

	data := templates.HomeData{
		PageData: templates.PageData{
			Title: "Home",
			Flash: middleware.GetFlash(r.Context()),
		},
		GameIDs: ids,
	}
	templ.Handler(templates.Home(data)).ServeHTTP(w, r)
}

func renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	templ.Handler(templates.ErrorPage(status, message), templ.WithStatus(status)).ServeHTTP(w, r)
}
