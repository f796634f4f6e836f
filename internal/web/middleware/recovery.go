package middleware

import (
	"log/slog"
	"net/http"

	"github.com/a-h/templ"

	"github.com/mcoot/tilegame/internal/middleware"
	"github.com/mcoot/tilegame/internal/web/templates"
)

// Recovery creates panic recovery middleware for the HTML pages.
// A panic renders the 500 error page.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, webPanicHandler)
}

func webPanicHandler(w http.ResponseWriter, r *http.Request, _ any) {
	page := templates.ErrorPage(http.StatusInternalServerError, "Something went wrong. Please try again later.")
	templ.Handler(page, templ.WithStatus(http.StatusInternalServerError)).ServeHTTP(w, r)
}
