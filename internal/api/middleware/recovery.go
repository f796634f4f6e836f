package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/tilegame/internal/api/apierr"
	"github.com/mcoot/tilegame/internal/middleware"
)

// Recovery turns a handler panic into a 500 INTERNAL_ERROR JSON body
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger.With(slog.String("surface", "api")), func(w http.ResponseWriter, _ *http.Request, _ any) {
		apierr.WriteError(w, apierr.NewInternalError())
	})
}
