package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/mcoot/tilegame/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest    = "INVALID_REQUEST"
	CodeInvalidDirection  = "INVALID_DIRECTION"
	CodeInvalidName       = "INVALID_NAME"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeInvalidToken      = "INVALID_TOKEN"
	CodePlayerNotFound    = "PLAYER_NOT_FOUND"
	CodeGameNotFound      = "GAME_NOT_FOUND"
	CodeGameComplete      = "GAME_COMPLETE"
	CodeNoPlayers         = "NO_PLAYERS"
	CodeInsufficientTiles = "INSUFFICIENT_TILES"
	CodeOutOfBounds       = "OUT_OF_BOUNDS"
	CodeInternalError     = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// Status returns the HTTP status an error maps to
func Status(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	var ite *model.InsufficientTilesError
	if errors.As(err, &ite) {
		return &httpError{http.StatusUnprocessableEntity, APIError{CodeInsufficientTiles,
			fmt.Sprintf("Rack has no tile for %q", ite.Letter)}}
	}
	var oob *model.OutOfBoundsError
	if errors.As(err, &oob) {
		return &httpError{http.StatusUnprocessableEntity, APIError{CodeOutOfBounds,
			fmt.Sprintf("Word leaves the board at (%d, %d)", oob.Position.Row, oob.Position.Col)}}
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrGameNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGameNotFound, "Game not found"}}
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrGameComplete):
		return &httpError{http.StatusConflict, APIError{CodeGameComplete, "Game is already complete"}}
	case errors.Is(err, model.ErrNoPlayers):
		return &httpError{http.StatusConflict, APIError{CodeNoPlayers, "Game has no players"}}
	case errors.Is(err, model.ErrInvalidPlayerName):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidName, "Player name must not be empty"}}
	case errors.Is(err, model.ErrInvalidDirection):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidDirection, "Direction must be H or V"}}
	case errors.Is(err, model.ErrInsufficientTiles):
		return &httpError{http.StatusUnprocessableEntity, APIError{CodeInsufficientTiles, "Insufficient tiles"}}
	case errors.Is(err, model.ErrOutOfBounds):
		return &httpError{http.StatusUnprocessableEntity, APIError{CodeOutOfBounds, "Word leaves the board"}}
	case errors.Is(err, model.ErrInvalidToken), errors.Is(err, model.ErrCredentialNotFound):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidToken, "Invalid player token"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
