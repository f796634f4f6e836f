package model

import (
	"errors"
	"fmt"
)

// Common errors used across the application
var (
	// Game errors
	ErrGameNotFound   = errors.New("game not found")
	ErrGameComplete   = errors.New("game is already complete")
	ErrPlayerNotFound = errors.New("player not found")
	ErrNoPlayers      = errors.New("game has no players")

	// Player errors
	ErrInvalidPlayerName = errors.New("player name must not be empty")

	// Placement errors
	ErrInsufficientTiles = errors.New("insufficient tiles")
	ErrOutOfBounds       = errors.New("placement out of bounds")
	ErrInvalidDirection  = errors.New("invalid direction")

	// Credential errors
	ErrCredentialNotFound = errors.New("credential not found")
	ErrInvalidToken       = errors.New("invalid player token")
)

// InsufficientTilesError reports the first letter a rack could not cover
type InsufficientTilesError struct {
	Letter rune
}

func (e *InsufficientTilesError) Error() string {
	return fmt.Sprintf("%s: missing %q", ErrInsufficientTiles, e.Letter)
}

func (e *InsufficientTilesError) Unwrap() error {
	return ErrInsufficientTiles
}

// OutOfBoundsError reports the first coordinate that fell off the board
type OutOfBoundsError struct {
	Position Position
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("%s: (%d, %d)", ErrOutOfBounds, e.Position.Row, e.Position.Col)
}

func (e *OutOfBoundsError) Unwrap() error {
	return ErrOutOfBounds
}
