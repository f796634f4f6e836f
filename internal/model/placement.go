package model

import (
	"fmt"
	"strings"
)

// Direction is the axis a word is written along
type Direction string

const (
	Horizontal Direction = "H"
	Vertical   Direction = "V"
)

// ParseDirection accepts H/V or horizontal/vertical in any case
func ParseDirection(s string) (Direction, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "H", "HORIZONTAL", "ACROSS":
		return Horizontal, nil
	case "V", "VERTICAL", "DOWN":
		return Vertical, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidDirection, s)
	}
}

// Placement is a request to write a word from an origin cell along one axis
type Placement struct {
	Word      string
	Origin    Position
	Direction Direction
}

// Positions returns the board coordinate of each letter in the word.
// Coordinates are not bounds-checked.
func (p Placement) Positions() ([]Position, error) {
	var dRow, dCol int
	switch p.Direction {
	case Horizontal:
		dCol = 1
	case Vertical:
		dRow = 1
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidDirection, string(p.Direction))
	}

	letters := []rune(p.Word)
	positions := make([]Position, len(letters))
	for i := range letters {
		positions[i] = Position{
			Row: p.Origin.Row + i*dRow,
			Col: p.Origin.Col + i*dCol,
		}
	}
	return positions, nil
}
