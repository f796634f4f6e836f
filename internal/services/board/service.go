package board

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/mcoot/tilegame/internal/model"
)

// Service provides board operations
type Service struct{}

// New creates a new BoardService
func New() *Service {
	return &Service{}
}

// ValidatePlacement checks that every letter of the placement lands on the board
func (s *Service) ValidatePlacement(board *model.Board, placement model.Placement) ([]model.Position, error) {
	positions, err := placement.Positions()
	if err != nil {
		return nil, err
	}
	for _, pos := range positions {
		if !board.IsValidPosition(pos) {
			return nil, &model.OutOfBoundsError{Position: pos}
		}
	}
	return positions, nil
}

// Commit writes the placement's letters onto the board. used holds the
// tile consumed for each letter; a blank there tags the placed tile.
// Occupied cells are overwritten.
func (s *Service) Commit(board *model.Board, placement model.Placement, used []rune) ([]model.Position, error) {
	positions, err := s.ValidatePlacement(board, placement)
	if err != nil {
		return nil, err
	}

	letters := []rune(placement.Word)
	for i, pos := range positions {
		tile := model.Tile{Letter: unicode.ToUpper(letters[i])}
		if i < len(used) && used[i] == model.BlankLetter {
			tile.Blank = true
		}
		board.PlaceTile(pos, tile)
	}
	return positions, nil
}

// RenderText draws a board snapshot as a fixed-width text grid with row
// and column indexes. Empty plain cells print as ".".
func RenderText(snapshot [][]string) string {
	var sb strings.Builder

	sb.WriteString("    ")
	for col := range snapshot {
		fmt.Fprintf(&sb, "%-3d", col)
	}
	sb.WriteString("\n")

	for row, cells := range snapshot {
		fmt.Fprintf(&sb, "%2d  ", row)
		for _, cell := range cells {
			if cell == "" {
				cell = "."
			}
			fmt.Fprintf(&sb, "%-3s", cell)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// Interface for dependency injection
type ServiceInterface interface {
	ValidatePlacement(board *model.Board, placement model.Placement) ([]model.Position, error)
	Commit(board *model.Board, placement model.Placement, used []rune) ([]model.Position, error)
}

var _ ServiceInterface = (*Service)(nil)
