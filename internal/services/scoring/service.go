package scoring

import (
	"unicode"

	"github.com/mcoot/tilegame/internal/model"
)

// Service computes placement scores against the board's bonus layout
type Service struct{}

// New creates a new ScoringService
func New() *Service {
	return &Service{}
}

// ComputeScore scores a placement without touching the board.
// Every letter lands on a bonus cell's multiplier regardless of what
// already occupies that cell. A coordinate off the board fails the whole
// placement with an *model.OutOfBoundsError.
func (s *Service) ComputeScore(board *model.Board, placement model.Placement) (int, error) {
	positions, err := placement.Positions()
	if err != nil {
		return 0, err
	}

	for _, pos := range positions {
		if !board.IsValidPosition(pos) {
			return 0, &model.OutOfBoundsError{Position: pos}
		}
	}

	letters := []rune(placement.Word)
	total := 0
	wordMultiplier := 1
	for i, pos := range positions {
		bonus := board.BonusAt(pos)
		total += model.LetterValue(unicode.ToUpper(letters[i])) * bonus.LetterMultiplier()
		wordMultiplier *= bonus.WordMultiplier()
	}

	return total * wordMultiplier, nil
}

// Breakdown is a per-letter account of a placement's score
type Breakdown struct {
	Letters        []LetterScore `json:"letters"`
	WordMultiplier int           `json:"word_multiplier"`
	Total          int           `json:"total"`
}

// LetterScore is one letter's contribution before the word multiplier
type LetterScore struct {
	Letter   string          `json:"letter"`
	Position model.Position  `json:"position"`
	Bonus    model.BonusType `json:"bonus,omitempty"`
	Value    int             `json:"value"`
}

// Explain returns the same score as ComputeScore with each letter's share spelled out
func (s *Service) Explain(board *model.Board, placement model.Placement) (*Breakdown, error) {
	total, err := s.ComputeScore(board, placement)
	if err != nil {
		return nil, err
	}

	positions, _ := placement.Positions()
	letters := []rune(placement.Word)
	result := &Breakdown{
		Letters:        make([]LetterScore, len(positions)),
		WordMultiplier: 1,
		Total:          total,
	}
	for i, pos := range positions {
		letter := unicode.ToUpper(letters[i])
		bonus := board.BonusAt(pos)
		result.Letters[i] = LetterScore{
			Letter:   string(letter),
			Position: pos,
			Bonus:    bonus,
			Value:    model.LetterValue(letter) * bonus.LetterMultiplier(),
		}
		result.WordMultiplier *= bonus.WordMultiplier()
	}
	return result, nil
}

// Interface for dependency injection
type ServiceInterface interface {
	ComputeScore(board *model.Board, placement model.Placement) (int, error)
	Explain(board *model.Board, placement model.Placement) (*Breakdown, error)
}

var _ ServiceInterface = (*Service)(nil)
