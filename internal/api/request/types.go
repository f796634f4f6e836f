package request

import (
	"strings"

	"github.com/mcoot/tilegame/internal/api/apierr"
	"github.com/mcoot/tilegame/internal/model"
)

// JoinRequest is the request body for joining a game
type JoinRequest struct {
	Name string `json:"name"`
}

// PlaceRequest is the request body for placing a word
type PlaceRequest struct {
	Word      string `json:"word"`
	Row       int    `json:"row"`
	Col       int    `json:"col"`
	Direction string `json:"direction"` // H or V
}

// Placement validates the request and converts it to a model.Placement
func (r PlaceRequest) Placement() (model.Placement, error) {
	word := strings.TrimSpace(r.Word)
	if word == "" {
		return model.Placement{}, apierr.NewInvalidRequestError("Word must not be empty")
	}
	dir, err := model.ParseDirection(r.Direction)
	if err != nil {
		return model.Placement{}, err
	}
	return model.Placement{
		Word:      word,
		Origin:    model.Position{Row: r.Row, Col: r.Col},
		Direction: dir,
	}, nil
}
