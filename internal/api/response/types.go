package response

import (
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/mcoot/tilegame/internal/model"
	"github.com/mcoot/tilegame/internal/services/scoring"
)

// Player represents a player in API responses. Racks are private, so
// only their size is shown here.
type Player struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Score     int       `json:"score"`
	RackCount int       `json:"rack_count"`
	JoinedAt  time.Time `json:"joined_at"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p model.Player) Player {
	return Player{
		ID:        string(p.ID),
		Name:      p.Name,
		Score:     p.Score,
		RackCount: p.Rack.Count(),
		JoinedAt:  p.JoinedAt,
	}
}

// PlayersFromModel converts players in order
func PlayersFromModel(players []model.Player) []Player {
	return lo.Map(players, func(p model.Player, _ int) Player {
		return PlayerFromModel(p)
	})
}

// JoinResponse is returned once, to the joining player, with their credentials
type JoinResponse struct {
	Player Player `json:"player"`
	Rack   string `json:"rack"`
	Token  string `json:"token"`
}

// Rack is a player's own view of their tiles
type Rack struct {
	PlayerID string `json:"player_id"`
	Tiles    string `json:"tiles"`
}

// Board represents the game board as display markers
type Board struct {
	Size  int        `json:"size"`
	Cells [][]string `json:"cells"`
}

// BoardFromSnapshot wraps a board snapshot
func BoardFromSnapshot(cells [][]string) Board {
	return Board{Size: len(cells), Cells: cells}
}

// Move represents one successful placement
type Move struct {
	PlayerID     string    `json:"player_id"`
	Word         string    `json:"word"`
	Row          int       `json:"row"`
	Col          int       `json:"col"`
	Direction    string    `json:"direction"`
	Score        int       `json:"score"`
	BlankIndexes []int     `json:"blank_indexes,omitempty"`
	TurnNumber   int       `json:"turn_number"`
	PlayedAt     time.Time `json:"played_at"`
}

// MoveFromModel converts model.Move
func MoveFromModel(m model.Move) Move {
	return Move{
		PlayerID:     string(m.PlayerID),
		Word:         m.Word,
		Row:          m.Origin.Row,
		Col:          m.Origin.Col,
		Direction:    string(m.Direction),
		Score:        m.Score,
		BlankIndexes: m.BlankIndexes,
		TurnNumber:   m.TurnNumber,
		PlayedAt:     m.PlayedAt,
	}
}

// MovesFromModel converts moves in play order
func MovesFromModel(moves []model.Move) []Move {
	return lo.Map(moves, func(m model.Move, _ int) Move {
		return MoveFromModel(m)
	})
}

// PlaceResponse is returned to the player who placed a word
type PlaceResponse struct {
	Move          Move   `json:"move"`
	TotalScore    int    `json:"total_score"`
	Rack          string `json:"rack"`
	PoolRemaining int    `json:"pool_remaining"`
}

// ScorePreview is the breakdown of a placement that was not committed
type ScorePreview struct {
	Word           string        `json:"word"`
	Letters        []LetterScore `json:"letters"`
	WordMultiplier int           `json:"word_multiplier"`
	Total          int           `json:"total"`
}

// LetterScore is one letter's share before the word multiplier
type LetterScore struct {
	Letter string `json:"letter"`
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Bonus  string `json:"bonus,omitempty"`
	Value  int    `json:"value"`
}

// ScorePreviewFromBreakdown converts a scoring breakdown
func ScorePreviewFromBreakdown(word string, b *scoring.Breakdown) ScorePreview {
	return ScorePreview{
		Word: strings.ToUpper(word),
		Letters: lo.Map(b.Letters, func(l scoring.LetterScore, _ int) LetterScore {
			return LetterScore{
				Letter: l.Letter,
				Row:    l.Position.Row,
				Col:    l.Position.Col,
				Bonus:  string(l.Bonus),
				Value:  l.Value,
			}
		}),
		WordMultiplier: b.WordMultiplier,
		Total:          b.Total,
	}
}

// Turn describes whose turn it is
type Turn struct {
	TurnNumber      int    `json:"turn_number"`
	CurrentPlayerID string `json:"current_player_id"`
}

// Game represents the current game state
type Game struct {
	ID              string     `json:"id"`
	State           string     `json:"state"`
	Players         []Player   `json:"players"`
	TurnNumber      int        `json:"turn_number"`
	CurrentPlayerID string     `json:"current_player_id,omitempty"`
	PoolRemaining   int        `json:"pool_remaining"`
	TilesPlaced     int        `json:"tiles_placed"`
	MoveCount       int        `json:"move_count"`
	Board           [][]string `json:"board"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// GameFromModel converts model.Game to response Game
func GameFromModel(g *model.Game) Game {
	players := lo.Map(g.Players, func(p *model.Player, _ int) Player {
		return PlayerFromModel(*p)
	})

	var current string
	if p := g.CurrentPlayer(); p != nil {
		current = string(p.ID)
	}

	return Game{
		ID:              string(g.ID),
		State:           string(g.State),
		Players:         players,
		TurnNumber:      g.TurnNumber,
		CurrentPlayerID: current,
		PoolRemaining:   g.Pool.Remaining(),
		TilesPlaced:     g.Board.TileCount(),
		MoveCount:       len(g.Moves),
		Board:           g.Board.Snapshot(),
		CreatedAt:       g.CreatedAt,
		UpdatedAt:       g.UpdatedAt,
	}
}

// GameSummary represents a completed game summary
type GameSummary struct {
	ID          string         `json:"id"`
	FinalScores map[string]int `json:"final_scores"`
	Winner      *string        `json:"winner"`
	CompletedAt time.Time      `json:"completed_at"`
}

// GameSummaryFromModel converts model.GameSummary
func GameSummaryFromModel(g model.GameSummary) GameSummary {
	scores := lo.MapEntries(g.FinalScores, func(pid model.PlayerID, score int) (string, int) {
		return string(pid), score
	})
	var winner *string
	if g.Winner != "" {
		w := string(g.Winner)
		winner = &w
	}
	return GameSummary{
		ID:          string(g.ID),
		FinalScores: scores,
		Winner:      winner,
		CompletedAt: g.CompletedAt,
	}
}

// Health is the health check response
type Health struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
	Games   int    `json:"games"`
}
