package model

import "time"

// GameID uniquely identifies a game
type GameID string

// GameState represents the current phase of a game
type GameState string

const (
	GameStateActive    GameState = "active"    // Accepting players and placements
	GameStateCompleted GameState = "completed" // Finished, no further changes
)

// Move records one successful placement
type Move struct {
	PlayerID     PlayerID  `json:"player_id"`
	Word         string    `json:"word"`
	Origin       Position  `json:"origin"`
	Direction    Direction `json:"direction"`
	Score        int       `json:"score"`
	BlankIndexes []int     `json:"blank_indexes,omitempty"` // word positions covered by a blank
	TurnNumber   int       `json:"turn_number"`
	PlayedAt     time.Time `json:"played_at"`
}

// GameSummary is the final record of a completed game
type GameSummary struct {
	ID          GameID           `json:"id"`
	FinalScores map[PlayerID]int `json:"final_scores"`
	Winner      PlayerID         `json:"winner,omitempty"` // empty on a tie
	CompletedAt time.Time        `json:"completed_at"`
}

// Game is a single session: one board, one pool, and its players in turn order
type Game struct {
	ID    GameID    `json:"id"`
	State GameState `json:"state"`

	Board *Board    `json:"board"`
	Pool  *TilePool `json:"pool"`

	// Players in join order, which is also turn order
	Players []*Player `json:"players"`

	// Turn management
	TurnNumber       int `json:"turn_number"`        // 0-indexed, advanced by EndTurn
	CurrentPlayerIdx int `json:"current_player_idx"` // Index into Players

	Moves []Move `json:"moves"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GetPlayer returns the player with the given ID, or nil if not found
func (g *Game) GetPlayer(id PlayerID) *Player {
	for _, p := range g.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// CurrentPlayer returns the player whose turn it is, or nil if nobody has joined
func (g *Game) CurrentPlayer() *Player {
	if len(g.Players) == 0 {
		return nil
	}
	return g.Players[g.CurrentPlayerIdx%len(g.Players)]
}

// IsComplete returns true if the game no longer accepts changes
func (g *Game) IsComplete() bool {
	return g.State == GameStateCompleted
}

// Leader returns the highest-scoring player, or nil on a tie or an empty game
func (g *Game) Leader() *Player {
	var leader *Player
	tied := false
	for _, p := range g.Players {
		switch {
		case leader == nil || p.Score > leader.Score:
			leader = p
			tied = false
		case p.Score == leader.Score:
			tied = true
		}
	}
	if tied {
		return nil
	}
	return leader
}

// Clone returns a deep copy of the game
func (g *Game) Clone() *Game {
	clone := *g
	if g.Board != nil {
		clone.Board = g.Board.Clone()
	}
	if g.Pool != nil {
		clone.Pool = g.Pool.Clone()
	}
	clone.Players = make([]*Player, len(g.Players))
	for i, p := range g.Players {
		clone.Players[i] = p.Clone()
	}
	clone.Moves = make([]Move, len(g.Moves))
	for i, m := range g.Moves {
		clone.Moves[i] = m
		clone.Moves[i].BlankIndexes = append([]int(nil), m.BlankIndexes...)
	}
	return &clone
}
