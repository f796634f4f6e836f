package model

import "time"

// PlayerID uniquely identifies a player within a game
type PlayerID string

// Player represents a game participant
type Player struct {
	ID       PlayerID  `json:"id"`
	Name     string    `json:"name"`
	Score    int       `json:"score"` // never decreases
	Rack     Rack      `json:"rack"`
	JoinedAt time.Time `json:"joined_at"`
}

// Clone returns a copy of the player with its own rack
func (p *Player) Clone() *Player {
	clone := *p
	clone.Rack = p.Rack.Clone()
	return &clone
}

// PlayerCredential holds the hashed bearer token that lets a client act as a player.
// Stored apart from the game so game snapshots never carry secrets.
type PlayerCredential struct {
	GameID    GameID    `json:"game_id"`
	PlayerID  PlayerID  `json:"player_id"`
	TokenHash string    `json:"token_hash"` // bcrypt hash
	CreatedAt time.Time `json:"created_at"`
}
