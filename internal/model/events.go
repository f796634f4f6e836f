package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	EventGameCreated  EventType = "game_created"
	EventPlayerJoined EventType = "player_joined"
	EventWordPlaced   EventType = "word_placed"
	EventTurnEnded    EventType = "turn_ended"
	EventGameComplete EventType = "game_complete"
)

// Event is the base structure for all events
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	GameID    GameID    `json:"game_id"`
	PlayerID  PlayerID  `json:"player_id,omitempty"` // The player who triggered the event
	Payload   any       `json:"payload,omitempty"`   // Type-specific data
}

// PlayerJoinedPayload contains data for player joined events
type PlayerJoinedPayload struct {
	Name      string `json:"name"`
	RackCount int    `json:"rack_count"`
}

// WordPlacedPayload contains data for word placed events
type WordPlacedPayload struct {
	Move          Move `json:"move"`
	TotalScore    int  `json:"total_score"`
	PoolRemaining int  `json:"pool_remaining"`
}

// TurnEndedPayload contains data for turn ended events
type TurnEndedPayload struct {
	TurnNumber   int      `json:"turn_number"`
	NextPlayerID PlayerID `json:"next_player_id"`
}

// GameCompletePayload contains data for game complete events
type GameCompletePayload struct {
	Scores map[PlayerID]int `json:"scores"`
	Winner PlayerID         `json:"winner,omitempty"` // Empty if tie
}
