package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/mcoot/tilegame/internal/services/board"
)

// Response types (mirror API response types)

// Player is a seated player as seen by everyone
type Player struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Score     int       `json:"score"`
	RackCount int       `json:"rack_count"`
	JoinedAt  time.Time `json:"joined_at"`
}

// JoinResult is the response to joining a game
type JoinResult struct {
	Player Player `json:"player"`
	Rack   string `json:"rack"`
	Token  string `json:"token"`
}

// Rack is the caller's own tiles
type Rack struct {
	PlayerID string `json:"player_id"`
	Tiles    string `json:"tiles"`
}

// Board is a board snapshot
type Board struct {
	Size  int        `json:"size"`
	Cells [][]string `json:"cells"`
}

// Move is one placement
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

// PlaceResult is the response to placing a word
type PlaceResult struct {
	Move          Move   `json:"move"`
	TotalScore    int    `json:"total_score"`
	Rack          string `json:"rack"`
	PoolRemaining int    `json:"pool_remaining"`
}

// ScorePreview is the priced breakdown of an unplayed placement
type ScorePreview struct {
	Word    string `json:"word"`
	Letters []struct {
		Letter string `json:"letter"`
		Row    int    `json:"row"`
		Col    int    `json:"col"`
		Bonus  string `json:"bonus,omitempty"`
		Value  int    `json:"value"`
	} `json:"letters"`
	WordMultiplier int `json:"word_multiplier"`
	Total          int `json:"total"`
}

// Turn is the response to ending a turn
type Turn struct {
	TurnNumber      int    `json:"turn_number"`
	CurrentPlayerID string `json:"current_player_id"`
}

// Game is the public game state
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

// GameSummary is the result of completing a game
type GameSummary struct {
	ID          string         `json:"id"`
	FinalScores map[string]int `json:"final_scores"`
	Winner      *string        `json:"winner"`
	CompletedAt time.Time      `json:"completed_at"`
}

// HealthResult is the health check response
type HealthResult struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
	Games   int    `json:"games"`
}

// Output handles formatting output
type Output struct {
	w      io.Writer
	format string
}

// NewOutput creates a new output formatter writing to w
func NewOutput(w io.Writer, format string) *Output {
	return &Output{w: w, format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// Printf writes a formatted line in text mode only
func (o *Output) Printf(format string, args ...any) {
	if o.format == "json" {
		return
	}
	_, _ = fmt.Fprintf(o.w, format, args...)
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Game:
		o.printGame(v)
	case *Game:
		o.printGame(*v)
	case JoinResult:
		o.line("Joined as %s (%s)", v.Player.Name, v.Player.ID)
		o.line("Rack: %s", v.Rack)
		o.line("Token: %s", v.Token)
	case Rack:
		o.line("Rack: %s", v.Tiles)
	case Board:
		_, _ = fmt.Fprint(o.w, board.RenderText(v.Cells))
	case []Player:
		o.printPlayers(v, "")
	case []Move:
		o.printMoves(v)
	case PlaceResult:
		o.line("%s scored %d (total %d)", v.Move.Word, v.Move.Score, v.TotalScore)
		o.line("Rack: %s", v.Rack)
		o.line("Pool: %d tiles remaining", v.PoolRemaining)
	case ScorePreview:
		for _, l := range v.Letters {
			bonus := l.Bonus
			if bonus == "" {
				bonus = "-"
			}
			o.line("  %s (%d,%d) %-2s %3d", l.Letter, l.Row, l.Col, bonus, l.Value)
		}
		o.line("%s would score %d (word x%d)", v.Word, v.Total, v.WordMultiplier)
	case Turn:
		o.line("Turn %d: %s to play", v.TurnNumber, v.CurrentPlayerID)
	case GameSummary:
		o.printSummary(v)
	case HealthResult:
		o.line("Status: %s", v.Status)
		o.line("Storage: %s", v.Storage)
		o.line("Games: %d", v.Games)
	default:
		// Fall back to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) line(format string, args ...any) {
	_, _ = fmt.Fprintf(o.w, format+"\n", args...)
}

func (o *Output) printGame(g Game) {
	o.line("Game: %s", g.ID)
	o.line("State: %s", g.State)
	o.line("Turn: %d", g.TurnNumber)
	o.line("Pool: %d tiles remaining", g.PoolRemaining)
	o.line("Moves: %d", g.MoveCount)
	if len(g.Players) > 0 {
		o.line("")
		o.printPlayers(g.Players, g.CurrentPlayerID)
	}
	if len(g.Board) > 0 {
		o.line("")
		_, _ = fmt.Fprint(o.w, board.RenderText(g.Board))
	}
}

func (o *Output) printPlayers(players []Player, current string) {
	if len(players) == 0 {
		o.line("No players")
		return
	}
	o.line("Players:")
	for _, p := range players {
		marker := " "
		if p.ID == current {
			marker = "*"
		}
		o.line(" %s %-12s %-20s %4d  (%d tiles)", marker, p.ID, p.Name, p.Score, p.RackCount)
	}
}

func (o *Output) printMoves(moves []Move) {
	if len(moves) == 0 {
		o.line("No moves")
		return
	}
	for _, m := range moves {
		o.line("%3d  %-12s %-15s (%d,%d) %s  %d", m.TurnNumber, m.PlayerID, m.Word, m.Row, m.Col, m.Direction, m.Score)
	}
}

func (o *Output) printSummary(s GameSummary) {
	o.line("Game %s complete", s.ID)
	for _, id := range rankedPlayers(s.FinalScores) {
		o.line("  %-12s %d", id, s.FinalScores[id])
	}
	if s.Winner != nil {
		o.line("Winner: %s", *s.Winner)
	} else {
		o.line("Result: tie")
	}
}

// rankedPlayers orders player IDs by score, highest first
func rankedPlayers(scores map[string]int) []string {
	ids := lo.Keys(scores)
	sort.Slice(ids, func(i, j int) bool {
		if scores[ids[i]] != scores[ids[j]] {
			return scores[ids[i]] > scores[ids[j]]
		}
		return ids[i] < ids[j]
	})
	return ids
}
