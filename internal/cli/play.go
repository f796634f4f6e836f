package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/tilegame/internal/services/board"
)

var errInputClosed = errors.New("input closed")

func newPlayCmd() *cobra.Command {
	var (
		players int
		turns   int
	)

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a whole game at this terminal",
		Long: `Create a game, seat every player at this terminal, and play a fixed
number of turns, prompting for each word. A failed placement loses the
turn. Leave the word empty to pass. Final scores are printed at the end.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if players < 1 {
				return fmt.Errorf("need at least one player")
			}
			s := &session{
				in:  bufio.NewScanner(cmd.InOrStdin()),
				out: cmd.OutOrStdout(),
			}
			return s.run(players, turns)
		},
	}

	cmd.Flags().IntVar(&players, "players", 2, "Number of players")
	cmd.Flags().IntVar(&turns, "turns", 5, "Number of turns to play")

	return cmd
}

type seat struct {
	name   string
	client *Client
}

// session drives one interactive game against the API
type session struct {
	in     *bufio.Scanner
	out    io.Writer
	gameID string
	seats  map[string]*seat
	order  []string
}

func (s *session) run(players, turns int) error {
	s.printf("Welcome to the tile game!\n")

	var game Game
	if err := client.Post("/api/v1/games", nil, &game); err != nil {
		return err
	}
	s.gameID = game.ID
	s.seats = make(map[string]*seat, players)
	s.printf("Created game %s\n", game.ID)

	for i := range players {
		name, err := s.prompt(fmt.Sprintf("Enter name for Player %d: ", i+1))
		if err != nil {
			return err
		}
		var joined JoinResult
		body := map[string]string{"name": name}
		if err := client.Post(gamePath(s.gameID, "players"), body, &joined); err != nil {
			return err
		}
		s.seats[joined.Player.ID] = &seat{name: joined.Player.Name, client: client.WithToken(joined.Token)}
		s.order = append(s.order, joined.Player.ID)
		s.printf("%s joined the game. Initial rack: %s\n", joined.Player.Name, joined.Rack)
	}

	for turn := 1; turn <= turns; turn++ {
		if err := s.playTurn(turn); err != nil {
			return err
		}
	}

	// Any seated player may finish the game
	var summary GameSummary
	if err := s.seats[s.order[0]].client.Post(gamePath(s.gameID, "complete"), nil, &summary); err != nil {
		return err
	}

	s.printf("\n--- Game End ---\n")
	s.printf("Final Scores:\n")
	for _, id := range rankedPlayers(summary.FinalScores) {
		s.printf("%s: %d points\n", s.seats[id].name, summary.FinalScores[id])
	}
	if summary.Winner != nil {
		s.printf("Winner: %s\n", s.seats[*summary.Winner].name)
	} else {
		s.printf("Result: tie\n")
	}
	s.printf("Thanks for playing!\n")
	return nil
}

func (s *session) playTurn(turn int) error {
	var game Game
	if err := client.Get(gamePath(s.gameID), &game); err != nil {
		return err
	}
	current, ok := s.seats[game.CurrentPlayerID]
	if !ok {
		return fmt.Errorf("unknown current player %q", game.CurrentPlayerID)
	}

	var rack Rack
	if err := current.client.Get(gamePath(s.gameID, "rack"), &rack); err != nil {
		return err
	}

	score := 0
	for _, p := range game.Players {
		if p.ID == game.CurrentPlayerID {
			score = p.Score
		}
	}

	s.printf("\n--- Turn %d ---\n", turn)
	s.printf("It's %s's turn. Rack: %s  Score: %d\n", current.name, rack.Tiles, score)
	s.printf("%s", board.RenderText(game.Board))

	if err := s.attempt(current); err != nil {
		return err
	}

	var next Turn
	return current.client.Post(gamePath(s.gameID, "turn", "end"), nil, &next)
}

// attempt prompts for one placement. Rejected placements are reported
// and the turn moves on.
func (s *session) attempt(current *seat) error {
	word, err := s.prompt("Enter word to play (empty to pass): ")
	if err != nil {
		return err
	}
	word = strings.ToUpper(word)
	if word == "" {
		s.printf("%s passes.\n", current.name)
		return nil
	}

	row, err := s.promptInt("Enter starting row (0-14): ")
	if err != nil {
		return err
	}
	col, err := s.promptInt("Enter starting column (0-14): ")
	if err != nil {
		return err
	}
	direction, err := s.prompt("Enter direction (H for Horizontal, V for Vertical): ")
	if err != nil {
		return err
	}

	result, err := placeWord(current.client, s.gameID, word, row, col, strings.ToUpper(direction))
	if err != nil {
		var reqErr *RequestError
		if errors.As(err, &reqErr) {
			s.printf("Could not play %s: %s\n", word, reqErr.API.Message)
			return nil
		}
		return err
	}
	s.printf("Successfully played %s for %d points! Rack: %s\n", word, result.Move.Score, result.Rack)
	return nil
}

func (s *session) prompt(label string) (string, error) {
	s.printf("%s", label)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", errInputClosed
	}
	return strings.TrimSpace(s.in.Text()), nil
}

func (s *session) promptInt(label string) (int, error) {
	for {
		text, err := s.prompt(label)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(text)
		if err == nil {
			return n, nil
		}
		s.printf("Please enter a number.\n")
	}
}

func (s *session) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.out, format, args...)
}
