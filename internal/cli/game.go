package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game commands",
	}

	cmd.AddCommand(newGameCreateCmd())
	cmd.AddCommand(newGameShowCmd())
	cmd.AddCommand(newGameJoinCmd())
	cmd.AddCommand(newGamePlaceCmd())
	cmd.AddCommand(newGameScoreCmd())
	cmd.AddCommand(newGameEndTurnCmd())
	cmd.AddCommand(newGameCompleteCmd())
	cmd.AddCommand(newGameRackCmd())
	cmd.AddCommand(newGameBoardCmd())
	cmd.AddCommand(newGamePlayersCmd())
	cmd.AddCommand(newGameMovesCmd())

	return cmd
}

func gamePath(id string, parts ...string) string {
	path := "/api/v1/games/" + id
	for _, p := range parts {
		path += "/" + p
	}
	return path
}

func newGameCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create a new game",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Game

			if err := client.Post("/api/v1/games", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cmd.OutOrStdout(), cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <game-id>",
		Short: "Show game state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Game

			if err := client.Get(gamePath(args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cmd.OutOrStdout(), cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameJoinCmd() *cobra.Command {
	var noSave bool

	cmd := &cobra.Command{
		Use:   "join <game-id> <name>",
		Short: "Join a game as a new player",
		Long: `Join a game and draw a rack of tiles.

The returned token is saved to the token file so later commands act
as this player. Use --no-save to only print it.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result JoinResult

			body := map[string]string{"name": args[1]}
			if err := client.Post(gamePath(args[0], "players"), body, &result); err != nil {
				return err
			}

			if !noSave {
				if err := cfg.SaveToken(result.Token); err != nil {
					return fmt.Errorf("failed to save token: %w", err)
				}
			}

			out := NewOutput(cmd.OutOrStdout(), cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&noSave, "no-save", false, "Do not save the token")

	return cmd
}

func newGamePlaceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "place <game-id> <word> <row> <col> <direction>",
		Short: "Place a word on the board",
		Long: `Place a word starting at (row, col) running H (across) or V (down).

Letters missing from your rack are covered by blank tiles when you
hold them. Requires a player token.`,
		Args: cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := placementBody(args[1], args[2], args[3], args[4])
			if err != nil {
				return err
			}

			var result PlaceResult
			if err := client.Post(gamePath(args[0], "place"), body, &result); err != nil {
				return err
			}

			out := NewOutput(cmd.OutOrStdout(), cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameScoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "score <game-id> <word> <row> <col> <direction>",
		Short: "Price a placement without playing it",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := placementBody(args[1], args[2], args[3], args[4])
			if err != nil {
				return err
			}

			var result ScorePreview
			if err := client.Post(gamePath(args[0], "score"), body, &result); err != nil {
				return err
			}

			out := NewOutput(cmd.OutOrStdout(), cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

// placementBody builds a place or score request from positional args
func placementBody(word, rowArg, colArg, direction string) (map[string]any, error) {
	row, err := strconv.Atoi(rowArg)
	if err != nil {
		return nil, fmt.Errorf("invalid row: %s", rowArg)
	}
	col, err := strconv.Atoi(colArg)
	if err != nil {
		return nil, fmt.Errorf("invalid col: %s", colArg)
	}
	return map[string]any{
		"word":      word,
		"row":       row,
		"col":       col,
		"direction": direction,
	}, nil
}

func placeWord(c *Client, gameID, word string, row, col int, direction string) (PlaceResult, error) {
	var result PlaceResult
	body := map[string]any{
		"word":      word,
		"row":       row,
		"col":       col,
		"direction": direction,
	}
	err := c.Post(gamePath(gameID, "place"), body, &result)
	return result, err
}

func newGameEndTurnCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "end-turn <game-id>",
		Short: "End the current turn",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Turn

			if err := client.Post(gamePath(args[0], "turn", "end"), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cmd.OutOrStdout(), cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameCompleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete <game-id>",
		Short: "Finish the game and show final scores",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GameSummary

			if err := client.Post(gamePath(args[0], "complete"), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cmd.OutOrStdout(), cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameRackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rack <game-id>",
		Short: "Show your rack",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Rack

			if err := client.Get(gamePath(args[0], "rack"), &result); err != nil {
				return err
			}

			out := NewOutput(cmd.OutOrStdout(), cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameBoardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "board <game-id>",
		Short: "Show the board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Board

			if err := client.Get(gamePath(args[0], "board"), &result); err != nil {
				return err
			}

			out := NewOutput(cmd.OutOrStdout(), cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGamePlayersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "players <game-id>",
		Short: "List players in seating order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Player

			if err := client.Get(gamePath(args[0], "players"), &result); err != nil {
				return err
			}

			out := NewOutput(cmd.OutOrStdout(), cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameMovesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "moves <game-id>",
		Short: "List moves in play order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Move

			if err := client.Get(gamePath(args[0], "moves"), &result); err != nil {
				return err
			}

			out := NewOutput(cmd.OutOrStdout(), cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
