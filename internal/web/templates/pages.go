package templates

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/mcoot/tilegame/internal/model"
)

// HomeData is the data for the home page
type HomeData struct {
	PageData
	GameIDs []model.GameID
}

// Home lists games and offers a form to start one
func Home(data HomeData) templ.Component {
	return Page(data.PageData, templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<h1>Games</h1><form method="post" action="/games" id="new-game"><button type="submit">New game</button></form>`)
		if len(data.GameIDs) == 0 {
			b.WriteString(`<p id="no-games">No games yet.</p>`)
		} else {
			b.WriteString(`<ul id="games">`)
			for _, id := range data.GameIDs {
				href := templ.EscapeString("/games/" + string(id))
				fmt.Fprintf(&b, `<li><a href="%s">%s</a></li>`, href, templ.EscapeString(string(id)))
			}
			b.WriteString(`</ul>`)
		}
		_, err := io.WriteString(w, b.String())
		return err
	}))
}

// GameData is the data for a game page
type GameData struct {
	PageData
	Game *model.Game
}

// GamePage shows the board, the scoreboard and the move history.
// The page reloads its board from /games/{id}/board on every game event.
func GamePage(data GameData) templ.Component {
	g := data.Game
	return Page(data.PageData, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			`<h1>Game <span id="game-id">%s</span></h1><p id="game-status">State: %s. Turn %d. Tiles left in pool: <span id="pool-remaining">%d</span>.</p>`,
			templ.EscapeString(string(g.ID)), templ.EscapeString(string(g.State)), g.TurnNumber+1, g.Pool.Remaining()); err != nil {
			return err
		}

		if _, err := io.WriteString(w, `<div id="board-container">`); err != nil {
			return err
		}
		if err := BoardGrid(g.Board.Snapshot()).Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `</div>`); err != nil {
			return err
		}

		if err := Scoreboard(g).Render(ctx, w); err != nil {
			return err
		}
		if err := MoveList(g).Render(ctx, w); err != nil {
			return err
		}

		base := templ.EscapeString("/games/" + string(g.ID))
		events := templ.EscapeString("/api/v1/games/" + string(g.ID) + "/events")
		_, err := fmt.Fprintf(w, `<script>(function(){
var es=new EventSource("%s");
var refresh=function(){fetch("%s/board").then(function(r){return r.text()}).then(function(h){document.getElementById("board-container").innerHTML=h})};
["word_placed","game_complete"].forEach(function(t){es.addEventListener(t,refresh)});
})();</script>`, events, base)
		return err
	}))
}

// Scoreboard lists players in turn order, marking whose turn it is
func Scoreboard(g *model.Game) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<h2>Players</h2><table id="scoreboard"><thead><tr><th>Player</th><th>Score</th><th>Tiles</th></tr></thead><tbody>`)
		current := g.CurrentPlayer()
		for _, p := range g.Players {
			class := "player"
			if current != nil && p.ID == current.ID && !g.IsComplete() {
				class += " current"
			}
			fmt.Fprintf(&b, `<tr class="%s" data-player-id="%s"><td class="name">%s</td><td class="score">%d</td><td class="rack-count">%d</td></tr>`,
				class, templ.EscapeString(string(p.ID)), templ.EscapeString(p.Name), p.Score, p.Rack.Count())
		}
		b.WriteString(`</tbody></table>`)
		if g.IsComplete() {
			if leader := g.Leader(); leader != nil {
				fmt.Fprintf(&b, `<p id="winner">Winner: %s</p>`, templ.EscapeString(leader.Name))
			} else {
				b.WriteString(`<p id="winner">Tied game</p>`)
			}
		}
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// MoveList shows placements oldest first
func MoveList(g *model.Game) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<h2>Moves</h2><ol id="moves">`)
		for _, m := range g.Moves {
			name := string(m.PlayerID)
			if p := g.GetPlayer(m.PlayerID); p != nil {
				name = p.Name
			}
			fmt.Fprintf(&b, `<li class="move"><span class="player">%s</span> played <span class="word">%s</span> at (%d, %d) %s for <span class="score">%d</span></li>`,
				templ.EscapeString(name), templ.EscapeString(m.Word), m.Origin.Row, m.Origin.Col, m.Direction, m.Score)
		}
		b.WriteString(`</ol>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}
