package web_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/tilegame/internal/model"
)

func TestGamePageShowsEmptyBoard(t *testing.T) {
	ts := newWebTestServer(t)
	g, _ := ts.createGame("Alice")

	rr := ts.get("/games/" + string(g.ID))
	require.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assert.Equal(t, 15, doc.Find("#board tr").Length())
	assert.Equal(t, 225, doc.Find("#board td").Length())
	assertContainsText(t, doc, "#board td[data-row='7'][data-col='7']", "DW")
	assertContainsText(t, doc, "#pool-remaining", "93")
	assertContainsText(t, doc, "#game-id", string(g.ID))
	assertNotContainsElement(t, doc, "#board td.tile")
}

func TestGamePageShowsTilesAndScores(t *testing.T) {
	ts := newWebTestServer(t)
	g, players := ts.createGame("Alice", "Bob")
	alice := players[0]

	ts.place(g.ID, alice.ID, "ZAX", 7, 7, model.Horizontal)

	doc := parseHTML(ts.get("/games/" + string(g.ID)).Body)

	assert.Equal(t, 3, doc.Find("#board td.tile").Length())
	blank := doc.Find("#board td[data-row='7'][data-col='8']")
	assert.True(t, blank.HasClass("blank"))
	assert.Equal(t, "A", blank.Text())
	assert.Equal(t, "Z", doc.Find("#board td[data-row='7'][data-col='7']").Text())

	row := doc.Find("#scoreboard tr[data-player-id='" + string(alice.ID) + "']")
	assert.Equal(t, "Alice", row.Find(".name").Text())
	assert.Equal(t, "38", row.Find(".score").Text())
	assert.Equal(t, "7", row.Find(".rack-count").Text())
	assert.True(t, row.HasClass("current"))

	move := doc.Find("#moves li.move")
	require.Equal(t, 1, move.Length())
	assert.Equal(t, "ZAX", move.Find(".word").Text())
	assert.Equal(t, "38", move.Find(".score").Text())
}

func TestGamePageEscapesNames(t *testing.T) {
	ts := newWebTestServer(t)
	g, _ := ts.createGame("<b>Mallory</b>")

	rr := ts.get("/games/" + string(g.ID))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotContains(t, rr.Body.String(), "<b>Mallory</b>")

	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, "#scoreboard .name", "<b>Mallory</b>")
}

func TestGamePageShowsWinner(t *testing.T) {
	ts := newWebTestServer(t)
	g, players := ts.createGame("Alice", "Bob")
	ts.place(g.ID, players[0].ID, "ZAX", 7, 7, model.Horizontal)

	_, err := ts.app.GameController.CompleteGame(t.Context(), g.ID)
	require.NoError(t, err)

	doc := parseHTML(ts.get("/games/" + string(g.ID)).Body)
	assertContainsText(t, doc, "#game-status", "completed")
	assertContainsText(t, doc, "#winner", "Alice")
	assertNotContainsElement(t, doc, "#scoreboard tr.current")
}

func TestBoardFragment(t *testing.T) {
	ts := newWebTestServer(t)
	g, players := ts.createGame("Alice")
	ts.place(g.ID, players[0].ID, "ZAX", 7, 7, model.Horizontal)

	rr := ts.get("/games/" + string(g.ID) + "/board")
	require.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assertContainsElement(t, doc, "table#board")
	assertNotContainsElement(t, doc, "#scoreboard")
	assert.Equal(t, "X", doc.Find("td[data-row='7'][data-col='9']").Text())
}

func TestGamePageSubscribesToEvents(t *testing.T) {
	ts := newWebTestServer(t)
	g, _ := ts.createGame()

	rr := ts.get("/games/" + string(g.ID))
	assert.Contains(t, rr.Body.String(), "/api/v1/games/"+string(g.ID)+"/events")
}
