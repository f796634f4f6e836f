package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTileDistributionTotals(t *testing.T) {
	total, blanks := 0, 0
	for _, symbol := range TileSymbols() {
		total += TileCount(symbol)
	}
	blanks = TileCount(BlankLetter)

	assert.Equal(t, 100, total)
	assert.Equal(t, 2, blanks)
	assert.Len(t, TileSymbols(), 27)
}

func TestLetterValues(t *testing.T) {
	assert.Equal(t, 10, LetterValue('Q'))
	assert.Equal(t, 10, LetterValue('Z'))
	assert.Equal(t, 8, LetterValue('J'))
	assert.Equal(t, 1, LetterValue('E'))
	assert.Equal(t, 0, LetterValue(BlankLetter))
	assert.Equal(t, 0, LetterValue('7'))
}

func TestBonusLayoutCounts(t *testing.T) {
	assert.Len(t, BonusCells(BonusTripleWord), 8)
	assert.Len(t, BonusCells(BonusDoubleWord), 17)
	assert.Len(t, BonusCells(BonusTripleLetter), 12)
	assert.Len(t, BonusCells(BonusDoubleLetter), 24)
}

func TestBonusAt(t *testing.T) {
	tests := []struct {
		pos      Position
		expected BonusType
	}{
		{Position{Row: 0, Col: 0}, BonusTripleWord},
		{Position{Row: 7, Col: 7}, BonusDoubleWord},
		{Position{Row: 1, Col: 1}, BonusDoubleWord},
		{Position{Row: 5, Col: 5}, BonusTripleLetter},
		{Position{Row: 7, Col: 11}, BonusDoubleLetter},
		{Position{Row: 7, Col: 8}, BonusNone},
		{Position{Row: -1, Col: 0}, BonusNone},
		{Position{Row: 15, Col: 15}, BonusNone},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, BonusAt(tt.pos), "position %+v", tt.pos)
	}
}

func TestBonusLayoutIsSymmetric(t *testing.T) {
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			pos := Position{Row: row, Col: col}
			mirror := Position{Row: col, Col: row}
			assert.Equal(t, BonusAt(pos), BonusAt(mirror), "position %+v", pos)
		}
	}
}

func TestBonusMultipliers(t *testing.T) {
	assert.Equal(t, 2, BonusDoubleLetter.LetterMultiplier())
	assert.Equal(t, 3, BonusTripleLetter.LetterMultiplier())
	assert.Equal(t, 1, BonusDoubleWord.LetterMultiplier())
	assert.Equal(t, 2, BonusDoubleWord.WordMultiplier())
	assert.Equal(t, 3, BonusTripleWord.WordMultiplier())
	assert.Equal(t, 1, BonusNone.WordMultiplier())
}

func TestBoardSnapshot(t *testing.T) {
	board := NewBoard()
	board.PlaceTile(Position{Row: 7, Col: 7}, Tile{Letter: 'a'})
	board.PlaceTile(Position{Row: 7, Col: 8}, Tile{Letter: 'B', Blank: true})

	snapshot := board.Snapshot()

	require.Len(t, snapshot, BoardSize)
	assert.Len(t, snapshot[0], BoardSize)
	assert.Equal(t, "A", snapshot[7][7])
	assert.Equal(t, "b", snapshot[7][8])
	assert.Equal(t, "TW", snapshot[0][0])
	assert.Equal(t, "DL", snapshot[0][3])
	assert.Equal(t, "", snapshot[0][1])
}

func TestBoardPlaceTileOutOfRangeIgnored(t *testing.T) {
	board := NewBoard()
	board.PlaceTile(Position{Row: 15, Col: 0}, Tile{Letter: 'A'})
	board.PlaceTile(Position{Row: 0, Col: -1}, Tile{Letter: 'A'})

	assert.Equal(t, 0, board.TileCount())
	assert.Nil(t, board.Get(Position{Row: 15, Col: 0}))
}

func TestBoardCloneIsIndependent(t *testing.T) {
	board := NewBoard()
	board.PlaceTile(Position{Row: 3, Col: 3}, Tile{Letter: 'X'})

	clone := board.Clone()
	clone.PlaceTile(Position{Row: 3, Col: 3}, Tile{Letter: 'Y'})
	clone.PlaceTile(Position{Row: 4, Col: 4}, Tile{Letter: 'Z'})

	assert.Equal(t, 'X', board.Get(Position{Row: 3, Col: 3}).Letter)
	assert.True(t, board.IsEmpty(Position{Row: 4, Col: 4}))
}

func TestPlacementPositions(t *testing.T) {
	h := Placement{Word: "ABC", Origin: Position{Row: 2, Col: 3}, Direction: Horizontal}
	positions, err := h.Positions()
	require.NoError(t, err)
	assert.Equal(t, []Position{{2, 3}, {2, 4}, {2, 5}}, positions)

	v := Placement{Word: "AB", Origin: Position{Row: 13, Col: 0}, Direction: Vertical}
	positions, err = v.Positions()
	require.NoError(t, err)
	assert.Equal(t, []Position{{13, 0}, {14, 0}}, positions)

	_, err = Placement{Word: "A", Direction: "X"}.Positions()
	assert.ErrorIs(t, err, ErrInvalidDirection)
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		input    string
		expected Direction
		wantErr  bool
	}{
		{"H", Horizontal, false},
		{"h", Horizontal, false},
		{"across", Horizontal, false},
		{" V ", Vertical, false},
		{"down", Vertical, false},
		{"vertical", Vertical, false},
		{"D", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			dir, err := ParseDirection(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDirection)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, dir)
		})
	}
}

func TestRackReserveExactLetters(t *testing.T) {
	rack := Rack("HELLOAZ")

	res, err := rack.Reserve("hello")
	require.NoError(t, err)

	assert.Equal(t, []rune("HELLO"), res.Used)
	assert.Equal(t, Rack("AZ"), res.Remaining)
	assert.Empty(t, res.BlankIndexes())
	assert.Equal(t, Rack("HELLOAZ"), rack)
}

func TestRackReservePrefersLetterOverBlank(t *testing.T) {
	rack := Rack("?CAT")

	res, err := rack.Reserve("CAT")
	require.NoError(t, err)
	assert.Equal(t, Rack("?"), res.Remaining)
}

func TestRackReserveSubstitutesBlank(t *testing.T) {
	rack := Rack("C?T")

	res, err := rack.Reserve("CAT")
	require.NoError(t, err)
	assert.Equal(t, []rune{'C', BlankLetter, 'T'}, res.Used)
	assert.Equal(t, []int{1}, res.BlankIndexes())
	assert.Empty(t, res.Remaining)
}

func TestRackReserveGreedyOrder(t *testing.T) {
	// Left to right: the blank goes to X, so the second A is reported missing
	rack := Rack("?A")

	_, err := rack.Reserve("XAA")
	var ite *InsufficientTilesError
	require.ErrorAs(t, err, &ite)
	assert.Equal(t, 'A', ite.Letter)
}

func TestRackReserveFailureLeavesRackUnchanged(t *testing.T) {
	rack := Rack("ABCDEFG")

	_, err := rack.Reserve("ABZ")
	require.ErrorIs(t, err, ErrInsufficientTiles)

	var ite *InsufficientTilesError
	require.ErrorAs(t, err, &ite)
	assert.Equal(t, 'Z', ite.Letter)
	assert.Equal(t, Rack("ABCDEFG"), rack)

	// Retrying yields the same outcome against the same rack
	_, err2 := rack.Reserve("ABZ")
	assert.Equal(t, err.Error(), err2.Error())
	assert.Equal(t, Rack("ABCDEFG"), rack)
}

func TestRackReserveRepeatedLetterNeedsTwoTiles(t *testing.T) {
	_, err := Rack("LOBE").Reserve("BELL")
	assert.ErrorIs(t, err, ErrInsufficientTiles)
}

func TestRackReserveEmptyWord(t *testing.T) {
	res, err := Rack("AB").Reserve("")
	require.NoError(t, err)
	assert.Empty(t, res.Used)
	assert.Equal(t, Rack("AB"), res.Remaining)
}

func TestTilePoolDraw(t *testing.T) {
	pool := &TilePool{Tiles: []rune("ABCDE")}

	assert.Equal(t, []rune("ED"), pool.Draw(2))
	assert.Equal(t, 3, pool.Remaining())
	assert.Equal(t, []rune("CBA"), pool.Draw(10))
	assert.Equal(t, 0, pool.Remaining())
	assert.Empty(t, pool.Draw(1))
}

func TestGameCloneIsDeep(t *testing.T) {
	game := &Game{
		ID:      "g1",
		Board:   NewBoard(),
		Pool:    &TilePool{Tiles: []rune("AB")},
		Players: []*Player{{ID: "p1", Name: "Alice", Rack: Rack("XY")}},
		Moves:   []Move{{Word: "HI", BlankIndexes: []int{0}}},
	}

	clone := game.Clone()
	clone.Players[0].Rack[0] = 'Q'
	clone.Players[0].Score = 50
	clone.Pool.Draw(1)
	clone.Moves[0].BlankIndexes[0] = 9
	clone.Board.PlaceTile(Position{Row: 0, Col: 0}, Tile{Letter: 'A'})

	assert.Equal(t, Rack("XY"), game.Players[0].Rack)
	assert.Equal(t, 0, game.Players[0].Score)
	assert.Equal(t, 2, game.Pool.Remaining())
	assert.Equal(t, []int{0}, game.Moves[0].BlankIndexes)
	assert.Equal(t, 0, game.Board.TileCount())
}

func TestGameLeader(t *testing.T) {
	game := &Game{Players: []*Player{{ID: "a", Score: 5}, {ID: "b", Score: 9}, {ID: "c", Score: 2}}}
	require.NotNil(t, game.Leader())
	assert.Equal(t, PlayerID("b"), game.Leader().ID)

	game.Players[0].Score = 9
	assert.Nil(t, game.Leader())

	assert.Nil(t, (&Game{}).Leader())
}

func TestGameCurrentPlayer(t *testing.T) {
	game := &Game{}
	assert.Nil(t, game.CurrentPlayer())

	game.Players = []*Player{{ID: "a"}, {ID: "b"}}
	game.CurrentPlayerIdx = 1
	assert.Equal(t, PlayerID("b"), game.CurrentPlayer().ID)
}
