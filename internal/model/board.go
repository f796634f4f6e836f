package model

import "unicode"

// BoardSize is the fixed grid dimension
const BoardSize = 15

// Position identifies a cell on the board
type Position struct {
	Row int `json:"row"` // 0-indexed from top
	Col int `json:"col"` // 0-indexed from left
}

// Cell is one square of the board. A nil Tile means the cell is empty.
type Cell struct {
	Tile *Tile `json:"tile,omitempty"`
}

// Board is the shared game grid
type Board struct {
	Size  int      `json:"size"`
	Cells [][]Cell `json:"cells"` // Row-major: Cells[row][col]
}

// NewBoard creates an empty 15x15 board
func NewBoard() *Board {
	cells := make([][]Cell, BoardSize)
	for i := range cells {
		cells[i] = make([]Cell, BoardSize)
	}
	return &Board{
		Size:  BoardSize,
		Cells: cells,
	}
}

// IsValidPosition returns true if the position is within bounds
func (b *Board) IsValidPosition(pos Position) bool {
	return pos.Row >= 0 && pos.Row < b.Size && pos.Col >= 0 && pos.Col < b.Size
}

// BonusAt returns the bonus for a cell regardless of what occupies it
func (b *Board) BonusAt(pos Position) BonusType {
	return BonusAt(pos)
}

// Get returns the tile at the given position, or nil if empty or out of range
func (b *Board) Get(pos Position) *Tile {
	if !b.IsValidPosition(pos) {
		return nil
	}
	return b.Cells[pos.Row][pos.Col].Tile
}

// IsEmpty returns true if no tile occupies the position
func (b *Board) IsEmpty(pos Position) bool {
	return b.Get(pos) == nil
}

// PlaceTile writes a tile at the given position. Whatever was there
// before is overwritten; out-of-range positions are ignored.
func (b *Board) PlaceTile(pos Position, tile Tile) {
	if !b.IsValidPosition(pos) {
		return
	}
	tile.Letter = unicode.ToUpper(tile.Letter)
	b.Cells[pos.Row][pos.Col].Tile = &tile
}

// TileCount returns the number of occupied cells
func (b *Board) TileCount() int {
	count := 0
	for row := 0; row < b.Size; row++ {
		for col := 0; col < b.Size; col++ {
			if b.Cells[row][col].Tile != nil {
				count++
			}
		}
	}
	return count
}

// Snapshot renders the board as cell markers for display.
// Placed tiles show their letter (lowercase for a blank), empty bonus
// cells show the bonus code, other empty cells are "".
func (b *Board) Snapshot() [][]string {
	grid := make([][]string, b.Size)
	for row := 0; row < b.Size; row++ {
		grid[row] = make([]string, b.Size)
		for col := 0; col < b.Size; col++ {
			grid[row][col] = b.marker(Position{Row: row, Col: col})
		}
	}
	return grid
}

func (b *Board) marker(pos Position) string {
	tile := b.Get(pos)
	if tile == nil {
		return string(BonusAt(pos))
	}
	if tile.Blank {
		return string(unicode.ToLower(tile.Letter))
	}
	return string(tile.Letter)
}

// Clone returns a deep copy of the board
func (b *Board) Clone() *Board {
	clone := &Board{
		Size:  b.Size,
		Cells: make([][]Cell, len(b.Cells)),
	}
	for row := range b.Cells {
		clone.Cells[row] = make([]Cell, len(b.Cells[row]))
		for col, cell := range b.Cells[row] {
			if cell.Tile != nil {
				t := *cell.Tile
				clone.Cells[row][col].Tile = &t
			}
		}
	}
	return clone
}
