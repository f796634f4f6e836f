package model

// BlankLetter is the symbol for a blank (wildcard) tile
const BlankLetter = '?'

// RackSize is the number of tiles a player holds after a refill
const RackSize = 7

// PoolSize is the number of tiles in a fresh pool
const PoolSize = 100

// Alphabet lists the lettered tiles in pool construction order
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// letterValues is the base score of each tile
var letterValues = map[rune]int{
	'A': 1, 'B': 3, 'C': 3, 'D': 2, 'E': 1, 'F': 4, 'G': 2, 'H': 4, 'I': 1,
	'J': 8, 'K': 5, 'L': 1, 'M': 3, 'N': 1, 'O': 1, 'P': 3, 'Q': 10, 'R': 1,
	'S': 1, 'T': 1, 'U': 1, 'V': 4, 'W': 4, 'X': 8, 'Y': 4, 'Z': 10,
	BlankLetter: 0,
}

// tileDistribution is the number of tiles of each kind in a fresh pool
var tileDistribution = map[rune]int{
	'A': 9, 'B': 2, 'C': 2, 'D': 4, 'E': 12, 'F': 2, 'G': 3, 'H': 2, 'I': 9,
	'J': 1, 'K': 1, 'L': 4, 'M': 2, 'N': 6, 'O': 8, 'P': 2, 'Q': 1, 'R': 6,
	'S': 4, 'T': 6, 'U': 4, 'V': 2, 'W': 2, 'X': 1, 'Y': 2, 'Z': 1,
	BlankLetter: 2,
}

// LetterValue returns the base score for a tile symbol.
// Unknown symbols score 0, the same as a blank.
func LetterValue(letter rune) int {
	return letterValues[letter]
}

// TileCount returns how many tiles of the given symbol a fresh pool holds
func TileCount(letter rune) int {
	return tileDistribution[letter]
}

// TileSymbols returns every tile symbol in a stable order: A..Z then the blank
func TileSymbols() []rune {
	symbols := []rune(Alphabet)
	return append(symbols, BlankLetter)
}

// Tile is a letter placed on the board.
// Blank records that a wildcard was played as Letter, so the
// placement can be re-displayed and audited faithfully.
type Tile struct {
	Letter rune `json:"letter"`
	Blank  bool `json:"blank,omitempty"`
}
