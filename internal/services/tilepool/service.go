package tilepool

import (
	"github.com/samber/lo"

	"github.com/mcoot/tilegame/internal/dependencies/random"
	"github.com/mcoot/tilegame/internal/model"
)

// Service builds shuffled tile pools from the fixed distribution
type Service struct {
	random random.Random
}

// New creates a new TilePool service. The random source decides the
// shuffle; pass a seeded source for reproducible games.
func New(random random.Random) *Service {
	return &Service{
		random: random,
	}
}

// NewPool returns a full pool, shuffled once. Draws consume it from the end.
func (s *Service) NewPool() *model.TilePool {
	tiles := FullSet()
	s.shuffle(tiles)
	return &model.TilePool{Tiles: tiles}
}

// shuffle is a Fisher-Yates shuffle driven by the injected source
func (s *Service) shuffle(tiles []rune) {
	for i := len(tiles) - 1; i > 0; i-- {
		j := s.random.Intn(i + 1)
		tiles[i], tiles[j] = tiles[j], tiles[i]
	}
}

// FullSet returns every tile of a fresh pool, unshuffled, grouped A..Z then blanks
func FullSet() []rune {
	return lo.FlatMap(model.TileSymbols(), func(symbol rune, _ int) []rune {
		return lo.Times(model.TileCount(symbol), func(int) rune { return symbol })
	})
}

// Counts tallies the tiles in a slice by symbol
func Counts(tiles []rune) map[rune]int {
	return lo.CountValues(tiles)
}
