package model

// TilePool is the shared bag of undrawn tiles. Tiles are taken from
// the end of the slice, so a pre-shuffled pool is consumed in order.
type TilePool struct {
	Tiles []rune `json:"tiles"`
}

// Draw removes up to n tiles from the pool and returns them.
// It returns fewer than n (possibly none) when the pool runs low.
func (p *TilePool) Draw(n int) []rune {
	if n <= 0 || len(p.Tiles) == 0 {
		return []rune{}
	}
	if n > len(p.Tiles) {
		n = len(p.Tiles)
	}
	drawn := make([]rune, 0, n)
	for i := 0; i < n; i++ {
		last := len(p.Tiles) - 1
		drawn = append(drawn, p.Tiles[last])
		p.Tiles = p.Tiles[:last]
	}
	return drawn
}

// Remaining returns the number of tiles left in the pool
func (p *TilePool) Remaining() int {
	return len(p.Tiles)
}

// Clone returns an independent copy of the pool
func (p *TilePool) Clone() *TilePool {
	tiles := make([]rune, len(p.Tiles))
	copy(tiles, p.Tiles)
	return &TilePool{Tiles: tiles}
}
