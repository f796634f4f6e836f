package tilepool

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/tilegame/internal/dependencies/mocks"
	"github.com/mcoot/tilegame/internal/dependencies/random"
	"github.com/mcoot/tilegame/internal/model"
)

type ServiceSuite struct {
	suite.Suite
	random  *mocks.MockRandom
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.random = mocks.NewIdentityShuffleRandom()
	s.service = New(s.random)
}

func (s *ServiceSuite) TestFullSetHas100Tiles() {
	tiles := FullSet()
	s.Len(tiles, 100)

	counts := Counts(tiles)
	s.Equal(2, counts[model.BlankLetter])
	s.Equal(98, len(tiles)-counts[model.BlankLetter])
	s.Equal(12, counts['E'])
	s.Equal(1, counts['Z'])
}

func (s *ServiceSuite) TestFullSetMatchesDistribution() {
	counts := Counts(FullSet())
	for _, symbol := range model.TileSymbols() {
		s.Equal(model.TileCount(symbol), counts[symbol], "symbol %q", symbol)
	}
}

func (s *ServiceSuite) TestNewPoolPreservesMultiset() {
	pool := New(random.NewSeeded("multiset")).NewPool()
	s.Equal(100, pool.Remaining())
	s.Equal(Counts(FullSet()), Counts(pool.Tiles))
}

func (s *ServiceSuite) TestNewPoolUsesInjectedRandom() {
	pool := s.service.NewPool()

	// Identity shuffle keeps construction order, so blanks are drawn first
	s.Equal(FullSet(), pool.Tiles)
	s.Equal(99, s.random.IntnCalls)
	s.Equal([]rune{model.BlankLetter, model.BlankLetter, 'Z'}, pool.Draw(3))
}

func (s *ServiceSuite) TestSeededPoolsAreReproducible() {
	a := New(random.NewSeeded("seed-1")).NewPool()
	b := New(random.NewSeeded("seed-1")).NewPool()
	c := New(random.NewSeeded("seed-2")).NewPool()

	s.Equal(a.Tiles, b.Tiles)
	s.NotEqual(a.Tiles, c.Tiles)
}

func (s *ServiceSuite) TestDrawReducesPoolByExactCount() {
	pool := s.service.NewPool()

	drawn := pool.Draw(7)
	s.Len(drawn, 7)
	s.Equal(93, pool.Remaining())
}

func (s *ServiceSuite) TestDrawMoreThanRemainingReturnsRemainder() {
	pool := s.service.NewPool()
	_ = pool.Draw(97)

	drawn := pool.Draw(7)
	s.Len(drawn, 3)
	s.Equal(0, pool.Remaining())
}

func (s *ServiceSuite) TestDrawFromEmptyPoolReturnsNothing() {
	pool := &model.TilePool{}

	s.Empty(pool.Draw(7))
	s.Equal(0, pool.Remaining())
}

func (s *ServiceSuite) TestDrawNonPositiveReturnsNothing() {
	pool := s.service.NewPool()

	s.Empty(pool.Draw(0))
	s.Empty(pool.Draw(-3))
	s.Equal(100, pool.Remaining())
}

func (s *ServiceSuite) TestDrawingEverythingConservesTiles() {
	pool := New(random.NewSeeded("conserve")).NewPool()

	var drawn []rune
	for pool.Remaining() > 0 {
		drawn = append(drawn, pool.Draw(7)...)
	}
	s.Equal(Counts(FullSet()), Counts(drawn))
}
