package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/tilegame/internal/model"
	"github.com/mcoot/tilegame/internal/storage/storagetest"
)

type StorageSuite struct {
	storagetest.Suite
	mini    *miniredis.Miniredis
	storage *Storage
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.GameTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.Storage = s.storage
	s.Ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) TestPing() {
	s.NoError(s.storage.Ping(s.Ctx))
}

func (s *StorageSuite) TestGameKeyLayout() {
	s.Require().NoError(s.storage.SaveGame(s.Ctx, storagetest.NewGame("game-1")))

	s.True(s.mini.Exists("tilegame:game:game-1"))
	members, err := s.mini.Members("tilegame:idx:games")
	s.Require().NoError(err)
	s.Equal([]string{"game-1"}, members)
}

func (s *StorageSuite) TestGameTTLApplied() {
	s.Require().NoError(s.storage.SaveGame(s.Ctx, storagetest.NewGame("game-1")))

	s.Equal(time.Hour, s.mini.TTL("tilegame:game:game-1"))
}

func (s *StorageSuite) TestGameExpires() {
	s.Require().NoError(s.storage.SaveGame(s.Ctx, storagetest.NewGame("game-1")))
	s.Require().NoError(s.storage.SavePlayerCredential(s.Ctx, &model.PlayerCredential{
		GameID: "game-1", PlayerID: "p1", TokenHash: "hash",
	}))

	s.mini.FastForward(2 * time.Hour)

	_, err := s.storage.GetGame(s.Ctx, "game-1")
	s.ErrorIs(err, model.ErrGameNotFound)
	_, err = s.storage.GetPlayerCredential(s.Ctx, "game-1", "p1")
	s.ErrorIs(err, model.ErrCredentialNotFound)
}

func (s *StorageSuite) TestListGameIDsPrunesExpired() {
	s.Require().NoError(s.storage.SaveGame(s.Ctx, storagetest.NewGame("game-1")))
	s.mini.FastForward(2 * time.Hour)
	s.Require().NoError(s.storage.SaveGame(s.Ctx, storagetest.NewGame("game-2")))

	ids, err := s.storage.ListGameIDs(s.Ctx)
	s.Require().NoError(err)
	s.Equal([]model.GameID{"game-2"}, ids)

	members, err := s.mini.Members("tilegame:idx:games")
	s.Require().NoError(err)
	s.Equal([]string{"game-2"}, members)
}

func (s *StorageSuite) TestSaveGameRefreshesTTL() {
	s.Require().NoError(s.storage.SaveGame(s.Ctx, storagetest.NewGame("game-1")))
	s.mini.FastForward(50 * time.Minute)
	s.Require().NoError(s.storage.SaveGame(s.Ctx, storagetest.NewGame("game-1")))
	s.mini.FastForward(50 * time.Minute)

	exists, err := s.storage.GameExists(s.Ctx, "game-1")
	s.Require().NoError(err)
	s.True(exists)
}

func (s *StorageSuite) TestNoTTLWhenZero() {
	s.storage.cfg.GameTTL = 0
	s.Require().NoError(s.storage.SaveGame(s.Ctx, storagetest.NewGame("game-1")))

	s.Equal(time.Duration(0), s.mini.TTL("tilegame:game:game-1"))
}

func (s *StorageSuite) TestNewRejectsBadURL() {
	_, err := New(Config{URL: "not a url"})
	s.Error(err)
}

func (s *StorageSuite) TestNewConnects() {
	cfg := DefaultConfig()
	cfg.URL = "redis://" + s.mini.Addr()

	store, err := New(cfg)
	s.Require().NoError(err)
	defer func() { _ = store.Close() }()

	s.NoError(store.Ping(s.Ctx))
}
