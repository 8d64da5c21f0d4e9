//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"cleanhome/internal/address/models"
	"cleanhome/internal/address/store"
	"cleanhome/pkg/platform/sentinel"
	"cleanhome/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *store.Redis
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.store = store.NewRedis(s.redis.Client)
}

func (s *RedisStoreSuite) TearDownSuite() {
	s.redis.Terminate(context.Background())
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func makeSession(ttl time.Duration) *models.Session {
	now := time.Now()
	return &models.Session{
		ID: uuid.New(),
		Selection: models.Selection{
			RegionID:       "hanoi",
			SubRegionID:    "ba-dinh",
			SubSubRegionID: "subsub-0",
			HouseNumber:    "12",
			Street:         "Đội Cấn",
		},
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

func (s *RedisStoreSuite) TestRoundTrip() {
	ctx := context.Background()
	session := makeSession(time.Minute)

	s.Require().NoError(s.store.Create(ctx, session))
	s.ErrorIs(s.store.Create(ctx, session), sentinel.ErrConflict)

	got, err := s.store.Get(ctx, session.ID)
	s.Require().NoError(err)
	s.Equal(session.Selection, got.Selection)

	ttl, err := s.redis.Client.TTL(ctx, "cleanhome:address:session:"+session.ID.String()).Result()
	s.Require().NoError(err)
	s.Greater(ttl, time.Duration(0))
	s.LessOrEqual(ttl, time.Minute)
}

func (s *RedisStoreSuite) TestSaveRequiresExisting() {
	ctx := context.Background()
	s.ErrorIs(s.store.Save(ctx, makeSession(time.Minute)), sentinel.ErrNotFound)

	session := makeSession(time.Minute)
	s.Require().NoError(s.store.Create(ctx, session))
	session.Selection.Street = "Kim Mã"
	s.Require().NoError(s.store.Save(ctx, session))

	got, err := s.store.Get(ctx, session.ID)
	s.Require().NoError(err)
	s.Equal("Kim Mã", got.Selection.Street)
}

func (s *RedisStoreSuite) TestDelete() {
	ctx := context.Background()
	session := makeSession(time.Minute)
	s.Require().NoError(s.store.Create(ctx, session))

	s.Require().NoError(s.store.Delete(ctx, session.ID))
	s.ErrorIs(s.store.Delete(ctx, session.ID), sentinel.ErrNotFound)

	_, err := s.store.Get(ctx, session.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *RedisStoreSuite) TestExpiredSessionRejected() {
	s.Error(s.store.Create(context.Background(), makeSession(-time.Second)))
}
