package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"cleanhome/internal/address/models"
	"cleanhome/pkg/platform/sentinel"
	"cleanhome/pkg/requestcontext"
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemory
	now   time.Time
	ctx   context.Context
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.now = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), s.now)
}

func (s *InMemoryStoreSuite) newSession(ttl time.Duration) *models.Session {
	return &models.Session{
		ID:        uuid.New(),
		Selection: models.Selection{RegionID: "hanoi"},
		CreatedAt: s.now,
		UpdatedAt: s.now,
		ExpiresAt: s.now.Add(ttl),
	}
}

func (s *InMemoryStoreSuite) TestCreateAndGet() {
	s.Run("round trip", func() {
		session := s.newSession(time.Minute)
		s.Require().NoError(s.store.Create(s.ctx, session))

		got, err := s.store.Get(s.ctx, session.ID)
		s.Require().NoError(err)
		s.Equal(session.Selection, got.Selection)
	})

	s.Run("duplicate id conflicts", func() {
		session := s.newSession(time.Minute)
		s.Require().NoError(s.store.Create(s.ctx, session))
		s.ErrorIs(s.store.Create(s.ctx, session), sentinel.ErrConflict)
	})

	s.Run("unknown id not found", func() {
		_, err := s.store.Get(s.ctx, uuid.New())
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("returned session is a copy", func() {
		session := s.newSession(time.Minute)
		s.Require().NoError(s.store.Create(s.ctx, session))

		got, err := s.store.Get(s.ctx, session.ID)
		s.Require().NoError(err)
		got.Selection.Street = "mutated"

		again, err := s.store.Get(s.ctx, session.ID)
		s.Require().NoError(err)
		s.Empty(again.Selection.Street)
	})
}

func (s *InMemoryStoreSuite) TestExpiry() {
	session := s.newSession(time.Minute)
	s.Require().NoError(s.store.Create(s.ctx, session))

	later := requestcontext.WithTime(context.Background(), s.now.Add(time.Minute))

	_, err := s.store.Get(later, session.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
	s.ErrorIs(s.store.Save(later, session), sentinel.ErrNotFound)

	removed, err := s.store.DeleteExpired(later)
	s.Require().NoError(err)
	s.Equal(1, removed)
	s.Equal(0, s.store.Len())
}

func (s *InMemoryStoreSuite) TestSave() {
	session := s.newSession(time.Minute)
	s.Require().NoError(s.store.Create(s.ctx, session))

	session.Selection.SubRegionID = "ba-dinh"
	s.Require().NoError(s.store.Save(s.ctx, session))

	got, err := s.store.Get(s.ctx, session.ID)
	s.Require().NoError(err)
	s.Equal("ba-dinh", got.Selection.SubRegionID)

	s.ErrorIs(s.store.Save(s.ctx, s.newSession(time.Minute)), sentinel.ErrNotFound)
}

func (s *InMemoryStoreSuite) TestDelete() {
	session := s.newSession(time.Minute)
	s.Require().NoError(s.store.Create(s.ctx, session))

	s.Require().NoError(s.store.Delete(s.ctx, session.ID))
	s.ErrorIs(s.store.Delete(s.ctx, session.ID), sentinel.ErrNotFound)
}

func (s *InMemoryStoreSuite) TestConcurrentSaves() {
	session := s.newSession(time.Hour)
	s.Require().NoError(s.store.Create(s.ctx, session))

	var wg sync.WaitGroup
	for range 50 {
		wg.Go(func() {
			updated := *session
			updated.Selection.Street = "Kim Mã"
			s.NoError(s.store.Save(s.ctx, &updated))
		})
	}
	wg.Wait()

	got, err := s.store.Get(s.ctx, session.ID)
	s.Require().NoError(err)
	s.Equal("Kim Mã", got.Selection.Street)
}
