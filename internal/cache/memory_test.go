package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"talentdesk/pkg/platform/sentinel"
)

type MemoryCacheSuite struct {
	suite.Suite
	cache *InMemory
	ctx   context.Context
}

func (s *MemoryCacheSuite) SetupTest() {
	s.cache = NewInMemory()
	s.ctx = context.Background()
}

func TestMemoryCacheSuite(t *testing.T) {
	suite.Run(t, new(MemoryCacheSuite))
}

func (s *MemoryCacheSuite) TestSetAndGet() {
	s.Run("round-trips a value", func() {
		s.Require().NoError(s.cache.Set(s.ctx, "k", []byte("v")))
		got, err := s.cache.Get(s.ctx, "k")
		s.Require().NoError(err)
		s.Equal([]byte("v"), got)
	})

	s.Run("misses with ErrNotFound", func() {
		_, err := s.cache.Get(s.ctx, "absent")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("returned slice is a copy", func() {
		s.Require().NoError(s.cache.Set(s.ctx, "k2", []byte("abc")))
		got, _ := s.cache.Get(s.ctx, "k2")
		got[0] = 'x'
		fresh, _ := s.cache.Get(s.ctx, "k2")
		s.Equal([]byte("abc"), fresh)
	})
}

func (s *MemoryCacheSuite) TestRemoveAndClear() {
	s.Require().NoError(s.cache.Set(s.ctx, "a", []byte("1")))
	s.Require().NoError(s.cache.Set(s.ctx, "b", []byte("2")))

	s.Run("remove drops one key and is idempotent", func() {
		s.Require().NoError(s.cache.Remove(s.ctx, "a"))
		s.Require().NoError(s.cache.Remove(s.ctx, "a"))
		_, err := s.cache.Get(s.ctx, "a")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("clear drops everything", func() {
		s.Require().NoError(s.cache.Clear(s.ctx))
		_, err := s.cache.Get(s.ctx, "b")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}
