package source

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"talentdesk/internal/cache"
)

type record struct {
	UID  string `json:"uid"`
	Name string `json:"name"`
}

type LocalSuite struct {
	suite.Suite
	cache *cache.InMemory
	local *Local[record]
	ctx   context.Context
}

func (s *LocalSuite) SetupTest() {
	s.cache = cache.NewInMemory()
	s.local = NewLocal[record](s.cache, "records")
	s.ctx = context.Background()
}

func TestLocalSuite(t *testing.T) {
	suite.Run(t, new(LocalSuite))
}

func (s *LocalSuite) TestLoad() {
	s.Run("absent blob is a valid empty state", func() {
		records, err := s.local.Load(s.ctx)
		s.Require().NoError(err)
		s.Empty(records)
	})

	s.Run("corrupt blob surfaces a decode error", func() {
		s.Require().NoError(s.cache.Set(s.ctx, "records", []byte("not-json")))
		_, err := s.local.Load(s.ctx)
		s.Require().Error(err)
	})
}

func (s *LocalSuite) TestPutAndGet() {
	s.Run("upserts one record into the blob", func() {
		s.Require().NoError(s.local.Put(s.ctx, "u1", record{UID: "u1", Name: "Ana"}))
		s.Require().NoError(s.local.Put(s.ctx, "u2", record{UID: "u2", Name: "Bia"}))

		got, ok, err := s.local.Get(s.ctx, "u1")
		s.Require().NoError(err)
		s.Require().True(ok)
		s.Equal("Ana", got.Name)
	})

	s.Run("put overwrites an existing record without touching others", func() {
		s.Require().NoError(s.local.Put(s.ctx, "u1", record{UID: "u1", Name: "Ana Maria"}))

		records, err := s.local.Load(s.ctx)
		s.Require().NoError(err)
		s.Len(records, 2)
		s.Equal("Ana Maria", records["u1"].Name)
		s.Equal("Bia", records["u2"].Name)
	})

	s.Run("absence is reported via ok, not error", func() {
		_, ok, err := s.local.Get(s.ctx, "missing")
		s.Require().NoError(err)
		s.False(ok)
	})
}

func (s *LocalSuite) TestRemoveAndDrop() {
	s.Require().NoError(s.local.Put(s.ctx, "u1", record{UID: "u1"}))

	s.Run("remove of an absent uid is a no-op", func() {
		s.Require().NoError(s.local.Remove(s.ctx, "ghost"))
	})

	s.Run("remove drops one record", func() {
		s.Require().NoError(s.local.Remove(s.ctx, "u1"))
		_, ok, err := s.local.Get(s.ctx, "u1")
		s.Require().NoError(err)
		s.False(ok)
	})

	s.Run("drop discards the whole blob", func() {
		s.Require().NoError(s.local.Put(s.ctx, "u1", record{UID: "u1"}))
		s.Require().NoError(s.local.Drop(s.ctx))
		records, err := s.local.Load(s.ctx)
		s.Require().NoError(err)
		s.Empty(records)
	})
}

// failingCache simulates an unavailable backend for error propagation checks.
type failingCache struct{}

var errCacheDown = errors.New("cache down")

func (failingCache) Set(context.Context, string, []byte) error   { return errCacheDown }
func (failingCache) Get(context.Context, string) ([]byte, error) { return nil, errCacheDown }
func (failingCache) Remove(context.Context, string) error        { return errCacheDown }
func (failingCache) Clear(context.Context) error                 { return errCacheDown }

func (s *LocalSuite) TestCacheFailuresSurface() {
	local := NewLocal[record](failingCache{}, "records")

	_, err := local.Load(s.ctx)
	s.Require().ErrorIs(err, errCacheDown)

	_, _, err = local.Get(s.ctx, "u1")
	s.Require().ErrorIs(err, errCacheDown)

	s.Require().ErrorIs(local.Put(s.ctx, "u1", record{}), errCacheDown)
}
