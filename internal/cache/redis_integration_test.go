//go:build integration

package cache_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"talentdesk/internal/cache"
	"talentdesk/pkg/platform/sentinel"
	"talentdesk/pkg/testutil/containers"
)

type RedisCacheSuite struct {
	suite.Suite
	ctx       context.Context
	container *containers.RedisContainer
	cache     *cache.Redis
}

func (s *RedisCacheSuite) SetupSuite() {
	s.ctx = context.Background()
	s.container = containers.NewRedisContainer(s.T())
	s.cache = cache.NewRedis(s.container.Client)
}

func (s *RedisCacheSuite) TearDownSuite() {
	s.container.Close(s.ctx)
}

func (s *RedisCacheSuite) SetupTest() {
	s.Require().NoError(s.cache.Clear(s.ctx))
}

func TestRedisCacheSuite(t *testing.T) {
	suite.Run(t, new(RedisCacheSuite))
}

func (s *RedisCacheSuite) TestSetAndGet() {
	s.Require().NoError(s.cache.Set(s.ctx, "talents", []byte(`{"u1":{}}`)))

	value, err := s.cache.Get(s.ctx, "talents")
	s.Require().NoError(err)
	s.Equal([]byte(`{"u1":{}}`), value)
}

func (s *RedisCacheSuite) TestGetMissIsNotFound() {
	_, err := s.cache.Get(s.ctx, "never-written")
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *RedisCacheSuite) TestOverwrite() {
	s.Require().NoError(s.cache.Set(s.ctx, "accounts", []byte(`v1`)))
	s.Require().NoError(s.cache.Set(s.ctx, "accounts", []byte(`v2`)))

	value, err := s.cache.Get(s.ctx, "accounts")
	s.Require().NoError(err)
	s.Equal([]byte(`v2`), value)
}

func (s *RedisCacheSuite) TestRemove() {
	s.Require().NoError(s.cache.Set(s.ctx, "clients", []byte(`{}`)))
	s.Require().NoError(s.cache.Remove(s.ctx, "clients"))

	_, err := s.cache.Get(s.ctx, "clients")
	s.Require().ErrorIs(err, sentinel.ErrNotFound)

	s.Require().NoError(s.cache.Remove(s.ctx, "clients"), "removing an absent key is not an error")
}

func (s *RedisCacheSuite) TestClearOnlyTouchesOwnPrefix() {
	s.Require().NoError(s.cache.Set(s.ctx, "accounts", []byte(`{}`)))
	s.Require().NoError(s.cache.Set(s.ctx, "talents", []byte(`{}`)))

	// A neighbor outside the cache prefix must survive Clear.
	s.Require().NoError(s.container.Client.Set(s.ctx, "other:app:key", "keep", 0).Err())

	s.Require().NoError(s.cache.Clear(s.ctx))

	_, err := s.cache.Get(s.ctx, "accounts")
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
	_, err = s.cache.Get(s.ctx, "talents")
	s.Require().ErrorIs(err, sentinel.ErrNotFound)

	kept, err := s.container.Client.Get(s.ctx, "other:app:key").Result()
	s.Require().NoError(err)
	s.Equal("keep", kept)
}
