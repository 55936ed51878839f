package docstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"talentdesk/pkg/platform/sentinel"
)

type MemoryStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func (s *MemoryStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func (s *MemoryStoreSuite) TestCreateAndGet() {
	s.Run("creates and retrieves a document", func() {
		doc := map[string]any{"uid": "u1", "email": "u1@example.com"}
		s.Require().NoError(s.store.Create(s.ctx, "accounts", "u1", doc))

		got, err := s.store.Get(s.ctx, "accounts", "u1")
		s.Require().NoError(err)
		s.Equal("u1@example.com", got["email"])
	})

	s.Run("rejects duplicate id", func() {
		doc := map[string]any{"uid": "u2"}
		s.Require().NoError(s.store.Create(s.ctx, "accounts", "u2", doc))
		s.Require().ErrorIs(s.store.Create(s.ctx, "accounts", "u2", doc), sentinel.ErrConflict)
	})

	s.Run("returns ErrNotFound for unknown id", func() {
		_, err := s.store.Get(s.ctx, "accounts", "missing")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *MemoryStoreSuite) TestUpdate() {
	s.Run("applies a sparse patch without touching siblings", func() {
		doc := map[string]any{"uid": "u1", "email": "old@example.com", "phone": "123"}
		s.Require().NoError(s.store.Create(s.ctx, "accounts", "u1", doc))

		p := Patch{}
		p.SetPath("email", "new@example.com")
		s.Require().NoError(s.store.Update(s.ctx, "accounts", "u1", p))

		got, err := s.store.Get(s.ctx, "accounts", "u1")
		s.Require().NoError(err)
		s.Equal("new@example.com", got["email"])
		s.Equal("123", got["phone"])
	})

	s.Run("returns ErrNotFound for unknown id", func() {
		p := Patch{}
		p.SetPath("email", "x@example.com")
		s.Require().ErrorIs(s.store.Update(s.ctx, "accounts", "missing", p), sentinel.ErrNotFound)
	})

	s.Run("callers never alias store internals", func() {
		doc := map[string]any{"uid": "u3", "tags": []any{"a"}}
		s.Require().NoError(s.store.Create(s.ctx, "accounts", "u3", doc))

		got, _ := s.store.Get(s.ctx, "accounts", "u3")
		got["uid"] = "mutated"

		fresh, _ := s.store.Get(s.ctx, "accounts", "u3")
		s.Equal("u3", fresh["uid"])
	})
}

func (s *MemoryStoreSuite) TestFindByField() {
	s.Run("matches top-level string fields", func() {
		s.Require().NoError(s.store.Create(s.ctx, "admins", "a1", map[string]any{"uid": "a1", "email": "ops@example.com"}))
		s.Require().NoError(s.store.Create(s.ctx, "admins", "a2", map[string]any{"uid": "a2", "email": "other@example.com"}))

		docs, err := s.store.FindByField(s.ctx, "admins", "email", "ops@example.com")
		s.Require().NoError(err)
		s.Require().Len(docs, 1)
		s.Equal("a1", docs[0]["uid"])
	})

	s.Run("empty result for no match", func() {
		docs, err := s.store.FindByField(s.ctx, "admins", "email", "nobody@example.com")
		s.Require().NoError(err)
		s.Empty(docs)
	})
}

func (s *MemoryStoreSuite) TestDelete() {
	s.Require().NoError(s.store.Create(s.ctx, "admins", "a1", map[string]any{"uid": "a1"}))
	s.Require().NoError(s.store.Delete(s.ctx, "admins", "a1"))
	s.Require().ErrorIs(s.store.Delete(s.ctx, "admins", "a1"), sentinel.ErrNotFound)
}
