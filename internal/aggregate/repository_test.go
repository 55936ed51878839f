package aggregate

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"talentdesk/internal/cache"
	"talentdesk/internal/docstore"
	"talentdesk/internal/domain"
	"talentdesk/internal/remote"
	"talentdesk/internal/source"
)

type RepositorySuite struct {
	suite.Suite
	ctx      context.Context
	store    *docstore.InMemory
	cache    *cache.InMemory
	accounts *remote.Accounts
	talents  *remote.Talents
	clients  *remote.Clients
	repo     *Repository
}

func (s *RepositorySuite) SetupTest() {
	s.ctx = context.Background()
	s.store = docstore.NewInMemory()
	s.cache = cache.NewInMemory()
	s.accounts = remote.NewAccounts(s.store)
	s.talents = remote.NewTalents(s.store)
	s.clients = remote.NewClients(s.store)
	s.repo = NewRepository(
		source.Pair[domain.Account]{
			Remote: s.accounts,
			Local:  source.NewLocal[domain.Account](s.cache, CacheKeyAccounts),
		},
		source.Pair[domain.TalentProfile]{
			Remote: s.talents,
			Local:  source.NewLocal[domain.TalentProfile](s.cache, CacheKeyTalents),
		},
		source.Pair[domain.ClientProfile]{
			Remote: s.clients,
			Local:  source.NewLocal[domain.ClientProfile](s.cache, CacheKeyClients),
		},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
}

func TestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RepositorySuite))
}

func (s *RepositorySuite) seedAccount(uid, email string) domain.Account {
	account := domain.Account{
		UID:        uid,
		Email:      email,
		PersonType: domain.PersonTypeIndividual,
		Individual: &domain.IndividualPerson{FullName: "Person " + uid},
		Active:     true,
		CreatedAt:  time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC),
	}
	s.Require().NoError(s.accounts.Create(s.ctx, account))
	return account
}

func (s *RepositorySuite) seedTalent(uid, name string) domain.TalentProfile {
	talent := domain.TalentProfile{
		UID:         uid,
		DisplayName: name,
		Profession:  "photographer",
		DailyRate:   1500,
		Active:      true,
	}
	s.Require().NoError(s.talents.Create(s.ctx, talent))
	return talent
}

func (s *RepositorySuite) seedClient(uid, segment string) domain.ClientProfile {
	client := domain.ClientProfile{UID: uid, CompanySegment: segment, AcceptedTerms: true}
	s.Require().NoError(s.clients.Create(s.ctx, client))
	return client
}

func (s *RepositorySuite) TestGetByID() {
	s.seedAccount("u1", "u1@example.com")

	s.Run("miss falls through to remote and caches", func() {
		agg, err := s.repo.GetByID(s.ctx, "u1")
		s.Require().NoError(err)
		s.Require().NotNil(agg.Account)
		s.Equal("u1@example.com", agg.Account.Email)

		cached := source.NewLocal[domain.Account](s.cache, CacheKeyAccounts)
		_, ok, err := cached.Get(s.ctx, "u1")
		s.Require().NoError(err)
		s.True(ok, "remote read should populate the cache")
	})

	s.Run("cached account wins over remote", func() {
		// Change remote behind the cache's back.
		update := AccountUpdate{Email: docstore.Set("changed@example.com")}
		s.Require().NoError(s.accounts.Update(s.ctx, "u1", update.patch()))

		// Reset the cached entry to the original email to observe precedence.
		local := source.NewLocal[domain.Account](s.cache, CacheKeyAccounts)
		s.Require().NoError(local.Put(s.ctx, "u1", domain.Account{UID: "u1", Email: "stale@example.com"}))

		agg, err := s.repo.GetByID(s.ctx, "u1")
		s.Require().NoError(err)
		s.Equal("stale@example.com", agg.Account.Email)
	})

	s.Run("unknown uid surfaces the remote error", func() {
		_, err := s.repo.GetByID(s.ctx, "ghost")
		s.Require().Error(err)
	})
}

func (s *RepositorySuite) TestGetAllMergesCacheNonDestructively() {
	s.seedAccount("u1", "u1@example.com")

	// A record only the cache knows about (e.g. written by another instance
	// whose remote page this one has not seen).
	local := source.NewLocal[domain.Account](s.cache, CacheKeyAccounts)
	s.Require().NoError(local.Put(s.ctx, "cache-only", domain.Account{UID: "cache-only", Email: "c@example.com"}))

	aggs, err := s.repo.GetAll(s.ctx)
	s.Require().NoError(err)
	s.Len(aggs, 1, "result reflects remote truth")

	cached, err := local.Load(s.ctx)
	s.Require().NoError(err)
	s.Contains(cached, "u1")
	s.Contains(cached, "cache-only", "merge must not evict entries remote did not return")
}

func (s *RepositorySuite) TestGetAllFromCache() {
	s.Run("joins the three blobs per uid", func() {
		accountsLocal := source.NewLocal[domain.Account](s.cache, CacheKeyAccounts)
		talentsLocal := source.NewLocal[domain.TalentProfile](s.cache, CacheKeyTalents)
		s.Require().NoError(accountsLocal.Put(s.ctx, "u1", domain.Account{UID: "u1", Email: "u1@example.com"}))
		s.Require().NoError(talentsLocal.Put(s.ctx, "u1", domain.TalentProfile{UID: "u1", DisplayName: "Ana"}))

		aggs, err := s.repo.GetAllFromCache(s.ctx)
		s.Require().NoError(err)
		s.Require().Len(aggs, 1)
		s.Require().NotNil(aggs[0].Talent)
		s.Equal("Ana", aggs[0].Talent.DisplayName)
		s.Nil(aggs[0].Client)
	})

	s.Run("cache failure surfaces instead of degrading", func() {
		s.Require().NoError(s.cache.Set(s.ctx, CacheKeyTalents, []byte("corrupt")))
		_, err := s.repo.GetAllFromCache(s.ctx)
		s.Require().Error(err)
	})
}

func (s *RepositorySuite) TestGetAllAggregates() {
	s.seedAccount("u1", "u1@example.com")
	s.seedAccount("u2", "u2@example.com")
	s.seedTalent("u1", "Ana")
	s.seedClient("u2", "events")

	aggs, err := s.repo.GetAllAggregates(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(aggs, 2)

	byUID := make(map[string]domain.Aggregate, len(aggs))
	for _, agg := range aggs {
		byUID[agg.UID()] = agg
	}
	s.Require().NotNil(byUID["u1"].Talent)
	s.Equal("Ana", byUID["u1"].Talent.DisplayName)
	s.Nil(byUID["u1"].Client)
	s.Require().NotNil(byUID["u2"].Client)
	s.Equal("events", byUID["u2"].Client.CompanySegment)

	// All three blobs refreshed.
	cachedAggs, err := s.repo.GetAllFromCache(s.ctx)
	s.Require().NoError(err)
	s.Len(cachedAggs, 2)
}

func (s *RepositorySuite) TestUpdateAccount() {
	s.seedAccount("u1", "u1@example.com")

	s.Run("patches remote and the cached entry", func() {
		_, err := s.repo.GetByID(s.ctx, "u1") // warm the cache
		s.Require().NoError(err)

		err = s.repo.UpdateAccount(s.ctx, "u1", AccountUpdate{Email: docstore.Set("new@example.com")})
		s.Require().NoError(err)

		fresh, err := s.accounts.GetByID(s.ctx, "u1")
		s.Require().NoError(err)
		s.Equal("new@example.com", fresh.Email)
		s.True(fresh.Active, "untouched fields must survive the sparse patch")

		cached, ok, err := source.NewLocal[domain.Account](s.cache, CacheKeyAccounts).Get(s.ctx, "u1")
		s.Require().NoError(err)
		s.Require().True(ok)
		s.Equal("new@example.com", cached.Email)
	})

	s.Run("never fabricates a cache entry from a partial", func() {
		s.Require().NoError(s.cache.Clear(s.ctx))
		err := s.repo.UpdateAccount(s.ctx, "u1", AccountUpdate{Phone: docstore.Set("+5511988887777")})
		s.Require().NoError(err)

		_, ok, err := source.NewLocal[domain.Account](s.cache, CacheKeyAccounts).Get(s.ctx, "u1")
		s.Require().NoError(err)
		s.False(ok, "cache must stay absent when there was no entry to patch")
	})

	s.Run("unknown uid fails without touching the cache", func() {
		err := s.repo.UpdateAccount(s.ctx, "ghost", AccountUpdate{Email: docstore.Set("x@example.com")})
		s.Require().Error(err)
	})
}

func (s *RepositorySuite) TestRefreshTalentInsertsWholeRecord() {
	talent := domain.TalentProfile{UID: "u1", DisplayName: "Ana", Approved: true}
	s.repo.RefreshTalent(s.ctx, talent)

	cached, ok, err := source.NewLocal[domain.TalentProfile](s.cache, CacheKeyTalents).Get(s.ctx, "u1")
	s.Require().NoError(err)
	s.Require().True(ok, "a whole record may insert a fresh cache entry")
	s.True(cached.Approved)
}
