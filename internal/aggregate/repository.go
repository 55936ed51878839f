package aggregate

import (
	"context"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"talentdesk/internal/domain"
	"talentdesk/internal/source"
)

var (
	cacheReads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "talentdesk_aggregate_cache_reads_total",
		Help: "Aggregate repository cache reads by outcome",
	}, []string{"outcome"})
)

// Cache keys for the per-entity-type blobs.
const (
	CacheKeyAccounts = "accounts"
	CacheKeyTalents  = "talents"
	CacheKeyClients  = "clients"
)

// Repository merges the three aggregate roots into one per-identity view.
// Reads follow cache-aside per operation; writes go remote-first and then
// conditionally patch the cache so an entry can never be observably ahead of
// the last successful remote write.
type Repository struct {
	accounts source.Pair[domain.Account]
	talents  source.Pair[domain.TalentProfile]
	clients  source.Pair[domain.ClientProfile]
	logger   *slog.Logger
}

func NewRepository(
	accounts source.Pair[domain.Account],
	talents source.Pair[domain.TalentProfile],
	clients source.Pair[domain.ClientProfile],
	logger *slog.Logger,
) *Repository {
	return &Repository{
		accounts: accounts,
		talents:  talents,
		clients:  clients,
		logger:   logger,
	}
}

// GetByID is local-first: the cached account wins when present (this path
// serves the identity the current session owns, where staleness is cheap).
// A cache failure degrades to a miss and falls through to remote.
func (r *Repository) GetByID(ctx context.Context, uid string) (domain.Aggregate, error) {
	cached, err := r.accounts.Local.Load(ctx)
	if err != nil {
		r.logger.WarnContext(ctx, "account cache read failed, falling through to remote",
			"uid", uid, "error", err)
		cached = map[string]domain.Account{}
	}
	if account, ok := cached[uid]; ok {
		cacheReads.WithLabelValues("hit").Inc()
		return r.overlay(ctx, account), nil
	}
	cacheReads.WithLabelValues("miss").Inc()

	account, err := r.accounts.Remote.GetByID(ctx, uid)
	if err != nil {
		return domain.Aggregate{}, err
	}
	r.putAccount(ctx, account)
	return r.overlay(ctx, account), nil
}

// GetAll is remote-first: a stale user list is worse than the network cost.
// Fresh accounts are merged into the existing per-uid cache map rather than
// replacing it, then persisted.
func (r *Repository) GetAll(ctx context.Context) ([]domain.Aggregate, error) {
	accounts, err := r.accounts.Remote.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	cached, loadErr := r.accounts.Local.Load(ctx)
	if loadErr != nil {
		r.logger.WarnContext(ctx, "account cache read failed, rebuilding blob", "error", loadErr)
		cached = map[string]domain.Account{}
	}
	for _, account := range accounts {
		cached[account.UID] = account
	}
	if err := r.accounts.Local.Save(ctx, cached); err != nil {
		r.invalidate(ctx, r.accounts.Local.Drop, CacheKeyAccounts, err)
	}

	aggregates := make([]domain.Aggregate, 0, len(accounts))
	for i := range accounts {
		aggregates = append(aggregates, r.overlay(ctx, accounts[i]))
	}
	return aggregates, nil
}

// GetAllFromCache is the pure cache read used for instantaneous UI refresh
// after a mutation. There is no fallback here, so a cache failure surfaces.
func (r *Repository) GetAllFromCache(ctx context.Context) ([]domain.Aggregate, error) {
	accounts, err := r.accounts.Local.Load(ctx)
	if err != nil {
		return nil, err
	}
	talents, err := r.talents.Local.Load(ctx)
	if err != nil {
		return nil, err
	}
	clients, err := r.clients.Local.Load(ctx)
	if err != nil {
		return nil, err
	}

	aggregates := make([]domain.Aggregate, 0, len(accounts))
	for uid := range accounts {
		account := accounts[uid]
		agg := domain.Aggregate{Account: &account}
		if talent, ok := talents[uid]; ok {
			agg.Talent = &talent
		}
		if client, ok := clients[uid]; ok {
			agg.Client = &client
		}
		aggregates = append(aggregates, agg)
	}
	return aggregates, nil
}

// GetAllAggregates performs the full three-source join: every account with
// its talent profile (documents attached) and client profile matched by uid,
// then refreshes all three cache blobs with the fresh data.
func (r *Repository) GetAllAggregates(ctx context.Context) ([]domain.Aggregate, error) {
	accounts, err := r.accounts.Remote.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	talents, err := r.talents.Remote.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	clients, err := r.clients.Remote.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	aggregates := domain.Join(accounts, talents, clients)

	refreshBlob(ctx, r, r.accounts.Local, CacheKeyAccounts, accounts, func(a domain.Account) string { return a.UID })
	refreshBlob(ctx, r, r.talents.Local, CacheKeyTalents, talents, func(t domain.TalentProfile) string { return t.UID })
	refreshBlob(ctx, r, r.clients.Local, CacheKeyClients, clients, func(c domain.ClientProfile) string { return c.UID })

	return aggregates, nil
}

// UpdateAccount writes the change remote-first, then patches the cached
// record only when one exists; a partial update never fabricates an entry.
func (r *Repository) UpdateAccount(ctx context.Context, uid string, update AccountUpdate) error {
	if err := r.accounts.Remote.Update(ctx, uid, update.patch()); err != nil {
		return err
	}
	patchCached(ctx, r, r.accounts.Local, CacheKeyAccounts, uid, update.apply)
	return nil
}

// UpdateTalent follows the same remote-then-conditional-cache rule.
func (r *Repository) UpdateTalent(ctx context.Context, uid string, update TalentUpdate) error {
	if err := r.talents.Remote.Update(ctx, uid, update.patch()); err != nil {
		return err
	}
	patchCached(ctx, r, r.talents.Local, CacheKeyTalents, uid, update.apply)
	return nil
}

// UpdateClient follows the same remote-then-conditional-cache rule.
func (r *Repository) UpdateClient(ctx context.Context, uid string, update ClientUpdate) error {
	if err := r.clients.Remote.Update(ctx, uid, update.patch()); err != nil {
		return err
	}
	patchCached(ctx, r, r.clients.Local, CacheKeyClients, uid, update.apply)
	return nil
}

// RefreshTalent overwrites the cached talent with a complete record already
// persisted remotely. Used by the verification workflow after its batched
// document patch; unlike the Update* paths this may insert a fresh entry
// because the record is whole, not assembled from a partial.
func (r *Repository) RefreshTalent(ctx context.Context, talent domain.TalentProfile) {
	if err := r.talents.Local.Put(ctx, talent.UID, talent); err != nil {
		r.invalidate(ctx, r.talents.Local.Drop, CacheKeyTalents, err)
	}
}

// overlay builds the aggregate view for one account from cached talent and
// client records. Overlay absence is normal (orphaned or never-onboarded
// sub-aggregates are tolerated); cache failures degrade to no overlay.
func (r *Repository) overlay(ctx context.Context, account domain.Account) domain.Aggregate {
	agg := domain.Aggregate{Account: &account}
	if talent, ok, err := r.talents.Local.Get(ctx, account.UID); err == nil && ok {
		agg.Talent = &talent
	}
	if client, ok, err := r.clients.Local.Get(ctx, account.UID); err == nil && ok {
		agg.Client = &client
	}
	return agg
}

func (r *Repository) putAccount(ctx context.Context, account domain.Account) {
	if err := r.accounts.Local.Put(ctx, account.UID, account); err != nil {
		r.invalidate(ctx, r.accounts.Local.Drop, CacheKeyAccounts, err)
	}
}

// refreshBlob merges fresh records into a per-type blob, keeping entries for
// uids the refresh did not return, then persists it.
func refreshBlob[T any](ctx context.Context, r *Repository, local *source.Local[T], key string, records []T, keyOf func(T) string) {
	cached, err := local.Load(ctx)
	if err != nil {
		r.logger.WarnContext(ctx, "cache read failed, rebuilding blob", "blob", key, "error", err)
		cached = map[string]T{}
	}
	for i := range records {
		cached[keyOf(records[i])] = records[i]
	}
	if err := local.Save(ctx, cached); err != nil {
		r.invalidate(ctx, local.Drop, key, err)
	}
}

// patchCached shallow-merges a delta already applied remotely into the cached
// record for uid. When no entry exists the cache stays absent: a record must
// never be assembled purely from a partial update.
func patchCached[T any](ctx context.Context, r *Repository, local *source.Local[T], key, uid string, apply func(T) T) {
	records, err := local.Load(ctx)
	if err != nil {
		r.logger.WarnContext(ctx, "cache read failed, skipping cache patch",
			"blob", key, "uid", uid, "error", err)
		return
	}
	record, ok := records[uid]
	if !ok {
		return
	}
	records[uid] = apply(record)
	if err := local.Save(ctx, records); err != nil {
		r.invalidate(ctx, local.Drop, key, err)
	}
}

// invalidate handles a cache write that failed right after a successful
// remote write. The entry would otherwise understate remote until the next
// full read, so the blob is dropped to force that read to repair from remote.
func (r *Repository) invalidate(ctx context.Context, drop func(context.Context) error, key string, cause error) {
	r.logger.WarnContext(ctx, "cache write failed after remote write, invalidating blob",
		"blob", key, "error", cause)
	if err := drop(ctx); err != nil {
		r.logger.ErrorContext(ctx, "cache invalidation failed, blob may be stale until next refresh",
			"blob", key, "error", err)
	}
}
