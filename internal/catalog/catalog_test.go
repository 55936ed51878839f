package catalog_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talentdesk/internal/cache"
	"talentdesk/internal/catalog"
	"talentdesk/internal/docstore"
	"talentdesk/internal/domain"
	"talentdesk/internal/remote"
)

func newCatalog(t *testing.T) (*catalog.Catalog, *remote.Roles) {
	t.Helper()
	roles := remote.NewRoles(docstore.NewInMemory())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return catalog.New(roles, cache.NewInMemory(), logger), roles
}

func Test_SeedDefaults(t *testing.T) {
	ctx := context.Background()
	cat, _ := newCatalog(t)

	require.NoError(t, cat.SeedDefaults(ctx))

	roles, err := cat.ListRoles(ctx)
	require.NoError(t, err)
	require.Len(t, roles, len(catalog.DefaultRoles))
}

func Test_SeedDefaultsIsIdempotent(t *testing.T) {
	ctx := context.Background()
	cat, _ := newCatalog(t)

	require.NoError(t, cat.SeedDefaults(ctx))
	require.NoError(t, cat.SeedDefaults(ctx))

	roles, err := cat.ListRoles(ctx)
	require.NoError(t, err)
	assert.Len(t, roles, len(catalog.DefaultRoles))
}

func Test_ListRolesServesCachedCatalog(t *testing.T) {
	ctx := context.Background()
	cat, store := newCatalog(t)

	require.NoError(t, cat.SeedDefaults(ctx))

	// A role created behind the catalog's back is invisible until the cached
	// blob is rebuilt; read-mostly staleness is accepted here.
	require.NoError(t, store.Create(ctx, domain.Role{ID: "auditor", Name: "Auditor"}))

	roles, err := cat.ListRoles(ctx)
	require.NoError(t, err)
	assert.Len(t, roles, len(catalog.DefaultRoles))
}

func Test_SeedDefaultsKeepsCustomizedRole(t *testing.T) {
	ctx := context.Background()
	cat, store := newCatalog(t)

	customized := domain.Role{ID: "reviewer", Name: "Renamed Reviewer", Permissions: []string{"aggregates.read"}}
	require.NoError(t, store.Create(ctx, customized))

	require.NoError(t, cat.SeedDefaults(ctx))

	roles, err := cat.ListRoles(ctx)
	require.NoError(t, err)
	require.Len(t, roles, len(catalog.DefaultRoles))
	for _, role := range roles {
		if role.ID == "reviewer" {
			assert.Equal(t, "Renamed Reviewer", role.Name, "seed must not overwrite an existing role")
		}
	}
}
