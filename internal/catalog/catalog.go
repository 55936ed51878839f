// Package catalog manages the static role catalog. Roles are read-mostly
// reference data; the console only needs to list them and seed the defaults
// on a fresh deployment.
package catalog

import (
	"context"
	"errors"
	"log/slog"

	"talentdesk/internal/cache"
	"talentdesk/internal/domain"
	"talentdesk/internal/source"
	"talentdesk/pkg/platform/sentinel"
)

// RoleStore is the slice of the roles remote this package needs.
type RoleStore interface {
	GetAll(ctx context.Context) ([]domain.Role, error)
	Create(ctx context.Context, role domain.Role) error
}

const cacheKey = "roles"

// DefaultRoles is the catalog seeded into an empty deployment.
var DefaultRoles = []domain.Role{
	{
		ID:   "superadmin",
		Name: "Super Admin",
		Permissions: []string{
			"aggregates.read", "talents.review", "admins.manage", "roles.read",
		},
	},
	{
		ID:   "reviewer",
		Name: "Document Reviewer",
		Permissions: []string{
			"aggregates.read", "talents.review",
		},
	},
	{
		ID:   "viewer",
		Name: "Read Only",
		Permissions: []string{
			"aggregates.read", "roles.read",
		},
	},
}

type Catalog struct {
	roles  RoleStore
	local  *source.Local[domain.Role]
	logger *slog.Logger
}

func New(roles RoleStore, keyed cache.KeyedCache, logger *slog.Logger) *Catalog {
	return &Catalog{
		roles:  roles,
		local:  source.NewLocal[domain.Role](keyed, cacheKey),
		logger: logger,
	}
}

// ListRoles returns every role in the catalog, serving from the cached blob
// when one exists. A cache failure degrades to a remote read, never an error.
func (c *Catalog) ListRoles(ctx context.Context) ([]domain.Role, error) {
	cached, err := c.local.Load(ctx)
	if err != nil {
		c.logger.WarnContext(ctx, "role cache read failed, falling back to remote", "error", err)
	} else if len(cached) > 0 {
		roles := make([]domain.Role, 0, len(cached))
		for _, role := range cached {
			roles = append(roles, role)
		}
		return roles, nil
	}

	roles, err := c.roles.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	c.repopulate(ctx, roles)
	return roles, nil
}

// SeedDefaults installs the default roles on a fresh deployment. Roles that
// already exist are left untouched; the seed never overwrites.
func (c *Catalog) SeedDefaults(ctx context.Context) error {
	existing, err := c.roles.GetAll(ctx)
	if err != nil {
		return err
	}
	present := make(map[string]bool, len(existing))
	for _, role := range existing {
		present[role.ID] = true
	}

	seeded := false
	for _, role := range DefaultRoles {
		if present[role.ID] {
			continue
		}
		err := c.roles.Create(ctx, role)
		if errors.Is(err, sentinel.ErrConflict) {
			// Another instance seeded it first.
			continue
		}
		if err != nil {
			return err
		}
		seeded = true
		c.logger.InfoContext(ctx, "seeded default role", "role_id", role.ID)
	}

	if seeded {
		if roles, err := c.roles.GetAll(ctx); err == nil {
			c.repopulate(ctx, roles)
		}
	}
	return nil
}

func (c *Catalog) repopulate(ctx context.Context, roles []domain.Role) {
	byID := make(map[string]domain.Role, len(roles))
	for _, role := range roles {
		byID[role.ID] = role
	}
	if err := c.local.Save(ctx, byID); err != nil {
		c.logger.WarnContext(ctx, "role cache write failed", "error", err)
	}
}
