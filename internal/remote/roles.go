package remote

import (
	"context"

	"talentdesk/internal/docstore"
	"talentdesk/internal/domain"
)

// Roles is the authoritative accessor for the static role catalog.
type Roles struct {
	store docstore.Store
}

func NewRoles(store docstore.Store) *Roles {
	return &Roles{store: store}
}

func (r *Roles) GetByID(ctx context.Context, id string) (domain.Role, error) {
	doc, err := r.store.Get(ctx, CollectionRoles, id)
	if err != nil {
		return domain.Role{}, err
	}
	return roleFromDoc(doc), nil
}

func (r *Roles) GetAll(ctx context.Context) ([]domain.Role, error) {
	docs, err := r.store.List(ctx, CollectionRoles)
	if err != nil {
		return nil, err
	}
	roles := make([]domain.Role, 0, len(docs))
	for _, doc := range docs {
		roles = append(roles, roleFromDoc(doc))
	}
	return roles, nil
}

func (r *Roles) Create(ctx context.Context, role domain.Role) error {
	return r.store.Create(ctx, CollectionRoles, role.ID, roleToDoc(role))
}

func (r *Roles) Update(ctx context.Context, id string, patch docstore.Patch) error {
	return r.store.Update(ctx, CollectionRoles, id, patch)
}

func (r *Roles) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, CollectionRoles, id)
}

func roleFromDoc(doc map[string]any) domain.Role {
	return domain.Role{
		ID:          docString(doc, "id"),
		Name:        docString(doc, "name"),
		Permissions: docStrings(doc, "permissions"),
	}
}

func roleToDoc(role domain.Role) map[string]any {
	permissions := make([]any, 0, len(role.Permissions))
	for _, p := range role.Permissions {
		permissions = append(permissions, p)
	}
	return map[string]any{
		"id":          role.ID,
		"name":        role.Name,
		"permissions": permissions,
	}
}
