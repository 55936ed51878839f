package remote

import (
	"context"
	"fmt"
	"time"

	"talentdesk/internal/docstore"
	"talentdesk/internal/domain"
	"talentdesk/pkg/platform/sentinel"
)

// Admins is the authoritative accessor for the admins collection.
type Admins struct {
	store docstore.Store
}

func NewAdmins(store docstore.Store) *Admins {
	return &Admins{store: store}
}

func (r *Admins) GetByID(ctx context.Context, uid string) (domain.AdminIdentity, error) {
	doc, err := r.store.Get(ctx, CollectionAdmins, uid)
	if err != nil {
		return domain.AdminIdentity{}, err
	}
	return adminFromDoc(doc), nil
}

func (r *Admins) GetAll(ctx context.Context) ([]domain.AdminIdentity, error) {
	docs, err := r.store.List(ctx, CollectionAdmins)
	if err != nil {
		return nil, err
	}
	admins := make([]domain.AdminIdentity, 0, len(docs))
	for _, doc := range docs {
		admins = append(admins, adminFromDoc(doc))
	}
	return admins, nil
}

func (r *Admins) Create(ctx context.Context, admin domain.AdminIdentity) error {
	return r.store.Create(ctx, CollectionAdmins, admin.UID, adminToDoc(admin))
}

func (r *Admins) Update(ctx context.Context, uid string, patch docstore.Patch) error {
	return r.store.Update(ctx, CollectionAdmins, uid, patch)
}

func (r *Admins) Delete(ctx context.Context, uid string) error {
	return r.store.Delete(ctx, CollectionAdmins, uid)
}

// FindByEmail returns the admin with the given email, or sentinel.ErrNotFound.
// Duplicate detection in provisioning depends on this lookup.
func (r *Admins) FindByEmail(ctx context.Context, email string) (domain.AdminIdentity, error) {
	docs, err := r.store.FindByField(ctx, CollectionAdmins, "email", email)
	if err != nil {
		return domain.AdminIdentity{}, fmt.Errorf("find admin by email: %w", err)
	}
	if len(docs) == 0 {
		return domain.AdminIdentity{}, sentinel.ErrNotFound
	}
	return adminFromDoc(docs[0]), nil
}

// TouchLastLogin stamps the audit fields on a successful sign-in.
func (r *Admins) TouchLastLogin(ctx context.Context, uid string, at time.Time) error {
	patch := docstore.Patch{}
	patch.SetPath("lastLogin", encodeTime(at))
	return r.store.Update(ctx, CollectionAdmins, uid, patch)
}

func adminFromDoc(doc map[string]any) domain.AdminIdentity {
	return domain.AdminIdentity{
		UID:           docString(doc, "uid"),
		Name:          docString(doc, "name"),
		Email:         docString(doc, "email"),
		RoleID:        docString(doc, "roleId"),
		IsFirstAccess: docBool(doc, "isFirstAccess"),
		CreatedBy:     docString(doc, "createdBy"),
		CreatedAt:     docTime(doc, "createdAt"),
		UpdatedBy:     docString(doc, "updatedBy"),
		UpdatedAt:     docTime(doc, "updatedAt"),
		LastLogin:     docTime(doc, "lastLogin"),
	}
}

func adminToDoc(admin domain.AdminIdentity) map[string]any {
	return map[string]any{
		"uid":           admin.UID,
		"name":          admin.Name,
		"email":         admin.Email,
		"roleId":        admin.RoleID,
		"isFirstAccess": admin.IsFirstAccess,
		"createdBy":     admin.CreatedBy,
		"createdAt":     encodeTime(admin.CreatedAt),
		"updatedBy":     admin.UpdatedBy,
		"updatedAt":     encodeTime(admin.UpdatedAt),
		"lastLogin":     encodeTime(admin.LastLogin),
	}
}
