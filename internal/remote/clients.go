package remote

import (
	"context"

	"talentdesk/internal/docstore"
	"talentdesk/internal/domain"
	platformstrings "talentdesk/pkg/platform/strings"
)

// Clients is the authoritative accessor for the clients collection.
type Clients struct {
	store docstore.Store
}

func NewClients(store docstore.Store) *Clients {
	return &Clients{store: store}
}

func (r *Clients) GetByID(ctx context.Context, uid string) (domain.ClientProfile, error) {
	doc, err := r.store.Get(ctx, CollectionClients, uid)
	if err != nil {
		return domain.ClientProfile{}, err
	}
	return clientFromDoc(doc), nil
}

func (r *Clients) GetAll(ctx context.Context) ([]domain.ClientProfile, error) {
	docs, err := r.store.List(ctx, CollectionClients)
	if err != nil {
		return nil, err
	}
	clients := make([]domain.ClientProfile, 0, len(docs))
	for _, doc := range docs {
		clients = append(clients, clientFromDoc(doc))
	}
	return clients, nil
}

func (r *Clients) Create(ctx context.Context, client domain.ClientProfile) error {
	return r.store.Create(ctx, CollectionClients, client.UID, clientToDoc(client))
}

func (r *Clients) Update(ctx context.Context, uid string, patch docstore.Patch) error {
	return r.store.Update(ctx, CollectionClients, uid, patch)
}

func (r *Clients) Delete(ctx context.Context, uid string) error {
	return r.store.Delete(ctx, CollectionClients, uid)
}

func clientFromDoc(doc map[string]any) domain.ClientProfile {
	return domain.ClientProfile{
		UID:            docString(doc, "uid"),
		CompanySegment: docString(doc, "companySegment"),
		// Preferences come from user input on the marketplace side; normalize
		// once at the read boundary.
		Preferences: platformstrings.DedupeAndTrim(docStrings(doc, "preferences")),
		AcceptedTerms:  docBool(doc, "acceptedTerms"),
	}
}

func clientToDoc(client domain.ClientProfile) map[string]any {
	preferences := make([]any, 0, len(client.Preferences))
	for _, p := range client.Preferences {
		preferences = append(preferences, p)
	}
	return map[string]any{
		"uid":            client.UID,
		"companySegment": client.CompanySegment,
		"preferences":    preferences,
		"acceptedTerms":  client.AcceptedTerms,
	}
}
