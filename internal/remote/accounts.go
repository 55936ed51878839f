package remote

import (
	"context"
	"fmt"

	"talentdesk/internal/docstore"
	"talentdesk/internal/domain"
	"talentdesk/pkg/platform/sentinel"
)

// Accounts is the authoritative accessor for the accounts collection.
type Accounts struct {
	store docstore.Store
}

func NewAccounts(store docstore.Store) *Accounts {
	return &Accounts{store: store}
}

func (r *Accounts) GetByID(ctx context.Context, uid string) (domain.Account, error) {
	doc, err := r.store.Get(ctx, CollectionAccounts, uid)
	if err != nil {
		return domain.Account{}, err
	}
	return accountFromDoc(doc), nil
}

func (r *Accounts) GetAll(ctx context.Context) ([]domain.Account, error) {
	docs, err := r.store.List(ctx, CollectionAccounts)
	if err != nil {
		return nil, err
	}
	accounts := make([]domain.Account, 0, len(docs))
	for _, doc := range docs {
		accounts = append(accounts, accountFromDoc(doc))
	}
	return accounts, nil
}

func (r *Accounts) Create(ctx context.Context, account domain.Account) error {
	return r.store.Create(ctx, CollectionAccounts, account.UID, accountToDoc(account))
}

func (r *Accounts) Update(ctx context.Context, uid string, patch docstore.Patch) error {
	return r.store.Update(ctx, CollectionAccounts, uid, patch)
}

func (r *Accounts) Delete(ctx context.Context, uid string) error {
	return r.store.Delete(ctx, CollectionAccounts, uid)
}

// FindUIDByEmail resolves an account uid through the email index. Used by the
// provisioning workflow to adopt principals that already exist upstream.
func (r *Accounts) FindUIDByEmail(ctx context.Context, email string) (string, error) {
	docs, err := r.store.FindByField(ctx, CollectionAccounts, "email", email)
	if err != nil {
		return "", fmt.Errorf("find account by email: %w", err)
	}
	if len(docs) == 0 {
		return "", sentinel.ErrNotFound
	}
	return docString(docs[0], "uid"), nil
}

func accountFromDoc(doc map[string]any) domain.Account {
	account := domain.Account{
		UID:        docString(doc, "uid"),
		Email:      docString(doc, "email"),
		Phone:      docString(doc, "phone"),
		PersonType: domain.PersonType(docString(doc, "personType")),
		Active:     docBool(doc, "active"),
		CreatedAt:  docTime(doc, "createdAt"),
	}
	if individual := docMap(doc, "individual"); individual != nil {
		account.Individual = &domain.IndividualPerson{
			FullName:  docString(individual, "fullName"),
			TaxID:     docString(individual, "taxId"),
			BirthDate: docString(individual, "birthDate"),
		}
	}
	if company := docMap(doc, "company"); company != nil {
		account.Company = &domain.CompanyPerson{
			LegalName:    docString(company, "legalName"),
			TradeName:    docString(company, "tradeName"),
			CompanyTaxID: docString(company, "companyTaxId"),
		}
	}
	return account
}

func accountToDoc(account domain.Account) map[string]any {
	doc := map[string]any{
		"uid":        account.UID,
		"email":      account.Email,
		"phone":      account.Phone,
		"personType": string(account.PersonType),
		"active":     account.Active,
		"createdAt":  encodeTime(account.CreatedAt),
	}
	if account.Individual != nil {
		doc["individual"] = map[string]any{
			"fullName":  account.Individual.FullName,
			"taxId":     account.Individual.TaxID,
			"birthDate": account.Individual.BirthDate,
		}
	}
	if account.Company != nil {
		doc["company"] = map[string]any{
			"legalName":    account.Company.LegalName,
			"tradeName":    account.Company.TradeName,
			"companyTaxId": account.Company.CompanyTaxID,
		}
	}
	return doc
}
