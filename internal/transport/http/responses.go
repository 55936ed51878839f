package httptransport

import (
	"time"

	"talentdesk/internal/domain"
)

// Transport DTOs. Domain types stay tag-free; the wire shape is owned here.

type accountResponse struct {
	UID        string             `json:"uid"`
	Email      string             `json:"email"`
	Phone      string             `json:"phone,omitempty"`
	PersonType string             `json:"personType"`
	Individual *individualPayload `json:"individual,omitempty"`
	Company    *companyPayload    `json:"company,omitempty"`
	Active     bool               `json:"active"`
	CreatedAt  time.Time          `json:"createdAt"`
}

type individualPayload struct {
	FullName  string `json:"fullName"`
	TaxID     string `json:"taxId"`
	BirthDate string `json:"birthDate,omitempty"`
}

type companyPayload struct {
	LegalName    string `json:"legalName"`
	TradeName    string `json:"tradeName,omitempty"`
	CompanyTaxID string `json:"companyTaxId"`
}

type documentResponse struct {
	Type        string `json:"type"`
	Option      string `json:"option,omitempty"`
	URL         string `json:"url,omitempty"`
	Status      string `json:"status"`
	Observation string `json:"observation,omitempty"`
}

type bankAccountResponse struct {
	BankCode      string `json:"bankCode"`
	Agency        string `json:"agency"`
	AccountNumber string `json:"accountNumber"`
	AccountDigit  string `json:"accountDigit,omitempty"`
	HolderName    string `json:"holderName"`
}

type talentResponse struct {
	UID         string               `json:"uid"`
	DisplayName string               `json:"displayName"`
	Profession  string               `json:"profession,omitempty"`
	Bio         string               `json:"bio,omitempty"`
	DailyRate   int64                `json:"dailyRate"`
	Bank        *bankAccountResponse `json:"bank,omitempty"`
	Approved    bool                 `json:"approved"`
	Active      bool                 `json:"active"`
	Documents   []documentResponse   `json:"documents"`
}

type clientResponse struct {
	UID            string   `json:"uid"`
	CompanySegment string   `json:"companySegment,omitempty"`
	Preferences    []string `json:"preferences,omitempty"`
	AcceptedTerms  bool     `json:"acceptedTerms"`
}

type aggregateResponse struct {
	UID     string           `json:"uid"`
	Account *accountResponse `json:"account"`
	Talent  *talentResponse  `json:"talent,omitempty"`
	Client  *clientResponse  `json:"client,omitempty"`
}

type adminResponse struct {
	UID           string     `json:"uid"`
	Name          string     `json:"name,omitempty"`
	Email         string     `json:"email"`
	RoleID        string     `json:"roleId"`
	IsFirstAccess bool       `json:"isFirstAccess"`
	CreatedBy     string     `json:"createdBy,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	LastLogin     *time.Time `json:"lastLogin,omitempty"`
}

type roleResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

func toAccountResponse(account *domain.Account) *accountResponse {
	if account == nil {
		return nil
	}
	resp := &accountResponse{
		UID:        account.UID,
		Email:      account.Email,
		Phone:      account.Phone,
		PersonType: string(account.PersonType),
		Active:     account.Active,
		CreatedAt:  account.CreatedAt,
	}
	if account.Individual != nil {
		resp.Individual = &individualPayload{
			FullName:  account.Individual.FullName,
			TaxID:     account.Individual.TaxID,
			BirthDate: account.Individual.BirthDate,
		}
	}
	if account.Company != nil {
		resp.Company = &companyPayload{
			LegalName:    account.Company.LegalName,
			TradeName:    account.Company.TradeName,
			CompanyTaxID: account.Company.CompanyTaxID,
		}
	}
	return resp
}

func toTalentResponse(talent *domain.TalentProfile) *talentResponse {
	if talent == nil {
		return nil
	}
	resp := &talentResponse{
		UID:         talent.UID,
		DisplayName: talent.DisplayName,
		Profession:  talent.Profession,
		Bio:         talent.Bio,
		DailyRate:   talent.DailyRate,
		Approved:    talent.Approved,
		Active:      talent.Active,
		Documents:   make([]documentResponse, 0, len(domain.RequiredDocumentTypes)),
	}
	if talent.Bank != nil {
		resp.Bank = &bankAccountResponse{
			BankCode:      talent.Bank.BankCode,
			Agency:        talent.Bank.Agency,
			AccountNumber: talent.Bank.AccountNumber,
			AccountDigit:  talent.Bank.AccountDigit,
			HolderName:    talent.Bank.HolderName,
		}
	}
	for _, dt := range domain.RequiredDocumentTypes {
		doc := talent.Document(dt)
		resp.Documents = append(resp.Documents, documentResponse{
			Type:        string(doc.Type),
			Option:      doc.Option,
			URL:         doc.URL,
			Status:      doc.Status.String(),
			Observation: doc.Observation,
		})
	}
	return resp
}

func toClientResponse(client *domain.ClientProfile) *clientResponse {
	if client == nil {
		return nil
	}
	return &clientResponse{
		UID:            client.UID,
		CompanySegment: client.CompanySegment,
		Preferences:    client.Preferences,
		AcceptedTerms:  client.AcceptedTerms,
	}
}

func toAggregateResponse(agg domain.Aggregate) aggregateResponse {
	return aggregateResponse{
		UID:     agg.UID(),
		Account: toAccountResponse(agg.Account),
		Talent:  toTalentResponse(agg.Talent),
		Client:  toClientResponse(agg.Client),
	}
}

func toAggregateResponses(aggs []domain.Aggregate) []aggregateResponse {
	out := make([]aggregateResponse, 0, len(aggs))
	for _, agg := range aggs {
		out = append(out, toAggregateResponse(agg))
	}
	return out
}

func toAdminResponse(admin domain.AdminIdentity) adminResponse {
	resp := adminResponse{
		UID:           admin.UID,
		Name:          admin.Name,
		Email:         admin.Email,
		RoleID:        admin.RoleID,
		IsFirstAccess: admin.IsFirstAccess,
		CreatedBy:     admin.CreatedBy,
		CreatedAt:     admin.CreatedAt,
	}
	if !admin.LastLogin.IsZero() {
		lastLogin := admin.LastLogin
		resp.LastLogin = &lastLogin
	}
	return resp
}

func toRoleResponse(role domain.Role) roleResponse {
	return roleResponse{
		ID:          role.ID,
		Name:        role.Name,
		Permissions: role.Permissions,
	}
}
