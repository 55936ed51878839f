package aggregate

import (
	"talentdesk/internal/docstore"
	"talentdesk/internal/domain"
)

// Update types pair a sparse remote patch with the equivalent in-place cache
// delta, so both sides of a write always carry the same change. Zero-value
// fields are Unchanged and appear in neither.

// AccountUpdate covers the account fields admins edit.
type AccountUpdate struct {
	Email  docstore.Field[string]
	Phone  docstore.Field[string]
	Active docstore.Field[bool]
}

func (u AccountUpdate) patch() docstore.Patch {
	p := docstore.Patch{}
	docstore.SetField(&p, "email", u.Email)
	docstore.SetField(&p, "phone", u.Phone)
	docstore.SetField(&p, "active", u.Active)
	return p
}

func (u AccountUpdate) apply(account domain.Account) domain.Account {
	if u.Email.Changed() {
		account.Email, _ = u.Email.Value().(string)
	}
	if u.Phone.Changed() {
		account.Phone, _ = u.Phone.Value().(string)
	}
	if u.Active.Changed() {
		account.Active, _ = u.Active.Value().(bool)
	}
	return account
}

// TalentUpdate covers the talent fields admins edit outside the verification
// workflow (which owns documents and runs through its own batched patch).
type TalentUpdate struct {
	DisplayName docstore.Field[string]
	Profession  docstore.Field[string]
	Bio         docstore.Field[string]
	DailyRate   docstore.Field[int64]
	Approved    docstore.Field[bool]
	Active      docstore.Field[bool]
}

func (u TalentUpdate) patch() docstore.Patch {
	p := docstore.Patch{}
	docstore.SetField(&p, "displayName", u.DisplayName)
	docstore.SetField(&p, "profession", u.Profession)
	docstore.SetField(&p, "bio", u.Bio)
	docstore.SetField(&p, "dailyRate", u.DailyRate)
	docstore.SetField(&p, "approved", u.Approved)
	docstore.SetField(&p, "active", u.Active)
	return p
}

func (u TalentUpdate) apply(talent domain.TalentProfile) domain.TalentProfile {
	if u.DisplayName.Changed() {
		talent.DisplayName, _ = u.DisplayName.Value().(string)
	}
	if u.Profession.Changed() {
		talent.Profession, _ = u.Profession.Value().(string)
	}
	if u.Bio.Changed() {
		talent.Bio, _ = u.Bio.Value().(string)
	}
	if u.DailyRate.Changed() {
		talent.DailyRate, _ = u.DailyRate.Value().(int64)
	}
	if u.Approved.Changed() {
		talent.Approved, _ = u.Approved.Value().(bool)
	}
	if u.Active.Changed() {
		talent.Active, _ = u.Active.Value().(bool)
	}
	return talent
}

// ClientUpdate covers the client profile fields admins edit.
type ClientUpdate struct {
	CompanySegment docstore.Field[string]
	AcceptedTerms  docstore.Field[bool]
}

func (u ClientUpdate) patch() docstore.Patch {
	p := docstore.Patch{}
	docstore.SetField(&p, "companySegment", u.CompanySegment)
	docstore.SetField(&p, "acceptedTerms", u.AcceptedTerms)
	return p
}

func (u ClientUpdate) apply(client domain.ClientProfile) domain.ClientProfile {
	if u.CompanySegment.Changed() {
		client.CompanySegment, _ = u.CompanySegment.Value().(string)
	}
	if u.AcceptedTerms.Changed() {
		client.AcceptedTerms, _ = u.AcceptedTerms.Value().(bool)
	}
	return client
}
