package domain

import "time"

// PersonType discriminates the two mutually-exclusive person payloads an
// account may carry. Registration sets exactly one of Individual/Company.
type PersonType string

const (
	PersonTypeIndividual PersonType = "individual"
	PersonTypeCompany    PersonType = "company"
)

// IndividualPerson is the natural-person payload of an account.
type IndividualPerson struct {
	FullName  string
	TaxID     string
	BirthDate string
}

// CompanyPerson is the legal-entity payload of an account.
type CompanyPerson struct {
	LegalName    string
	TradeName    string
	CompanyTaxID string
}

// Account is the root aggregate for one identity. Created on registration,
// mutated by admins, never deleted in-flow. UID is the join key shared with
// TalentProfile and ClientProfile.
type Account struct {
	UID        string
	Email      string
	Phone      string
	PersonType PersonType
	Individual *IndividualPerson
	Company    *CompanyPerson
	Active     bool
	CreatedAt  time.Time
}

// WithActive returns a copy with the activity flag changed.
func (a Account) WithActive(active bool) Account {
	a.Active = active
	return a
}
