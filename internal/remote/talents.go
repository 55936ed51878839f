package remote

import (
	"context"

	"talentdesk/internal/docstore"
	"talentdesk/internal/domain"
)

// Talents is the authoritative accessor for the talents collection. Each
// talent document embeds its credential documents as a map keyed by type, so
// a single read returns the profile with documents attached.
type Talents struct {
	store docstore.Store
}

func NewTalents(store docstore.Store) *Talents {
	return &Talents{store: store}
}

func (r *Talents) GetByID(ctx context.Context, uid string) (domain.TalentProfile, error) {
	doc, err := r.store.Get(ctx, CollectionTalents, uid)
	if err != nil {
		return domain.TalentProfile{}, err
	}
	return talentFromDoc(doc), nil
}

func (r *Talents) GetAll(ctx context.Context) ([]domain.TalentProfile, error) {
	docs, err := r.store.List(ctx, CollectionTalents)
	if err != nil {
		return nil, err
	}
	talents := make([]domain.TalentProfile, 0, len(docs))
	for _, doc := range docs {
		talents = append(talents, talentFromDoc(doc))
	}
	return talents, nil
}

func (r *Talents) Create(ctx context.Context, talent domain.TalentProfile) error {
	return r.store.Create(ctx, CollectionTalents, talent.UID, talentToDoc(talent))
}

func (r *Talents) Update(ctx context.Context, uid string, patch docstore.Patch) error {
	return r.store.Update(ctx, CollectionTalents, uid, patch)
}

func (r *Talents) Delete(ctx context.Context, uid string) error {
	return r.store.Delete(ctx, CollectionTalents, uid)
}

// DocumentChange is the sparse update for one credential document. Unchanged
// fields are omitted from the wire patch entirely; Null fields write an
// explicit null (clearing the blob URL on rejection).
type DocumentChange struct {
	Status      docstore.Field[int]
	Observation docstore.Field[string]
	URL         docstore.Field[string]
}

// PatchDocuments persists a set of document changes for one talent as a
// single batched sparse patch over documents.<type>.<field> sub-paths, never
// a whole-collection overwrite.
func (r *Talents) PatchDocuments(ctx context.Context, uid string, changes map[domain.DocumentType]DocumentChange) error {
	patch := buildDocumentsPatch(changes)
	if patch.Empty() {
		return nil
	}
	return r.store.Update(ctx, CollectionTalents, uid, patch)
}

// ApproveAll flips every document change plus the profile-level approved flag
// in the same batched patch, so the flag can never land without the documents.
func (r *Talents) ApproveAll(ctx context.Context, uid string, changes map[domain.DocumentType]DocumentChange) error {
	patch := buildDocumentsPatch(changes)
	patch.SetPath("approved", true)
	return r.store.Update(ctx, CollectionTalents, uid, patch)
}

func buildDocumentsPatch(changes map[domain.DocumentType]DocumentChange) docstore.Patch {
	patch := docstore.Patch{}
	// Walk the closed type set in order so the patch is deterministic.
	for _, dt := range domain.RequiredDocumentTypes {
		change, ok := changes[dt]
		if !ok {
			continue
		}
		prefix := "documents." + string(dt) + "."
		docstore.SetField(&patch, prefix+"status", change.Status)
		docstore.SetField(&patch, prefix+"observation", change.Observation)
		docstore.SetField(&patch, prefix+"url", change.URL)
	}
	return patch
}

func talentFromDoc(doc map[string]any) domain.TalentProfile {
	talent := domain.TalentProfile{
		UID:         docString(doc, "uid"),
		DisplayName: docString(doc, "displayName"),
		Profession:  docString(doc, "profession"),
		Bio:         docString(doc, "bio"),
		DailyRate:   docInt(doc, "dailyRate"),
		Approved:    docBool(doc, "approved"),
		Active:      docBool(doc, "active"),
		Documents:   make(map[domain.DocumentType]domain.Document),
	}
	if bank := docMap(doc, "bank"); bank != nil {
		talent.Bank = &domain.BankAccount{
			BankCode:      docString(bank, "bankCode"),
			Agency:        docString(bank, "agency"),
			AccountNumber: docString(bank, "accountNumber"),
			AccountDigit:  docString(bank, "accountDigit"),
			HolderName:    docString(bank, "holderName"),
		}
	}
	documents := docMap(doc, "documents")
	for _, dt := range domain.RequiredDocumentTypes {
		entry := docMap(documents, string(dt))
		if entry == nil {
			talent.Documents[dt] = domain.Document{Type: dt, Status: domain.DocumentNotSubmitted}
			continue
		}
		talent.Documents[dt] = documentFromDoc(dt, entry)
	}
	return talent
}

func documentFromDoc(dt domain.DocumentType, entry map[string]any) domain.Document {
	document := domain.Document{
		Type:        dt,
		Option:      docString(entry, "option"),
		URL:         docString(entry, "url"),
		Status:      domain.DocumentStatus(docInt(entry, "status")),
		Observation: docString(entry, "observation"),
		IDNumber:    docString(entry, "idNumber"),
	}
	if address := docMap(entry, "address"); address != nil {
		document.Address = &domain.DocumentAddress{
			Street:  docString(address, "street"),
			City:    docString(address, "city"),
			State:   docString(address, "state"),
			ZipCode: docString(address, "zipCode"),
			Country: docString(address, "country"),
		}
	}
	return document
}

func talentToDoc(talent domain.TalentProfile) map[string]any {
	doc := map[string]any{
		"uid":         talent.UID,
		"displayName": talent.DisplayName,
		"profession":  talent.Profession,
		"bio":         talent.Bio,
		"dailyRate":   talent.DailyRate,
		"approved":    talent.Approved,
		"active":      talent.Active,
	}
	if talent.Bank != nil {
		doc["bank"] = map[string]any{
			"bankCode":      talent.Bank.BankCode,
			"agency":        talent.Bank.Agency,
			"accountNumber": talent.Bank.AccountNumber,
			"accountDigit":  talent.Bank.AccountDigit,
			"holderName":    talent.Bank.HolderName,
		}
	}
	// Every type gets an entry even when not submitted, so document patches
	// always find their parent object in place.
	documents := make(map[string]any, len(domain.RequiredDocumentTypes))
	for _, dt := range domain.RequiredDocumentTypes {
		documents[string(dt)] = documentToDoc(talent.Document(dt))
	}
	doc["documents"] = documents
	return doc
}

func documentToDoc(document domain.Document) map[string]any {
	entry := map[string]any{
		"option":      document.Option,
		"url":         document.URL,
		"status":      int(document.Status),
		"observation": document.Observation,
		"idNumber":    document.IDNumber,
	}
	if document.Address != nil {
		entry["address"] = map[string]any{
			"street":  document.Address.Street,
			"city":    document.Address.City,
			"state":   document.Address.State,
			"zipCode": document.Address.ZipCode,
			"country": document.Address.Country,
		}
	}
	return entry
}
