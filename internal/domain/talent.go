package domain

// BankAccount holds talent payout details.
type BankAccount struct {
	BankCode      string
	Agency        string
	AccountNumber string
	AccountDigit  string
	HolderName    string
}

// TalentProfile overlays an Account for identities onboarded as talent.
// UID equals the owning Account's UID. Approved flips only through the
// verification workflow.
type TalentProfile struct {
	UID         string
	DisplayName string
	Profession  string
	Bio         string
	DailyRate   int64
	Bank        *BankAccount
	Approved    bool
	Active      bool
	Documents   map[DocumentType]Document
}

// Document returns the credential for one type, defaulting to a
// not-submitted record so callers never distinguish "absent" from
// "never uploaded".
func (t TalentProfile) Document(dt DocumentType) Document {
	if d, ok := t.Documents[dt]; ok {
		return d
	}
	return Document{Type: dt, Status: DocumentNotSubmitted}
}

// WithDocuments returns a copy holding the given document set. The map is
// copied so the receiver stays immutable.
func (t TalentProfile) WithDocuments(docs map[DocumentType]Document) TalentProfile {
	copied := make(map[DocumentType]Document, len(docs))
	for k, v := range docs {
		copied[k] = v
	}
	t.Documents = copied
	return t
}
