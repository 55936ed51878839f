package domain

// DocumentStatus is the verification state of one uploaded credential.
// Values mirror the wire encoding and must not be reordered.
type DocumentStatus int

const (
	DocumentNotSubmitted  DocumentStatus = 0
	DocumentPendingReview DocumentStatus = 1
	DocumentApproved      DocumentStatus = 2
	DocumentRejected      DocumentStatus = 3
)

func (s DocumentStatus) String() string {
	switch s {
	case DocumentNotSubmitted:
		return "not_submitted"
	case DocumentPendingReview:
		return "pending_review"
	case DocumentApproved:
		return "approved"
	case DocumentRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// DocumentType identifies one credential slot. The set is closed: a talent has
// at most one document per type, keyed by (uid, type).
type DocumentType string

const (
	DocumentTypeIdentity        DocumentType = "identity"
	DocumentTypeResidence       DocumentType = "residence"
	DocumentTypeResume          DocumentType = "resume"
	DocumentTypeBackgroundCheck DocumentType = "background_check"
)

// RequiredDocumentTypes lists every type a talent must clear before approval,
// in review-screen order.
var RequiredDocumentTypes = []DocumentType{
	DocumentTypeIdentity,
	DocumentTypeResidence,
	DocumentTypeResume,
	DocumentTypeBackgroundCheck,
}

// ValidDocumentType reports whether t belongs to the closed type set.
func ValidDocumentType(t DocumentType) bool {
	for _, rt := range RequiredDocumentTypes {
		if t == rt {
			return true
		}
	}
	return false
}

// DocumentAddress carries the structured address fields only residence
// documents populate.
type DocumentAddress struct {
	Street  string
	City    string
	State   string
	ZipCode string
	Country string
}

// Document is one uploaded credential. URL points at the external blob and is
// present iff the document was submitted; Observation is meaningful only when
// the status is DocumentRejected.
type Document struct {
	Type        DocumentType
	Option      string
	URL         string
	Status      DocumentStatus
	Observation string
	IDNumber    string
	Address     *DocumentAddress
}

// Submitted reports whether the document carries an uploaded blob.
func (d Document) Submitted() bool {
	return d.Status != DocumentNotSubmitted
}
