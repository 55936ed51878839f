package domain

// ClientProfile overlays an Account for identities that book talent.
// Structurally the simplest of the three aggregate roots; carried in the
// aggregate for symmetry with TalentProfile.
type ClientProfile struct {
	UID            string
	CompanySegment string
	Preferences    []string
	AcceptedTerms  bool
}
