package domain

// Aggregate is the merged per-identity view the admin console consumes.
// It is a read projection keyed by Account.UID, never a system of record:
// it must always be re-derivable from the three source collections.
// Talent and Client are optional overlays; an aggregate with a nil Account
// is meaningless and is never produced.
type Aggregate struct {
	Account *Account
	Talent  *TalentProfile
	Client  *ClientProfile
}

// UID returns the shared identity key, or "" for a malformed aggregate.
func (a Aggregate) UID() string {
	if a.Account == nil {
		return ""
	}
	return a.Account.UID
}

// Join produces one Aggregate per account by matching talents and clients on
// UID. The join is a plain O(n·m) equality scan: at admin-tool scale (hundreds
// of records) an index buys nothing, so we keep the obvious code.
func Join(accounts []Account, talents []TalentProfile, clients []ClientProfile) []Aggregate {
	aggregates := make([]Aggregate, 0, len(accounts))
	for i := range accounts {
		account := accounts[i]
		agg := Aggregate{Account: &account}
		for j := range talents {
			if talents[j].UID == account.UID {
				talent := talents[j]
				agg.Talent = &talent
				break
			}
		}
		for j := range clients {
			if clients[j].UID == account.UID {
				client := clients[j]
				agg.Client = &client
				break
			}
		}
		aggregates = append(aggregates, agg)
	}
	return aggregates
}
