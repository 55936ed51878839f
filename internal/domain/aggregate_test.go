package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Join(t *testing.T) {
	accounts := []Account{
		{UID: "u1", Email: "both@example.com"},
		{UID: "u2", Email: "talent-only@example.com"},
		{UID: "u3", Email: "bare@example.com"},
	}
	talents := []TalentProfile{
		{UID: "u1", DisplayName: "Ana"},
		{UID: "u2", DisplayName: "Bruno"},
		{UID: "orphan", DisplayName: "No Account"},
	}
	clients := []ClientProfile{
		{UID: "u1", CompanySegment: "events"},
	}

	aggregates := Join(accounts, talents, clients)
	require.Len(t, aggregates, 3, "one aggregate per account, orphans dropped")

	byUID := make(map[string]Aggregate, len(aggregates))
	for _, agg := range aggregates {
		byUID[agg.UID()] = agg
	}

	full := byUID["u1"]
	require.NotNil(t, full.Talent)
	require.NotNil(t, full.Client)
	assert.Equal(t, "Ana", full.Talent.DisplayName)
	assert.Equal(t, "events", full.Client.CompanySegment)

	talentOnly := byUID["u2"]
	require.NotNil(t, talentOnly.Talent)
	assert.Nil(t, talentOnly.Client)

	bare := byUID["u3"]
	assert.Nil(t, bare.Talent)
	assert.Nil(t, bare.Client)
}

func Test_AggregateUID(t *testing.T) {
	assert.Empty(t, Aggregate{}.UID())
	assert.Equal(t, "u1", Aggregate{Account: &Account{UID: "u1"}}.UID())
}
