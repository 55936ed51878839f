package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_DeriveNameFromEmail(t *testing.T) {
	tests := []struct {
		email string
		first string
		last  string
	}{
		{"ana.silva@example.com", "Ana", "Silva"},
		{"joao_pedro.costa@example.com", "Joao", "Costa"},
		{"ops@example.com", "Ops", "User"},
		{"", "User", "User"},
	}
	for _, tt := range tests {
		first, last := DeriveNameFromEmail(tt.email)
		assert.Equal(t, tt.first, first, "first name for %q", tt.email)
		assert.Equal(t, tt.last, last, "last name for %q", tt.email)
	}
}
