package provisioning

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_GeneratePassword(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		password, err := generatePassword()
		require.NoError(t, err)

		assert.Len(t, password, passwordLength)
		assert.True(t, strings.ContainsAny(password, lowercase), "must contain a lowercase letter")
		assert.True(t, strings.ContainsAny(password, uppercase), "must contain an uppercase letter")
		assert.True(t, strings.ContainsAny(password, digits), "must contain a digit")
		assert.True(t, strings.ContainsAny(password, symbols), "must contain a symbol")

		seen[password] = true
	}
	assert.Greater(t, len(seen), 45, "passwords must not repeat")
}
