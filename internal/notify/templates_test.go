package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_RenderCredentials(t *testing.T) {
	subject, body, err := RenderCredentials("Ana", "ana@example.com", "s3cr3tPass12")
	require.NoError(t, err)

	assert.Equal(t, "Your admin account has been created", subject)
	assert.Contains(t, body, "Welcome, Ana")
	assert.Contains(t, body, "ana@example.com")
	assert.Contains(t, body, "s3cr3tPass12")
	assert.Contains(t, body, "Temporary password")
}

func Test_RenderCredentials_EscapesHTML(t *testing.T) {
	_, body, err := RenderCredentials("<script>alert(1)</script>", "ana@example.com", "pw")
	require.NoError(t, err)
	assert.NotContains(t, body, "<script>")
}

func Test_RenderPromoted(t *testing.T) {
	subject, body, err := RenderPromoted("Bruno", "bruno@example.com")
	require.NoError(t, err)

	assert.Equal(t, "You now have admin access", subject)
	assert.Contains(t, body, "Hello, Bruno")
	assert.Contains(t, body, "bruno@example.com")
	assert.NotContains(t, body, "password is", "the adoption notice never carries credentials")
}
