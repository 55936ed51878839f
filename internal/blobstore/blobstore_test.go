package blobstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talentdesk/pkg/testutil"
)

func Test_ObjectNameFromURL(t *testing.T) {
	t.Run("decodes the encoded object segment", func(t *testing.T) {
		name, err := ObjectNameFromURL("https://storage.example.com/v0/b/talentdesk/o/docs%2Fu1%2Fidentity.png?alt=media&token=abc")
		require.NoError(t, err)
		assert.Equal(t, "docs/u1/identity.png", name)
	})

	t.Run("plain last segment passes through", func(t *testing.T) {
		name, err := ObjectNameFromURL("https://storage.example.com/bucket/identity.png")
		require.NoError(t, err)
		assert.Equal(t, "identity.png", name)
	})

	t.Run("rejects a URL without an object segment", func(t *testing.T) {
		_, err := ObjectNameFromURL("https://storage.example.com/")
		require.Error(t, err)
	})
}

func Test_InMemoryDeleteIsIdempotent(t *testing.T) {
	store := NewInMemory("a.png")

	testutil.Given(t, "a stored object", func(t *testing.T) {
		assert.True(t, store.Exists("a.png"))
	})
	testutil.When(t, "the object is deleted", func(t *testing.T) {
		require.NoError(t, store.Delete(t.Context(), "a.png"))
		assert.False(t, store.Exists("a.png"))
	})
	testutil.Then(t, "repeat and unknown deletes still succeed", func(t *testing.T) {
		require.NoError(t, store.Delete(t.Context(), "a.png"))
		require.NoError(t, store.Delete(t.Context(), "never-existed.png"))
	})
}
