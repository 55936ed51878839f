package docstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Field_ZeroValueIsUnchanged(t *testing.T) {
	var f Field[string]
	assert.False(t, f.Changed())

	p := Patch{}
	SetField(&p, "email", f)
	assert.True(t, p.Empty())
}

func Test_Field_SetAndNull(t *testing.T) {
	set := Set("hello")
	require.True(t, set.Changed())
	assert.Equal(t, "hello", set.Value())

	null := Null[string]()
	require.True(t, null.Changed())
	assert.Nil(t, null.Value())
}

func Test_Patch_OmittedFieldsNeverWritten(t *testing.T) {
	p := Patch{}
	SetField(&p, "email", Set("new@example.com"))
	SetField(&p, "phone", Field[string]{})
	SetField(&p, "active", Null[bool]())

	doc := map[string]any{
		"email":  "old@example.com",
		"phone":  "+5511999999999",
		"active": true,
	}
	p.Apply(doc)

	assert.Equal(t, "new@example.com", doc["email"])
	assert.Equal(t, "+5511999999999", doc["phone"], "omitted field must survive")
	assert.Nil(t, doc["active"], "null field must be explicitly cleared")
}

func Test_Patch_DottedPathCreatesIntermediates(t *testing.T) {
	p := Patch{}
	p.SetPath("documents.identity.status", 2)
	p.SetPath("documents.identity.observation", "ok")

	doc := map[string]any{"displayName": "Ana"}
	p.Apply(doc)

	documents, ok := doc["documents"].(map[string]any)
	require.True(t, ok)
	identity, ok := documents["identity"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 2, identity["status"])
	assert.Equal(t, "ok", identity["observation"])
	assert.Equal(t, "Ana", doc["displayName"], "sibling fields must survive nested writes")
}
