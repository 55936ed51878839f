// Package remote exposes one typed accessor per entity collection of the
// document store. Mapping between wire documents and domain records is
// explicit and field-by-field; nothing here relies on struct tags or
// reflection-driven (de)serialization.
package remote

import "time"

// Collection names in the document store.
const (
	CollectionAccounts = "accounts"
	CollectionTalents  = "talents"
	CollectionClients  = "clients"
	CollectionAdmins   = "admins"
	CollectionRoles    = "roles"
)

func docString(doc map[string]any, key string) string {
	v, _ := doc[key].(string)
	return v
}

func docBool(doc map[string]any, key string) bool {
	v, _ := doc[key].(bool)
	return v
}

// docInt tolerates both float64 (JSON decoding) and int (freshly built docs).
func docInt(doc map[string]any, key string) int64 {
	switch v := doc[key].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	default:
		return 0
	}
}

func docTime(doc map[string]any, key string) time.Time {
	raw, _ := doc[key].(string)
	if raw == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}
	}
	return t
}

func docMap(doc map[string]any, key string) map[string]any {
	v, _ := doc[key].(map[string]any)
	return v
}

func docStrings(doc map[string]any, key string) []string {
	raw, _ := doc[key].([]any)
	if len(raw) == 0 {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func encodeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}
