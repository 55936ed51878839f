package docstore

import "context"

// Store is the remote document store the core persists through: named
// collections of JSON documents addressed by id, with get/list/create/
// sparse-update/delete and a top-level equality query for email-style
// lookups. It is authoritative; the keyed cache is never the source of truth.
type Store interface {
	Get(ctx context.Context, collection, id string) (map[string]any, error)
	List(ctx context.Context, collection string) ([]map[string]any, error)
	Create(ctx context.Context, collection, id string, doc map[string]any) error
	Update(ctx context.Context, collection, id string, patch Patch) error
	Delete(ctx context.Context, collection, id string) error
	FindByField(ctx context.Context, collection, field, value string) ([]map[string]any, error)
}
