package source

import (
	"context"

	"talentdesk/internal/docstore"
)

// Remote is the authoritative, network-backed accessor for one entity type.
// Failures propagate to callers unchanged; retries, if wanted, belong to the
// transport underneath, not here.
type Remote[T any] interface {
	GetByID(ctx context.Context, id string) (T, error)
	GetAll(ctx context.Context) ([]T, error)
	Create(ctx context.Context, record T) error
	Update(ctx context.Context, id string, patch docstore.Patch) error
	Delete(ctx context.Context, id string) error
}

// Pair binds the remote accessor for an entity type to its cache-backed local
// counterpart. The repository layer owns the read/write protocol between the
// two sides.
type Pair[T any] struct {
	Remote Remote[T]
	Local  *Local[T]
}
