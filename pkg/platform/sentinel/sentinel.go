package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores, caches, and external
// clients return these (optionally wrapped) so services can translate them
// into coded domain errors at the boundary.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: record or object does not exist
// - ErrConflict: a record with the same natural key already exists
// - ErrUnavailable: backing service temporarily unreachable
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrUnavailable = errors.New("unavailable")
)
