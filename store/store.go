// Package store persists estimate documents. The primary backend is a
// PocketBase collection; a local JSON snapshot acts as a durable fallback
// when the primary is unreachable.
package store

import (
	"errors"

	"estimator/services"
)

// ErrStoreUnavailable wraps any transport-level failure of the primary
// store. Callers are expected to fall back rather than surface it to the
// end user.
var ErrStoreUnavailable = errors.New("project store unavailable")

// ErrNotFound reports that no estimate exists under the given identifier.
var ErrNotFound = errors.New("estimate not found")

// ProjectStore is the persistence contract the application depends on.
// Save assigns and returns an identifier when the project has none.
type ProjectStore interface {
	LoadAll(userID string) ([]services.Project, error)
	Save(p services.Project) (string, error)
	Delete(id string) error
}
