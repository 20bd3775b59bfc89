// Package tokenstore persists the single opaque session token a device
// holds. At most one token exists at a time; writes are replace-only.
package tokenstore

import "errors"

var (
	ErrStorageRead  = errors.New("token storage read failed")
	ErrStorageWrite = errors.New("token storage write failed")
)

// Store is the one-string persistent store behind the login handoff.
// Get returns "" with a nil error when no token is persisted. Callers
// treat a read error the same as "none present"; a write error means
// the token is not durably saved and may be kept in memory only.
type Store interface {
	Set(token string) error
	Get() (string, error)
	Clear() error
}
