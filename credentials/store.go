// Package credentials holds the bearer token the dashboard presents to the
// backend. The token is the only state this client persists; validity is
// always confirmed by the backend, never inferred locally.
package credentials

import (
	"github.com/pkg/errors"
)

// ErrNoToken is returned by Get when no token is currently stored.
var ErrNoToken = errors.New("no token stored")

// Store is the credential holder every component reads the bearer token
// from. There is at most one token at a time. Writers are whoever owns an
// authentication decision (login, the gateway's 401 recovery, logout);
// readers are every outgoing request. Implementations must be safe for
// concurrent use, and a Set or Clear must be atomic with respect to the
// next Get.
type Store interface {
	// Get returns the stored token, or ErrNoToken when absent.
	Get() (string, error)
	// Set replaces the stored token.
	Set(token string) error
	// Clear removes the stored token. Clearing an empty store is a no-op.
	Clear() error
}
