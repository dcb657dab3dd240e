// Package directory wraps identity-provider group membership. Group
// membership is only ever mutated by workflow steps, never directly by
// callers.
package directory

import (
	"context"

	"github.com/pkg/errors"
)

var (
	// ErrNotMember is returned by RemoveFromGroup when the identity does
	// not hold the membership. Callers treat it as a non-fatal outcome.
	ErrNotMember = errors.New("identity is not a member of the group")

	// ErrIdentityNotFound is returned when the identity itself is unknown
	// to the provider.
	ErrIdentityNotFound = errors.New("identity not found")

	// ErrNotConfigured is returned when the directory is missing its
	// required pool identifier.
	ErrNotConfigured = errors.New("directory user pool is not configured")
)

// Directory is the identity-provider surface the workflows need. Both
// operations are idempotent: adding an existing membership succeeds, and
// removing a missing one reports ErrNotMember rather than failing.
type Directory interface {
	AddToGroup(ctx context.Context, identityID, group string) error
	RemoveFromGroup(ctx context.Context, identityID, group string) error
}
