// Package store holds the primary user record and its persistence interface.
package store

import (
	"context"

	"github.com/pkg/errors"
)

// Account tiers. A tier only ever advances, it never reverses.
const (
	TierUser = "user"
	TierPaid = "paid"
)

var (
	// ErrAlreadyExists is returned by Create when a record with the same
	// user id is already present.
	ErrAlreadyExists = errors.New("user record already exists")

	// ErrNotFound is returned when no record exists for the given key.
	ErrNotFound = errors.New("user record not found")
)

// UserRecord is the internal account entity. UserID is assigned once and
// never changes; IdentityID joins the record to the identity provider.
type UserRecord struct {
	UserID        string `dynamodbav:"userId" json:"userId"`
	IdentityID    string `dynamodbav:"identityId" json:"identityId"`
	Email         string `dynamodbav:"email" json:"email"`
	FirstName     string `dynamodbav:"firstName" json:"firstName"`
	LastName      string `dynamodbav:"lastName" json:"lastName"`
	ContactNumber string `dynamodbav:"contactNumber" json:"contactNumber"`
	Tier          string `dynamodbav:"tier" json:"tier"`
	CreatedAt     string `dynamodbav:"createdAt" json:"createdAt"`
	UpdatedAt     string `dynamodbav:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// DisplayName returns the name used when addressing the user, falling back
// to the email address when no first name was captured.
func (r UserRecord) DisplayName() string {
	if r.FirstName == "" {
		return r.Email
	}
	if r.LastName == "" {
		return r.FirstName
	}
	return r.FirstName + " " + r.LastName
}

// Store is the record-store surface the workflows need.
type Store interface {
	// Create persists a new record, failing with ErrAlreadyExists if a
	// record with the same UserID is present. Re-running with the same
	// generated id is therefore a detectable no-op, not corruption.
	Create(ctx context.Context, rec UserRecord) error

	// FindByIdentity looks a record up by identity id. The identity index
	// is unique-or-empty; the first match is used.
	FindByIdentity(ctx context.Context, identityID string) (UserRecord, error)

	// SetTier unconditionally sets the tier and updatedAt for the given
	// user id, so repetition is a no-op.
	SetTier(ctx context.Context, userID, tier, updatedAt string) error
}
