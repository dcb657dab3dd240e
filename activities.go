package accounts

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.temporal.io/sdk/activity"

	"github.com/lambdahouse/accounts/internal/blob"
	"github.com/lambdahouse/accounts/internal/directory"
	"github.com/lambdahouse/accounts/internal/ids"
	"github.com/lambdahouse/accounts/internal/mailer"
	"github.com/lambdahouse/accounts/internal/metrics"
	"github.com/lambdahouse/accounts/internal/store"
)

// GroupChange is the input to the membership steps.
type GroupChange struct {
	IdentityID string
	Group      string
}

// RevokeOutput reports whether a membership was actually removed.
type RevokeOutput struct {
	Removed bool
}

// StorageOutput reports the provisioned storage namespace key.
type StorageOutput struct {
	StorageKey string
}

// NotifyOutput reports whether a notification reached the channel. The
// notification steps return it instead of an error so delivery problems
// never abort a workflow.
type NotifyOutput struct {
	Delivered bool
}

// GenerateIdentity mints the internal user id and stamps the new record.
// Re-running produces a fresh id, so the record store's conditional write
// is what makes the overall creation idempotent.
func (l *Lifecycle) GenerateIdentity(ctx context.Context, in CreationInput) (store.UserRecord, error) {
	if in.IdentityID == "" {
		return store.UserRecord{}, fatal(ErrTypeInvalidInput, "identity id is required", nil)
	}
	if in.Email == "" {
		return store.UserRecord{}, fatal(ErrTypeInvalidInput, "email is required", nil)
	}
	rec := store.UserRecord{
		UserID:        ids.NewUserID(),
		IdentityID:    in.IdentityID,
		Email:         in.Email,
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		ContactNumber: in.ContactNumber,
		Tier:          store.TierUser,
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
	}
	activity.GetLogger(ctx).Info("generated user id", "userID", rec.UserID, "email", rec.Email)
	return rec, nil
}

// PersistRecord conditionally creates the user record. A second run with
// the same generated id surfaces as a conflict, not data corruption.
func (l *Lifecycle) PersistRecord(ctx context.Context, rec store.UserRecord) error {
	err := l.records.Create(ctx, rec)
	if errors.Is(err, store.ErrAlreadyExists) {
		return fatal(ErrTypeConflict, "user record already exists", err)
	}
	return err
}

// ProvisionStorage creates the user's file namespace. Safe to repeat.
func (l *Lifecycle) ProvisionStorage(ctx context.Context, rec store.UserRecord) (StorageOutput, error) {
	if err := l.files.ProvisionNamespace(ctx, rec.UserID); err != nil {
		return StorageOutput{}, err
	}
	return StorageOutput{StorageKey: blob.NamespaceKey(rec.UserID)}, nil
}

// GrantGroup adds a directory group membership. Granting an existing
// membership succeeds, so repetition is a no-op.
func (l *Lifecycle) GrantGroup(ctx context.Context, change GroupChange) error {
	err := l.directory.AddToGroup(ctx, change.IdentityID, change.Group)
	switch {
	case errors.Is(err, directory.ErrNotConfigured):
		return fatal(ErrTypeConfiguration, "identity directory is not configured", err)
	case errors.Is(err, directory.ErrIdentityNotFound):
		return fatal(ErrTypeNotFound, "identity not found in directory", err)
	}
	return err
}

// RevokeGroup removes a directory group membership. A missing membership
// is a normal outcome; any other directory failure is logged and absorbed,
// since revocation is best effort wherever it appears.
func (l *Lifecycle) RevokeGroup(ctx context.Context, change GroupChange) (RevokeOutput, error) {
	err := l.directory.RemoveFromGroup(ctx, change.IdentityID, change.Group)
	switch {
	case err == nil:
		return RevokeOutput{Removed: true}, nil
	case errors.Is(err, directory.ErrNotMember):
		return RevokeOutput{}, nil
	}
	activity.GetLogger(ctx).Warn("failed to revoke group membership",
		"identityID", change.IdentityID, "group", change.Group, "error", err)
	return RevokeOutput{}, nil
}

// AdvanceTier looks the record up by identity id and unconditionally sets
// the paid tier, so repetition is a no-op.
func (l *Lifecycle) AdvanceTier(ctx context.Context, in UpgradeInput) (store.UserRecord, error) {
	rec, err := l.records.FindByIdentity(ctx, in.IdentityID)
	if errors.Is(err, store.ErrNotFound) {
		return store.UserRecord{}, fatal(ErrTypeNotFound,
			"no user record for identity "+in.IdentityID, err)
	}
	if err != nil {
		return store.UserRecord{}, err
	}
	updatedAt := time.Now().UTC().Format(time.RFC3339)
	if err := l.records.SetTier(ctx, rec.UserID, store.TierPaid, updatedAt); err != nil {
		return store.UserRecord{}, err
	}
	rec.Tier = store.TierPaid
	rec.UpdatedAt = updatedAt
	return rec, nil
}

// NotifyCreated sends the welcome email. Delivery failure is reported as a
// flag, never as an error.
func (l *Lifecycle) NotifyCreated(ctx context.Context, rec store.UserRecord) (NotifyOutput, error) {
	return l.notify(ctx, "welcome", rec, mailer.WelcomeMessage)
}

// NotifyUpgraded sends the paid-tier email, with the same soft-failure
// policy as NotifyCreated.
func (l *Lifecycle) NotifyUpgraded(ctx context.Context, rec store.UserRecord) (NotifyOutput, error) {
	return l.notify(ctx, "upgraded", rec, mailer.UpgradedMessage)
}

func (l *Lifecycle) notify(
	ctx context.Context,
	template string,
	rec store.UserRecord,
	render func(store.UserRecord) (mailer.Message, error),
) (NotifyOutput, error) {
	logger := activity.GetLogger(ctx)
	msg, err := render(rec)
	if err == nil {
		err = l.mailer.Send(ctx, msg)
	}
	if err != nil {
		logger.Warn("notification not delivered",
			"template", template, "email", rec.Email, "error", err)
		metrics.NotificationAttempted(template, false)
		return NotifyOutput{}, nil
	}
	metrics.NotificationAttempted(template, true)
	return NotifyOutput{Delivered: true}, nil
}
