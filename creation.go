package accounts

import (
	"go.temporal.io/sdk/workflow"

	"github.com/lambdahouse/accounts/internal/store"
)

// CreationInput is the identity-provider payload that starts the account
// creation workflow.
type CreationInput struct {
	IdentityID    string
	Email         string
	FirstName     string
	LastName      string
	ContactNumber string
}

// CreationResult accumulates every step's output: the persisted record,
// the provisioned storage key, and the notification outcome.
type CreationResult struct {
	Record     store.UserRecord
	StorageKey string
	Delivered  bool
}

// CreationWorkflow creates a user account end to end:
//
//	GenerateIdentity -> (PersistRecord || ProvisionStorage) -> NotifyCreated
//
// The record row and the storage namespace are independent, so those two
// steps run concurrently and may complete in either order.
func (l *Lifecycle) CreationWorkflow(ctx workflow.Context, in CreationInput) (CreationResult, error) {
	logger := workflow.GetLogger(ctx)
	actx := workflow.WithActivityOptions(ctx, defaultActivityOptions())

	var rec store.UserRecord
	if err := workflow.ExecuteActivity(actx, l.GenerateIdentity, in).Get(ctx, &rec); err != nil {
		return CreationResult{}, err
	}

	// Fan out. On the first branch failure the workflow fails immediately;
	// the sibling branch is not interrupted, it just runs to completion on
	// its own.
	persistFut := workflow.ExecuteActivity(actx, l.PersistRecord, rec)
	storageFut := workflow.ExecuteActivity(actx, l.ProvisionStorage, rec)

	var storage StorageOutput
	var branchErr error
	pending := 2
	selector := workflow.NewSelector(ctx)
	selector.AddFuture(persistFut, func(f workflow.Future) {
		pending--
		if err := f.Get(ctx, nil); err != nil && branchErr == nil {
			branchErr = err
		}
	})
	selector.AddFuture(storageFut, func(f workflow.Future) {
		pending--
		if err := f.Get(ctx, &storage); err != nil && branchErr == nil {
			branchErr = err
		}
	})
	for pending > 0 && branchErr == nil {
		selector.Select(ctx)
	}
	if branchErr != nil {
		return CreationResult{}, branchErr
	}

	result := CreationResult{Record: rec, StorageKey: storage.StorageKey}

	nctx := workflow.WithActivityOptions(ctx, notifyActivityOptions())
	var notified NotifyOutput
	if err := workflow.ExecuteActivity(nctx, l.NotifyCreated, rec).Get(ctx, &notified); err != nil {
		// The step absorbs delivery failures itself; an error here means
		// the notification could not even be attempted.
		logger.Warn("welcome notification skipped", "error", err)
	}
	result.Delivered = notified.Delivered

	logger.Info("account created",
		"userID", rec.UserID, "identityID", rec.IdentityID, "delivered", result.Delivered)
	return result, nil
}
