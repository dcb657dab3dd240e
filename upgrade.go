package accounts

import (
	"go.temporal.io/sdk/workflow"

	"github.com/lambdahouse/accounts/gate"
	"github.com/lambdahouse/accounts/internal/store"
)

// UpgradeInput identifies the account to move to the paid tier.
type UpgradeInput struct {
	IdentityID string
}

// UpgradeResult reports the terminal state of an upgrade run.
type UpgradeResult struct {
	UserID      string
	Group       string
	TierUpdated bool
	Delivered   bool
}

// UpgradeWorkflow moves an account to the paid tier:
//
//	RevokeGroup(user) -> GrantGroup(paid) -> AdvanceTier -> NotifyUpgraded
//
// The steps are strictly sequential: downstream consumers key their
// authorization off the directory, so membership must change before the
// tier flag does. Revocation and notification are best effort; a failed
// grant aborts the chain before the record store is touched.
func (l *Lifecycle) UpgradeWorkflow(ctx workflow.Context, in UpgradeInput) (UpgradeResult, error) {
	logger := workflow.GetLogger(ctx)
	actx := workflow.WithActivityOptions(ctx, defaultActivityOptions())

	var revoked RevokeOutput
	err := workflow.ExecuteActivity(actx, l.RevokeGroup,
		GroupChange{IdentityID: in.IdentityID, Group: gate.GroupUser}).Get(ctx, &revoked)
	if err != nil {
		logger.Warn("revoking prior membership failed", "error", err)
	}

	err = workflow.ExecuteActivity(actx, l.GrantGroup,
		GroupChange{IdentityID: in.IdentityID, Group: gate.GroupPaid}).Get(ctx, nil)
	if err != nil {
		return UpgradeResult{}, err
	}

	var rec store.UserRecord
	if err := workflow.ExecuteActivity(actx, l.AdvanceTier, in).Get(ctx, &rec); err != nil {
		// The granted membership is deliberately left in place: there is
		// no compensation of applied side effects.
		return UpgradeResult{}, err
	}

	nctx := workflow.WithActivityOptions(ctx, notifyActivityOptions())
	var notified NotifyOutput
	if err := workflow.ExecuteActivity(nctx, l.NotifyUpgraded, rec).Get(ctx, &notified); err != nil {
		logger.Warn("upgrade notification skipped", "error", err)
	}

	logger.Info("account upgraded",
		"userID", rec.UserID, "identityID", in.IdentityID, "delivered", notified.Delivered)
	return UpgradeResult{
		UserID:      rec.UserID,
		Group:       gate.GroupPaid,
		TierUpdated: true,
		Delivered:   notified.Delivered,
	}, nil
}
