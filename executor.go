package accounts

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	"github.com/lambdahouse/accounts/internal/metrics"
)

// Executor starts lifecycle workflow runs. Each start creates a new,
// independently identified run whose name embeds the identity id and start
// time; that keeps re-triggers distinguishable for observability, it is
// not a dedup key.
type Executor struct {
	temporal client.Client
}

func NewExecutor(c client.Client) *Executor {
	return &Executor{temporal: c}
}

// StartCreation fires the account-creation workflow and returns its
// execution reference without waiting for completion.
func (e *Executor) StartCreation(ctx context.Context, in CreationInput) (string, error) {
	run, err := e.start(ctx, CreationWorkflowName, in.IdentityID, in)
	if err != nil {
		return "", err
	}
	return executionRef(run), nil
}

// StartUpgrade fires the tier-upgrade workflow and returns its execution
// reference without waiting for completion.
func (e *Executor) StartUpgrade(ctx context.Context, in UpgradeInput) (string, error) {
	run, err := e.start(ctx, UpgradeWorkflowName, in.IdentityID, in)
	if err != nil {
		return "", err
	}
	return executionRef(run), nil
}

// UpgradeAndWait fires the tier-upgrade workflow and blocks until the run
// reaches a terminal state, returning its result.
func (e *Executor) UpgradeAndWait(ctx context.Context, in UpgradeInput) (UpgradeResult, string, error) {
	run, err := e.start(ctx, UpgradeWorkflowName, in.IdentityID, in)
	if err != nil {
		return UpgradeResult{}, "", err
	}
	var result UpgradeResult
	if err := run.Get(ctx, &result); err != nil {
		return UpgradeResult{}, executionRef(run), err
	}
	return result, executionRef(run), nil
}

func (e *Executor) start(
	ctx context.Context, definition, identityID string, input interface{},
) (client.WorkflowRun, error) {
	options := client.StartWorkflowOptions{
		ID:                       runName(definition, identityID),
		TaskQueue:                TaskQueue,
		WorkflowExecutionTimeout: workflowTimeout,
	}
	run, err := e.temporal.ExecuteWorkflow(ctx, options, definition, input)
	var already *serviceerror.WorkflowExecutionAlreadyStarted
	if errors.As(err, &already) {
		return nil, errors.Wrapf(err, "%s already running for identity %q", definition, identityID)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "starting %s for identity %q", definition, identityID)
	}
	metrics.WorkflowStarted(definition)
	return run, nil
}

func runName(definition, identityID string) string {
	return fmt.Sprintf("%s-%s-%d", definition, identityID, time.Now().UnixMilli())
}

func executionRef(run client.WorkflowRun) string {
	return run.GetID() + "/" + run.GetRunID()
}
