// Package accounts orchestrates the lifecycle transitions of a user
// account: creation after identity verification, and the upgrade to the
// paid tier. Each transition is a short-lived workflow of idempotent steps
// against the identity directory, the record store, file storage, and the
// notification channel.
package accounts

import (
	"os"
	"time"

	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/lambdahouse/accounts/internal/blob"
	"github.com/lambdahouse/accounts/internal/directory"
	"github.com/lambdahouse/accounts/internal/mailer"
	"github.com/lambdahouse/accounts/internal/store"
)

const (
	// TaskQueue is the worker queue both lifecycle workflows run on.
	TaskQueue = "USER_LIFECYCLE"

	// CreationWorkflowName and UpgradeWorkflowName are the registered
	// workflow definition names.
	CreationWorkflowName = "user-creation"
	UpgradeWorkflowName  = "upgrade-user-to-paid"

	// workflowTimeout is the fixed ceiling for a whole run. Exceeding it
	// aborts the run with no partial-state cleanup.
	workflowTimeout = 5 * time.Minute
)

// NewClient dials the workflow engine, preferring TEMPORAL_GRPC_ENDPOINT
// when set.
func NewClient() (client.Client, error) {
	hostPort := os.Getenv("TEMPORAL_GRPC_ENDPOINT")
	if hostPort == "" {
		hostPort = client.DefaultHostPort
	}
	return client.NewClient(client.Options{HostPort: hostPort})
}

// Lifecycle holds the external collaborators the workflow steps touch.
// Workflow methods never use them directly; only activities do.
type Lifecycle struct {
	directory directory.Directory
	records   store.Store
	files     blob.Files
	mailer    mailer.Mailer
}

type LifecycleOptions struct {
	Directory directory.Directory
	Records   store.Store
	Files     blob.Files
	Mailer    mailer.Mailer
}

func NewLifecycle(options LifecycleOptions) *Lifecycle {
	return &Lifecycle{
		directory: options.Directory,
		records:   options.Records,
		files:     options.Files,
		mailer:    options.Mailer,
	}
}

// Register adds both workflow definitions and every step activity to r.
func (l *Lifecycle) Register(r worker.Registry) {
	r.RegisterWorkflowWithOptions(l.CreationWorkflow,
		workflow.RegisterOptions{Name: CreationWorkflowName})
	r.RegisterWorkflowWithOptions(l.UpgradeWorkflow,
		workflow.RegisterOptions{Name: UpgradeWorkflowName})

	r.RegisterActivity(l.GenerateIdentity)
	r.RegisterActivity(l.PersistRecord)
	r.RegisterActivity(l.ProvisionStorage)
	r.RegisterActivity(l.GrantGroup)
	r.RegisterActivity(l.RevokeGroup)
	r.RegisterActivity(l.AdvanceTier)
	r.RegisterActivity(l.NotifyCreated)
	r.RegisterActivity(l.NotifyUpgraded)
}

// StartWorker runs a worker hosting the lifecycle workflows. Blocks until
// interrupted.
func (l *Lifecycle) StartWorker(c client.Client) error {
	wkr := worker.New(c, TaskQueue, worker.Options{})
	l.Register(wkr)
	return wkr.Run(worker.InterruptCh())
}

// defaultActivityOptions retries transient step failures with backoff until
// the step's fatal classification or the workflow ceiling ends the run.
func defaultActivityOptions() workflow.ActivityOptions {
	return workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2,
		},
	}
}

// notifyActivityOptions bounds the best-effort notification steps; their
// outcome is a flag, never a workflow failure.
func notifyActivityOptions() workflow.ActivityOptions {
	return workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2,
			MaximumAttempts:    3,
		},
	}
}
