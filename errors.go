package accounts

import "go.temporal.io/sdk/temporal"

// Fatal failure classifications. Steps attach one of these types when a
// failure must abort the remaining chain instead of being retried.
// Transient failures are returned as plain errors so the retry policy
// applies; soft failures never leave the step that observed them.
const (
	ErrTypeInvalidInput  = "InvalidInput"
	ErrTypeConfiguration = "Configuration"
	ErrTypeNotFound      = "NotFound"
	ErrTypeConflict      = "Conflict"
)

func fatal(errType, msg string, cause error) error {
	return temporal.NewNonRetryableApplicationError(msg, errType, cause)
}
