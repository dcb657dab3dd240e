package accounts

import (
	"os"
	"strings"

	"github.com/pkg/errors"
)

// DefaultSourceEmail is used when SES_SOURCE_EMAIL is not set.
const DefaultSourceEmail = "noreply@lambdahouse.example"

// Config names the external systems the workflows touch. Provisioning of
// those systems happens elsewhere; the orchestration core only consumes
// their identifiers.
type Config struct {
	// UserPoolID identifies the identity directory.
	UserPoolID string
	// UserTable is the record-store table, indexed by identity id.
	UserTable string
	// UserFilesBucket holds the per-user storage namespaces.
	UserFilesBucket string
	// SourceEmail is the notification sender address.
	SourceEmail string
}

func ConfigFromEnv() Config {
	cfg := Config{
		UserPoolID:      os.Getenv("USER_POOL_ID"),
		UserTable:       os.Getenv("USER_TABLE_NAME"),
		UserFilesBucket: os.Getenv("USER_FILES_BUCKET_NAME"),
		SourceEmail:     os.Getenv("SES_SOURCE_EMAIL"),
	}
	if cfg.SourceEmail == "" {
		cfg.SourceEmail = DefaultSourceEmail
	}
	return cfg
}

func (c Config) Validate() error {
	var missing []string
	if c.UserPoolID == "" {
		missing = append(missing, "USER_POOL_ID")
	}
	if c.UserTable == "" {
		missing = append(missing, "USER_TABLE_NAME")
	}
	if c.UserFilesBucket == "" {
		missing = append(missing, "USER_FILES_BUCKET_NAME")
	}
	if len(missing) > 0 {
		return errors.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}
