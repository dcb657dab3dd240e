package accounts

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	cfg := Config{
		UserPoolID:      "pool-1",
		UserTable:       "users",
		UserFilesBucket: "user-files",
		SourceEmail:     DefaultSourceEmail,
	}
	require.NoError(t, cfg.Validate())

	cfg.UserTable = ""
	err := cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "USER_TABLE_NAME")
}

func TestConfigFromEnvDefaultsSourceEmail(t *testing.T) {
	t.Setenv("USER_POOL_ID", "pool-1")
	t.Setenv("USER_TABLE_NAME", "users")
	t.Setenv("USER_FILES_BUCKET_NAME", "user-files")
	t.Setenv("SES_SOURCE_EMAIL", "")

	cfg := ConfigFromEnv()
	require.NoError(t, cfg.Validate())
	require.Equal(t, DefaultSourceEmail, cfg.SourceEmail)
}
