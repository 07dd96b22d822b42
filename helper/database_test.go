package helper

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDatabaseConfiguration(t *testing.T) {
	t.Run("Valid configuration from environment", func(t *testing.T) {
		SetTestDatabaseConfigEnvs(t, "5432")

		config, err := NewDatabaseConfiguration()

		require.NoError(t, err, "Expected NewDatabaseConfiguration to not return an error")
		assert.Equal(t, "localhost", config.Host)
		assert.Equal(t, "5432", config.Port)
		assert.Equal(t, "database", config.Database)
		assert.Equal(t, "user", config.Username)
		assert.Equal(t, "password", config.Password)
		assert.Equal(t, "public", config.Schema)
		assert.Equal(t, "disable", config.SSLMode)
	})

	t.Run("Missing required variables returns error", func(t *testing.T) {
		t.Setenv("DB_HOST", "")
		t.Setenv("DB_PORT", "")
		t.Setenv("DB_DATABASE", "")
		t.Setenv("DB_USERNAME", "")
		t.Setenv("DB_PASSWORD", "")

		_, err := NewDatabaseConfiguration()

		require.Error(t, err, "Expected error for missing required environment variables")
		assert.Contains(t, err.Error(), "missing required database environment variables")
	})

	t.Run("Schema and SSL mode default when unset", func(t *testing.T) {
		SetTestDatabaseConfigEnvs(t, "5432")
		t.Setenv("DB_SCHEMA", "")
		t.Setenv("DB_SSL_MODE", "")

		config, err := NewDatabaseConfiguration()

		require.NoError(t, err)
		assert.Equal(t, "public", config.Schema, "Expected schema to default to public")
		assert.Equal(t, "disable", config.SSLMode, "Expected ssl mode to default to disable")
	})
}

func TestNewError(t *testing.T) {
	t.Run("Wraps error with context", func(t *testing.T) {
		base := errors.New("connection refused")

		err := NewError("open database", base)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "open database", "Expected error to contain the context")
		assert.Contains(t, err.Error(), "connection refused", "Expected error to contain the cause")
		assert.ErrorIs(t, err, base, "Expected wrapped error to stay reachable via errors.Is")
	})
}
