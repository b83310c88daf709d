package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresSecretKeyOutsideDebug(t *testing.T) {
	t.Setenv("SECRET_KEY", "")
	t.Setenv("DEBUG", "false")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SECRET_KEY")
}

func TestLoadDebugAllowsMissingSecret(t *testing.T) {
	t.Setenv("SECRET_KEY", "")
	t.Setenv("DEBUG", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "8080", cfg.Port)
}

func TestLoadParsesHostsAndDB(t *testing.T) {
	t.Setenv("SECRET_KEY", "s3cr3t")
	t.Setenv("ALLOWED_HOSTS", "crm.example.com, admin.example.com ,")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6432")
	t.Setenv("DB_USER", "crm")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_NAME", "crm")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"crm.example.com", "admin.example.com"}, cfg.AllowedHosts)
	assert.Equal(t, "host=db.internal port=6432 user=crm password=pw dbname=crm sslmode=prefer", cfg.ConnString())
}

func TestLoadRejectsBadDBPort(t *testing.T) {
	t.Setenv("SECRET_KEY", "s3cr3t")
	t.Setenv("DB_PORT", "not-a-port")

	_, err := Load()
	require.Error(t, err)
}

func TestConnStringPrefersDatabaseURL(t *testing.T) {
	t.Setenv("SECRET_KEY", "s3cr3t")
	t.Setenv("DATABASE_URL", "postgres://crm:pw@db/crm")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://crm:pw@db/crm", cfg.ConnString())
}

func TestS3Enabled(t *testing.T) {
	t.Setenv("SECRET_KEY", "s3cr3t")
	t.Setenv("S3_BUCKET", "crm-media")
	t.Setenv("S3_ACCESS_KEY_ID", "AKIA")
	t.Setenv("S3_SECRET_ACCESS_KEY", "secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.S3Enabled())

	t.Setenv("S3_BUCKET", "")
	cfg, err = Load()
	require.NoError(t, err)
	assert.False(t, cfg.S3Enabled())
}
