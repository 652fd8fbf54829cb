package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr)
	assert.Equal(t, "data/interview.db", cfg.Database.Path)
	assert.Equal(t, 60, cfg.Auth.TokenTTLMinutes)
	assert.Equal(t, 1440, cfg.Session.TTLMinutes)
	assert.Equal(t, "gemini-1.5-flash", cfg.Gemini.Model)
	assert.Equal(t, 30, cfg.Gemini.TimeoutSeconds)
	assert.Equal(t, "avatars", cfg.Storage.KeyPrefix)
	assert.Equal(t, "us-east-1", cfg.Storage.Region)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("INTERVIEW_SERVER_ADDR", "127.0.0.1:9000")
	t.Setenv("INTERVIEW_AUTH_JWTSECRET", "s3cret")
	t.Setenv("INTERVIEW_GEMINI_APIKEY", "key-123")
	t.Setenv("INTERVIEW_GEMINI_TIMEOUTSECONDS", "5")
	t.Setenv("INTERVIEW_STORAGE_BUCKET", "avatars-bucket")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	assert.Equal(t, "key-123", cfg.Gemini.APIKey)
	assert.Equal(t, 5, cfg.Gemini.TimeoutSeconds)
	assert.Equal(t, "avatars-bucket", cfg.Storage.Bucket)
}
