package config

import (
	"testing"
	"time"

	"github.com/startlistclub/flightjournal/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "flightjournal", cfg.MongoDB.Database)
	assert.Equal(t, domain.InProgressBriefedOrTrained, cfg.Training.InProgressPolicy)
	assert.Equal(t, 10*time.Minute, cfg.Training.ProgramCacheTTL)
	assert.Equal(t, "TRAINING", cfg.NATS.Stream)
	assert.False(t, cfg.SMSEnabled())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("TRAINING_IN_PROGRESS_POLICY", "trained_only")
	t.Setenv("PROGRAM_CACHE_TTL", "90")
	t.Setenv("TWILIO_ACCOUNT_SID", "AC123")
	t.Setenv("TWILIO_AUTH_TOKEN", "token")
	t.Setenv("TWILIO_FROM", "Club")
	t.Setenv("S3_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, domain.InProgressTrainedOnly, cfg.Training.InProgressPolicy)
	assert.Equal(t, 90*time.Second, cfg.Training.ProgramCacheTTL)
	assert.True(t, cfg.SMSEnabled())
	assert.False(t, cfg.S3.Enabled)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing jwt secret", map[string]string{}},
		{"unknown policy", map[string]string{"JWT_SECRET": "s", "TRAINING_IN_PROGRESS_POLICY": "random"}},
		{"partial twilio", map[string]string{"JWT_SECRET": "s", "TWILIO_ACCOUNT_SID": "AC123"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestGetEnvAsDuration(t *testing.T) {
	t.Setenv("TTL_GO", "2m")
	t.Setenv("TTL_SECS", "30")
	t.Setenv("TTL_BAD", "soon")

	assert.Equal(t, 2*time.Minute, getEnvAsDuration("TTL_GO", time.Second))
	assert.Equal(t, 30*time.Second, getEnvAsDuration("TTL_SECS", time.Second))
	assert.Equal(t, time.Second, getEnvAsDuration("TTL_BAD", time.Second))
	assert.Equal(t, time.Second, getEnvAsDuration("TTL_UNSET", time.Second))
}
