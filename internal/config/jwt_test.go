package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWT_DisabledWithoutSecret(t *testing.T) {
	jwtCfg, err := Default().JWT()
	require.NoError(t, err)
	assert.Nil(t, jwtCfg)
}

func TestJWT_DefaultExpiration(t *testing.T) {
	cfg := Default()
	cfg.Auth.JWTSecret = "test-secret-key-0123456789"
	cfg.Auth.JWTExpirationHours = 0

	jwtCfg, err := cfg.JWT()
	require.NoError(t, err)
	require.NotNil(t, jwtCfg)
	assert.Equal(t, "test-secret-key-0123456789", jwtCfg.Secret)
	assert.Equal(t, 24, jwtCfg.ExpirationHours, "should use default expiration of 24 hours")
}

func TestJWT_FromEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "env-secret-key-0123456789")
	t.Setenv("JWT_EXPIRATION_HOURS", "48")

	cfg, err := Load("")
	require.NoError(t, err)
	jwtCfg, err := cfg.JWT()
	require.NoError(t, err)
	assert.Equal(t, "env-secret-key-0123456789", jwtCfg.Secret)
	assert.Equal(t, 48, jwtCfg.ExpirationHours)
}

func TestJWT_Normalize(t *testing.T) {
	tests := []struct {
		name    string
		cfg     JWTConfig
		wantErr bool
	}{
		{"valid", JWTConfig{Secret: "0123456789abcdef", ExpirationHours: 1}, false},
		{"short secret", JWTConfig{Secret: "short", ExpirationHours: 1}, true},
		{"zero expiration", JWTConfig{Secret: "0123456789abcdef", ExpirationHours: 0}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.normalize()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
