package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPasswordConfig(t *testing.T) {
	tests := []struct {
		name     string
		cost     string
		pepper   string
		wantCost int
		wantErr  bool
	}{
		{name: "defaults", wantCost: DefaultBcryptCost},
		{name: "custom cost", cost: "10", wantCost: 10},
		{name: "with pepper", cost: "11", pepper: "pepper", wantCost: 11},
		{name: "cost below range", cost: "4", wantErr: true},
		{name: "cost above range", cost: "15", wantErr: true},
		{name: "non-numeric cost", cost: "high", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("BCRYPT_COST", tt.cost)
			t.Setenv("PASSWORD_PEPPER", tt.pepper)

			cfg, err := NewPasswordConfig()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCost, cfg.BcryptCost)
			assert.Equal(t, tt.pepper, cfg.Pepper)
		})
	}
}

func TestPasswordConfig_HashAndVerify(t *testing.T) {
	cfg := &PasswordConfig{BcryptCost: MinBcryptCost}

	hash, err := cfg.HashPassword("correct horse battery")
	require.NoError(t, err)

	assert.NotEqual(t, "correct horse battery", hash)
	assert.True(t, cfg.VerifyPassword("correct horse battery", hash))
	assert.False(t, cfg.VerifyPassword("wrong password", hash))
	assert.False(t, cfg.VerifyPassword("correct horse battery", "not-a-hash"))
}

func TestPasswordConfig_PepperMustMatch(t *testing.T) {
	peppered := &PasswordConfig{BcryptCost: MinBcryptCost, Pepper: "server-secret"}
	plain := &PasswordConfig{BcryptCost: MinBcryptCost}

	hash, err := peppered.HashPassword("password123")
	require.NoError(t, err)

	assert.True(t, peppered.VerifyPassword("password123", hash))
	assert.False(t, plain.VerifyPassword("password123", hash))
}

func TestPasswordConfig_HashesAreSalted(t *testing.T) {
	cfg := &PasswordConfig{BcryptCost: MinBcryptCost}

	first, err := cfg.HashPassword("password123")
	require.NoError(t, err)
	second, err := cfg.HashPassword("password123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
