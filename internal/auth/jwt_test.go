package auth

import (
	"testing"

	"brand-portal/internal/config"
	"brand-portal/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:        "test-secret",
			RefreshSecret: "test-refresh-secret",
			Expiration:    "1h",
			RefreshExpiry: "24h",
		},
	}
}

func TestTokenRoundTrip(t *testing.T) {
	cfg := testConfig()
	user := &models.User{ID: 7, Username: "alice", Role: models.RoleUser}

	token, err := GenerateToken(user, cfg)
	require.NoError(t, err)

	claims, err := ParseToken(token, cfg.JWT.Secret)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, models.RoleUser, claims.Role)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	cfg := testConfig()
	user := &models.User{ID: 7, Username: "alice"}

	token, err := GenerateToken(user, cfg)
	require.NoError(t, err)

	_, err = ParseToken(token, "other-secret")
	assert.Error(t, err)

	_, err = ParseToken("not-a-token", cfg.JWT.Secret)
	assert.Error(t, err)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	cfg := testConfig()
	user := &models.User{ID: 9}

	token, err := GenerateRefreshToken(user, cfg)
	require.NoError(t, err)

	userID, err := ParseRefreshToken(token, cfg.JWT.RefreshSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(9), userID)

	// access and refresh secrets are not interchangeable
	_, err = ParseRefreshToken(token, cfg.JWT.Secret)
	assert.Error(t, err)
}

func TestIdentityBrandMatches(t *testing.T) {
	brand := uint(3)
	other := uint(4)

	ident := Identity{UserID: 1, Role: models.RoleUser, BrandID: &brand}
	assert.True(t, ident.BrandMatches(&brand))
	assert.False(t, ident.BrandMatches(&other))
	assert.False(t, ident.BrandMatches(nil))

	brandless := Identity{UserID: 2, Role: models.RoleUser}
	assert.False(t, brandless.BrandMatches(&brand))
	assert.True(t, brandless.BrandMatches(nil))

	assert.True(t, Identity{Role: models.RoleAdmin}.IsAdmin())
	assert.False(t, Identity{Role: models.RoleUser}.IsAdmin())
}
