package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	SetJWTSecret("test-secret")

	token, err := GenerateJWT("user-1", "vendor", 24*time.Hour)
	require.NoError(t, err)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "vendor", claims.Role)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestJWTExpiredTokenRejected(t *testing.T) {
	SetJWTSecret("test-secret")

	token, err := generateJWTAt("user-1", "customer", time.Now().Add(-25*time.Hour), 24*time.Hour)
	require.NoError(t, err)

	_, err = ValidateJWT(token)
	require.Error(t, err)
	var ve *jwt.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.NotZero(t, ve.Errors&jwt.ValidationErrorExpired)
}

func TestJWTWrongSecretRejected(t *testing.T) {
	SetJWTSecret("one")
	token, err := GenerateJWT("user-1", "admin", time.Hour)
	require.NoError(t, err)

	SetJWTSecret("two")
	_, err = ValidateJWT(token)
	assert.Error(t, err)
}

func TestJWTGarbageRejected(t *testing.T) {
	_, err := ValidateJWT("not.a.token")
	assert.Error(t, err)
}
