package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJwtRoundTrip(t *testing.T) {
	InitJWT("test-secret")

	token, err := GenerateJwt("user-123", "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, role, err := ValidateJwt(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
	assert.Equal(t, "admin", role)
}

func TestValidateJwtRejectsGarbage(t *testing.T) {
	InitJWT("test-secret")

	_, _, err := ValidateJwt("not-a-token")
	assert.Error(t, err)
}

func TestValidateJwtRejectsWrongSecret(t *testing.T) {
	InitJWT("secret-one")
	token, err := GenerateJwt("user-123", "user")
	require.NoError(t, err)

	InitJWT("secret-two")
	_, _, err = ValidateJwt(token)
	assert.Error(t, err)
}

func TestValidateJwtRejectsExpired(t *testing.T) {
	InitJWT("test-secret")

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":   "user-123",
		"role": "user",
		"exp":  time.Now().Add(-time.Hour).Unix(),
	})
	tokenString, err := expired.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, _, err = ValidateJwt(tokenString)
	assert.Error(t, err)
}
