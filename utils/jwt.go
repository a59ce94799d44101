package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var jwtSecret []byte

const sessionTTL = 7 * 24 * time.Hour

// InitJWT sets the signing secret. Must be called once at startup.
func InitJWT(secret string) {
	jwtSecret = []byte(secret)
}

// GenerateJwt signs a session token carrying the user id and role.
func GenerateJwt(userID, role string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":   userID,
		"role": role,
		"exp":  time.Now().Add(sessionTTL).Unix(),
	})

	return token.SignedString(jwtSecret)
}

// ValidateJwt checks the token signature and expiry and returns the embedded
// user id and role.
func ValidateJwt(tokenString string) (userID string, role string, err error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret, nil
	})
	if err != nil {
		return "", "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", "", errors.New("invalid token")
	}

	userID, ok = claims["id"].(string)
	if !ok {
		return "", "", errors.New("invalid token claims")
	}
	role, _ = claims["role"].(string)

	return userID, role, nil
}

// SessionTTL is exposed for the cookie MaxAge.
func SessionTTL() time.Duration {
	return sessionTTL
}
