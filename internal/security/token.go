package security

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	MockTokenPrefix      = "mock_jwt_token_"
	RefreshedTokenPrefix = "mock_refreshed_token_"
)

// NewMockToken returns the opaque token handed out on login and register.
// Uniqueness comes only from the millisecond timestamp.
func NewMockToken(now time.Time) string {
	return MockTokenPrefix + strconv.FormatInt(now.UnixMilli(), 10)
}

func NewRefreshedToken(now time.Time) string {
	return RefreshedTokenPrefix + strconv.FormatInt(now.UnixMilli(), 10)
}

// DecodeToken reads the claims segment of a JWT-shaped token without
// checking its signature. It returns nil for anything that does not parse.
func DecodeToken(token string) jwt.MapClaims {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil
	}
	return claims
}

// IsTokenExpired treats undecodable tokens as expired and tokens without
// an exp claim as never expiring.
func IsTokenExpired(token string, now time.Time) bool {
	claims := DecodeToken(token)
	if claims == nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return true
	}
	if exp == nil {
		return false
	}
	return exp.Time.Before(now)
}
