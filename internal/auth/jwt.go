package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// Claims is what the client can read from a stored token without the
// signing secret.
type Claims struct {
	UserID    string
	ExpiresAt time.Time
}

// Inspect decodes tokenStr without verifying its signature; only the
// external system can do that. Tokens that are not JWTs return
// ErrInvalidToken, JWTs whose exp is not after now return ErrTokenExpired.
func Inspect(tokenStr string, now time.Time) (Claims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenStr, claims); err != nil {
		return Claims{}, ErrInvalidToken
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return Claims{}, ErrInvalidToken
	}

	var out Claims
	out.UserID = userID(claims)
	if exp != nil {
		out.ExpiresAt = exp.Time
		if !now.Before(exp.Time) {
			return out, ErrTokenExpired
		}
	}
	return out, nil
}

// Expired reports whether tokenStr is a JWT past its expiry. Opaque tokens
// are never considered expired here.
func Expired(tokenStr string, now time.Time) bool {
	_, err := Inspect(tokenStr, now)
	return errors.Is(err, ErrTokenExpired)
}

func userID(claims jwt.MapClaims) string {
	for _, key := range []string{"id", "user_id"} {
		if v, ok := claims[key].(string); ok && v != "" {
			return v
		}
	}
	sub, _ := claims.GetSubject()
	return sub
}
