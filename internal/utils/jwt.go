package utils // package utils provides helpers for session token creation and password hashing

import (
	"time" // time utilities for generating expirations

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// SessionToken represents a signed JWT session token along with its expiry.
// The Token field contains the serialized JWT string. Session tokens are
// stateless: nothing is persisted server-side and verification rests on
// the HMAC signature and the embedded expiry alone.
type SessionToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// NewSessionToken builds and signs an HS256 JWT for a user. It takes the
// signing secret, the user ID, role and display name, and a TTL in
// minutes. The claims carry everything a protected route needs to act on
// behalf of the caller: subject (sub), role, name, expiration (exp) and
// issued at (iat).
func NewSessionToken(secret string, userID uint64, role, name string, ttlMin int) (SessionToken, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"name": name,
		"exp":  exp.Unix(),
		"iat":  time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return SessionToken{}, err
	}
	return SessionToken{Token: signed, Exp: exp}, nil
}
