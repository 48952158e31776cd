package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken is returned when a token is malformed, forged, expired,
	// or otherwise invalid. Callers must not distinguish those cases further.
	ErrInvalidToken = errors.New("invalid token")
)

// SessionClaims holds JWT claims for the session token.
type SessionClaims struct {
	jwt.RegisteredClaims
}

// TokenCodec issues and verifies HS256-signed session tokens. The signing
// secret is process-wide and read-only after construction.
type TokenCodec struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewTokenCodec returns a TokenCodec signing with secret. issuer is set on
// claims and validated on verify; ttl is the fixed session lifetime.
func NewTokenCodec(secret []byte, issuer string, ttl time.Duration) *TokenCodec {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenCodec{secret: secret, issuer: issuer, ttl: ttl}
}

// Issue signs a session token for accountID with iat=now and exp=now+TTL.
// Returns the token string and its expiration time. A signing failure is an
// infrastructure fault.
func (c *TokenCodec) Issue(accountID string) (token string, expiresAt time.Time, err error) {
	now := time.Now().UTC()
	expiresAt = now.Add(c.ttl)
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			Issuer:    c.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token, err = t.SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// Verify parses and validates the session token (signature, exp, iss) and
// returns the account id from the subject claim. Structurally malformed tokens
// are rejected by the parser before any signature computation. Every failure
// maps to ErrInvalidToken.
func (c *TokenCodec) Verify(tokenString string) (accountID string, err error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return c.secret, nil
	})
	if err != nil {
		return "", ErrInvalidToken
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}
	if claims.Issuer != c.issuer {
		return "", ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
