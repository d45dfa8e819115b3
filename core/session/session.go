// Package session implements the signed cookie token carrying a user's
// authenticated identity. Tokens are self-contained: the server keeps no
// session table, so a token stays valid until its expiry regardless of
// logout (logout only clears the client's cookie).
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/irsalhamdi/restaurant-orders/core/claims"
)

var (
	// ErrExpired marks a well-formed, correctly signed token past its expiry.
	ErrExpired = errors.New("session token expired")

	// ErrBadSignature marks a token whose signature does not verify.
	ErrBadSignature = errors.New("session token signature invalid")

	// ErrMalformed marks input that is not a token at all.
	ErrMalformed = errors.New("session token malformed")
)

type tokenClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Codec issues and verifies session tokens with a process-wide secret.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

func NewCodec(secret string, ttl time.Duration) *Codec {
	return &Codec{secret: []byte(secret), ttl: ttl}
}

func (c *Codec) TTL() time.Duration { return c.ttl }

// Issue builds a claim expiring ttl from now and returns it signed.
func (c *Codec) Issue(userID string, email string, role string) (string, error) {
	now := time.Now().UTC()
	tc := tokenClaims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, tc)
	signed, err := tok.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("signing session token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry. Rejection is a normal outcome and
// always maps to one of ErrExpired, ErrBadSignature or ErrMalformed.
func (c *Codec) Verify(token string) (claims.Claims, error) {
	var tc tokenClaims
	_, err := jwt.ParseWithClaims(token, &tc, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return c.secret, nil
	})

	// The parser joins validation errors, so a forged token that is also
	// past its expiry matches both sentinels. The signature check wins:
	// nothing else about a forged token can be trusted, its expiry least.
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return claims.Claims{}, ErrBadSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return claims.Claims{}, ErrExpired
	case errors.Is(err, jwt.ErrTokenMalformed):
		return claims.Claims{}, ErrMalformed
	default:
		return claims.Claims{}, ErrMalformed
	}

	return claims.Claims{
		UserID: tc.Subject,
		Email:  tc.Email,
		Role:   tc.Role,
	}, nil
}
