// Package auth implements the session token codec: minting and verifying the
// signed, time-limited tokens carried by the session cookie.
package auth

import (
	"errors"
	"time"

	"github.com/admintieri/tractoradmin/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the identity payload carried by a session token. The live
// administrator row remains the source of truth for name/email; these copies
// exist so logs and debugging tooling can attribute a token without a lookup.
type Claims struct {
	jwt.RegisteredClaims
	AdminID int64  `json:"uid"`
	Email   string `json:"email"`
	Name    string `json:"name"`
}

// Codec signs and verifies session tokens with a shared HMAC secret.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// NewCodec builds a Codec. The secret must be non-empty; a missing secret is a
// deployment error and refusing to start beats minting forgeable tokens.
func NewCodec(secret string, ttl time.Duration) (*Codec, error) {
	if secret == "" {
		return nil, errors.New("session token secret is empty")
	}
	if ttl <= 0 {
		return nil, errors.New("session token ttl must be positive")
	}
	return &Codec{secret: []byte(secret), ttl: ttl}, nil
}

// TTL returns the configured validity window of issued tokens.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Issue mints an HS256-signed token for the given administrator identity,
// expiring at now+ttl.
func (c *Codec) Issue(adminID int64, email, name string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
		AdminID: adminID,
		Email:   email,
		Name:    name,
	})

	return token.SignedString(c.secret)
}

// Verify checks the signature and expiry of tokenString and returns its
// claims. Failures map onto the common token sentinels so the resolver can
// treat them uniformly while logs keep the distinction:
//
//   - common.ErrTokenExpired: correctly signed but past its expiry
//     (a token is expired at the exact expiry instant, now >= exp)
//   - common.ErrTokenSignature: signed with a different secret
//   - common.ErrTokenMalformed: everything else (garbage, wrong alg, no sig)
func (c *Codec) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, common.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, common.ErrTokenSignature
		default:
			return nil, common.ErrTokenMalformed
		}
	}

	if !token.Valid {
		return nil, common.ErrTokenMalformed
	}

	return claims, nil
}
