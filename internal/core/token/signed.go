package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cereza/orderdesk/internal/core/domain"
	"github.com/cereza/orderdesk/internal/core/ports"
)

var _ ports.TokenCodec = (*SignedCodec)(nil)

type identityClaims struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Admin   bool   `json:"admin"`
	jwt.RegisteredClaims
}

// SignedCodec encodes an identity as an HS256 JWT so a token cannot be edited by hand.
type SignedCodec struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// NewSignedCodec returns a codec signing with key. A ttl <= 0 issues tokens without expiry.
func NewSignedCodec(key string, ttl time.Duration) *SignedCodec {
	return &SignedCodec{key: []byte(key), ttl: ttl, now: time.Now}
}

// Encode returns the signed token, or "" if signing fails.
func (c *SignedCodec) Encode(identity domain.Identity) string {
	now := c.now()
	claims := identityClaims{
		Name:    identity.Name,
		Contact: identity.Contact,
		Admin:   identity.IsAdmin(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if c.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(c.ttl))
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.key)
	if err != nil {
		return ""
	}
	return signed
}

// Decode verifies the signature and expiry, then rebuilds the identity.
func (c *SignedCodec) Decode(token string) (domain.Identity, bool) {
	if token == "" {
		return domain.Identity{}, false
	}

	var claims identityClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return c.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(c.now))
	if err != nil || !parsed.Valid {
		return domain.Identity{}, false
	}

	return build(claims.Name, claims.Contact, claims.Admin)
}
