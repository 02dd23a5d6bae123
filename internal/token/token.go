package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrMissingSecret is returned when a Codec is constructed without a signing secret.
	ErrMissingSecret = errors.New("token signing secret is required")
	// ErrInvalidToken is returned for malformed, tampered and expired tokens
	// alike; callers cannot tell the cases apart.
	ErrInvalidToken = errors.New("invalid token")
)

// Identity is the verified caller identity carried by a token.
// It is immutable once derived from a verified token.
type Identity struct {
	SubjectID string `json:"subjectId"`
	Email     string `json:"email"`
}

// Claims is the claim set embedded in tokens issued by this service.
type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Codec signs and verifies bearer tokens with HMAC-SHA256.
// Both operations are pure computation: no I/O, no shared mutable state.
type Codec struct {
	secret []byte
	now    func() time.Time
}

// Option configures a Codec.
type Option func(*Codec)

// WithTimeFunc overrides the clock used for issuance and expiry checks.
func WithTimeFunc(now func() time.Time) Option {
	return func(c *Codec) { c.now = now }
}

// NewCodec creates a Codec with the given signing secret. The secret comes
// from process configuration and is never embedded in code.
func NewCodec(secret string, opts ...Option) (*Codec, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	c := &Codec{secret: []byte(secret), now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Issue creates a signed token carrying the subject id and email, valid from
// now until now+ttl. Identical claims at an identical issue time produce an
// identical token string.
func (c *Codec) Issue(subjectID, email string, ttl time.Duration) (string, error) {
	now := c.now()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Verify parses and validates a token string, returning the embedded
// identity. A token is valid iff its signature verifies against the service
// secret and the current time is before its expiry. An unverifiable token is
// never partially trusted.
func (c *Codec) Verify(tokenString string) (Identity, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrInvalidToken
			}
			return c.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return Identity{}, ErrInvalidToken
	}
	return Identity{SubjectID: claims.Subject, Email: claims.Email}, nil
}
