package token_test

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planhub-backend-go/internal/token"
)

func TestNewCodec(t *testing.T) {
	t.Parallel()

	t.Run("with valid secret", func(t *testing.T) {
		codec, err := token.NewCodec("secret")
		require.NoError(t, err)
		require.NotNil(t, codec)
	})

	t.Run("with empty secret", func(t *testing.T) {
		codec, err := token.NewCodec("")
		require.ErrorIs(t, err, token.ErrMissingSecret)
		require.Nil(t, codec)
	})
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	codec, err := token.NewCodec("test-secret")
	require.NoError(t, err)

	signed, err := codec.Issue("u1", "a@x.com", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	identity, err := codec.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "u1", identity.SubjectID)
	assert.Equal(t, "a@x.com", identity.Email)
}

func TestVerifyExpired(t *testing.T) {
	t.Parallel()

	current := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	codec, err := token.NewCodec("test-secret", token.WithTimeFunc(func() time.Time { return current }))
	require.NoError(t, err)

	signed, err := codec.Issue("u1", "a@x.com", time.Hour)
	require.NoError(t, err)

	t.Run("valid before expiry", func(t *testing.T) {
		identity, err := codec.Verify(signed)
		require.NoError(t, err)
		assert.Equal(t, "u1", identity.SubjectID)
	})

	t.Run("invalid at exact expiry instant", func(t *testing.T) {
		current = current.Add(time.Hour)
		_, err := codec.Verify(signed)
		require.ErrorIs(t, err, token.ErrInvalidToken)
	})

	t.Run("invalid after expiry even with valid signature", func(t *testing.T) {
		current = current.Add(24 * time.Hour)
		_, err := codec.Verify(signed)
		require.ErrorIs(t, err, token.ErrInvalidToken)
	})
}

func TestVerifyTampered(t *testing.T) {
	t.Parallel()

	codec, err := token.NewCodec("test-secret")
	require.NoError(t, err)

	t.Run("tampered signature", func(t *testing.T) {
		signed, err := codec.Issue("u1", "a@x.com", time.Hour)
		require.NoError(t, err)

		last := signed[len(signed)-1]
		flipped := byte('A')
		if last == 'A' {
			flipped = 'B'
		}
		_, err = codec.Verify(signed[:len(signed)-1] + string(flipped))
		require.ErrorIs(t, err, token.ErrInvalidToken)
	})

	t.Run("signed with a different secret", func(t *testing.T) {
		other, err := token.NewCodec("another-secret")
		require.NoError(t, err)
		signed, err := other.Issue("u1", "a@x.com", time.Hour)
		require.NoError(t, err)

		_, err = codec.Verify(signed)
		require.ErrorIs(t, err, token.ErrInvalidToken)
	})

	t.Run("unexpected signing algorithm", func(t *testing.T) {
		claims := jwtlib.RegisteredClaims{
			Subject:   "u1",
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
		}
		signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS512, claims).SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = codec.Verify(signed)
		require.ErrorIs(t, err, token.ErrInvalidToken)
	})

	t.Run("malformed token", func(t *testing.T) {
		_, err := codec.Verify("not-a-token")
		require.ErrorIs(t, err, token.ErrInvalidToken)
	})

	t.Run("missing expiry claim", func(t *testing.T) {
		claims := jwtlib.RegisteredClaims{Subject: "u1"}
		signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = codec.Verify(signed)
		require.ErrorIs(t, err, token.ErrInvalidToken)
	})
}

func TestIssueDeterministic(t *testing.T) {
	t.Parallel()

	fixed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return fixed }

	a, err := token.NewCodec("test-secret", token.WithTimeFunc(clock))
	require.NoError(t, err)
	b, err := token.NewCodec("test-secret", token.WithTimeFunc(clock))
	require.NoError(t, err)

	tokenA, err := a.Issue("u1", "a@x.com", time.Hour)
	require.NoError(t, err)
	tokenB, err := b.Issue("u1", "a@x.com", time.Hour)
	require.NoError(t, err)

	// Same secret, same claims, same issue time: identical token string.
	assert.Equal(t, tokenA, tokenB)
}
