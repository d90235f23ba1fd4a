package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

func TestSessionTokenRoundTrip(t *testing.T) {
	st, err := NewSessionToken(testSecret, 42, 30)
	require.NoError(t, err)
	require.NotEmpty(t, st.Token)
	assert.WithinDuration(t, time.Now().UTC().Add(30*24*time.Hour), st.Exp, time.Minute)

	uid, err := ParseSessionToken(testSecret, st.Token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), uid)
}

func TestParseSessionTokenWrongSecret(t *testing.T) {
	st, err := NewSessionToken(testSecret, 42, 30)
	require.NoError(t, err)

	_, err = ParseSessionToken("a-different-secret", st.Token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseSessionTokenMalformed(t *testing.T) {
	_, err := ParseSessionToken(testSecret, "not.a.jwt")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseSessionTokenExpired(t *testing.T) {
	// Sign a token whose expiry is already in the past.
	claims := jwt.MapClaims{
		"sub": float64(7),
		"iat": time.Now().UTC().Add(-2 * time.Hour).Unix(),
		"exp": time.Now().UTC().Add(-time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = ParseSessionToken(testSecret, signed)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestParseSessionTokenRejectsNonHMAC(t *testing.T) {
	// alg=none style tokens must never verify.
	tok := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": float64(7)})
	signed, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ParseSessionToken(testSecret, signed)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseSessionTokenMissingSubject(t *testing.T) {
	claims := jwt.MapClaims{
		"iat": time.Now().UTC().Unix(),
		"exp": time.Now().UTC().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = ParseSessionToken(testSecret, signed)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
