package utils // package utils provides helper functions for session tokens and hashing

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session token verification failures. Handlers distinguish them only
// in the error message; both map onto HTTP 401.
var (
	// ErrTokenInvalid covers malformed tokens, wrong signing
	// algorithms and bad signatures.
	ErrTokenInvalid = errors.New("invalid token")
	// ErrTokenExpired is returned for a well-formed, correctly signed
	// token whose expiry has passed.
	ErrTokenExpired = errors.New("token expired")
)

// SessionToken is a signed, self-contained session credential. The
// Token field holds the serialized JWT; Exp records the UTC expiry so
// callers can align the cookie lifetime with the token lifetime.
type SessionToken struct {
	Token string
	Exp   time.Time
}

// NewSessionToken builds and signs an HS256 JWT for a user. The token
// carries only the subject (user id), issued-at and expiry claims; the
// server keeps no per-session state, so a token is valid until it
// expires or the signing secret changes.
func NewSessionToken(secret string, userID uint64, ttlDays int) (SessionToken, error) {
	now := time.Now().UTC()
	exp := now.Add(time.Duration(ttlDays) * 24 * time.Hour)
	claims := jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": exp.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return SessionToken{}, err
	}
	return SessionToken{Token: signed, Exp: exp}, nil
}

// ParseSessionToken verifies a serialized session token and returns
// the user id it was issued for. Verification is a pure function of
// the token, the secret and the clock: no lookups, safe on every
// request. Expired tokens yield ErrTokenExpired; everything else that
// can go wrong yields ErrTokenInvalid.
func ParseSessionToken(secret, raw string) (uint64, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrTokenExpired
		}
		return 0, ErrTokenInvalid
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok || !tok.Valid {
		return 0, ErrTokenInvalid
	}
	// Numeric JSON claims decode as float64.
	sub, ok := claims["sub"].(float64)
	if !ok || sub <= 0 {
		return 0, ErrTokenInvalid
	}
	return uint64(sub), nil
}
