// Package utils provides helper functions for token creation and password
// hashing.
package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrTokenExpired is returned by DecodeToken when the token's expiry has
// passed. An expired token is never reported as ErrTokenInvalid.
var ErrTokenExpired = errors.New("token expired")

// ErrTokenInvalid is returned by DecodeToken when the signature or structure
// check fails, or required claims are missing.
var ErrTokenInvalid = errors.New("token invalid")

// AccessToken is a signed JWT access token along with its expiry. Tokens are
// stateless: validity is fully determined by signature and expiry, there is
// no revocation list.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// NewAccessToken builds and signs an HS256 JWT whose subject is the admin
// email. ttlMin is the token lifetime in minutes.
func NewAccessToken(secret, subjectEmail string, ttlMin int) (AccessToken, error) {
	now := time.Now().UTC()
	exp := now.Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub": subjectEmail,
		"exp": exp.Unix(),
		"iat": now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// DecodeToken validates the signature and expiry of a token and returns its
// claims. Expiry is checked before any other failure is reported so callers
// can distinguish a stale credential from a forged one.
func DecodeToken(secret, raw string) (jwt.MapClaims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok || !tok.Valid {
		return nil, ErrTokenInvalid
	}
	// sub and exp are mandatory.
	if _, err := claims.GetSubject(); err != nil {
		return nil, ErrTokenInvalid
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// Subject extracts the sub claim from decoded claims.
func Subject(claims jwt.MapClaims) string {
	sub, _ := claims.GetSubject()
	return sub
}
