package credentials

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// TokenDetails are the claims pulled from a stored token for display in the
// session view (who is signed in, when the token lapses). They are never an
// input to a validity decision; that stays with the backend.
type TokenDetails struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Inspect decodes a JWT's claims without verifying its signature. The
// backend is the only party that can verify, so unverified claims are only
// good for display.
func Inspect(raw string) (*TokenDetails, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return nil, errors.Wrap(err, "[Inspect] ParseUnverified")
	}

	details := &TokenDetails{}
	if sub, err := claims.GetSubject(); err == nil {
		details.Subject = sub
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		details.IssuedAt = iat.Time
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		details.ExpiresAt = exp.Time
	}
	return details, nil
}
