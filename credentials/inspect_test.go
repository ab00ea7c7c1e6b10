package credentials_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/go-price-dashboard/credentials"
	"github.com/stretchr/testify/require"
)

func signedTestToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-signing-key"))
	require.NoError(t, err)
	return raw
}

// TestInspect_ReadsClaims tests extraction of display claims from a token
func TestInspect_ReadsClaims(t *testing.T) {
	issued := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	expires := issued.Add(30 * time.Minute)

	raw := signedTestToken(t, jwt.MapClaims{
		"sub": "mona@example.com",
		"iat": issued.Unix(),
		"exp": expires.Unix(),
	})

	details, err := credentials.Inspect(raw)

	require.NoError(t, err)
	require.Equal(t, "mona@example.com", details.Subject)
	require.True(t, details.IssuedAt.Equal(issued))
	require.True(t, details.ExpiresAt.Equal(expires))
}

// TestInspect_PartialClaims tests a token without expiry information
func TestInspect_PartialClaims(t *testing.T) {
	raw := signedTestToken(t, jwt.MapClaims{"sub": "mona@example.com"})

	details, err := credentials.Inspect(raw)

	require.NoError(t, err)
	require.Equal(t, "mona@example.com", details.Subject)
	require.True(t, details.ExpiresAt.IsZero())
}

// TestInspect_RejectsNonJWT tests the error path for opaque tokens
func TestInspect_RejectsNonJWT(t *testing.T) {
	_, err := credentials.Inspect("not-a-jwt")

	require.Error(t, err)
	require.Contains(t, err.Error(), "ParseUnverified")
}
