package jwt

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret-key-for-jwt", "1h")

	token, expiresAt, err := svc.GenerateAccessToken(user.Principal{
		UserID:     "user-1",
		EmployeeID: "emp-001",
		Role:       user.RoleManager,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotZero(t, expiresAt)

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)
	claims, err := decoded.AsMap(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "access", claims["type"])
	p := PrincipalFromClaims(claims)
	assert.Equal(t, "user-1", p.UserID)
	assert.Equal(t, "emp-001", p.EmployeeID)
	assert.Equal(t, user.RoleManager, p.Role)
}

func TestGenerateAccessToken_WithoutEmployee(t *testing.T) {
	svc := NewJWTService("test-secret-key-for-jwt", "1h")

	token, _, err := svc.GenerateAccessToken(user.Principal{UserID: "user-2", Role: user.RoleOwner})
	require.NoError(t, err)

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)
	claims, err := decoded.AsMap(context.Background())
	require.NoError(t, err)

	assert.False(t, PrincipalFromClaims(claims).HasEmployee())
}

func TestGenerateAccessToken_BadExpiry(t *testing.T) {
	svc := NewJWTService("secret", "soon")

	_, _, err := svc.GenerateAccessToken(user.Principal{UserID: "user-1"})
	assert.Error(t, err)
}
