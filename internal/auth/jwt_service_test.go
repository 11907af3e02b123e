package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "vscreens/internal/errors"
)

func TestJWTService_IssueValidate(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)
	ctx := context.Background()

	token, err := svc.Issue(ctx, 42)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	userID, err := svc.Validate(ctx, token)
	require.NoError(t, err)
	assert.EqualValues(t, 42, userID)

	// revoke is a no-op for stateless tokens
	require.NoError(t, svc.Revoke(ctx, token))
	userID, err = svc.Validate(ctx, token)
	require.NoError(t, err)
	assert.EqualValues(t, 42, userID)
}

func TestJWTService_Rejects(t *testing.T) {
	ctx := context.Background()
	svc := NewJWTService("test-secret", time.Hour)

	expired := NewJWTService("test-secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, err := expired.Issue(ctx, 1)
	require.NoError(t, err)

	otherKey, err := NewJWTService("other-secret", time.Hour).Issue(ctx, 1)
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		UserID:           1,
		RegisteredClaims: jwt.RegisteredClaims{Subject: "1"},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	mismatched, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "2",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not.a.jwt"},
		{"expired", expiredToken},
		{"wrong key", otherKey},
		{"alg none", noneToken},
		{"subject mismatch", mismatched},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userID, err := svc.Validate(ctx, tt.token)
			assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
			assert.Zero(t, userID)
		})
	}
}

func TestNewJWTService_DefaultsTTL(t *testing.T) {
	svc := NewJWTService("s", 0)
	assert.Equal(t, DefaultTokenExpiry, svc.ttl)
}

func TestGenerateSecret(t *testing.T) {
	a, err := GenerateSecret()
	require.NoError(t, err)
	b, err := GenerateSecret()
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}
