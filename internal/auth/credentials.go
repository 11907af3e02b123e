// Package auth issues and verifies bearer credentials. Two interchangeable
// implementations exist: JWTService signs stateless tokens, SessionStore
// persists opaque tokens in the sessions table.
package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// CredentialIssuer creates, checks and revokes bearer credentials.
//
// Validate returns errors.ErrInvalidToken for any token that is malformed,
// expired or revoked. Other errors come from the backing store.
type CredentialIssuer interface {
	Issue(ctx context.Context, userID uint) (string, error)
	Validate(ctx context.Context, token string) (uint, error)
	Revoke(ctx context.Context, token string) error
}

// GenerateSecret returns a random 256-bit hex-encoded signing key.
func GenerateSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}
