// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenClaims represents the claims contained in a JWT token. The user ID is
// the opaque identifier supplied by the external identity provider.
type TokenClaims struct {
	UserID    uuid.UUID
	ExpiresAt time.Time
}

// TokenService defines the interface for JWT token validation. Token issuance
// belongs to the external identity provider; this service only verifies.
type TokenService interface {
	// ValidateAccessToken validates an access token and returns its claims.
	ValidateAccessToken(ctx context.Context, token string) (*TokenClaims, error)
}
