// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"mingle/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// CredentialsInput defines the data required to exchange credentials for tokens.
type CredentialsInput struct {
	Username string
	Password string
}

// --- Output DTOs ---

// TokenPairOutput returns the freshly issued token pair.
type TokenPairOutput struct {
	Pair *entity.TokenPair
}

// AuthUsecase defines the interface for authentication business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AuthUsecase interface {
	// IssueTokenPair validates the credentials and issues a fresh pair.
	// The refresh token's id is recorded in the user's ledger.
	IssueTokenPair(ctx context.Context, input CredentialsInput) (*TokenPairOutput, error)

	// RefreshTokenPair exchanges a valid, ledger-backed refresh token for a
	// fresh pair, rotating the presented token out of the ledger. Any failure
	// is reported as an unauthorized error with the refresh flag set.
	RefreshTokenPair(ctx context.Context, refreshToken string) (*TokenPairOutput, error)

	// Authenticate verifies an access token and confirms the subject user
	// still exists. Used by the auth middleware.
	Authenticate(ctx context.Context, accessToken string) (uuid.UUID, error)

	// GetUserInfo returns the account summary for an authenticated user.
	GetUserInfo(ctx context.Context, userID uuid.UUID) (*UserOutput, error)
}
