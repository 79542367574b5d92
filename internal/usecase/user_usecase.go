package usecase

import (
	"context"

	"mingle/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Username string
	Password string
}

// UpdateUserInput carries credential changes. Nil fields are left untouched.
type UpdateUserInput struct {
	Username *string
	Password *string
}

// --- Output DTOs ---

// UserOutput is the public account summary: what anyone may see about a user.
type UserOutput struct {
	ID       uuid.UUID
	Username string
	Headline string
	Likes    int
}

// NewUserOutput builds the summary DTO from a user entity.
func NewUserOutput(user *entity.User) *UserOutput {
	return &UserOutput{
		ID:       user.ID,
		Username: user.Username,
		Headline: user.Profile.Headline,
		Likes:    len(user.Profile.LikedBy),
	}
}

// UserUsecase defines the interface for account-related business operations.
type UserUsecase interface {
	// Register creates a new account with an empty profile.
	Register(ctx context.Context, input RegisterInput) (*UserOutput, error)

	// GetAll lists every account, oldest first.
	GetAll(ctx context.Context) ([]*UserOutput, error)

	// GetSingle returns one account summary by id.
	GetSingle(ctx context.Context, id uuid.UUID) (*UserOutput, error)

	// Update changes the account's credentials. Only the account owner may
	// call it; changing username or password revokes every outstanding
	// refresh token.
	Update(ctx context.Context, requesterID, id uuid.UUID, input UpdateUserInput) (*UserOutput, error)

	// Delete removes the account, its profile, its token ledger, and every
	// like relation it participates in.
	Delete(ctx context.Context, requesterID, id uuid.UUID) error
}
