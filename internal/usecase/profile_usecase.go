package usecase

import (
	"context"

	"mingle/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// ContactInput is one labelled contact entry on a profile update.
type ContactInput struct {
	Type  string
	Value string
}

// UpdateProfileInput replaces the public profile fields wholesale.
type UpdateProfileInput struct {
	Headline string
	Bio      string
	Contacts []ContactInput
}

// --- Output DTOs ---

// ProfileOutput is the public profile view.
type ProfileOutput struct {
	Headline string
	Bio      string
	Likes    int
	Contacts []ContactInput
}

// NewProfileOutput builds the profile DTO from a user entity.
func NewProfileOutput(user *entity.User) *ProfileOutput {
	contacts := make([]ContactInput, 0, len(user.Profile.Contacts))
	for _, contact := range user.Profile.Contacts {
		contacts = append(contacts, ContactInput{Type: contact.Type, Value: contact.Value})
	}

	return &ProfileOutput{
		Headline: user.Profile.Headline,
		Bio:      user.Profile.Bio,
		Likes:    len(user.Profile.LikedBy),
		Contacts: contacts,
	}
}

// ProfileUsecase defines the interface for profile and like-graph operations.
type ProfileUsecase interface {
	// Get returns the public profile of the given user.
	Get(ctx context.Context, userID uuid.UUID) (*ProfileOutput, error)

	// Update overwrites the profile's public fields. Only the owner may call it.
	Update(ctx context.Context, requesterID, userID uuid.UUID, input UpdateProfileInput) (*ProfileOutput, error)

	// Like records that the requester likes the target's profile, updating
	// both sides of the relation atomically.
	Like(ctx context.Context, requesterID, targetID uuid.UUID) error

	// Unlike withdraws a previously recorded like.
	Unlike(ctx context.Context, requesterID, targetID uuid.UUID) error

	// Fans lists the users who like the given user's profile.
	Fans(ctx context.Context, userID uuid.UUID) ([]*UserOutput, error)

	// Favorites lists the users whose profiles the given user likes.
	Favorites(ctx context.Context, userID uuid.UUID) ([]*UserOutput, error)

	// ShareQR renders a PNG QR code pointing at the user's public profile.
	ShareQR(ctx context.Context, userID uuid.UUID) ([]byte, error)
}
