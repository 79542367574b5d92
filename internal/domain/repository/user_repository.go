// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"mingle/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// ErrUsernameTaken is returned by Create and Update when the unique username
// constraint rejects the write. Callers usually pre-check with
// ExistsWithUsername, but the constraint is the authority under concurrency.
var ErrUsernameTaken = errors.New("username already taken")

// UserRepository defines the standard operations for user persistence.
// The application layer depends on this interface, not the concrete implementation.
type UserRepository interface {
	// FindByID retrieves a single user, with profile and like sets, by id.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByUsername retrieves a single user by their unique username.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// FindAll retrieves every user, ordered by creation time.
	FindAll(ctx context.Context) ([]*entity.User, error)

	// FindByIDs retrieves the users whose ids are in the given set.
	// Missing ids are silently skipped.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.User, error)

	// ExistsWithID reports whether a user with the given id exists.
	ExistsWithID(ctx context.Context, id uuid.UUID) (bool, error)

	// ExistsWithUsername reports whether the username is taken by a user other
	// than exceptID. Pass uuid.Nil to check against all users.
	ExistsWithUsername(ctx context.Context, username string, exceptID uuid.UUID) (bool, error)

	// Create persists a new user entity and fills in its generated id.
	Create(ctx context.Context, user *entity.User) error

	// Update persists credential and profile changes, including the user's
	// Liked set. The LikedBy set is derived on read and never written.
	Update(ctx context.Context, user *entity.User) error

	// Delete removes the user row. Like rows referencing the user must be
	// removed separately via RemoveUserFromLikes.
	Delete(ctx context.Context, id uuid.UUID) error

	// RemoveUserFromLikes deletes every like relation the user participates in,
	// on either side. Used by the account-deletion cascade.
	RemoveUserFromLikes(ctx context.Context, id uuid.UUID) error
}
