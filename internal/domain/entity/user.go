// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core entity of the system, representing a single registered account.
// The profile is embedded: it lives and dies with its owner.
type User struct {
	ID           uuid.UUID // The unique identifier for the user.
	Username     string    // Unique login name, 6-20 characters.
	PasswordHash string    // bcrypt hash of the user's password.
	Profile      Profile   // The user's public profile, always present.
	CreatedAt    time.Time // Timestamp of when this account was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this account.
}

// Profile holds the public-facing part of a user account, including the
// bidirectional like relation. For any pair of users (A, B) the invariant is:
// B.ID is in A.Liked exactly when A.ID is in B.LikedBy.
type Profile struct {
	Headline string      // Short tagline, up to 100 characters. Optional.
	Bio      string      // Free-form text, up to 4000 characters. Optional.
	Contacts []Contact   // Ways to reach the user.
	Liked    []uuid.UUID // IDs of users this user likes.
	LikedBy  []uuid.UUID // IDs of users that like this user.
}

// Contact is a single labelled way of contacting a user, e.g. {"email", "a@b.c"}.
type Contact struct {
	Type  string // Contact kind, up to 20 characters.
	Value string // Contact value, up to 100 characters.
}

// Likes reports whether targetID is in the profile's Liked set.
func (p *Profile) Likes(targetID uuid.UUID) bool {
	return containsID(p.Liked, targetID)
}

// AddLike appends targetID to the Liked set. The caller is responsible for
// updating the other side of the relation on the target's profile.
func (p *Profile) AddLike(targetID uuid.UUID) {
	p.Liked = append(p.Liked, targetID)
}

// RemoveLike removes targetID from the Liked set. Absent ids are a no-op.
func (p *Profile) RemoveLike(targetID uuid.UUID) {
	p.Liked = removeID(p.Liked, targetID)
}

// AddFan appends fanID to the LikedBy set.
func (p *Profile) AddFan(fanID uuid.UUID) {
	p.LikedBy = append(p.LikedBy, fanID)
}

// RemoveFan removes fanID from the LikedBy set. Absent ids are a no-op.
func (p *Profile) RemoveFan(fanID uuid.UUID) {
	p.LikedBy = removeID(p.LikedBy, fanID)
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}

	return false
}

func removeID(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	for i, candidate := range ids {
		if candidate == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}

	return ids
}
