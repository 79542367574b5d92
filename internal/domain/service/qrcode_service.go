// Package service defines interfaces for core, stateless domain logic.
package service

import "github.com/google/uuid"

// QRCodeService renders profile share links as QR code images.
type QRCodeService interface {
	// ProfileQR returns a PNG image encoding the public profile URL of the
	// given user.
	ProfileQR(userID uuid.UUID) ([]byte, error)
}
