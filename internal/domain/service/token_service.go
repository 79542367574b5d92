// Package service defines interfaces for core, stateless domain logic.
package service

import (
	"errors"

	"mingle/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrTokenInvalid is returned for any token that fails verification: bad
// signature, expired, malformed claims. Callers must not be able to tell
// these cases apart.
var ErrTokenInvalid = errors.New("token invalid")

// TokenService issues and verifies the signed access/refresh token pairs.
// Issuance is a pure function of its inputs; ledger bookkeeping is the
// caller's business.
type TokenService interface {
	// IssuePair signs a short-lived access token with sub=userID and a
	// longer-lived refresh token with sub=[userID, refreshTokenID].
	IssuePair(userID, refreshTokenID uuid.UUID) (*entity.TokenPair, error)

	// ParseAccessToken verifies an access token and returns the user id from
	// its subject, or ErrTokenInvalid.
	ParseAccessToken(token string) (uuid.UUID, error)

	// ParseRefreshToken verifies a refresh token and returns the
	// [userID, tokenID] tuple from its subject, or ErrTokenInvalid. A subject
	// that is not a two-element tuple is invalid.
	ParseRefreshToken(token string) (userID, tokenID uuid.UUID, err error)
}
